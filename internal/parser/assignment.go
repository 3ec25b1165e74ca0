package parser

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/avraj/courseforge/internal/model"
)

var (
	assignmentTitleRe = regexp.MustCompile(`(?i)^(?:#+\s*)?\**Assignments?(?:\s+Title)?\s*\d*\s*:?\**\s*(.*)$`)
	sectionHeaderRe   = regexp.MustCompile(`^#{2,}\s*(.+)$|^\*\*(.+?)\*\*:?$`)
	marksRe           = regexp.MustCompile(`(?i)(\d+)\s*Marks?\s*(Questions?|Problems?|Essays?)`)
	itemRe            = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)
)

// ExtractAssignment parses generated assignment text into graded sections.
// It returns the assignment and the number of item lines discarded because
// no section was open to receive them. Never errors.
func ExtractAssignment(text string) (model.Assignment, int) {
	var (
		asg      model.Assignment
		cur      *model.AssignmentSection
		orphaned int
	)

	closeSection := func() {
		if cur != nil {
			asg.Sections = append(asg.Sections, *cur)
			cur = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if title, ok := matchAssignmentTitle(line); ok && asg.Title == "" {
			asg.Title = title
			continue
		}

		if header, ok := matchSectionHeader(line); ok {
			closeSection()
			cur = &model.AssignmentSection{
				Type:      sectionType(header),
				MarksEach: sectionMarks(header),
			}
			continue
		}

		if m := itemRe.FindStringSubmatch(line); m != nil {
			if cur == nil {
				orphaned++
				continue
			}
			cur.Items = append(cur.Items, strings.TrimSpace(m[2]))
		}
	}
	closeSection()

	for _, s := range asg.Sections {
		asg.TotalMarks += len(s.Items) * s.MarksEach
	}
	if orphaned > 0 {
		slog.Debug("discarded assignment items outside any section", "count", orphaned)
	}
	return asg, orphaned
}

func matchAssignmentTitle(line string) (string, bool) {
	m := assignmentTitleRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if title := strings.TrimSpace(strings.Trim(m[1], "*")); title != "" {
		return title, true
	}
	// Marker matched with empty remainder ("## Assignment").
	return "Assignment", true
}

func matchSectionHeader(line string) (string, bool) {
	m := sectionHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g), true
		}
	}
	return "", false
}

// sectionType is the header text before any parenthetical.
func sectionType(header string) string {
	if i := strings.Index(header, "("); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(strings.Trim(header, "*:"))
}

// sectionMarks extracts the per-item mark value from a header such as
// "3 Mark Questions (answer any five)". Zero when no mark pattern matches.
func sectionMarks(header string) int {
	m := marksRe.FindStringSubmatch(header)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
