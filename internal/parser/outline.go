// Package parser turns loosely formatted generated text into validated
// course structures. Extractors here never fail: unrecognizable input
// produces an empty or partial result, and invalid fragments are dropped.
package parser

import (
	"regexp"
	"strings"

	"github.com/avraj/courseforge/internal/model"
)

// moduleSeparator is the explicit separator the outline prompt asks for.
const moduleSeparator = "---"

var (
	moduleHeaderRe = regexp.MustCompile(`(?i)^(?:\*\*)?Module\s+\d+:?\s+(.*?)(?:\*\*)?$`)
	bulletRe       = regexp.MustCompile(`^(?:[\*\-•]|\d+\.)\s*`)
)

// ExtractOutline parses generated outline text into ordered module stubs.
//
// It first splits on the explicit "---" separator; if that yields more than
// one non-empty segment, each segment is parsed on its own. Otherwise it
// falls back to scanning lines for "Module N: Title" headers. Either way a
// module is emitted only if it has a non-empty title.
func ExtractOutline(text string) []model.ModuleStub {
	var stubs []model.ModuleStub

	segments := nonEmptySegments(text)
	if len(segments) > 1 {
		for _, seg := range segments {
			if stub, ok := parseSegment(seg); ok {
				stubs = append(stubs, stub)
			}
		}
		return stubs
	}

	return scanOutlineLines(text)
}

func nonEmptySegments(text string) []string {
	var out []string
	for _, seg := range strings.Split(text, moduleSeparator) {
		if strings.TrimSpace(seg) != "" {
			out = append(out, seg)
		}
	}
	return out
}

// parseSegment parses one separator-delimited block: the first line carrying
// a module marker becomes the title, bullets after an Objectives header
// become objectives.
func parseSegment(segment string) (model.ModuleStub, bool) {
	var stub model.ModuleStub
	haveTitle := false
	inObjectives := false

	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !haveTitle {
			if strings.Contains(line, "Module") && (strings.Contains(line, ":") || strings.Contains(line, "-")) {
				stub.Title = line
				haveTitle = true
			}
			continue
		}

		if isObjectivesHeader(line) {
			inObjectives = true
			continue
		}

		if inObjectives {
			if obj, ok := cleanBullet(line); ok {
				stub.Objectives = append(stub.Objectives, obj)
			}
		}
	}

	return stub, haveTitle && stub.Title != ""
}

// scanOutlineLines handles outlines without separators: recurring module
// headers open new stubs, a standalone Objectives header switches into
// collection mode, bullets append objectives. Non-bullet lines in objective
// mode are ignored.
func scanOutlineLines(text string) []model.ModuleStub {
	var stubs []model.ModuleStub
	var current *model.ModuleStub
	inObjectives := false

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case moduleHeaderRe.MatchString(line):
			if current != nil && current.Title != "" {
				stubs = append(stubs, *current)
			}
			// Keep the full header including the "Module N:" prefix.
			current = &model.ModuleStub{Title: strings.Trim(line, "*")}
			inObjectives = false

		case current != nil && isObjectivesHeaderLine(line):
			inObjectives = true

		case current != nil && inObjectives:
			if obj, ok := cleanBullet(line); ok {
				current.Objectives = append(current.Objectives, obj)
			}
		}
	}

	if current != nil && current.Title != "" {
		stubs = append(stubs, *current)
	}
	return stubs
}

// isObjectivesHeader is the loose match used inside a separator-delimited
// segment, where any line mentioning objectives introduces the bullet list.
func isObjectivesHeader(line string) bool {
	return strings.Contains(strings.ToLower(line), "objectives")
}

// isObjectivesHeaderLine matches a standalone header such as "Objectives:"
// or "**Learning Objectives:**". A bullet that merely mentions the word is
// not a header.
func isObjectivesHeaderLine(line string) bool {
	s := strings.Trim(strings.ToLower(line), "*: \t")
	return s == "objectives" || s == "learning objectives"
}

// cleanBullet strips a leading bullet marker (*, -, •, or "N.") and reports
// whether the line was a bullet with non-empty content.
func cleanBullet(line string) (string, bool) {
	if !bulletRe.MatchString(line) {
		return "", false
	}
	obj := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
	return obj, obj != ""
}

// JoinOutline reassembles stubs into separator-delimited outline text.
// ExtractOutline(JoinOutline(stubs)) round-trips.
func JoinOutline(stubs []model.ModuleStub) string {
	var sb strings.Builder
	for i, stub := range stubs {
		if i > 0 {
			sb.WriteString(moduleSeparator + "\n")
		}
		sb.WriteString(stub.Title + "\n")
		sb.WriteString("Objectives:\n")
		for _, obj := range stub.Objectives {
			sb.WriteString("- " + obj + "\n")
		}
	}
	return sb.String()
}
