package parser

import "testing"

func TestExtractAssignmentTotalMarks(t *testing.T) {
	text := `Assignment: Data Structures Practice
## 3 Mark Questions
1. Explain arrays.
2. Explain slices.
## 5 Mark Problems
1. Implement a stack.
`
	asg, orphaned := ExtractAssignment(text)
	if orphaned != 0 {
		t.Errorf("expected no orphaned items, got %d", orphaned)
	}
	if asg.Title != "Data Structures Practice" {
		t.Errorf("unexpected title %q", asg.Title)
	}
	if len(asg.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(asg.Sections))
	}
	if asg.Sections[0].MarksEach != 3 || len(asg.Sections[0].Items) != 2 {
		t.Errorf("section 0 = %+v, want 2 items at 3 marks", asg.Sections[0])
	}
	if asg.Sections[1].MarksEach != 5 || len(asg.Sections[1].Items) != 1 {
		t.Errorf("section 1 = %+v, want 1 item at 5 marks", asg.Sections[1])
	}
	// 2*3 + 1*5
	if asg.TotalMarks != 11 {
		t.Errorf("TotalMarks = %d, want 11", asg.TotalMarks)
	}
}

func TestExtractAssignmentSectionType(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantType  string
		wantMarks int
	}{
		{"parenthetical stripped", "## 3 Mark Questions (answer any two)", "3 Mark Questions", 3},
		{"no mark pattern", "## Reflection Exercises", "Reflection Exercises", 0},
		{"essays", "## 10 Mark Essays", "10 Mark Essays", 10},
		{"bold header", "**2 Mark Problems**", "2 Mark Problems", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asg, _ := ExtractAssignment(tt.header + "\n1. An item.\n")
			if len(asg.Sections) != 1 {
				t.Fatalf("expected 1 section, got %d", len(asg.Sections))
			}
			s := asg.Sections[0]
			if s.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", s.Type, tt.wantType)
			}
			if s.MarksEach != tt.wantMarks {
				t.Errorf("MarksEach = %d, want %d", s.MarksEach, tt.wantMarks)
			}
		})
	}
}

func TestExtractAssignmentOrphanedItems(t *testing.T) {
	text := "1. An item before any section.\n2. Another stray item.\n## 3 Mark Questions\n1. A kept item.\n"

	asg, orphaned := ExtractAssignment(text)
	if orphaned != 2 {
		t.Errorf("orphaned = %d, want 2", orphaned)
	}
	if len(asg.Sections) != 1 || len(asg.Sections[0].Items) != 1 {
		t.Fatalf("unexpected sections %+v", asg.Sections)
	}
	if asg.TotalMarks != 3 {
		t.Errorf("TotalMarks = %d, want 3", asg.TotalMarks)
	}
}

func TestExtractAssignmentNoMarkHeaders(t *testing.T) {
	text := "Assignment: Essay Work\n## Part One\n1. Write an essay.\n## Part Two\n1. Revise it.\n2. Submit it.\n"

	asg, _ := ExtractAssignment(text)
	if asg.TotalMarks != 0 {
		t.Errorf("TotalMarks = %d, want 0 when no mark pattern ever matched", asg.TotalMarks)
	}
}

func TestExtractAssignmentMalformed(t *testing.T) {
	for _, text := range []string{"", "just prose with no structure"} {
		asg, orphaned := ExtractAssignment(text)
		if len(asg.Sections) != 0 || asg.TotalMarks != 0 || orphaned != 0 {
			t.Errorf("ExtractAssignment(%q) = %+v, %d orphaned; want empty", text, asg, orphaned)
		}
	}
}
