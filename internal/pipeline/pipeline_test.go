package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avraj/courseforge/internal/model"
)

// fakeGen routes prompts to canned responses by matching a marker substring
// from the prompt text.
type fakeGen struct {
	responses map[string]string
	prompts   []string
}

func (f *fakeGen) GenerateWithRetry(_ context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	for marker, response := range f.responses {
		if strings.Contains(prompt, marker) {
			return response
		}
	}
	return ""
}

type fakeFinder struct {
	result *model.VideoResult
	calls  int
}

func (f *fakeFinder) Find(_ context.Context, queries []string, languageName string) *model.VideoResult {
	f.calls++
	return f.result
}

const outlineResponse = "Module 1: Basics\nObjectives:\n- Learn X\n---\nModule 2: Advanced\nObjectives:\n- Learn Y\n"

func newTestPipeline(videos *fakeFinder) (*Pipeline, *fakeGen) {
	gen := &fakeGen{responses: map[string]string{
		"course outline":        outlineResponse,
		"comprehensive lesson":  "Lesson body.",
		"quiz questions":        "Q1. Sum of 2+2?\nA. 3\nB. 4\nCorrect: B\nExplanation: Arithmetic.\nQ2. Broken\nA. Only option\n",
		"practical assignments": "Assignment: Practice\n## 3 Mark Questions\n1. Do a thing.\n2. Do another.\n",
		"learning resources":    "Some resources.",
		"search phrases":        "golang basics tutorial english\nlearn go programming lesson\n",
	}}
	return New(gen, videos), gen
}

func TestRunAssemblesCourse(t *testing.T) {
	finder := &fakeFinder{result: &model.VideoResult{VideoID: "vid42"}}
	p, _ := newTestPipeline(finder)

	req := model.GenerateRequest{Topic: "Go", Language: "English", Difficulty: "beginner", ModuleCount: 2}
	course, stats, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if course.Title != "English Course: Go" {
		t.Errorf("title = %q", course.Title)
	}
	if len(course.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(course.Modules))
	}

	mod := course.Modules[0]
	if mod.Title != "Module 1: Basics" {
		t.Errorf("module title = %q", mod.Title)
	}
	if mod.LessonContent != "Lesson body." {
		t.Errorf("lesson = %q", mod.LessonContent)
	}
	if len(mod.Quiz) != 1 || mod.Quiz[0].Correct != "B" {
		t.Errorf("quiz = %+v, want 1 validated question", mod.Quiz)
	}
	if mod.Assignment.TotalMarks != 6 {
		t.Errorf("assignment total = %d, want 6", mod.Assignment.TotalMarks)
	}
	if mod.Video == nil || mod.Video.VideoID != "vid42" {
		t.Errorf("video = %+v", mod.Video)
	}
	if len(mod.SearchQueries) != 2 {
		t.Errorf("search queries = %v", mod.SearchQueries)
	}

	// One malformed quiz question per module was dropped.
	if stats.DroppedQuestions != 2 {
		t.Errorf("dropped questions = %d, want 2", stats.DroppedQuestions)
	}
	if finder.calls != 2 {
		t.Errorf("video lookups = %d, want one per module", finder.calls)
	}
}

func TestRunEmptyOutline(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{}}
	p := New(gen, &fakeFinder{})

	_, _, err := p.Run(context.Background(), model.GenerateRequest{Topic: "Go", Language: "English"})
	if !errors.Is(err, ErrEmptyOutline) {
		t.Errorf("expected ErrEmptyOutline, got %v", err)
	}
}

func TestRunVideoLookupFailureIsNotFatal(t *testing.T) {
	finder := &fakeFinder{result: nil}
	p, _ := newTestPipeline(finder)

	course, _, err := p.Run(context.Background(), model.GenerateRequest{Topic: "Go", Language: "English", ModuleCount: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, mod := range course.Modules {
		if mod.Video != nil {
			t.Errorf("module %d video = %+v, want nil", i, mod.Video)
		}
	}
}

func TestCleanSearchQueries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain phrases", "one phrase here\nsecond phrase\n", []string{"one phrase here", "second phrase"}},
		{"skips formatting lines", "```\n* bullet\n- dash\n# heading\n[link]\nreal phrase\n", []string{"real phrase"}},
		{"caps at three", "a\nb\nc\nd\ne\n", []string{"a", "b", "c"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanSearchQueries(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("cleanSearchQueries() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("query[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStatsMessage(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  string
	}{
		{"clean run", Stats{}, "course generated"},
		{"dropped fragments", Stats{DroppedQuestions: 3, OrphanedItems: 1},
			"course generated (3 malformed quiz questions dropped, 1 assignment items discarded)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
