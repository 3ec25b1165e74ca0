// Package pipeline orchestrates one course generation end to end: prompts,
// generation calls, extraction, video lookup, assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avraj/courseforge/internal/llm"
	"github.com/avraj/courseforge/internal/llm/prompts"
	"github.com/avraj/courseforge/internal/model"
	"github.com/avraj/courseforge/internal/parser"
)

// ErrEmptyOutline is returned when the generation service produced no
// parseable course outline; without one there is nothing to build.
var ErrEmptyOutline = errors.New("pipeline: generated outline contained no modules")

// VideoFinder locates a video for a set of search phrases. A nil result
// means nothing usable was found.
type VideoFinder interface {
	Find(ctx context.Context, queries []string, languageName string) *model.VideoResult
}

// Stats counts fragments the tolerant extractors dropped during a run; they
// are surfaced in the job's status message.
type Stats struct {
	DroppedQuestions int
	OrphanedItems    int
}

// Message renders the stats for a completed job's status line.
func (s Stats) Message() string {
	if s.DroppedQuestions == 0 && s.OrphanedItems == 0 {
		return "course generated"
	}
	return fmt.Sprintf("course generated (%d malformed quiz questions dropped, %d assignment items discarded)",
		s.DroppedQuestions, s.OrphanedItems)
}

// Pipeline builds a full course from a generation request.
type Pipeline struct {
	gen    llm.Generator
	videos VideoFinder
}

// New creates a Pipeline from its collaborators.
func New(gen llm.Generator, videos VideoFinder) *Pipeline {
	return &Pipeline{gen: gen, videos: videos}
}

// Run executes the full generation flow: optimize the prompt, generate and
// parse the outline, then for each module generate lesson, quiz,
// assignment, and resources, and look up one video. Extraction failures
// degrade to partial content; only a missing outline aborts the run.
func (p *Pipeline) Run(ctx context.Context, req model.GenerateRequest) (*model.Course, Stats, error) {
	var stats Stats

	insights := strings.TrimSpace(p.gen.GenerateWithRetry(ctx, prompts.Optimize(req)))
	outlineText := p.gen.GenerateWithRetry(ctx, prompts.Outline(req, insights))
	stubs := parser.ExtractOutline(outlineText)
	if len(stubs) == 0 {
		return nil, stats, ErrEmptyOutline
	}
	slog.Info("parsed course outline", "modules", len(stubs))

	course := &model.Course{
		ID:          uuid.New().String(),
		Title:       fmt.Sprintf("%s Course: %s", req.Language, req.Topic),
		Description: req.Description,
		Language:    req.Language,
		Difficulty:  req.Difficulty,
		CreatedAt:   time.Now().UTC(),
	}

	for i, stub := range stubs {
		slog.Info("processing module", "index", i+1, "title", stub.Title)
		mod, modStats := p.buildModule(ctx, req, stub)
		stats.DroppedQuestions += modStats.DroppedQuestions
		stats.OrphanedItems += modStats.OrphanedItems
		course.Modules = append(course.Modules, mod)
	}

	return course, stats, nil
}

func (p *Pipeline) buildModule(ctx context.Context, req model.GenerateRequest, stub model.ModuleStub) (model.Module, Stats) {
	var stats Stats

	lesson := p.gen.GenerateWithRetry(ctx, prompts.Lesson(req, stub))

	quizText := p.gen.GenerateWithRetry(ctx, prompts.Quiz(req, stub))
	quiz, droppedQ := parser.ExtractQuiz(quizText)
	stats.DroppedQuestions = droppedQ

	asgText := p.gen.GenerateWithRetry(ctx, prompts.Assignments(req, stub))
	assignment, orphaned := parser.ExtractAssignment(asgText)
	stats.OrphanedItems = orphaned

	resources := p.gen.GenerateWithRetry(ctx, prompts.Resources(req, stub))

	queries := cleanSearchQueries(p.gen.GenerateWithRetry(ctx, prompts.VideoQueries(req, stub)))
	var video *model.VideoResult
	if len(queries) > 0 {
		video = p.videos.Find(ctx, queries, req.Language)
	}

	return model.Module{
		Title:         stub.Title,
		Objectives:    stub.Objectives,
		LessonContent: lesson,
		Quiz:          quiz,
		Assignment:    assignment,
		Resources:     resources,
		SearchQueries: queries,
		Video:         video,
	}, stats
}

// cleanSearchQueries keeps up to three plain phrases, skipping code fences,
// bullets, and other formatting lines the model sometimes emits anyway.
func cleanSearchQueries(text string) []string {
	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || hasFormattingPrefix(line) {
			continue
		}
		queries = append(queries, line)
		if len(queries) >= 3 {
			break
		}
	}
	return queries
}

func hasFormattingPrefix(line string) bool {
	for _, prefix := range []string{"```", "[", "*", "-", "#"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
