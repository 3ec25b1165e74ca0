package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avraj/courseforge/internal/model"
	"github.com/avraj/courseforge/internal/scheduler"
	"github.com/avraj/courseforge/internal/store"
)

func newTestServer(t *testing.T, run scheduler.RunFunc) (*httptest.Server, *store.Store) {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if run == nil {
		run = func(context.Context, model.GenerateRequest) (string, string, error) {
			return "course-1", "course generated", nil
		}
	}

	h := New(db, scheduler.New(run))
	r := chi.NewRouter()
	h.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

func TestGenerateEnqueuesJob(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/api/courses/generate", "application/json",
		strings.NewReader(`{"topic": "Go", "language": "English"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["job_id"] == "" {
		t.Fatal("expected a job_id")
	}

	// The job should reach a terminal status and carry the course id.
	deadline := time.After(5 * time.Second)
	for {
		jr, err := http.Get(srv.URL + "/api/jobs/" + body["job_id"])
		if err != nil {
			t.Fatalf("GET job: %v", err)
		}
		var job model.Job
		if err := json.NewDecoder(jr.Body).Decode(&job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		jr.Body.Close()
		if job.Status.Terminal() {
			if job.Status != model.JobCompleted || job.CourseID != "course-1" {
				t.Fatalf("job = %+v, want completed with course-1", job)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("job never completed")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing topic", `{"language": "English"}`, http.StatusBadRequest},
		{"blank topic", `{"topic": "   "}`, http.StatusBadRequest},
		{"invalid json", `{not json`, http.StatusBadRequest},
		{"valid", `{"topic": "Go"}`, http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/courses/generate", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestJobNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/jobs/nonexistent")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCourseEndpoints(t *testing.T) {
	srv, db := newTestServer(t, nil)

	id, err := db.InsertCourse(model.Course{
		Title:   "English Course: Go",
		Modules: []model.Module{{Title: "Module 1: Basics"}},
	})
	if err != nil {
		t.Fatalf("InsertCourse: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/courses")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var summaries []model.CourseSummary
		if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(summaries) != 1 || summaries[0].ID != id {
			t.Errorf("summaries = %+v", summaries)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/courses/" + id)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var course model.Course
		if err := json.NewDecoder(resp.Body).Decode(&course); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if course.Title != "English Course: Go" || len(course.Modules) != 1 {
			t.Errorf("course = %+v", course)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/courses/missing")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}
