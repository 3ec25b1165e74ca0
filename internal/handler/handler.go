// Package handler exposes the JSON API: enqueue a generation job, poll its
// status, and read persisted courses.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avraj/courseforge/internal/model"
	"github.com/avraj/courseforge/internal/scheduler"
	"github.com/avraj/courseforge/internal/store"
)

const (
	defaultModuleCount = 2
	maxModuleCount     = 12
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	scheduler *scheduler.Scheduler
}

// New creates a new Handler.
func New(s *store.Store, sched *scheduler.Scheduler) *Handler {
	return &Handler{store: s, scheduler: sched}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/courses/generate", h.handleGenerate)
	r.Get("/api/jobs/{jobID}", h.handleJobStatus)
	r.Get("/api/courses", h.handleListCourses)
	r.Get("/api/courses/{courseID}", h.handleGetCourse)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}
	if req.Difficulty == "" {
		req.Difficulty = "beginner"
	}
	if req.ModuleCount <= 0 {
		req.ModuleCount = defaultModuleCount
	}
	if req.ModuleCount > maxModuleCount {
		req.ModuleCount = maxModuleCount
	}

	jobID := h.scheduler.Enqueue(req)
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

func (h *Handler) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := h.scheduler.Job(chi.URLParam(r, "jobID"))
	if err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.ListCourses()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []model.CourseSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.store.GetCourse(chi.URLParam(r, "courseID"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
