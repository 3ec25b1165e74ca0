// Package scheduler serializes course-generation jobs: at most one pipeline
// run at a time, strict FIFO order, pollable status.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avraj/courseforge/internal/model"
)

// ErrJobNotFound is returned when a job identifier is unknown.
var ErrJobNotFound = errors.New("scheduler: job not found")

// RunFunc executes one generation job and returns the persisted course id
// and a human-readable completion message.
type RunFunc func(ctx context.Context, req model.GenerateRequest) (courseID string, message string, err error)

// Scheduler owns the job table and the pending queue. One mutex guards
// both together with the running flag, so "is anything running" and "pop
// the next job" are always observed atomically.
type Scheduler struct {
	run RunFunc

	mu      sync.Mutex
	jobs    map[string]*model.Job
	pending []string
	running bool
}

// New creates a Scheduler that executes jobs with run.
func New(run RunFunc) *Scheduler {
	return &Scheduler{
		run:  run,
		jobs: make(map[string]*model.Job),
	}
}

// Enqueue registers a job and returns its identifier without blocking on
// generation. If no worker is active one is started; otherwise the job
// waits its turn in FIFO order.
func (s *Scheduler) Enqueue(req model.GenerateRequest) string {
	job := &model.Job{
		ID:        uuid.New().String(),
		Status:    model.JobQueued,
		Message:   "waiting in queue",
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.pending = append(s.pending, job.ID)
	start := !s.running
	if start {
		s.running = true
	}
	s.mu.Unlock()

	if start {
		go s.work()
	}
	slog.Info("job enqueued", "job_id", job.ID, "topic", req.Topic)
	return job.ID
}

// Job returns a snapshot of the job with the given id.
func (s *Scheduler) Job(id string) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return model.Job{}, ErrJobNotFound
	}
	return *job, nil
}

// work drains the pending queue one job at a time. It exits only when, under
// the lock, the queue is observed empty; the running flag is cleared in the
// same critical section so a concurrent Enqueue either sees running=true or
// starts a fresh worker, never both.
func (s *Scheduler) work() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.running = false
			s.mu.Unlock()
			slog.Info("scheduler idle")
			return
		}
		id := s.pending[0]
		s.pending = s.pending[1:]
		job := s.jobs[id]
		job.Status = model.JobProcessing
		job.Message = "generating course"
		job.StartedAt = time.Now().UTC()
		req := job.Request
		s.mu.Unlock()

		slog.Info("job started", "job_id", id)
		courseID, message, err := s.runSafely(req)

		s.mu.Lock()
		job.CompletedAt = time.Now().UTC()
		if err != nil {
			job.Status = model.JobFailed
			job.Message = err.Error()
			slog.Error("job failed", "job_id", id, "error", err)
		} else {
			job.Status = model.JobCompleted
			job.CourseID = courseID
			job.Message = message
			slog.Info("job completed", "job_id", id, "course_id", courseID)
		}
		s.mu.Unlock()
	}
}

// runSafely converts a panicking pipeline into a failed job instead of a
// lost worker loop.
func (s *Scheduler) runSafely(req model.GenerateRequest) (courseID, message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
		}
	}()
	return s.run(context.Background(), req)
}
