package model

import "time"

// JobStatus represents the lifecycle state of a generation job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether a job in this status will never transition again.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// GenerateRequest is the input payload for one course-generation job.
type GenerateRequest struct {
	Topic       string `json:"topic"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty"`
	Language    string `json:"language"`
	ModuleCount int    `json:"module_count"`
}

// Job tracks one course-generation request through its status lifecycle.
// Jobs live in memory for the process lifetime; they are never deleted.
type Job struct {
	ID          string          `json:"id"`
	Status      JobStatus       `json:"status"`
	Message     string          `json:"message,omitempty"`
	CourseID    string          `json:"course_id,omitempty"`
	Request     GenerateRequest `json:"request"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   time.Time       `json:"started_at,omitzero"`
	CompletedAt time.Time       `json:"completed_at,omitzero"`
}

// ModuleStub is one entry of a parsed course outline: a title plus the
// learning objectives listed under it, in outline order.
type ModuleStub struct {
	Title      string   `json:"title"`
	Objectives []string `json:"objectives"`
}

// QuizQuestion is a validated multiple-choice question. Correct is always a
// key of Options; questions that fail that invariant are dropped by the
// extractor rather than emitted.
type QuizQuestion struct {
	Number      int               `json:"number"`
	Text        string            `json:"text"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// AssignmentSection groups assignment items that share a per-item mark value.
type AssignmentSection struct {
	Type      string   `json:"type"`
	MarksEach int      `json:"marks_each"`
	Items     []string `json:"items"`
}

// Assignment is a graded set of sections. TotalMarks is the sum of
// len(Items) * MarksEach across sections.
type Assignment struct {
	Title      string              `json:"title"`
	Sections   []AssignmentSection `json:"sections"`
	TotalMarks int                 `json:"total_marks"`
}

// VideoResult describes one video found for a module. A nil *VideoResult
// means every search attempt failed.
type VideoResult struct {
	Title     string `json:"title"`
	VideoID   string `json:"video_id"`
	WatchURL  string `json:"watch_url"`
	EmbedURL  string `json:"embed_url"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
	Language  string `json:"language"`
}

// Module is one lesson unit of a generated course. Immutable once assembled.
type Module struct {
	Title         string         `json:"title"`
	Objectives    []string       `json:"objectives"`
	LessonContent string         `json:"lesson_content"`
	Quiz          []QuizQuestion `json:"quiz"`
	Assignment    Assignment     `json:"assignment"`
	Resources     string         `json:"resources"`
	SearchQueries []string       `json:"search_queries,omitempty"`
	Video         *VideoResult   `json:"video,omitempty"`
}

// Course is a fully generated course ready for persistence.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Difficulty  string    `json:"difficulty"`
	Modules     []Module  `json:"modules"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseSummary is the projection returned by course listings.
type CourseSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Difficulty  string    `json:"difficulty"`
	ModuleCount int       `json:"module_count"`
	CreatedAt   time.Time `json:"created_at"`
}
