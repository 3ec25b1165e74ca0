// Package store persists generated courses in sqlite. Modules are stored as
// a JSON document per course; the structured quiz and assignment records in
// that document are authoritative.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/avraj/courseforge/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		module_count INTEGER NOT NULL DEFAULT 0,
		modules TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// InsertCourse stores a course and returns its identifier. A course without
// an id is assigned one.
func (s *Store) InsertCourse(c model.Course) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	modules, err := json.Marshal(c.Modules)
	if err != nil {
		return "", fmt.Errorf("marshal modules: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO courses (id, title, description, language, difficulty, module_count, modules, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Language, c.Difficulty, len(c.Modules), string(modules), c.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// ListCourses returns summaries of all stored courses, newest first.
func (s *Store) ListCourses() ([]model.CourseSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, language, difficulty, module_count, created_at
		 FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var summaries []model.CourseSummary
	for rows.Next() {
		var cs model.CourseSummary
		if err := rows.Scan(&cs.ID, &cs.Title, &cs.Description, &cs.Language, &cs.Difficulty, &cs.ModuleCount, &cs.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}

// GetCourse returns a full course by id. Unknown ids yield sql.ErrNoRows.
func (s *Store) GetCourse(id string) (model.Course, error) {
	var (
		c       model.Course
		modules string
	)
	err := s.db.QueryRow(
		`SELECT id, title, description, language, difficulty, modules, created_at FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Language, &c.Difficulty, &modules, &c.CreatedAt)
	if err != nil {
		return model.Course{}, err
	}
	if err := json.Unmarshal([]byte(modules), &c.Modules); err != nil {
		return model.Course{}, fmt.Errorf("unmarshal modules for course %s: %w", id, err)
	}
	return c, nil
}
