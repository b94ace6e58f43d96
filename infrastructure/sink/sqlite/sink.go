// ABOUTME: Sink that upserts the artifact into a SQLite database
// ABOUTME: Each artifact is one row keyed by name; publishing replaces its content

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "linkfeed-aggregator/core/errors"
)

const (
	sinkName = "sqlite"

	defaultDatabase = "artifacts.db"
	maxNameLength   = 255
)

// Sink implements interfaces.Sink using SQLite
type Sink struct {
	db       *sql.DB
	filePath string
	name     string
}

// NewSink opens (or creates) the database at filePath and prepares the artifacts table
func NewSink(filePath, name string) (*Sink, error) {
	if name == "" {
		return nil, &apperrors.ConfigError{Field: "FILE_PATH", Message: "artifact name is required for the sqlite sink"}
	}
	if len(name) > maxNameLength {
		return nil, &apperrors.ConfigError{Field: "FILE_PATH", Message: fmt.Sprintf("artifact name too long (max %d characters)", maxNameLength)}
	}
	if filePath == "" {
		filePath = defaultDatabase
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Sink{
		db:       db,
		filePath: filePath,
		name:     name,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the artifacts table if it doesn't exist
func (s *Sink) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS artifacts (
			name TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(query)
	return err
}

// Name implements interfaces.Sink
func (s *Sink) Name() string {
	return sinkName
}

// Publish inserts the artifact or replaces its content
func (s *Sink) Publish(ctx context.Context, content string) error {
	query := `
		INSERT INTO artifacts (name, content, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.name, content, time.Now().Unix()); err != nil {
		return &apperrors.SinkError{Sink: sinkName, Target: s.filePath + ":" + s.name, Err: err}
	}

	return nil
}

// Get returns the stored artifact and when it was last written. The pipeline never
// reads back; this exists for operators and tests verifying what was published.
func (s *Sink) Get(ctx context.Context) (string, time.Time, error) {
	var content string
	var updatedAt int64

	query := "SELECT content, updated_at FROM artifacts WHERE name = ?"
	err := s.db.QueryRowContext(ctx, query, s.name).Scan(&content, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, &apperrors.NotFoundError{Resource: "artifact", ID: s.name}
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	return content, time.Unix(updatedAt, 0), nil
}

// Close closes the database connection
func (s *Sink) Close() error {
	return s.db.Close()
}
