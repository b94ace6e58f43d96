// ABOUTME: Sink that writes the artifact to a local file
// ABOUTME: Writes go to a temp file in the same directory and are renamed into place

package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "linkfeed-aggregator/core/errors"
)

const sinkName = "file"

// Sink writes the artifact to Path
type Sink struct {
	path string
	perm os.FileMode
}

// NewSink creates a file sink
func NewSink(path string) (*Sink, error) {
	if path == "" {
		return nil, &apperrors.ConfigError{Field: "FILE_PATH", Message: "path is required for the file sink"}
	}
	return &Sink{path: path, perm: 0o644}, nil
}

// Name implements interfaces.Sink
func (s *Sink) Name() string {
	return sinkName
}

// Publish implements interfaces.Sink
func (s *Sink) Publish(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return s.wrap(err)
	}
	if err := s.write(content); err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *Sink) write(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, s.perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

func (s *Sink) wrap(err error) error {
	return &apperrors.SinkError{Sink: sinkName, Target: s.path, Err: err}
}
