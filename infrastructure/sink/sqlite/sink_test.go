package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	apperrors "linkfeed-aggregator/core/errors"
)

func newTestSink(t *testing.T, name string) *Sink {
	t.Helper()

	sink, err := NewSink(filepath.Join(t.TempDir(), "artifacts.db"), name)
	if err != nil {
		t.Fatalf("Failed to create sink: %v", err)
	}
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestNewSink_Validation(t *testing.T) {
	if _, err := NewSink(filepath.Join(t.TempDir(), "a.db"), ""); !apperrors.IsConfig(err) {
		t.Errorf("NewSink error = %v, want ConfigError for empty name", err)
	}

	long := strings.Repeat("a", maxNameLength+1)
	if _, err := NewSink(filepath.Join(t.TempDir(), "a.db"), long); !apperrors.IsConfig(err) {
		t.Errorf("NewSink error = %v, want ConfigError for long name", err)
	}
}

func TestSink_PublishUpserts(t *testing.T) {
	sink := newTestSink(t, "links.txt")
	ctx := context.Background()

	if sink.Name() != "sqlite" {
		t.Errorf("Name() = %s, want sqlite", sink.Name())
	}

	if _, _, err := sink.Get(ctx); !apperrors.IsNotFound(err) {
		t.Errorf("Get before publish error = %v, want NotFoundError", err)
	}

	if err := sink.Publish(ctx, "1.1.1.1:443#HK"); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if err := sink.Publish(ctx, "2.2.2.2:80#US\n3.3.3.3:8443#JP"); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	content, updatedAt, err := sink.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if content != "2.2.2.2:80#US\n3.3.3.3:8443#JP" {
		t.Errorf("Get = %q", content)
	}
	if updatedAt.IsZero() {
		t.Error("updated_at was not recorded")
	}

	var rows int
	if err := sink.db.QueryRow("SELECT COUNT(*) FROM artifacts").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("artifacts has %d rows, want 1", rows)
	}
}

func TestSink_NamesAreParameterized(t *testing.T) {
	names := []string{
		"links'; DROP TABLE artifacts; --",
		"links' OR '1'='1",
		"links\" OR \"1\"=\"1",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			sink := newTestSink(t, name)
			ctx := context.Background()

			if err := sink.Publish(ctx, "payload"); err != nil {
				t.Fatalf("Publish returned error: %v", err)
			}
			got, _, err := sink.Get(ctx)
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if got != "payload" {
				t.Errorf("Get = %q, want payload", got)
			}
		})
	}
}

func TestSink_ReopenKeepsArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	ctx := context.Background()

	first, err := NewSink(path, "links.txt")
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	if err := first.Publish(ctx, "kept"); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	first.Close()

	second, err := NewSink(path, "links.txt")
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	defer second.Close()

	got, _, err := second.Get(ctx)
	if err != nil || got != "kept" {
		t.Errorf("Get = %q, %v; want kept", got, err)
	}
}

func TestSink_PublishAfterClose(t *testing.T) {
	sink := newTestSink(t, "links.txt")
	sink.Close()

	if err := sink.Publish(context.Background(), "x"); !apperrors.IsSink(err) {
		t.Errorf("Publish error = %v, want SinkError", err)
	}
}
