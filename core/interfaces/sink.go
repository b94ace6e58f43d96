package interfaces

import "context"

// Sink stores the final joined artifact.
// Publish is an upsert: an existing artifact is overwritten, a missing one is created.
// Callers never publish empty content.
type Sink interface {
	// Publish writes content to the configured location.
	Publish(ctx context.Context, content string) error

	// Name identifies the sink in logs, e.g. "github" or "file".
	Name() string
}
