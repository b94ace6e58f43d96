// ABOUTME: Sink that prints the artifact instead of storing it
// ABOUTME: Used for dry runs

package console

import (
	"context"
	"fmt"
	"io"
	"os"

	apperrors "linkfeed-aggregator/core/errors"
)

const sinkName = "stdout"

// Sink writes content to an io.Writer
type Sink struct {
	out io.Writer
}

// NewSink writes to out, or to standard output when out is nil
func NewSink(out io.Writer) *Sink {
	if out == nil {
		out = os.Stdout
	}
	return &Sink{out: out}
}

// Name implements interfaces.Sink
func (s *Sink) Name() string {
	return sinkName
}

// Publish writes content followed by a newline
func (s *Sink) Publish(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return &apperrors.SinkError{Sink: sinkName, Target: "output", Err: err}
	}
	if _, err := fmt.Fprintln(s.out, content); err != nil {
		return &apperrors.SinkError{Sink: sinkName, Target: "output", Err: err}
	}
	return nil
}
