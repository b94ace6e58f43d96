// ABOUTME: Custom error types for the aggregation pipeline
// ABOUTME: Separates fatal configuration errors from recoverable per-feed and sink failures

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigError is a missing or invalid setting detected at startup. It is always fatal.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error on '%s': %s", e.Field, e.Message)
}

// FetchError is a failure to retrieve one feed. The feed contributes nothing and the run continues.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError explains why a body was not treated as encoded.
// Stage is "base64" or "text".
type FormatError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s decode failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause
func (e *FormatError) Unwrap() error {
	return e.Err
}

// SinkError is a failure to write the final artifact
type SinkError struct {
	Sink   string
	Target string
	Err    error
}

// Error implements the error interface
func (e *SinkError) Error() string {
	return fmt.Sprintf("%s sink failed to publish %s: %v", e.Sink, e.Target, e.Err)
}

// Unwrap returns the underlying cause
func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsConfig checks if an error is a ConfigError
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsFormat checks if an error is a FormatError
func IsFormat(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsSink checks if an error is a SinkError
func IsSink(err error) bool {
	var sinkErr *SinkError
	return errors.As(err, &sinkErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
