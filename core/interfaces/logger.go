package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction keeps the core independent of the logging backend
// (logrus in production, function mocks in tests).
//
// Example usage:
//
//	logger.Info("Processing feed", map[string]interface{}{
//		"url": "https://example.com/sub",
//	})
//
//	logger.Warn("Feed fetch failed", map[string]interface{}{
//		"url":   "https://example.com/sub",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warnings are recoverable per-feed problems.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}
