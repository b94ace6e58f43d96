// ABOUTME: Logger implementation backed by logrus with optional rotating file output
// ABOUTME: Maps the Logger interface's field maps onto logrus fields

package structured

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is "text" or "json"
	Format string

	// File, when set, sends output to a rotating log file instead of Output
	File string

	// Output defaults to os.Stderr
	Output io.Writer
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *logrus.Logger
	file  *lumberjack.Logger
}

// NewLogger creates a logger from Options
func NewLogger(opts Options) (*Logger, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	log := logrus.New()
	log.SetLevel(parsed)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	l := &Logger{entry: log}

	switch {
	case opts.File != "":
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(l.file)
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	default:
		log.SetOutput(os.Stderr)
	}

	return l, nil
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close releases the rotating log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
