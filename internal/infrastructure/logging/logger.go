package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used across the application.
// Fields are passed as alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// LevelEnv selects the minimum level of the default logger.
const LevelEnv = "QUICKCMD_LOG_LEVEL"

// DefaultLogger writes JSON log lines through zerolog
type DefaultLogger struct {
	zl zerolog.Logger
}

var (
	baseOnce sync.Once
	base     zerolog.Logger
)

func baseLogger() zerolog.Logger {
	baseOnce.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		base = newZerolog(os.Stderr, os.Getenv(LevelEnv))
	})
	return base
}

func newZerolog(w io.Writer, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "quickcmd").Logger()
}

// NewDefaultLogger returns the process-wide logger writing to stderr.
func NewDefaultLogger() Logger {
	return &DefaultLogger{zl: baseLogger()}
}

// NewLogger returns a logger writing to w at the given level ("debug", "info", ...).
func NewLogger(w io.Writer, level string) Logger {
	return &DefaultLogger{zl: newZerolog(w, level)}
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(logger Logger, component string) Logger {
	if dl, ok := logger.(*DefaultLogger); ok {
		return &DefaultLogger{zl: dl.zl.With().Str("component", component).Logger()}
	}
	if logger == nil {
		return WithComponent(NewDefaultLogger(), component)
	}
	return logger
}

// fieldsToMap converts key/value pairs into a map.
// Non-string keys and a trailing key without value get positional names.
func fieldsToMap(fields []interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(fields)/2+1)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			result[fmt.Sprintf("field_%d", i/2)] = fields[i]
			break
		}
		if key, ok := fields[i].(string); ok {
			result[key] = fields[i+1]
			continue
		}
		result[fmt.Sprintf("field_%d", i/2)] = fields[i]
		result[fmt.Sprintf("field_%d_value", i/2)] = fields[i+1]
	}

	return result
}

func (l *DefaultLogger) emit(ev *zerolog.Event, msg string, fields []interface{}) {
	for k, v := range fieldsToMap(fields) {
		if err, ok := v.(error); ok {
			ev = ev.AnErr(k, err)
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	l.emit(l.zl.Error(), msg, fields)
}

// RepositoryError is the subset of errors.RepositoryError the logger reads.
// Declared here to keep the errors package free to import logging.
type RepositoryError interface {
	Error() string
	GetCode() string
	IsRetryable() bool
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogError logs err with its classification when it is a RepositoryError.
func LogError(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if err == nil {
		return
	}

	if repoErr, ok := err.(RepositoryError); ok {
		fields := []interface{}{
			"operation", operation,
			"error_code", repoErr.GetCode(),
			"retryable", repoErr.IsRetryable(),
			"timestamp", repoErr.GetTimestamp(),
		}
		for k, v := range repoErr.GetContext() {
			fields = append(fields, k, v)
		}
		for k, v := range context {
			fields = append(fields, k, v)
		}
		logger.Error(fmt.Sprintf("Repository error: %s", err.Error()), fields...)
		return
	}

	fields := []interface{}{
		"operation", operation,
		"error_type", fmt.Sprintf("%T", err),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}
	logger.Error(fmt.Sprintf("Unexpected error: %s", err.Error()), fields...)
}

// LogOperation logs a completed operation and its duration.
func LogOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Debug(fmt.Sprintf("Operation completed: %s", operation), fields...)
}
