// Package log provides structured logging for the execution engine. It
// wraps log/slog with a per-module child-logger convenience so packages
// like vm and precompiles can tag their output without each owning a
// logging policy.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a fixed module tag.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = newRoot(slog.LevelInfo)
}

func newRoot(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler builds a root logger backed by an arbitrary slog.Handler,
// for tests that want to capture or silence output.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// New returns a child of the default logger tagged with the given module
// name, e.g. log.New("vm") or log.New("precompiles").
func New(module string) *Logger {
	return defaultLogger.With("module", module)
}

// SetDefault replaces the package-level default logger that New's
// children and the package-level helpers delegate to.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger { return defaultLogger }

// With returns a child logger carrying additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
