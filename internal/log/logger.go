// Package log provides structured diagnostic logging for uvhow.
//
// Detection results go to stdout; everything here goes to stderr. The
// Logger interface is backed by stdlib slog so subsystems can accept a
// logger without binding to a concrete handler, and tests can pass a
// noop. Verbosity is chosen in main() from the --quiet/--verbose flags:
// ERROR for --quiet, WARN by default, DEBUG for --verbose.
package log

import (
	"io"
	"log/slog"
	"sync"
)

// Logger is the interface subsystems log through. Method signatures
// follow slog for easy interoperation.
type Logger interface {
	// Debug records internal detail: marker probes that errored,
	// rule evaluation, version parsing. Only useful when
	// troubleshooting a misclassification.
	Debug(msg string, args ...any)

	// Info records operational context.
	Info(msg string, args ...any)

	// Warn records recoverable oddities, e.g. a resolved path that
	// could not be made absolute.
	Warn(msg string, args ...any)

	// Error records failures that prevent detection from completing.
	Error(msg string, args ...any)

	// With returns a Logger that includes the given attributes in
	// every subsequent entry.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New returns a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

// NewText returns a Logger writing human-readable lines to w at the
// given minimum level.
func NewText(w io.Writer, level slog.Level) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

type noopLogger struct{}

// NewNoop returns a Logger that discards everything.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the process-wide logger. It is a noop until
// SetDefault is called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault installs the process-wide logger. Called once from main()
// after the verbosity flags are parsed.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
