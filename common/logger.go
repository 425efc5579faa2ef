package common

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

var (
	warnedMu sync.Mutex
	warned   = make(map[string]struct{})
)

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by every package of the engine.
// By default nothing is logged. Passing nil restores the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: program cache hits, misses, creation and destruction
//   - [slog.LevelWarn]: unsupported values replaced by a safe default, non-empty program logs
//   - [slog.LevelError]: programs that failed to link when no error hook is installed
//
// Parameters:
//   - l: the logger to use, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Safe for concurrent use.
//
// Returns:
//   - *slog.Logger: the active logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// WarnOnce logs a warning the first time key is seen during the process lifetime and drops every later call with the same key.
// It is safe to call from the compile workers.
//
// Parameters:
//   - key: deduplication key, usually the message plus the offending value
//   - msg: the log message
//   - args: slog key/value attributes
//
// Returns:
//   - bool: true if the warning was emitted by this call
func WarnOnce(key, msg string, args ...any) bool {
	warnedMu.Lock()
	_, seen := warned[key]
	if !seen {
		warned[key] = struct{}{}
	}
	warnedMu.Unlock()
	if seen {
		return false
	}
	Logger().Warn(msg, args...)
	return true
}

// resetWarnings clears the WarnOnce deduplication set. Tests only.
func resetWarnings() {
	warnedMu.Lock()
	warned = make(map[string]struct{})
	warnedMu.Unlock()
}
