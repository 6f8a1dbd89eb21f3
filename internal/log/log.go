// Package log wires up the process-wide structured logger. All pipeline
// logging is advisory: it reports merge anomalies and reconciliation
// traces but never changes results.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text logger at the given level, writing to stderr. An
// unknown level falls back to warn.
func New(level string) *slog.Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter is New with an explicit destination, for tests.
func NewWithWriter(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
