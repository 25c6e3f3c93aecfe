// Package logging builds the structured logger. The terminal belongs to the
// game, so logs go to a file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a debug-level text logger writing to w when enabled, and a
// logger that drops everything otherwise.
func New(enabled bool, w io.Writer) *slog.Logger {
	if !enabled || w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Open appends to the debug log file at path when enabled. The returned
// close function is always safe to call.
func Open(enabled bool, path string) (*slog.Logger, func() error, error) {
	if !enabled {
		return New(false, nil), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	logger := New(true, f)
	logger.Debug("=== DEBUG MODE ENABLED ===")
	return logger, f.Close, nil
}
