package report

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger for the tools. Decoder warnings are logged
// at debug level, so they only show up with verbose set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
