// Package logger builds the slog loggers used by the eludris-go commands,
// shortening source file paths to basename:line so interactive output stays
// readable.
package logger

import (
	"io"
	"log/slog"
	"path/filepath"
)

// New creates a text slog logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			// Shorten source file paths to just basename:line
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
					source.Function = ""
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
