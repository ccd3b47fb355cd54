// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
)

// Setup installs a text handler writing to w at the given level as the
// default slog logger and returns it. Source locations are reported by
// file base name.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
