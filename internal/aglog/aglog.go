// Public domain.

// Package aglog builds the slog.Logger handles passed to the agtools
// packages.  There is no package level logger; every component takes its
// logger as a constructor argument.
package aglog

import (
	"context"
	"io"
	"log/slog"
)

// LevelCritical ranks above slog.LevelError.  Messages at this level
// precede an error return the caller is not expected to recover from.
const LevelCritical = slog.LevelError + 4

// New returns a text logger writing to w at the given minimum level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelCritical {
					a.Value = slog.StringValue("CRITICAL")
				}
			}
			return a
		},
	}))
}

// LevelFor maps an agilepy style verbosity, 0 through 3, to a level.
// 0 shows only warnings and worse, 3 shows debug messages.
func LevelFor(verbose int) slog.Level {
	switch {
	case verbose <= 0:
		return slog.LevelWarn
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Critical logs msg at LevelCritical.
func Critical(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelCritical, msg, args...)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
