// Package logger provides a thin wrapper around zerolog.Logger with
// convenience constructors and context helpers used throughout the service.
//
// Logger embeds zerolog.Logger, so the full zerolog API (Debug, Info, Warn,
// Error, ...) is available directly. Handlers and repositories obtain
// request-scoped loggers via FromContext.
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger writing to stdout. The role label (e.g.
// "server", "consumer") is attached to every entry, and the level is parsed
// from the LOG_LEVEL environment variable (default info).
func New(role string) *Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(os.Stdout).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// WithContext stores the logger in ctx for later retrieval by FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger previously attached to ctx, or a disabled
// default when none is present.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*zerolog.Ctx(ctx)}
}
