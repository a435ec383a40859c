// Package logging builds the service's slog logger: JSON to stdout and,
// when a file is configured, to a size-rotated log file.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File enables rotation through lumberjack when non-empty.
	File string
	// Service is attached to every record.
	Service string
}

// New returns the root logger and a close func flushing the rotated file.
// An unknown level falls back to info and is reported through the returned
// logger.
func New(cfg Config, stdout io.Writer) (*slog.Logger, func() error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	var (
		w       = stdout
		closeFn = func() error { return nil }
	)
	if cfg.File != "" {
		rot := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w = io.MultiWriter(stdout, rot)
		closeFn = rot.Close
	}

	level, levelErr := ParseLevel(cfg.Level)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	if levelErr != nil {
		logger.Warn("Unknown log level, using info", "level", cfg.Level)
	}
	return logger, closeFn
}

// ParseLevel accepts slog level names case-insensitively. Empty is info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// WithContext stores a request-scoped logger in ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithContext, or fallback.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return fallback
}
