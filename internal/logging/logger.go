// Package logging builds the zerolog loggers used across tabula.
//
// The interactive table owns the terminal, so the view command logs to a file
// (or nowhere); one-shot commands log to stderr through a console writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level and destination.
type Config struct {
	Level string
	// File, when set, receives JSON log lines.
	File string
	// Console writes human-readable lines to Console (stderr if nil) when no
	// file is configured.
	Console bool
	Out     io.Writer
}

// Result is a configured logger and the handle to close when done.
type Result struct {
	Logger zerolog.Logger
	closer io.Closer
}

// Close releases the log file, if any.
func (r Result) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// New builds a logger from cfg. An unknown level falls back to info.
func New(cfg Config) (Result, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		w      io.Writer
		closer io.Closer
	)
	switch {
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return Result{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return Result{}, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	case cfg.Console:
		out := cfg.Out
		if out == nil {
			out = os.Stderr
		}
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		return Result{Logger: zerolog.Nop()}, nil
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return Result{Logger: logger, closer: closer}, nil
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
