// Package logs builds the process logger: a text handler for the terminal and
// an optional JSON file handler, fanned out through slog-multi.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects the logger's level and outputs.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Writer receives human-readable output; nil disables it.
	Writer io.Writer
	// File, when set, receives JSON records appended to it.
	File string
}

// New returns a logger and a function that closes any opened file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if opts.Writer != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Writer, handlerOpts))
	}

	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f.Close
	}

	if len(handlers) == 0 {
		return Discard(), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
