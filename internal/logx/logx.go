// Package logx builds the structured logger shared by the entry points.
package logx

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/hitbox/internal/config"
)

// Options configures New.
type Options struct {
	Prefix string
	Level  string    // debug, info, warn, error; empty means info
	Output io.Writer // nil means io.Discard
}

// New creates a logger with timestamps and the given level.
func New(opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	return log.NewWithOptions(out, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: true,
	}), nil
}

// FromEnv creates a logger from HITBOX_LOG_LEVEL and HITBOX_LOG_FILE.
// Without a file it writes to fallback. The returned closer releases the file.
func FromEnv(prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}

	if path := config.GetEnv("HITBOX_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	logger, err := New(Options{
		Prefix: prefix,
		Level:  config.GetEnv("HITBOX_LOG_LEVEL", "info"),
		Output: out,
	})
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
