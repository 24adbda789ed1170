// Package logging builds the structured loggers used across the game.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to w at the named level.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
