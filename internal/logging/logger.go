// Package logging provides zerolog construction and context helpers.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp layout used by the console writer.
const ConsoleTimeFormat = time.Kitchen

// Config holds logging configuration.
type Config struct {
	Level  zerolog.Level
	Format string // "auto", "console" or "json"
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:  zerolog.InfoLevel,
		Format: "auto",
	}
}

// New creates a zerolog logger with the given configuration. Logs go to
// stderr so they never interleave with the stdout command protocol.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr

	format := cfg.Format
	if format == "auto" || format == "" {
		if isatty.IsTerminal(os.Stderr.Fd()) {
			format = "console"
		} else {
			format = "json"
		}
	}

	if format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: ConsoleTimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromValues builds a logger from raw config strings. Unknown levels
// fall back to info.
func NewFromValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		cfg.Level = lvl
	}
	switch format {
	case "json", "console", "auto":
		cfg.Format = format
	}
	return New(cfg)
}
