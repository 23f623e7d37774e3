// Package logger builds the process logger. Info and warnings go to stdout,
// errors to stderr, and an optional file receives everything.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	Level   zerolog.Level
	Console bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// File, when set, receives every level as JSON.
	File io.Writer
}

// levelRouter sends error and above to err and everything else to out.
type levelRouter struct {
	out io.Writer
	err io.Writer
}

func (r levelRouter) Write(p []byte) (int, error) {
	return r.out.Write(p)
}

func (r levelRouter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level != zerolog.NoLevel {
		return r.err.Write(p)
	}
	return r.out.Write(p)
}

func New(opts Options) zerolog.Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if opts.Console {
		stdout = zerolog.ConsoleWriter{Out: stdout, TimeFormat: "15:04:05"}
		stderr = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	}

	var output io.Writer = levelRouter{out: stdout, err: stderr}
	if opts.File != nil {
		output = zerolog.MultiLevelWriter(output, opts.File)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.
		New(output).
		With().
		Timestamp().
		Logger().
		Level(opts.Level)
}

// ParseLevel maps a level name to a zerolog level; unknown names mean info.
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}

// OpenFile opens path for appending log lines.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
