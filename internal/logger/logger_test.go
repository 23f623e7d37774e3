package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelRouting(t *testing.T) {
	var stdout, stderr, file bytes.Buffer
	log := New(Options{Stdout: &stdout, Stderr: &stderr, File: &file})

	log.Info().Msg("store opened")
	log.Warn().Msg("slow query")
	log.Error().Err(errors.New("disk full")).Msg("commit failed")

	if got := strings.Count(stdout.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 stdout lines, got %d: %s", got, stdout.String())
	}
	if !strings.Contains(stderr.String(), "commit failed") || strings.Contains(stderr.String(), "store opened") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
	if got := strings.Count(file.String(), "\n"); got != 3 {
		t.Fatalf("expected all 3 lines in file, got %d", got)
	}
}

func TestLevelFilter(t *testing.T) {
	var stdout bytes.Buffer
	log := New(Options{Level: zerolog.WarnLevel, Stdout: &stdout, Stderr: &stdout})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	if strings.Contains(stdout.String(), "hidden") || !strings.Contains(stdout.String(), "shown") {
		t.Fatalf("unexpected output: %s", stdout.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info for empty level, got %s", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info for invalid level, got %s", lvl)
	}
	if lvl := ParseLevel(" DEBUG "); lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %s", lvl)
	}
}
