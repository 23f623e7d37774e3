package cli

import (
	"encoding/json"
	"fmt"
	"io"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // Rejected operation (validation, duplicates, missing entities)
	ExitCommandError = 2 // Bad arguments or an unusable store
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeStorageFailure, pkgerrors.CodeCorruptStore, pkgerrors.CodeStoreNotOpen:
		return ExitCommandError
	}
	return ExitFailure
}

// printer writes command results as text or JSON.
type printer struct {
	format string
	w      io.Writer
}

// print encodes v as JSON in json mode and calls text otherwise.
func (p *printer) print(v any, text func(w io.Writer)) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(p.w)
	return nil
}

func (p *printer) linef(format string, args ...any) {
	if p.format == "json" {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}
