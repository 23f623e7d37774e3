package store

import (
	"errors"
	"math"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

// NormalizeName trims surrounding space and converts to NFC so visually equal
// names compare equal. Blank names are rejected.
func NormalizeName(name string) (string, error) {
	n := norm.NFC.String(strings.TrimSpace(name))
	if n == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func nanos(t time.Time) int64 {
	return t.UnixNano()
}

var (
	minStamp = time.Unix(0, math.MinInt64)
	maxStamp = time.Unix(0, math.MaxInt64)
)

// clampNanos is nanos for times outside the representable range pinned to
// its nearest end.
func clampNanos(t time.Time) int64 {
	switch {
	case t.Before(minStamp):
		return math.MinInt64
	case t.After(maxStamp):
		return math.MaxInt64
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
