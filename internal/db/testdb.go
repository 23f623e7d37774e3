package db

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// NewTestDB creates a fresh in-memory SQLite store with the schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Create(context.Background(), MemoryPath, time.Now())
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}

	t.Cleanup(func() { database.Close() })

	return database
}
