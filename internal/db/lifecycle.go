package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

// requiredTables must exist in every store.
var requiredTables = []string{
	"goose_db_version",
	"meta",
	"item_types",
	"places",
	"items",
	"history",
	"users",
	"settings",
}

// Create creates a new store at path, applies the schema, and records a
// store identity. A partially created file is removed on failure.
func Create(ctx context.Context, path string, now time.Time) (*sql.DB, error) {
	if path != MemoryPath {
		// Claim the path first so concurrent creators cannot both succeed.
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			return nil, pkgerrors.Newf(pkgerrors.CodeAlreadyExists, "store already exists at %s", path)
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "claiming store location")
		}
		if err := f.Close(); err != nil {
			Remove(path)
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "claiming store location")
		}
	}

	database, err := Open(path)
	if err != nil {
		Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "creating store")
	}

	if err := Migrate(ctx, database); err != nil {
		database.Close()
		Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "creating store schema")
	}

	_, err = database.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('store_id', ?), ('created_at', ?)`,
		uuid.NewString(), now.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		database.Close()
		Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "writing store identity")
	}

	return database, nil
}

// OpenExisting opens a store previously made by Create and brings its schema
// up to date.
func OpenExisting(ctx context.Context, path string) (*sql.DB, error) {
	if path == MemoryPath {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "in-memory stores cannot be reopened")
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no store at %s", path)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "checking store location")
	}
	if info.IsDir() {
		return nil, pkgerrors.Newf(pkgerrors.CodeCorruptStore, "%s is a directory", path)
	}

	database, err := Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "opening store")
	}

	if err := Verify(ctx, database); err != nil {
		database.Close()
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "verifying store")
	}

	if err := Migrate(ctx, database); err != nil {
		database.Close()
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "upgrading store schema")
	}

	return database, nil
}

// Verify checks that the database is readable and carries the store schema.
func Verify(ctx context.Context, db *sql.DB) error {
	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check`).Scan(&result); err != nil {
		return fmt.Errorf("running integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	for _, table := range requiredTables {
		var count int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("checking table %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("missing table %s", table)
		}
	}

	return nil
}

// StoreID returns the identity recorded when the store was created.
func StoreID(ctx context.Context, db *sql.DB) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'store_id'`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("reading store id: %w", err)
	}
	return id, nil
}

// Remove deletes the store file at path together with its WAL side files.
func Remove(path string) {
	if path == MemoryPath {
		return
	}
	os.Remove(path)
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")
}
