package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/erazemk/evidenca/internal/db"
)

const settingJWTSecret = "jwt_secret"

// GetSetting returns the value stored under key and whether it exists.
func GetSetting(ctx context.Context, q db.Querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func SetSetting(ctx context.Context, q db.Querier, key, value string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// GetJWTSecret returns the token signing key, generating and storing one on
// first use.
func GetJWTSecret(ctx context.Context, q db.Querier) (string, error) {
	secret, ok, err := GetSetting(ctx, q, settingJWTSecret)
	if err != nil || ok {
		return secret, err
	}
	return RotateJWTSecret(ctx, q)
}

// RotateJWTSecret replaces the signing key, invalidating every issued token.
func RotateJWTSecret(ctx context.Context, q db.Querier) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := SetSetting(ctx, q, settingJWTSecret, secret); err != nil {
		return "", err
	}
	return secret, nil
}
