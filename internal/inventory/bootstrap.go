package inventory

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/evidenca/internal/db"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/store"
)

const adminPasswordLength = 16

// bootstrapAdmin creates the first admin account of a new store.
func bootstrapAdmin(ctx context.Context, database *sql.DB, username string) (*Credentials, error) {
	password, err := generatePassword(adminPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	err = db.WithTx(ctx, database, func(tx *sql.Tx) error {
		_, err := store.CreateUser(ctx, tx, username, string(hash), model.RoleAdmin)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}

	return &Credentials{Username: username, Password: password}, nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
