package inventory

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/store"
)

// Authenticate checks a username and password. Unknown users and wrong
// passwords fail the same way.
func (e *Engine) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var user *model.User
	err := e.read(ctx, "authenticate", func(q db.Querier) error {
		var err error
		user, err = store.GetUserByUsername(ctx, q, username)
		return err
	})
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

// CreateUser adds an account with a bcrypt-hashed password.
func (e *Engine) CreateUser(ctx context.Context, username, password, role string) (*model.User, error) {
	if err := model.ValidatePassword(password); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "hashing password")
	}

	var user *model.User
	err = e.write(ctx, "create_user", func(tx *sql.Tx) error {
		user, err = store.CreateUser(ctx, tx, username, string(hash), role)
		return err
	})
	return user, err
}

// GetUser returns an account by ID.
func (e *Engine) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user *model.User
	err := e.read(ctx, "get_user", func(q db.Querier) error {
		var err error
		user, err = store.GetUser(ctx, q, id)
		if err == nil && user == nil {
			err = pkgerrors.Newf(pkgerrors.CodeNotFound, "user %d not found", id)
		}
		return err
	})
	return user, err
}

// ListUsers returns all accounts.
func (e *Engine) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := e.read(ctx, "list_users", func(q db.Querier) error {
		var err error
		users, err = store.ListUsers(ctx, q)
		return err
	})
	return users, err
}

// ChangePassword replaces a user's password after checking the current one.
func (e *Engine) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := e.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}
	if err := model.ValidatePassword(next); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageFailure, err, "hashing password")
	}
	return e.write(ctx, "change_password", func(tx *sql.Tx) error {
		return store.UpdateUserPassword(ctx, tx, userID, string(hash))
	})
}

// JWTSecret returns the store's token signing key, creating it on first use.
func (e *Engine) JWTSecret(ctx context.Context) (string, error) {
	var secret string
	err := e.write(ctx, "jwt_secret", func(tx *sql.Tx) error {
		var err error
		secret, err = store.GetJWTSecret(ctx, tx)
		return err
	})
	return secret, err
}

// RotateJWTSecret replaces the token signing key. Tokens issued before the
// rotation stop validating once a server loads the new key.
func (e *Engine) RotateJWTSecret(ctx context.Context) error {
	return e.write(ctx, "rotate_jwt_secret", func(tx *sql.Tx) error {
		_, err := store.RotateJWTSecret(ctx, tx)
		return err
	})
}
