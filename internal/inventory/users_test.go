package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

func TestUserAccounts(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)

	_, err := e.CreateUser(ctx, "bob", "short", model.RoleUser)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	bob, err := e.CreateUser(ctx, "bob", "correct horse", model.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, bob.Role)

	_, err = e.Authenticate(ctx, "bob", "wrong password")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
	_, err = e.Authenticate(ctx, "nobody", "correct horse")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))

	err = e.ChangePassword(ctx, bob.ID, "wrong password", "battery staple")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
	require.NoError(t, e.ChangePassword(ctx, bob.ID, "correct horse", "battery staple"))

	_, err = e.Authenticate(ctx, "bob", "battery staple")
	require.NoError(t, err)

	users, err := e.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestJWTSecretIsStable(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)

	first, err := e.JWTSecret(ctx)
	require.NoError(t, err)
	second, err := e.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRotateJWTSecret(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)

	before, err := e.JWTSecret(ctx)
	require.NoError(t, err)
	require.NoError(t, e.RotateJWTSecret(ctx))

	after, err := e.JWTSecret(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}
