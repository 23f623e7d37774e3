package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

func TestUserAccountLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	clerk, err := CreateUser(ctx, database, "clerk", "hash-1", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "clerk", clerk.Username)
	assert.Equal(t, model.RoleUser, clerk.Role)
	assert.False(t, clerk.CreatedAt.IsZero())

	keeper, err := CreateUser(ctx, database, "keeper", "hash-2", model.RoleManager)
	require.NoError(t, err)
	assert.Greater(t, keeper.ID, clerk.ID)

	byName, err := GetUserByUsername(ctx, database, "keeper")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, keeper.ID, byName.ID)
	assert.Equal(t, "hash-2", byName.PasswordHash)

	require.NoError(t, UpdateUserPassword(ctx, database, clerk.ID, "hash-3"))
	got, err := GetUser(ctx, database, clerk.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-3", got.PasswordHash)

	users, err := ListUsers(ctx, database)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []string{"clerk", "keeper"}, []string{users[0].Username, users[1].Username})
}

func TestMissingUsersAreNil(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	byID, err := GetUser(ctx, database, 7)
	require.NoError(t, err)
	assert.Nil(t, byID)

	byName, err := GetUserByUsername(ctx, database, "nobody")
	require.NoError(t, err)
	assert.Nil(t, byName)

	err = UpdateUserPassword(ctx, database, 7, "hash")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestCreateUserRejections(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateUser(ctx, database, "carol", "hash", model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		role     string
		code     pkgerrors.Code
	}{
		{"taken username", "carol", model.RoleAdmin, pkgerrors.CodeDuplicateName},
		{"unknown role", "dave", "superuser", pkgerrors.CodeValidation},
		{"empty role", "erin", "", pkgerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(ctx, database, tt.username, "hash", tt.role)
			assert.Equal(t, tt.code, pkgerrors.CodeOf(err), "got %v", err)
		})
	}

	users, err := ListUsers(ctx, database)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
