package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Skladišče  ")
	require.NoError(t, err)
	assert.Equal(t, "Skladišče", got)

	// Decomposed "š" folds to the composed form.
	got, err = NormalizeName("Skladis\u030cc\u030ce")
	require.NoError(t, err)
	assert.Equal(t, "Skladišče", got)

	_, err = NormalizeName("   ")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestItemTypeLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	laptop, err := CreateItemType(ctx, database, "Laptop", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), laptop.ID)
	assert.Equal(t, "Laptop", laptop.Name)

	chair, err := CreateItemType(ctx, database, "Chair", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), chair.ID)

	_, err = CreateItemType(ctx, database, " Laptop ", now)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDuplicateName), "got %v", err)

	old, err := RenameItemType(ctx, database, laptop.ID, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", old)

	_, err = RenameItemType(ctx, database, laptop.ID, "Notebook")
	assert.True(t, pkgerrors.IsNoOp(err), "got %v", err)

	_, err = RenameItemType(ctx, database, laptop.ID, "Chair")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDuplicateName), "got %v", err)

	_, err = RenameItemType(ctx, database, 99, "Desk")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)

	types, err := ListItemTypes(ctx, database)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Notebook", types[0].Name)
	assert.Equal(t, "Chair", types[1].Name)

	n, err := CountItemTypes(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	missing, err := GetItemType(ctx, database, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlaceLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	warehouse, err := CreatePlace(ctx, database, "Warehouse", now)
	require.NoError(t, err)

	_, err = CreatePlace(ctx, database, "", now)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = CreatePlace(ctx, database, "Warehouse", now)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDuplicateName))

	found, err := FindPlaceByName(ctx, database, " Warehouse")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, warehouse.ID, found.ID)

	old, err := RenamePlace(ctx, database, warehouse.ID, "Depot")
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", old)

	got, err := GetPlace(ctx, database, warehouse.ID)
	require.NoError(t, err)
	assert.Equal(t, "Depot", got.Name)

	n, err := CountPlaces(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIdentifiersAreNotReused(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := CreatePlace(ctx, database, "A", time.Now())
	require.NoError(t, err)

	// A failed insert does not consume or recycle an identifier.
	_, err = CreatePlace(ctx, database, "A", time.Now())
	require.Error(t, err)

	second, err := CreatePlace(ctx, database, "B", time.Now())
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
