package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

type fixture struct {
	db        *sql.DB
	laptop    *model.ItemType
	chair     *model.ItemType
	warehouse *model.Place
	office    *model.Place
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	f := &fixture{db: database}
	var err error
	f.laptop, err = CreateItemType(ctx, database, "Laptop", now)
	require.NoError(t, err)
	f.chair, err = CreateItemType(ctx, database, "Chair", now)
	require.NoError(t, err)
	f.warehouse, err = CreatePlace(ctx, database, "Warehouse", now)
	require.NoError(t, err)
	f.office, err = CreatePlace(ctx, database, "Office 12", now)
	require.NoError(t, err)
	return f
}

func (f *fixture) item(t *testing.T, name string, typeID, placeID int64) *model.Item {
	t.Helper()
	item, _, err := CreateItem(context.Background(), f.db, NewItem{Name: name, TypeID: typeID, PlaceID: placeID}, time.Now())
	require.NoError(t, err)
	return item
}

func TestCreateItemRecordsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, entry, err := CreateItem(ctx, f.db, NewItem{
		Name:    "Dell-01",
		TypeID:  f.laptop.ID,
		PlaceID: f.warehouse.ID,
		Note:    "spare",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(1), item.ID)
	assert.True(t, item.Active)
	assert.Equal(t, "Laptop", item.TypeName)
	assert.Equal(t, "Warehouse", item.PlaceName)
	assert.Equal(t, "spare", model.Deref(item.Note))
	assert.Nil(t, item.RegistrationCode)

	assert.Equal(t, model.FieldCreated, entry.Field)
	assert.Nil(t, entry.OldValue)
	require.NotNil(t, entry.NewValue)

	snapshot, err := model.ParseSnapshot(*entry.NewValue)
	require.NoError(t, err)
	assert.Equal(t, model.ItemSnapshot{
		Type:   "Laptop",
		Name:   "Dell-01",
		Place:  "Warehouse",
		Note:   item.Note,
		Active: true,
	}, snapshot)

	history, err := ItemHistory(ctx, f.db, item.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, *entry.NewValue, *history[0].NewValue)
}

func TestCreateItemUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := CreateItem(ctx, f.db, NewItem{Name: "X", TypeID: 99, PlaceID: f.warehouse.ID}, time.Now())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)

	_, _, err = CreateItem(ctx, f.db, NewItem{Name: "X", TypeID: f.laptop.ID, PlaceID: 99}, time.Now())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)

	items, err := FilterItems(ctx, f.db, model.Criteria{Activity: model.AnyActivity})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateItemFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, "Dell-01", f.laptop.ID, f.warehouse.ID)

	entry, err := UpdateItemField(ctx, f.db, item.ID, model.FieldName, "Dell-02", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Dell-01", model.Deref(entry.OldValue))
	assert.Equal(t, "Dell-02", model.Deref(entry.NewValue))

	entry, err = UpdateItemField(ctx, f.db, item.ID, model.FieldRegistrationCode, " INV-7 ", time.Now())
	require.NoError(t, err)
	assert.Nil(t, entry.OldValue)
	assert.Equal(t, "INV-7", model.Deref(entry.NewValue))

	entry, err = UpdateItemField(ctx, f.db, item.ID, model.FieldNote, "", time.Now())
	assert.True(t, pkgerrors.IsNoOp(err), "absent to absent is unchanged, got %v", err)
	assert.Nil(t, entry)

	entry, err = UpdateItemField(ctx, f.db, item.ID, model.FieldPlace, "Office 12", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", model.Deref(entry.OldValue))
	assert.Equal(t, "Office 12", model.Deref(entry.NewValue))

	got, err := GetItem(ctx, f.db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dell-02", got.Name)
	assert.Equal(t, "INV-7", model.Deref(got.RegistrationCode))
	assert.Equal(t, f.office.ID, got.PlaceID)

	history, err := ItemHistory(ctx, f.db, item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestUpdateItemFieldErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, "Dell-01", f.laptop.ID, f.warehouse.ID)

	tests := []struct {
		name  string
		id    int64
		field model.Field
		value string
		code  pkgerrors.Code
	}{
		{"missing item", 99, model.FieldName, "X", pkgerrors.CodeNotFound},
		{"same name", item.ID, model.FieldName, "Dell-01", pkgerrors.CodeNoOp},
		{"blank name", item.ID, model.FieldName, "  ", pkgerrors.CodeValidation},
		{"same place", item.ID, model.FieldPlace, "Warehouse", pkgerrors.CodeNoOp},
		{"unknown place", item.ID, model.FieldPlace, "Attic", pkgerrors.CodeInvalidReference},
		{"unknown type", item.ID, model.FieldType, "Desk", pkgerrors.CodeInvalidReference},
		{"same type", item.ID, model.FieldType, "Laptop", pkgerrors.CodeNoOp},
		{"other type", item.ID, model.FieldType, "Chair", pkgerrors.CodeReadOnlyField},
		{"active", item.ID, model.FieldActive, model.InactiveLabel, pkgerrors.CodeReadOnlyField},
		{"created", item.ID, model.FieldCreated, "x", pkgerrors.CodeReadOnlyField},
		{"unknown field", item.ID, model.Field("colour"), "red", pkgerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UpdateItemField(ctx, f.db, tt.id, tt.field, tt.value, time.Now())
			assert.Equal(t, tt.code, pkgerrors.CodeOf(err), "got %v", err)
		})
	}

	history, err := ItemHistory(ctx, f.db, item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "failed updates must not append history")
}

func TestMoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, "Chair-1", f.chair.ID, f.warehouse.ID)

	entry, err := MoveItem(ctx, f.db, item.ID, f.office.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.FieldPlace, entry.Field)

	_, err = MoveItem(ctx, f.db, item.ID, f.office.ID, time.Now())
	assert.True(t, pkgerrors.IsNoOp(err))

	_, err = MoveItem(ctx, f.db, item.ID, 99, time.Now())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidReference))
}

func TestDeactivateItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, "Dell-01", f.laptop.ID, f.warehouse.ID)

	entry, err := DeactivateItem(ctx, f.db, item.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.FieldActive, entry.Field)
	assert.Equal(t, model.ActiveLabel, model.Deref(entry.OldValue))
	assert.Equal(t, model.InactiveLabel, model.Deref(entry.NewValue))

	_, err = DeactivateItem(ctx, f.db, item.ID, time.Now())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeAlreadyInactive), "got %v", err)

	_, err = DeactivateItem(ctx, f.db, 99, time.Now())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	got, err := GetItem(ctx, f.db, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
