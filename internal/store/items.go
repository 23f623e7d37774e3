package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

// NewItem holds the attributes of an item being registered. Empty Note and
// RegistrationCode are stored as absent.
type NewItem struct {
	Name             string
	TypeID           int64
	PlaceID          int64
	Note             string
	RegistrationCode string
}

const itemColumns = `i.id, i.name, i.note, i.registration_code, i.type_id, i.place_id,
	i.active, i.created_at, t.name, p.name
	FROM items i
	JOIN item_types t ON t.id = i.type_id
	JOIN places p ON p.id = i.place_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var note, code sql.NullString
	var created int64
	err := row.Scan(&item.ID, &item.Name, &note, &code, &item.TypeID, &item.PlaceID,
		&item.Active, &created, &item.TypeName, &item.PlaceName)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		item.Note = &note.String
	}
	if code.Valid {
		item.RegistrationCode = &code.String
	}
	item.CreatedAt = fromNanos(created)
	return item, nil
}

// CreateItem registers a new active item and records its creation entry.
func CreateItem(ctx context.Context, q db.Querier, in NewItem, now time.Time) (*model.Item, *model.HistoryEntry, error) {
	name, err := NormalizeName(in.Name)
	if err != nil {
		return nil, nil, err
	}

	itemType, err := GetItemType(ctx, q, in.TypeID)
	if err != nil {
		return nil, nil, err
	}
	if itemType == nil {
		return nil, nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "item type %d not found", in.TypeID)
	}
	place, err := GetPlace(ctx, q, in.PlaceID)
	if err != nil {
		return nil, nil, err
	}
	if place == nil {
		return nil, nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "place %d not found", in.PlaceID)
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO items (name, note, registration_code, type_id, place_id, active, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?)`,
		name, model.Optional(in.Note), model.Optional(strings.TrimSpace(in.RegistrationCode)),
		in.TypeID, in.PlaceID, nanos(now),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("getting item id: %w", err)
	}

	item, err := GetItem(ctx, q, id)
	if err != nil {
		return nil, nil, err
	}

	snapshot := model.SnapshotOf(*item).Encode()
	entry, err := appendHistory(ctx, q, id, model.FieldCreated, nil, &snapshot, now)
	if err != nil {
		return nil, nil, err
	}
	return item, entry, nil
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, q db.Querier, id int64) (*model.Item, error) {
	item, err := scanItem(q.QueryRowContext(ctx, `SELECT `+itemColumns+` WHERE i.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

func mustGetItem(ctx context.Context, q db.Querier, id int64) (*model.Item, error) {
	item, err := GetItem(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "item %d not found", id)
	}
	return item, nil
}

// UpdateItemField sets one field of an item and records the transition.
// Place values are place names. Type, activity and the creation entry
// cannot be set this way.
func UpdateItemField(ctx context.Context, q db.Querier, id int64, field model.Field, value string, now time.Time) (*model.HistoryEntry, error) {
	item, err := mustGetItem(ctx, q, id)
	if err != nil {
		return nil, err
	}

	switch field {
	case model.FieldName:
		name, err := NormalizeName(value)
		if err != nil {
			return nil, err
		}
		if name == item.Name {
			return nil, noChange(id, field)
		}
		if err := setColumn(ctx, q, id, "name", name); err != nil {
			return nil, err
		}
		return appendHistory(ctx, q, id, field, &item.Name, &name, now)

	case model.FieldNote:
		return setOptional(ctx, q, item, field, "note", model.Optional(value), now)

	case model.FieldRegistrationCode:
		return setOptional(ctx, q, item, field, "registration_code", model.Optional(strings.TrimSpace(value)), now)

	case model.FieldPlace:
		name, err := NormalizeName(value)
		if err != nil {
			return nil, err
		}
		place, err := FindPlaceByName(ctx, q, name)
		if err != nil {
			return nil, err
		}
		if place == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeInvalidReference, "place %q does not exist", name)
		}
		return setPlace(ctx, q, item, place, now)

	case model.FieldType:
		name, err := NormalizeName(value)
		if err != nil {
			return nil, err
		}
		if name == item.TypeName {
			return nil, noChange(id, field)
		}
		itemType, err := FindItemTypeByName(ctx, q, name)
		if err != nil {
			return nil, err
		}
		if itemType == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeInvalidReference, "item type %q does not exist", name)
		}
		return nil, pkgerrors.New(pkgerrors.CodeReadOnlyField, "item type is fixed at creation")

	case model.FieldActive, model.FieldCreated:
		return nil, pkgerrors.Newf(pkgerrors.CodeReadOnlyField, "field %s cannot be updated", field)
	}

	return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown field %q", field)
}

// MoveItem relocates an item to the place with the given ID.
func MoveItem(ctx context.Context, q db.Querier, id, placeID int64, now time.Time) (*model.HistoryEntry, error) {
	item, err := mustGetItem(ctx, q, id)
	if err != nil {
		return nil, err
	}
	place, err := GetPlace(ctx, q, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidReference, "place %d does not exist", placeID)
	}
	return setPlace(ctx, q, item, place, now)
}

// DeactivateItem retires an item. Retired items never become active again.
func DeactivateItem(ctx context.Context, q db.Querier, id int64, now time.Time) (*model.HistoryEntry, error) {
	item, err := mustGetItem(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, pkgerrors.Newf(pkgerrors.CodeAlreadyInactive, "item %d is already inactive", id)
	}

	if _, err := q.ExecContext(ctx, `UPDATE items SET active = 0 WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deactivating item: %w", err)
	}

	oldValue, newValue := model.ActiveLabel, model.InactiveLabel
	return appendHistory(ctx, q, id, model.FieldActive, &oldValue, &newValue, now)
}

func setPlace(ctx context.Context, q db.Querier, item *model.Item, place *model.Place, now time.Time) (*model.HistoryEntry, error) {
	if place.ID == item.PlaceID {
		return nil, noChange(item.ID, model.FieldPlace)
	}
	if err := setColumn(ctx, q, item.ID, "place_id", place.ID); err != nil {
		return nil, err
	}
	return appendHistory(ctx, q, item.ID, model.FieldPlace, &item.PlaceName, &place.Name, now)
}

func setOptional(ctx context.Context, q db.Querier, item *model.Item, field model.Field, column string, value *string, now time.Time) (*model.HistoryEntry, error) {
	var current *string
	switch field {
	case model.FieldNote:
		current = item.Note
	case model.FieldRegistrationCode:
		current = item.RegistrationCode
	}
	if (current == nil) == (value == nil) && model.Deref(current) == model.Deref(value) {
		return nil, noChange(item.ID, field)
	}
	if err := setColumn(ctx, q, item.ID, column, value); err != nil {
		return nil, err
	}
	return appendHistory(ctx, q, item.ID, field, current, value, now)
}

// setColumn updates a single column. column is always a constant from this
// package, never user input.
func setColumn(ctx context.Context, q db.Querier, id int64, column string, value any) error {
	if _, err := q.ExecContext(ctx, `UPDATE items SET `+column+` = ? WHERE id = ?`, value, id); err != nil {
		return fmt.Errorf("updating item %s: %w", column, err)
	}
	return nil
}

func noChange(id int64, field model.Field) error {
	return pkgerrors.Newf(pkgerrors.CodeNoOp, "item %d %s unchanged", id, field)
}
