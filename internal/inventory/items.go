package inventory

import (
	"context"
	"database/sql"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/store"
)

// CreateItem registers a new active item. The creation entry is written in
// the same transaction as the item.
func (e *Engine) CreateItem(ctx context.Context, in store.NewItem) (*model.Item, error) {
	var item *model.Item
	var entry *model.HistoryEntry
	err := e.write(ctx, "create_item", func(tx *sql.Tx) error {
		var err error
		item, entry, err = store.CreateItem(ctx, tx, in, e.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	e.recordHistory(entry)

	e.emit(ctx, model.Event{
		Kind:      model.EventEntityCreated,
		Entity:    model.EntityItem,
		ID:        item.ID,
		Name:      item.Name,
		TypeName:  item.TypeName,
		PlaceName: item.PlaceName,
	})
	return item, nil
}

// GetItem returns one item with its type and place names.
func (e *Engine) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var item *model.Item
	err := e.read(ctx, "get_item", func(q db.Querier) error {
		var err error
		item, err = store.GetItem(ctx, q, id)
		if err == nil && item == nil {
			err = pkgerrors.Newf(pkgerrors.CodeNotFound, "item %d not found", id)
		}
		return err
	})
	return item, err
}

// UpdateItemField changes one field and returns the recorded transition.
// A NO_OP error means the value already matched.
func (e *Engine) UpdateItemField(ctx context.Context, id int64, field model.Field, value string) (*model.HistoryEntry, error) {
	return e.mutateItem(ctx, "update_item_field", func(tx *sql.Tx) (*model.HistoryEntry, error) {
		return store.UpdateItemField(ctx, tx, id, field, value, e.now())
	})
}

// MoveItem relocates an item to another place by ID.
func (e *Engine) MoveItem(ctx context.Context, id, placeID int64) (*model.HistoryEntry, error) {
	return e.mutateItem(ctx, "move_item", func(tx *sql.Tx) (*model.HistoryEntry, error) {
		return store.MoveItem(ctx, tx, id, placeID, e.now())
	})
}

// DeactivateItem retires an item for good.
func (e *Engine) DeactivateItem(ctx context.Context, id int64) (*model.HistoryEntry, error) {
	return e.mutateItem(ctx, "deactivate_item", func(tx *sql.Tx) (*model.HistoryEntry, error) {
		return store.DeactivateItem(ctx, tx, id, e.now())
	})
}

func (e *Engine) mutateItem(ctx context.Context, op string, fn func(tx *sql.Tx) (*model.HistoryEntry, error)) (*model.HistoryEntry, error) {
	var entry *model.HistoryEntry
	err := e.write(ctx, op, func(tx *sql.Tx) error {
		var err error
		entry, err = fn(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.recordHistory(entry)
	return entry, nil
}

// FilterItems returns the items matching c, ordered by ID.
func (e *Engine) FilterItems(ctx context.Context, c model.Criteria) ([]model.Item, error) {
	var items []model.Item
	err := e.read(ctx, "filter_items", func(q db.Querier) error {
		var err error
		items, err = store.FilterItems(ctx, q, c)
		return err
	})
	return items, err
}
