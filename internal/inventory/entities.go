package inventory

import (
	"context"
	"database/sql"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/store"
)

// CreateItemType adds a new item type.
func (e *Engine) CreateItemType(ctx context.Context, name string) (*model.ItemType, error) {
	var itemType *model.ItemType
	err := e.write(ctx, "create_item_type", func(tx *sql.Tx) error {
		var err error
		itemType, err = store.CreateItemType(ctx, tx, name, e.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, model.Event{
		Kind:   model.EventEntityCreated,
		Entity: model.EntityItemType,
		ID:     itemType.ID,
		Name:   itemType.Name,
	})
	return itemType, nil
}

// RenameItemType renames an item type. Items keep pointing at the type, so
// their history is not touched; the rename is reported as an event only.
func (e *Engine) RenameItemType(ctx context.Context, id int64, name string) (*model.ItemType, error) {
	var oldName string
	var itemType *model.ItemType
	err := e.write(ctx, "rename_item_type", func(tx *sql.Tx) error {
		var err error
		if oldName, err = store.RenameItemType(ctx, tx, id, name); err != nil {
			return err
		}
		itemType, err = store.GetItemType(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emitRenamed(ctx, model.EntityItemType, id, itemType.Name, oldName)
	return itemType, nil
}

// ListItemTypes returns all item types in creation order.
func (e *Engine) ListItemTypes(ctx context.Context) ([]model.ItemType, error) {
	var types []model.ItemType
	err := e.read(ctx, "list_item_types", func(q db.Querier) error {
		var err error
		types, err = store.ListItemTypes(ctx, q)
		return err
	})
	return types, err
}

// GetItemType returns one item type.
func (e *Engine) GetItemType(ctx context.Context, id int64) (*model.ItemType, error) {
	var itemType *model.ItemType
	err := e.read(ctx, "get_item_type", func(q db.Querier) error {
		var err error
		itemType, err = store.GetItemType(ctx, q, id)
		if err == nil && itemType == nil {
			err = pkgerrors.Newf(pkgerrors.CodeNotFound, "item type %d not found", id)
		}
		return err
	})
	return itemType, err
}

// CreatePlace adds a new place.
func (e *Engine) CreatePlace(ctx context.Context, name string) (*model.Place, error) {
	var place *model.Place
	err := e.write(ctx, "create_place", func(tx *sql.Tx) error {
		var err error
		place, err = store.CreatePlace(ctx, tx, name, e.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, model.Event{
		Kind:   model.EventEntityCreated,
		Entity: model.EntityPlace,
		ID:     place.ID,
		Name:   place.Name,
	})
	return place, nil
}

// RenamePlace renames a place.
func (e *Engine) RenamePlace(ctx context.Context, id int64, name string) (*model.Place, error) {
	var oldName string
	var place *model.Place
	err := e.write(ctx, "rename_place", func(tx *sql.Tx) error {
		var err error
		if oldName, err = store.RenamePlace(ctx, tx, id, name); err != nil {
			return err
		}
		place, err = store.GetPlace(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.emitRenamed(ctx, model.EntityPlace, id, place.Name, oldName)
	return place, nil
}

// ListPlaces returns all places in creation order.
func (e *Engine) ListPlaces(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	err := e.read(ctx, "list_places", func(q db.Querier) error {
		var err error
		places, err = store.ListPlaces(ctx, q)
		return err
	})
	return places, err
}

// GetPlace returns one place.
func (e *Engine) GetPlace(ctx context.Context, id int64) (*model.Place, error) {
	var place *model.Place
	err := e.read(ctx, "get_place", func(q db.Querier) error {
		var err error
		place, err = store.GetPlace(ctx, q, id)
		if err == nil && place == nil {
			err = pkgerrors.Newf(pkgerrors.CodeNotFound, "place %d not found", id)
		}
		return err
	})
	return place, err
}

func (e *Engine) emitRenamed(ctx context.Context, kind model.EntityKind, id int64, name, oldName string) {
	e.emit(ctx, model.Event{
		Kind:    model.EventEntityRenamed,
		Entity:  kind,
		ID:      id,
		Name:    name,
		OldName: oldName,
	})
}
