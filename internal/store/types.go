package store

import (
	"context"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	"github.com/erazemk/evidenca/internal/model"
)

// CreateItemType creates a new item type. Names are unique across all types.
func CreateItemType(ctx context.Context, q db.Querier, name string, now time.Time) (*model.ItemType, error) {
	row, err := itemTypes.create(ctx, q, name, now)
	if err != nil {
		return nil, err
	}
	return row.itemType(), nil
}

// GetItemType returns an item type by ID, or nil if it does not exist.
func GetItemType(ctx context.Context, q db.Querier, id int64) (*model.ItemType, error) {
	row, err := itemTypes.get(ctx, q, id)
	if err != nil || row == nil {
		return nil, err
	}
	return row.itemType(), nil
}

// FindItemTypeByName returns the item type with the given name, or nil.
func FindItemTypeByName(ctx context.Context, q db.Querier, name string) (*model.ItemType, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	row, err := itemTypes.findByName(ctx, q, name)
	if err != nil || row == nil {
		return nil, err
	}
	return row.itemType(), nil
}

// ListItemTypes returns all item types in creation order.
func ListItemTypes(ctx context.Context, q db.Querier) ([]model.ItemType, error) {
	rows, err := itemTypes.list(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemType, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.itemType())
	}
	return out, nil
}

// CountItemTypes returns the number of item types.
func CountItemTypes(ctx context.Context, q db.Querier) (int, error) {
	return itemTypes.count(ctx, q)
}

// RenameItemType renames an item type and returns its previous name.
func RenameItemType(ctx context.Context, q db.Querier, id int64, name string) (string, error) {
	return itemTypes.rename(ctx, q, id, name)
}

func (r *namedRow) itemType() *model.ItemType {
	return &model.ItemType{ID: r.id, Name: r.name, CreatedAt: r.createdAt}
}
