package store

import (
	"context"
	"fmt"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

// FilterItems returns the items matching all restrictions in c, ordered by
// ID. Unknown type or place IDs simply match nothing.
func FilterItems(ctx context.Context, q db.Querier, c model.Criteria) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` WHERE 1=1`
	var args []any

	if c.TypeID != 0 {
		query += ` AND i.type_id = ?`
		args = append(args, c.TypeID)
	}
	if c.PlaceID != 0 {
		query += ` AND i.place_id = ?`
		args = append(args, c.PlaceID)
	}

	switch c.Activity {
	case model.ActiveOnly:
		query += ` AND i.active = 1`
	case model.InactiveOnly:
		query += ` AND i.active = 0`
	case model.AnyActivity:
	default:
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown activity filter %d", c.Activity)
	}

	query += ` ORDER BY i.id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtering items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CountItems returns the number of active and retired items.
func CountItems(ctx context.Context, q db.Querier) (active, inactive int, err error) {
	err = q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(active), 0), COALESCE(SUM(1 - active), 0) FROM items`,
	).Scan(&active, &inactive)
	if err != nil {
		return 0, 0, fmt.Errorf("counting items: %w", err)
	}
	return active, inactive, nil
}
