package inventory

import (
	"context"

	"github.com/erazemk/evidenca/internal/db"
	"github.com/erazemk/evidenca/internal/store"
)

// Stats counts the entities of the open store.
type Stats struct {
	ItemTypes     int `json:"item_types"`
	Places        int `json:"places"`
	ActiveItems   int `json:"active_items"`
	InactiveItems int `json:"inactive_items"`
}

func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := e.read(ctx, "stats", func(q db.Querier) error {
		var err error
		if s.ItemTypes, err = store.CountItemTypes(ctx, q); err != nil {
			return err
		}
		if s.Places, err = store.CountPlaces(ctx, q); err != nil {
			return err
		}
		s.ActiveItems, s.InactiveItems, err = store.CountItems(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
