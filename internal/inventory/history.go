package inventory

import (
	"context"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/store"
)

// ItemHistory returns every recorded change of an item, oldest first.
func (e *Engine) ItemHistory(ctx context.Context, itemID int64) ([]model.HistoryEntry, error) {
	return e.ItemHistoryInRange(ctx, itemID, time.Time{}, time.Time{})
}

// ItemHistoryInRange returns an item's entries with start <= time < end.
// Zero bounds are open.
func (e *Engine) ItemHistoryInRange(ctx context.Context, itemID int64, start, end time.Time) ([]model.HistoryEntry, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	var entries []model.HistoryEntry
	err := e.read(ctx, "item_history", func(q db.Querier) error {
		item, err := store.GetItem(ctx, q, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "item %d not found", itemID)
		}
		entries, err = store.ItemHistoryInRange(ctx, q, itemID, start, end)
		return err
	})
	return entries, err
}

// HistoryInRange returns entries of all items with start <= time < end.
func (e *Engine) HistoryInRange(ctx context.Context, start, end time.Time) ([]model.HistoryEntry, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	var entries []model.HistoryEntry
	err := e.read(ctx, "history_in_range", func(q db.Querier) error {
		var err error
		entries, err = store.HistoryInRange(ctx, q, start, end)
		return err
	})
	return entries, err
}

func checkRange(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "range end is before its start")
	}
	return nil
}
