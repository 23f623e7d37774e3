package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	"github.com/erazemk/evidenca/internal/model"
)

// appendHistory records one field transition. The timestamp never goes
// backwards for an item, so entry order and time order agree even when the
// wall clock steps back.
func appendHistory(ctx context.Context, q db.Querier, itemID int64, field model.Field, oldValue, newValue *string, now time.Time) (*model.HistoryEntry, error) {
	var last sql.NullInt64
	err := q.QueryRowContext(ctx,
		`SELECT MAX(changed_at) FROM history WHERE item_id = ?`, itemID,
	).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("reading last history time: %w", err)
	}

	at := nanos(now)
	if last.Valid && last.Int64 > at {
		at = last.Int64
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO history (item_id, field, old_value, new_value, changed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		itemID, string(field), oldValue, newValue, at,
	)
	if err != nil {
		return nil, fmt.Errorf("appending history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting history id: %w", err)
	}

	return &model.HistoryEntry{
		ID:        id,
		ItemID:    itemID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedAt: fromNanos(at),
	}, nil
}

// ItemHistory returns every entry of one item, oldest first.
func ItemHistory(ctx context.Context, q db.Querier, itemID int64) ([]model.HistoryEntry, error) {
	return ItemHistoryInRange(ctx, q, itemID, time.Time{}, time.Time{})
}

// HistoryInRange returns entries of all items with start <= changed_at < end.
// A zero bound leaves that side open.
func HistoryInRange(ctx context.Context, q db.Querier, start, end time.Time) ([]model.HistoryEntry, error) {
	return queryHistory(ctx, q, 0, start, end)
}

// ItemHistoryInRange is HistoryInRange restricted to one item.
func ItemHistoryInRange(ctx context.Context, q db.Querier, itemID int64, start, end time.Time) ([]model.HistoryEntry, error) {
	return queryHistory(ctx, q, itemID, start, end)
}

func queryHistory(ctx context.Context, q db.Querier, itemID int64, start, end time.Time) ([]model.HistoryEntry, error) {
	query := `SELECT id, item_id, field, old_value, new_value, changed_at FROM history WHERE 1=1`
	var args []any

	if itemID != 0 {
		query += ` AND item_id = ?`
		args = append(args, itemID)
	}
	// Bounds past what int64 nanoseconds can hold are treated as open on the
	// side they overshoot and clamped on the other.
	if !start.IsZero() && !start.Before(minStamp) {
		query += ` AND changed_at >= ?`
		args = append(args, clampNanos(start))
	}
	if !end.IsZero() && !end.After(maxStamp) {
		query += ` AND changed_at < ?`
		args = append(args, clampNanos(end))
	}

	query += ` ORDER BY changed_at, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var field string
		var oldValue, newValue sql.NullString
		var changed int64
		if err := rows.Scan(&e.ID, &e.ItemID, &field, &oldValue, &newValue, &changed); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.Field = model.Field(field)
		if oldValue.Valid {
			e.OldValue = &oldValue.String
		}
		if newValue.Valid {
			e.NewValue = &newValue.String
		}
		e.ChangedAt = fromNanos(changed)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
