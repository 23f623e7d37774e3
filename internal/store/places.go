package store

import (
	"context"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	"github.com/erazemk/evidenca/internal/model"
)

// CreatePlace creates a new place.
func CreatePlace(ctx context.Context, q db.Querier, name string, now time.Time) (*model.Place, error) {
	row, err := places.create(ctx, q, name, now)
	if err != nil {
		return nil, err
	}
	return row.place(), nil
}

// GetPlace returns a place by ID, or nil if it does not exist.
func GetPlace(ctx context.Context, q db.Querier, id int64) (*model.Place, error) {
	row, err := places.get(ctx, q, id)
	if err != nil || row == nil {
		return nil, err
	}
	return row.place(), nil
}

// FindPlaceByName returns the place with the given name, or nil.
func FindPlaceByName(ctx context.Context, q db.Querier, name string) (*model.Place, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	row, err := places.findByName(ctx, q, name)
	if err != nil || row == nil {
		return nil, err
	}
	return row.place(), nil
}

// ListPlaces returns all places in creation order.
func ListPlaces(ctx context.Context, q db.Querier) ([]model.Place, error) {
	rows, err := places.list(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]model.Place, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.place())
	}
	return out, nil
}

// CountPlaces returns the number of places.
func CountPlaces(ctx context.Context, q db.Querier) (int, error) {
	return places.count(ctx, q)
}

// RenamePlace renames a place and returns its previous name.
func RenamePlace(ctx context.Context, q db.Querier, id int64, name string) (string, error) {
	return places.rename(ctx, q, id, name)
}

func (r *namedRow) place() *model.Place {
	return &model.Place{ID: r.id, Name: r.name, CreatedAt: r.createdAt}
}
