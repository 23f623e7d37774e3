package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/model"
)

func names(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFilterItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.item(t, "Dell-01", f.laptop.ID, f.warehouse.ID)
	f.item(t, "Dell-02", f.laptop.ID, f.office.ID)
	f.item(t, "Chair-1", f.chair.ID, f.office.ID)
	retired := f.item(t, "Dell-03", f.laptop.ID, f.office.ID)
	_, err := DeactivateItem(ctx, f.db, retired.ID, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria model.Criteria
		want     []string
	}{
		{"default hides inactive", model.Criteria{}, []string{"Dell-01", "Dell-02", "Chair-1"}},
		{"any activity", model.Criteria{Activity: model.AnyActivity}, []string{"Dell-01", "Dell-02", "Chair-1", "Dell-03"}},
		{"inactive only", model.Criteria{Activity: model.InactiveOnly}, []string{"Dell-03"}},
		{"by type", model.Criteria{TypeID: f.laptop.ID}, []string{"Dell-01", "Dell-02"}},
		{"by place", model.Criteria{PlaceID: f.office.ID}, []string{"Dell-02", "Chair-1"}},
		{"type and place", model.Criteria{TypeID: f.laptop.ID, PlaceID: f.office.ID, Activity: model.AnyActivity}, []string{"Dell-02", "Dell-03"}},
		{"unknown type", model.Criteria{TypeID: 99}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := FilterItems(ctx, f.db, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestFilterItemsRejectsUnknownActivity(t *testing.T) {
	f := newFixture(t)

	_, err := FilterItems(context.Background(), f.db, model.Criteria{Activity: model.Activity(7)})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestCountItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active, inactive, err := CountItems(ctx, f.db)
	require.NoError(t, err)
	assert.Zero(t, active)
	assert.Zero(t, inactive)

	f.item(t, "Dell-01", f.laptop.ID, f.warehouse.ID)
	retired := f.item(t, "Dell-02", f.laptop.ID, f.office.ID)
	_, err = DeactivateItem(ctx, f.db, retired.ID, time.Now())
	require.NoError(t, err)

	active, inactive, err = CountItems(ctx, f.db)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, inactive)
}
