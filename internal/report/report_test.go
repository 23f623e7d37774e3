package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/evidenca/internal/model"
)

func str(s string) *string { return &s }

func sampleItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Dell-01", TypeName: "Laptop", PlaceName: "Warehouse", Active: true},
		{ID: 2, Name: "Chair, swivel", TypeName: "Chair", PlaceName: "Office 12", Note: str(`left "wobbly" wheel`), RegistrationCode: str("INV-7"), Active: false},
	}
}

func TestSummary(t *testing.T) {
	items := sampleItems()
	assert.Equal(t, "Laptop 'Dell-01' at Warehouse, inn: N/A", Summary(items[0]))
	assert.Equal(t, "Chair 'Chair, swivel' at Office 12, inn: INV-7, inactive", Summary(items[1]))
}

func TestWriteItemsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItemsCSV(&buf, sampleItems()))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "items_csv", buf.Bytes())
}

func TestWriteHistoryCSV(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := model.ItemSnapshot{Type: "Laptop", Name: "Dell-01", Place: "Warehouse", Active: true}.Encode()
	entries := []model.HistoryEntry{
		{ID: 1, ItemID: 1, Field: model.FieldCreated, NewValue: &snapshot, ChangedAt: at},
		{ID: 2, ItemID: 1, Field: model.FieldPlace, OldValue: str("Warehouse"), NewValue: str("Office"), ChangedAt: at.Add(time.Hour)},
		{ID: 3, ItemID: 1, Field: model.FieldRegistrationCode, NewValue: str("INV-7"), ChangedAt: at.Add(2 * time.Hour)},
		{ID: 4, ItemID: 1, Field: model.FieldActive, OldValue: str("active"), NewValue: str("inactive"), ChangedAt: at.Add(3 * time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, entries))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "history_csv", buf.Bytes())
}

func TestWriteEmptyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItemsCSV(&buf, nil))
	assert.Equal(t, "ID,Item type,Name,Place,INN,Note,Active\n", buf.String())
}
