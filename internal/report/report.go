// Package report renders items and history for people: summary lines and
// CSV exports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/erazemk/evidenca/internal/model"
)

// NotApplicable is shown in place of an absent registration code.
const NotApplicable = "N/A"

// Summary returns the one-line description of an item, e.g.
// "Laptop 'Dell-01' at Warehouse, inn: N/A".
func Summary(item model.Item) string {
	code := NotApplicable
	if item.RegistrationCode != nil {
		code = *item.RegistrationCode
	}
	suffix := ""
	if !item.Active {
		suffix = ", " + model.InactiveLabel
	}
	return fmt.Sprintf("%s '%s' at %s, inn: %s%s", item.TypeName, item.Name, item.PlaceName, code, suffix)
}

var itemHeader = []string{"ID", "Item type", "Name", "Place", "INN", "Note", "Active"}

// WriteItemsCSV writes one row per item after a header row.
func WriteItemsCSV(w io.Writer, items []model.Item) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(itemHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.TypeName,
			item.Name,
			item.PlaceName,
			model.Deref(item.RegistrationCode),
			model.Deref(item.Note),
			model.ActivityLabel(item.Active),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing item %d: %w", item.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

var historyHeader = []string{"Change time", "Item", "Field name", "Old value", "New value"}

// WriteHistoryCSV writes one row per history entry. Times are UTC RFC 3339
// and absent values are empty cells.
func WriteHistoryCSV(w io.Writer, entries []model.HistoryEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(historyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.ChangedAt.UTC().Format(time.RFC3339Nano),
			strconv.FormatInt(e.ItemID, 10),
			e.Field.Label(),
			model.Deref(e.OldValue),
			model.Deref(e.NewValue),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing history entry %d: %w", e.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
