package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/erazemk/evidenca/internal/model"
)

// ImportItemTypes creates one item type per non-blank line. Each line is its
// own transaction; failures are collected and the rest still go in.
func (e *Engine) ImportItemTypes(ctx context.Context, lines []string) ([]model.ItemType, error) {
	var created []model.ItemType
	err := importLines(lines, func(line string) error {
		itemType, err := e.CreateItemType(ctx, line)
		if err != nil {
			return err
		}
		created = append(created, *itemType)
		return nil
	})
	return created, err
}

// ImportPlaces creates one place per non-blank line.
func (e *Engine) ImportPlaces(ctx context.Context, lines []string) ([]model.Place, error) {
	var created []model.Place
	err := importLines(lines, func(line string) error {
		place, err := e.CreatePlace(ctx, line)
		if err != nil {
			return err
		}
		created = append(created, *place)
		return nil
	})
	return created, err
}

func importLines(lines []string, create func(line string) error) error {
	var errs error
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := create(line); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", i+1, err))
		}
	}
	return errs
}
