package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/report"
)

type rangeFlags struct {
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "only changes at or after this RFC 3339 time")
	cmd.Flags().StringVar(&f.to, "to", "", "only changes before this RFC 3339 time")
}

func (f *rangeFlags) parse() (time.Time, time.Time, error) {
	from, err := parseTime("from", f.from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseTime("to", f.to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		rng    rangeFlags
		itemID int64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := rng.parse()
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				var entries []model.HistoryEntry
				if itemID > 0 {
					entries, err = e.ItemHistoryInRange(ctx, itemID, from, to)
				} else {
					entries, err = e.HistoryInRange(ctx, from, to)
				}
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []model.HistoryEntry{}
				}
				return rootOpts.printer(cmd).print(entries, func(w io.Writer) {
					writeHistory(w, entries)
				})
			})
		},
	}

	rng.register(cmd)
	cmd.Flags().Int64VarP(&itemID, "item", "i", 0, "only changes of this item id")

	return cmd
}

func writeHistory(w io.Writer, entries []model.HistoryEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, h := range entries {
		fmt.Fprintf(tw, "%s\t#%d\t%s\t%s\t%s\n",
			h.ChangedAt.Format(time.RFC3339), h.ItemID, h.Field.Label(),
			displayValue(h.OldValue), displayValue(h.NewValue))
	}
	tw.Flush()
}

// NewExportCommand creates the CSV export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export items or history as CSV",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	var active string
	var criteria model.Criteria
	items := &cobra.Command{
		Use:   "items",
		Short: "Export items matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := parseActivity(active)
			if err != nil {
				return err
			}
			criteria.Activity = activity
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				list, err := e.FilterItems(ctx, criteria)
				if err != nil {
					return err
				}
				return writeOutput(cmd, output, func(w io.Writer) error {
					return report.WriteItemsCSV(w, list)
				})
			})
		},
	}
	items.Flags().Int64VarP(&criteria.TypeID, "type", "t", 0, "only items of this type id")
	items.Flags().Int64VarP(&criteria.PlaceID, "place", "p", 0, "only items in this place id")
	items.Flags().StringVar(&active, "active", "all", "activity filter (true|false|all)")

	var rng rangeFlags
	history := &cobra.Command{
		Use:   "history",
		Short: "Export recorded changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := rng.parse()
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				entries, err := e.HistoryInRange(ctx, from, to)
				if err != nil {
					return err
				}
				return writeOutput(cmd, output, func(w io.Writer) error {
					return report.WriteHistoryCSV(w, entries)
				})
			})
		},
	}
	rng.register(history)

	cmd.AddCommand(items, history)
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
