package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
	"github.com/erazemk/evidenca/internal/report"
	"github.com/erazemk/evidenca/internal/store"
)

// NewItemCommand creates the item command group.
func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Register, change and list items",
	}
	cmd.AddCommand(newItemAddCommand(rootOpts))
	cmd.AddCommand(newItemUpdateCommand(rootOpts))
	cmd.AddCommand(newItemMoveCommand(rootOpts))
	cmd.AddCommand(newItemDeactivateCommand(rootOpts))
	cmd.AddCommand(newItemListCommand(rootOpts))
	cmd.AddCommand(newItemShowCommand(rootOpts))
	return cmd
}

func newItemAddCommand(rootOpts *RootOptions) *cobra.Command {
	var in store.NewItem

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				item, err := e.CreateItem(ctx, in)
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).print(item, func(w io.Writer) {
					fmt.Fprintln(w, report.Summary(*item))
				})
			})
		},
	}

	cmd.Flags().Int64VarP(&in.TypeID, "type", "t", 0, "item type id")
	cmd.Flags().Int64VarP(&in.PlaceID, "place", "p", 0, "place id")
	cmd.Flags().StringVar(&in.Note, "note", "", "free-form note")
	cmd.Flags().StringVar(&in.RegistrationCode, "inn", "", "registration (inventory) number")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("place")

	return cmd
}

func newItemUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <field> <value>",
		Short: "Change one field of an item",
		Long: `Change one field of an item and record the change in its history.

Updatable fields are name, note, registration_code and place (by place name).
An empty value clears note and registration_code.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			field, ok := model.ParseField(args[1])
			if !ok {
				return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown field %q", args[1])
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				entry, err := e.UpdateItemField(ctx, id, field, args[2])
				return printChange(rootOpts.printer(cmd), id, field, entry, err)
			})
		},
	}
}

func newItemMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <place-id>",
		Short: "Move an item to another place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			placeID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				entry, err := e.MoveItem(ctx, id, placeID)
				return printChange(rootOpts.printer(cmd), id, model.FieldPlace, entry, err)
			})
		},
	}
}

func newItemDeactivateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Retire an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				entry, err := e.DeactivateItem(ctx, id)
				return printChange(rootOpts.printer(cmd), id, model.FieldActive, entry, err)
			})
		},
	}
}

// printChange reports a recorded change. A change to the current value is
// reported rather than failed.
func printChange(p *printer, id int64, field model.Field, entry *model.HistoryEntry, err error) error {
	if pkgerrors.IsNoOp(err) {
		p.linef("Item #%d: %s unchanged", id, field.Label())
		return nil
	}
	if err != nil {
		return err
	}
	return p.print(entry, func(w io.Writer) {
		fmt.Fprintf(w, "Item #%d: %s changed from %s to %s\n",
			id, field.Label(), displayValue(entry.OldValue), displayValue(entry.NewValue))
	})
}

func displayValue(v *string) string {
	if v == nil {
		return report.NotApplicable
	}
	return fmt.Sprintf("'%s'", *v)
}

func newItemListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		criteria model.Criteria
		active   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := parseActivity(active)
			if err != nil {
				return err
			}
			criteria.Activity = activity
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				items, err := e.FilterItems(ctx, criteria)
				if err != nil {
					return err
				}
				if items == nil {
					items = []model.Item{}
				}
				return rootOpts.printer(cmd).print(items, func(w io.Writer) {
					for _, item := range items {
						fmt.Fprintf(w, "#%d\t%s\n", item.ID, report.Summary(item))
					}
				})
			})
		},
	}

	cmd.Flags().Int64VarP(&criteria.TypeID, "type", "t", 0, "only items of this type id")
	cmd.Flags().Int64VarP(&criteria.PlaceID, "place", "p", 0, "only items in this place id")
	cmd.Flags().StringVar(&active, "active", "true", "activity filter (true|false|all)")

	return cmd
}

func parseActivity(value string) (model.Activity, error) {
	switch value {
	case "true":
		return model.ActiveOnly, nil
	case "false":
		return model.InactiveOnly, nil
	case "all":
		return model.AnyActivity, nil
	}
	return 0, fmt.Errorf("invalid --active %q: must be true, false or all", value)
}

type itemDetails struct {
	Item    *model.Item          `json:"item"`
	History []model.HistoryEntry `json:"history"`
}

func newItemShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				item, err := e.GetItem(ctx, id)
				if err != nil {
					return err
				}
				history, err := e.ItemHistory(ctx, id)
				if err != nil {
					return err
				}
				details := itemDetails{Item: item, History: history}
				return rootOpts.printer(cmd).print(details, func(w io.Writer) {
					fmt.Fprintln(w, report.Summary(*item))
					if item.Note != nil {
						fmt.Fprintf(w, "Note: %s\n", *item.Note)
					}
					writeHistory(w, history)
				})
			})
		},
	}
}
