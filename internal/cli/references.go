package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
)

// named is the shape shared by item types and places in listings.
type named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// referenceOps binds the engine operations of one reference entity.
type referenceOps struct {
	use   string
	label string

	create func(ctx context.Context, e *inventory.Engine, name string) (named, error)
	rename func(ctx context.Context, e *inventory.Engine, id int64, name string) (named, error)
	list   func(ctx context.Context, e *inventory.Engine) ([]named, error)
	load   func(ctx context.Context, e *inventory.Engine, lines []string) ([]named, error)
}

var itemTypeOps = referenceOps{
	use:   "type",
	label: "item type",
	create: func(ctx context.Context, e *inventory.Engine, name string) (named, error) {
		t, err := e.CreateItemType(ctx, name)
		if err != nil {
			return named{}, err
		}
		return named{t.ID, t.Name}, nil
	},
	rename: func(ctx context.Context, e *inventory.Engine, id int64, name string) (named, error) {
		t, err := e.RenameItemType(ctx, id, name)
		if err != nil {
			return named{}, err
		}
		return named{t.ID, t.Name}, nil
	},
	list: func(ctx context.Context, e *inventory.Engine) ([]named, error) {
		types, err := e.ListItemTypes(ctx)
		return namedTypes(types), err
	},
	load: func(ctx context.Context, e *inventory.Engine, lines []string) ([]named, error) {
		types, err := e.ImportItemTypes(ctx, lines)
		return namedTypes(types), err
	},
}

var placeOps = referenceOps{
	use:   "place",
	label: "place",
	create: func(ctx context.Context, e *inventory.Engine, name string) (named, error) {
		p, err := e.CreatePlace(ctx, name)
		if err != nil {
			return named{}, err
		}
		return named{p.ID, p.Name}, nil
	},
	rename: func(ctx context.Context, e *inventory.Engine, id int64, name string) (named, error) {
		p, err := e.RenamePlace(ctx, id, name)
		if err != nil {
			return named{}, err
		}
		return named{p.ID, p.Name}, nil
	},
	list: func(ctx context.Context, e *inventory.Engine) ([]named, error) {
		places, err := e.ListPlaces(ctx)
		return namedPlaces(places), err
	},
	load: func(ctx context.Context, e *inventory.Engine, lines []string) ([]named, error) {
		places, err := e.ImportPlaces(ctx, lines)
		return namedPlaces(places), err
	},
}

func namedTypes(types []model.ItemType) []named {
	out := make([]named, 0, len(types))
	for _, t := range types {
		out = append(out, named{t.ID, t.Name})
	}
	return out
}

func namedPlaces(places []model.Place) []named {
	out := make([]named, 0, len(places))
	for _, p := range places {
		out = append(out, named{p.ID, p.Name})
	}
	return out
}

// NewTypeCommand creates the item type command group.
func NewTypeCommand(rootOpts *RootOptions) *cobra.Command {
	return newReferenceCommand(rootOpts, itemTypeOps)
}

// NewPlaceCommand creates the place command group.
func NewPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	return newReferenceCommand(rootOpts, placeOps)
}

func newReferenceCommand(rootOpts *RootOptions, ops referenceOps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   ops.use,
		Short: fmt.Sprintf("Manage %ss", ops.label),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: fmt.Sprintf("Add a new %s", ops.label),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				created, err := ops.create(ctx, e, args[0])
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).print(created, func(io.Writer) {})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: fmt.Sprintf("Rename an existing %s", ops.label),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				renamed, err := ops.rename(ctx, e, id, args[1])
				if pkgerrors.IsNoOp(err) {
					rootOpts.printer(cmd).linef("%s #%d unchanged", ops.label, id)
					return nil
				}
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).print(renamed, func(io.Writer) {})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", ops.label),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				all, err := ops.list(ctx, e)
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).print(all, func(w io.Writer) {
					for _, n := range all {
						fmt.Fprintf(w, "%d\t%s\n", n.ID, n.Name)
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: fmt.Sprintf("Add one %s per line of a file (- for stdin)", ops.label),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(cmd, args[0])
			if err != nil {
				return err
			}
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				created, importErr := ops.load(ctx, e, lines)
				p := rootOpts.printer(cmd)
				if err := p.print(created, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d %ss\n", len(created), ops.label)
				}); err != nil {
					return err
				}
				return importErr
			})
		},
	})

	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return lines, nil
}
