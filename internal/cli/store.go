package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/erazemk/evidenca/internal/inventory"
)

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Create and inspect stores",
	}
	cmd.AddCommand(newStoreCreateCommand(rootOpts))
	cmd.AddCommand(newStoreInfoCommand(rootOpts))
	return cmd
}

func newStoreCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new store and its admin account",
		Long: `Create a new store at --db and print the generated admin password.

The password is shown once and cannot be recovered. The admin can change
it after logging in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			engine := rootOpts.newEngine(cmd)
			creds, err := engine.Create(ctx, rootOpts.DB)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, engine.Close(context.WithoutCancel(ctx)))
			}()
			return printCredentials(rootOpts.printer(cmd), engine.StoreID(), rootOpts.DB, creds)
		},
	}
}

type credentialsOutput struct {
	StoreID  string `json:"store_id"`
	Location string `json:"location"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func printCredentials(p *printer, storeID, location string, creds *inventory.Credentials) error {
	out := credentialsOutput{StoreID: storeID, Location: location, Username: creds.Username, Password: creds.Password}
	return p.print(out, func(w io.Writer) {
		fmt.Fprintf(w, "Store created: %s\n", location)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Admin account created:")
		fmt.Fprintf(w, "  Username: %s\n", creds.Username)
		fmt.Fprintf(w, "  Password: %s\n", creds.Password)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Save this password, it cannot be recovered.")
	})
}

type storeInfo struct {
	StoreID  string `json:"store_id"`
	Location string `json:"location"`
	*inventory.Stats
}

func newStoreInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the store identity and entity counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				stats, err := e.Stats(ctx)
				if err != nil {
					return err
				}

				info := storeInfo{StoreID: e.StoreID(), Location: e.Location(), Stats: stats}
				return rootOpts.printer(cmd).print(info, func(w io.Writer) {
					fmt.Fprintf(w, "Store:      %s\n", info.StoreID)
					fmt.Fprintf(w, "Location:   %s\n", info.Location)
					fmt.Fprintf(w, "Item types: %d\n", stats.ItemTypes)
					fmt.Fprintf(w, "Places:     %d\n", stats.Places)
					fmt.Fprintf(w, "Items:      %d active, %d inactive\n", stats.ActiveItems, stats.InactiveItems)
				})
			})
		},
	}
}
