// Package cli implements the evidenca command line.
package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/erazemk/evidenca/internal/config"
	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/notify"
)

// RootOptions holds global flags and the process configuration shared by
// all commands.
type RootOptions struct {
	DB     string
	Format string // "text" | "json"

	Config *config.Config
	Log    zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. cfg supplies the defaults that
// flags override.
func NewRootCommand(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	opts := &RootOptions{Config: cfg, Log: log}

	cmd := &cobra.Command{
		Use:           "evidenca",
		Short:         "Evidenca - local inventory register",
		Long:          "Keeps a register of items, their types and places, with a full history of every change.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.DB, "db", "d", cfg.Store.Path, "store file path")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))
	cmd.AddCommand(NewPlaceCommand(opts))
	cmd.AddCommand(NewItemCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// newEngine builds an engine that prints its events to the command's stderr,
// keeping stdout for results.
func (o *RootOptions) newEngine(cmd *cobra.Command, extra ...inventory.Option) *inventory.Engine {
	opts := []inventory.Option{
		inventory.WithLogger(o.Log),
		inventory.WithAdminUser(o.Config.Auth.AdminUser),
		inventory.WithNotifier(notify.NewWriterSink(cmd.ErrOrStderr())),
	}
	return inventory.New(append(opts, extra...)...)
}

// withStore opens the store for the duration of fn.
func (o *RootOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, e *inventory.Engine) error) (err error) {
	ctx := cmd.Context()
	engine := o.newEngine(cmd)
	if err := engine.Open(ctx, o.DB); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, engine.Close(context.WithoutCancel(ctx)))
	}()
	return fn(ctx, engine)
}

func (o *RootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{format: o.Format, w: cmd.OutOrStdout()}
}

// parseTime reads an optional RFC 3339 flag value; empty is the zero time.
func parseTime(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want RFC 3339", flag, value)
	}
	return t, nil
}
