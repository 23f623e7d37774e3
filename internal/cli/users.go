package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
)

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts of the HTTP API",
	}

	var password, role string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				user, err := e.CreateUser(ctx, args[0], password, role)
				if err != nil {
					return err
				}
				return rootOpts.printer(cmd).print(user, func(w io.Writer) {
					fmt.Fprintf(w, "User #%d %s created with role %s\n", user.ID, user.Username, user.Role)
				})
			})
		},
	}
	add.Flags().StringVar(&password, "password", "", fmt.Sprintf("account password (at least %d characters)", model.MinPasswordLength))
	add.Flags().StringVar(&role, "role", model.RoleUser, "account role (admin|manager|user)")
	add.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				users, err := e.ListUsers(ctx)
				if err != nil {
					return err
				}
				if users == nil {
					users = []model.User{}
				}
				return rootOpts.printer(cmd).print(users, func(w io.Writer) {
					for _, u := range users {
						fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
					}
				})
			})
		},
	}

	rotate := &cobra.Command{
		Use:   "rotate-secret",
		Short: "Replace the token signing key, logging out every user",
		Long: `Replace the token signing key stored in the store.

A running server keeps its key until restarted. Servers started with
EVIDENCA_JWT_SECRET ignore the stored key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd, func(ctx context.Context, e *inventory.Engine) error {
				if err := e.RotateJWTSecret(ctx); err != nil {
					return err
				}
				rootOpts.printer(cmd).linef("Signing key replaced; issued tokens are no longer valid")
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, rotate)
	return cmd
}
