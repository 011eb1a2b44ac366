package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newClientsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"calibrantes"},
		Short:   "Manage client accounts (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newClientsListCmd(app),
		newClientsShowCmd(app),
		newClientsAddCmd(app),
		newClientsEditCmd(app),
		newClientsDeleteCmd(app),
		newClientsRecoveryCodeCmd(app),
	)
	return cmd
}

func newClientsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading clients")
			users, err := listWithFallback(app, "users", func() ([]domain.User, error) {
				return app.client.Users.List(cmd.Context())
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(users) == 0 {
				emptyState(app.out, "clients", "Create the first one with 'calibra clients add'.")
				return nil
			}
			for _, user := range users {
				fmt.Fprintf(app.out, "%s  %s\n", faintStyle.Sprint(user.ID), user.FullName())
				faintStyle.Fprintf(app.out, "    %s  status: %s", user.Email, orDash(user.Profile.Status))
				if user.InviteCode != "" {
					warnStyle.Fprintf(app.out, "  invite: %s", user.InviteCode)
				}
				fmt.Fprintln(app.out)
			}
			return nil
		},
	}
}

func newClientsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client-id>",
		Short: "Show a client's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading client")
			user, err := app.client.Users.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, api.ErrNotFound) {
					// Deleted server-side: point back at the list instead
					// of a broken detail view.
					fail(app.out, "Client not found; it may have been deleted. See 'calibra clients list'.")
					return err
				}
				fail(app.out, "%v", err)
				return err
			}

			header(app.out, "%s", user.FullName())
			fmt.Fprintf(app.out, "  email:       %s\n", user.Email)
			fmt.Fprintf(app.out, "  phone:       %s\n", orDash(user.Phone))
			fmt.Fprintf(app.out, "  status:      %s\n", orDash(user.Profile.Status))
			fmt.Fprintf(app.out, "  objectives:  %s\n", joinOrDash(user.Profile.Objectives))
			fmt.Fprintf(app.out, "  limitations: %s\n", joinOrDash(user.Profile.Limitations))
			if user.InviteCode != "" {
				warn(app.out, "Pending activation, invite code: %s", user.InviteCode)
			}
			return nil
		},
	}
}

func newClientsAddCmd(app *App) *cobra.Command {
	var payload api.UserPayload

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new client and get their invite code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Name == "" || payload.Email == "" {
				return errors.New("name and email are required")
			}

			step(app.out, "Creating client")
			user, err := app.client.Users.Create(cmd.Context(), payload)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Client %s created", user.FullName())
			fmt.Fprintf(app.out, "  Invite code: %s\n", headerStyle.Sprint(user.InviteCode))
			faintStyle.Fprintln(app.out, "  Share it so they can run 'calibra activate'.")
			return nil
		},
	}
	cmd.Flags().StringVar(&payload.Name, "name", "", "first name")
	cmd.Flags().StringVar(&payload.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&payload.Email, "email", "", "email address")
	cmd.Flags().StringVar(&payload.Phone, "phone", "", "phone number")
	cmd.Flags().StringSliceVar(&payload.Objectives, "objective", nil, "training objective (repeatable, ordered)")
	cmd.Flags().StringSliceVar(&payload.Limitations, "limitation", nil, "limitation or pain point (repeatable)")
	return cmd
}

func newClientsEditCmd(app *App) *cobra.Command {
	var payload api.UserPayload

	cmd := &cobra.Command{
		Use:   "edit <client-id>",
		Short: "Update a client's data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Updating client")
			user, err := app.client.Users.Update(cmd.Context(), args[0], payload)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Client %s updated", user.FullName())
			return nil
		},
	}
	cmd.Flags().StringVar(&payload.Name, "name", "", "first name")
	cmd.Flags().StringVar(&payload.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&payload.Email, "email", "", "email address")
	cmd.Flags().StringVar(&payload.Phone, "phone", "", "phone number")
	cmd.Flags().StringSliceVar(&payload.Objectives, "objective", nil, "training objective (repeatable, ordered)")
	cmd.Flags().StringSliceVar(&payload.Limitations, "limitation", nil, "limitation or pain point (repeatable)")
	cmd.Flags().StringVar(&payload.Status, "status", "", "account status label")
	return cmd
}

func newClientsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Delete a client account permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.client.Users.Get(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			// Deleting another person's account needs more than one
			// click: the coach retypes the client's email.
			ok, err := confirmTyped(app.in, app.out, fmt.Sprintf("the account of %s", user.FullName()), user.Email)
			if err != nil {
				return err
			}
			if !ok {
				warn(app.out, "Cancelled, nothing deleted")
				return nil
			}

			step(app.out, "Deleting client")
			if err := app.client.Users.Delete(cmd.Context(), user.ID); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Client %s deleted", user.FullName())
			return nil
		},
	}
}

func newClientsRecoveryCodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recovery-code <client-id>",
		Short: "Generate a new invite/recovery code for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Generating code")
			code, err := app.client.Users.RecoveryCode(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "New code: %s", headerStyle.Sprint(code))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
