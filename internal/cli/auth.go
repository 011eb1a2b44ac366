package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			step(app.out, "Signing in as %s", email)
			sess, err := app.session.Login(cmd.Context(), email, password)
			if err != nil {
				// The message comes from the server's error body.
				fail(app.out, "%v", err)
				return err
			}

			success(app.out, "Signed in as %s (%s)", sess.Identity.Email, sess.Identity.Role)
			if sess.Identity.IsAdmin() {
				faintStyle.Fprintln(app.out, "  Start with 'calibra clients' or 'calibra stats'.")
			} else {
				faintStyle.Fprintln(app.out, "  Start with 'calibra plan' or 'calibra progress'.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(); err != nil {
				return err
			}
			success(app.out, "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireRole(cmd, ""); err != nil {
				return err
			}
			identity := app.session.Identity()
			fmt.Fprintf(app.out, "%s %s <%s>\n", identity.Name, identity.Surname, identity.Email)
			faintStyle.Fprintf(app.out, "  role: %s\n", identity.Role)
			return nil
		},
	}
}

func newActivateCmd(app *App) *cobra.Command {
	var email, code, password, confirm string

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Claim a pre-created account with an invite code",
		Long: `Activate exchanges the one-time invite code your coach gave you plus a
new password for a session. Codes are case-insensitive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" || password == "" {
				return errors.New("email, code and password are required")
			}
			// Client-side validation blocks the call entirely.
			if confirm != "" && confirm != password {
				return errors.New("passwords do not match")
			}

			step(app.out, "Activating account for %s", email)
			sess, err := app.session.ClaimAccount(cmd.Context(), email, code, password)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			success(app.out, "Account activated, signed in as %s", sess.Identity.Email)
			if sess.Identity.Role == domain.RoleClient {
				faintStyle.Fprintln(app.out, "  Your plan is waiting: 'calibra plan'.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&code, "code", "c", "", "invite code")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new password")
	return cmd
}

func newResetPasswordCmd(app *App) *cobra.Command {
	var email, code, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a recovery code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" || password == "" {
				return errors.New("email, code and password are required")
			}

			step(app.out, "Resetting password for %s", email)
			if err := app.session.ResetPassword(cmd.Context(), email, code, password); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Password updated, sign in with 'calibra login'")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&code, "code", "c", "", "recovery code")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}
