// Package cli is the presentation layer: role-scoped cobra commands
// composing the session store, the route guard and the resource
// fetchers. Each command handles its own errors inline; a failed call
// leaves the command usable for a manual retry.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/config"
	"calibra/coach-app/internal/domain"
	"calibra/coach-app/internal/guard"
	"calibra/coach-app/internal/session"
	"calibra/coach-app/internal/storage"
)

var (
	errSignInFirst  = errors.New("no active session; run 'calibra login' or 'calibra activate' first")
	errAccessDenied = errors.New("this area belongs to the other role; signing out returns you to the entry point")
)

// App wires the client core together for the command tree. Tests inject
// their own reader/writer and configuration.
type App struct {
	cfg     config.Config
	local   *storage.Store
	client  *api.Client
	session *session.Store
	in      *bufio.Reader
	out     io.Writer

	restored bool
}

// NewApp builds the application against the configured backend.
func NewApp(cfg config.Config, in io.Reader, out io.Writer) (*App, error) {
	local, err := storage.Open(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, local: local, in: bufio.NewReader(in), out: out}
	app.session = session.NewStore(local)
	app.client = api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(app.session.Token),
		api.WithCache(local),
	)
	app.session.Bind(app.client)
	return app, nil
}

func (a *App) Close() error {
	return a.local.Close()
}

// restore resolves the persisted session once per invocation. Gated
// commands block on it; nothing role-scoped renders before it settles.
func (a *App) restore(cmd *cobra.Command) error {
	if a.restored {
		return nil
	}
	a.restored = true
	if _, err := a.session.Restore(cmd.Context()); err != nil {
		warn(a.out, "Could not restore the stored session: %v", err)
	}
	return nil
}

// requireRole is the route guard applied at dispatch time: it runs for
// every gated command, not once at startup.
func (a *App) requireRole(cmd *cobra.Command, role domain.Role) error {
	if err := a.restore(cmd); err != nil {
		return err
	}
	switch guard.Evaluate(a.session.State(), a.session.Identity(), role) {
	case guard.Render:
		return nil
	case guard.Loading:
		// Restore settles synchronously in a CLI process; reaching this
		// outcome means a programming error upstream.
		return errors.New("session still resolving")
	default:
		if a.session.Identity() != nil {
			return errAccessDenied
		}
		return errSignInFirst
	}
}

// NewRootCmd assembles the command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "calibra",
		Short:         "Coaching client for the Calibrado Corporal backend",
		Long: `Calibra is the terminal client for a personal-training backend.

Coaches manage clients, the exercise library, workout templates, assigned
routines, evaluations and internal notes. Clients review their assigned
plan, send session feedback (RPE plus logged weights) and follow their
progress.

All data lives on the remote server; sign in first:

  $ calibra login --email coach@example.com
  $ calibra activate --email you@example.com --code AB12CD`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newActivateCmd(app),
		newResetPasswordCmd(app),
		newClientsCmd(app),
		newExercisesCmd(app),
		newTemplatesCmd(app),
		newWorkoutsCmd(app),
		newEvaluationsCmd(app),
		newNotesCmd(app),
		newStatsCmd(app),
		newPlanCmd(app),
		newFeedbackCmd(app),
		newProgressCmd(app),
		newProfileCmd(app),
	)
	return root
}

// Execute is the process entry point used by cmd/calibra.
func Execute() int {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		return 1
	}
	app, err := NewApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start: %v\n", err)
		return 1
	}
	defer app.Close()

	if err := NewRootCmd(app).Execute(); err != nil {
		return 1
	}
	return 0
}
