package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newEvaluationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluations",
		Aliases: []string{"evaluaciones"},
		Short:   "Record and review client evaluations (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newEvaluationsListCmd(app),
		newEvaluationsAddCmd(app),
	)
	return cmd
}

func newEvaluationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client-id>",
		Short: "Show a client's evaluation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading evaluations")
			evaluations, err := app.client.Evaluations.ListForClient(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(evaluations) == 0 {
				emptyState(app.out, "evaluations for this client", "Record one with 'calibra evaluations add'.")
				return nil
			}
			for _, ev := range evaluations {
				fmt.Fprintf(app.out, "%s  %s", faintStyle.Sprint(ev.Date.Format("2006-01-02")), ev.Type)
				if len(ev.PriorityZones) > 0 {
					faintStyle.Fprintf(app.out, "  zones: %s", joinOrDash(ev.PriorityZones))
				}
				if ev.Focus != "" {
					faintStyle.Fprintf(app.out, "  focus: %s", ev.Focus)
				}
				fmt.Fprintln(app.out)
				if ev.Notes != "" {
					faintStyle.Fprintf(app.out, "    %s\n", ev.Notes)
				}
			}
			return nil
		},
	}
}

func newEvaluationsAddCmd(app *App) *cobra.Command {
	var (
		evalType string
		zones    []string
		focus    string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add <client-id>",
		Short: "Record a new evaluation for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.EvaluationType(evalType)
			switch t {
			case domain.EvaluationInicial, domain.EvaluationReevaluacion, domain.EvaluationSeguimiento:
			default:
				return fmt.Errorf("type must be one of %s, %s or %s",
					domain.EvaluationInicial, domain.EvaluationReevaluacion, domain.EvaluationSeguimiento)
			}
			for _, zone := range zones {
				if !contains(domain.PriorityZones, zone) {
					return fmt.Errorf("unknown zone %q; known zones: %s", zone, joinOrDash(domain.PriorityZones))
				}
			}
			if focus != "" && !contains(domain.FocusOptions, focus) {
				return fmt.Errorf("unknown focus %q; known options: %s", focus, joinOrDash(domain.FocusOptions))
			}

			step(app.out, "Recording evaluation")
			evaluation, err := app.client.Evaluations.Create(cmd.Context(), api.EvaluationPayload{
				ClientID:      args[0],
				Type:          t,
				PriorityZones: zones,
				Focus:         focus,
				Notes:         notes,
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Evaluation recorded (%s, %s)", evaluation.Type, evaluation.Date.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&evalType, "type", string(domain.EvaluationSeguimiento), "evaluation type")
	cmd.Flags().StringSliceVar(&zones, "zone", nil, "priority zone (repeatable)")
	cmd.Flags().StringVar(&focus, "focus", "", "training focus")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form findings")
	return cmd
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
