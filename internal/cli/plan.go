package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/domain"
)

// newPlanCmd is the client's read-only view of their assigned workouts.
// Exercise names come populated from the server; entries whose exercise
// has since been deleted render a placeholder.
func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show your assigned workouts (client)",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleClient)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading your plan")
			workouts, err := listWithFallback(app, "workouts", func() ([]domain.Workout, error) {
				return app.client.Workouts.ListMine(cmd.Context())
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(workouts) == 0 {
				emptyState(app.out, "workouts", "Your coach has not assigned anything yet.")
				return nil
			}
			for _, workout := range workouts {
				header(app.out, "%s", workout.Title)
				faintStyle.Fprintf(app.out, "assigned %s  (%s)\n",
					workout.DateAssigned.Format("2006-01-02"), faintStyle.Sprint(workout.ID))
				renderEntries(app.out, workout.Exercises, nil)
				fmt.Fprintln(app.out)
			}
			faintStyle.Fprintln(app.out, "Finished one? Report it with 'calibra feedback send'.")
			return nil
		},
	}
}
