package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/domain"
)

// newProgressCmd is the client's own feedback log plus a summary of the
// perceived-exertion average.
func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Your feedback history (client)",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleClient)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading your progress")
			reports, err := listWithFallback(app, "feedback", func() ([]domain.Feedback, error) {
				return app.client.Feedback.ListMine(cmd.Context())
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(reports) == 0 {
				emptyState(app.out, "feedback", "Send your first report with 'calibra feedback send'.")
				return nil
			}
			renderFeedback(app, reports)

			var sum int
			for _, report := range reports {
				sum += report.RPE
			}
			fmt.Fprintln(app.out)
			faintStyle.Fprintf(app.out, "%d reports, average RPE %.1f\n",
				len(reports), float64(sum)/float64(len(reports)))
			return nil
		},
	}
}
