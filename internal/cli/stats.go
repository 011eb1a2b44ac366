package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/domain"
)

func newStatsCmd(app *App) *cobra.Command {
	var showActivity bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Coach dashboard numbers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading dashboard")
			stats, err := app.client.Stats.Summary(cmd.Context())
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			header(app.out, "Dashboard")
			fmt.Fprintf(app.out, "  Clients           %d\n", stats.TotalClients)
			fmt.Fprintf(app.out, "  Exercises         %d\n", stats.TotalExercises)
			fmt.Fprintf(app.out, "  Active workouts   %d\n", stats.ActiveWorkouts)
			fmt.Fprintf(app.out, "  Recent feedback   %d\n", stats.RecentFeedback)

			if !showActivity {
				return nil
			}
			activity, err := app.client.Stats.Activity(cmd.Context())
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			fmt.Fprintln(app.out)
			header(app.out, "Recent activity")
			if len(activity.RecentFeedbacks) == 0 {
				faintStyle.Fprintln(app.out, "  No feedback yet.")
			}
			for _, report := range activity.RecentFeedbacks {
				fmt.Fprintf(app.out, "  %s  RPE %d", report.Date.Format("2006-01-02"), report.RPE)
				if report.Comments != "" {
					faintStyle.Fprintf(app.out, "  %s", truncate(report.Comments, 48))
				}
				fmt.Fprintln(app.out)
			}
			if len(activity.RPETrend) > 0 {
				fmt.Fprintln(app.out)
				header(app.out, "RPE trend")
				for _, point := range activity.RPETrend {
					fmt.Fprintf(app.out, "  %s  %4.1f  %s\n", point.Date, point.RPE, rpeBar(point.RPE))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showActivity, "activity", false, "include the recent-activity feed")
	return cmd
}

// rpeBar renders a crude horizontal bar for the exertion trend.
func rpeBar(rpe float64) string {
	n := int(rpe)
	if n < 0 {
		n = 0
	}
	if n > domain.RPEMax {
		n = domain.RPEMax
	}
	return strings.Repeat("█", n)
}
