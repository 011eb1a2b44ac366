package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newFeedbackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Session feedback: clients send, the coach reviews",
	}
	cmd.AddCommand(
		newFeedbackSendCmd(app),
		newFeedbackListCmd(app),
	)
	return cmd
}

func newFeedbackSendCmd(app *App) *cobra.Command {
	var (
		workoutID string
		rpe       int
		comments  string
		skipLogs  bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Report a finished workout (client)",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleClient)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if workoutID == "" {
				return errors.New("--workout is required; 'calibra plan' shows your workout ids")
			}
			if rpe < domain.RPEMin || rpe > domain.RPEMax {
				return fmt.Errorf("--rpe must be between %d and %d", domain.RPEMin, domain.RPEMax)
			}

			workouts, err := app.client.Workouts.ListMine(cmd.Context())
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			var workout *domain.Workout
			for i := range workouts {
				if workouts[i].ID == workoutID {
					workout = &workouts[i]
					break
				}
			}
			if workout == nil {
				return fmt.Errorf("workout %q is not in your plan", workoutID)
			}

			var logs []domain.ExerciseLog
			if !skipLogs {
				logs, err = promptWeights(app, workout.Exercises)
				if err != nil {
					return err
				}
			}

			step(app.out, "Sending feedback")
			_, err = app.client.Feedback.Create(cmd.Context(), api.FeedbackPayload{
				WorkoutID: workout.ID,
				RPE:       rpe,
				Comments:  comments,
				Exercises: logs,
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Feedback sent for %q (RPE %d)", workout.Title, rpe)
			return nil
		},
	}
	cmd.Flags().StringVarP(&workoutID, "workout", "w", "", "workout id the report is for")
	cmd.Flags().IntVar(&rpe, "rpe", 0, fmt.Sprintf("perceived exertion, %d to %d", domain.RPEMin, domain.RPEMax))
	cmd.Flags().StringVar(&comments, "comments", "", "free-form comments")
	cmd.Flags().BoolVar(&skipLogs, "no-weights", false, "skip the per-exercise weight prompts")
	return cmd
}

// promptWeights asks for the weight used on each entry. Blank answers
// are skipped; the exercise name is denormalized into the log so it
// survives a later library deletion.
func promptWeights(app *App, entries []domain.WorkoutExercise) ([]domain.ExerciseLog, error) {
	var logs []domain.ExerciseLog
	for _, entry := range entries {
		name := entryName(entry.Exercise, nil)
		fmt.Fprintf(app.out, "Weight used for %s (enter to skip): ", name)
		answer, err := readLine(app.in)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			continue
		}
		logs = append(logs, domain.ExerciseLog{
			Exercise:   entry.Exercise,
			Name:       name,
			WeightUsed: answer,
		})
	}
	return logs, nil
}

func newFeedbackListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client-id>",
		Short: "Review a client's feedback history (coach)",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading feedback")
			reports, err := app.client.Feedback.ListForClient(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(reports) == 0 {
				emptyState(app.out, "feedback from this client", "Reports appear after the client finishes a workout.")
				return nil
			}
			renderFeedback(app, reports)
			return nil
		},
	}
}

func renderFeedback(app *App, reports []domain.Feedback) {
	for _, report := range reports {
		fmt.Fprintf(app.out, "%s  RPE %d", report.Date.Format("2006-01-02"), report.RPE)
		faintStyle.Fprintf(app.out, "  workout %s", report.WorkoutID)
		fmt.Fprintln(app.out)
		if report.Comments != "" {
			fmt.Fprintf(app.out, "    %s\n", report.Comments)
		}
		for _, log := range report.Exercises {
			name := log.Name
			if name == "" {
				name = entryName(log.Exercise, nil)
			}
			faintStyle.Fprintf(app.out, "    %s: %s\n", name, log.WeightUsed)
		}
	}
}
