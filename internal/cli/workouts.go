package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/builder"
	"calibra/coach-app/internal/domain"
)

func newWorkoutsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Aliases: []string{"rutinas"},
		Short:   "Manage assigned workouts (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newWorkoutsListCmd(app),
		newWorkoutsAssignCmd(app),
		newWorkoutsEditCmd(app),
		newWorkoutsDeleteCmd(app),
	)
	return cmd
}

func newWorkoutsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client-id>",
		Short: "List the workouts assigned to a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading workouts")
			workouts, err := app.client.Workouts.ListForClient(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(workouts) == 0 {
				emptyState(app.out, "workouts for this client", "Assign one with 'calibra workouts assign'.")
				return nil
			}
			library, err := app.client.Exercises.Library(cmd.Context())
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			for _, workout := range workouts {
				fmt.Fprintf(app.out, "%s  %s", faintStyle.Sprint(workout.ID), workout.Title)
				faintStyle.Fprintf(app.out, "  assigned %s", workout.DateAssigned.Format("2006-01-02"))
				fmt.Fprintln(app.out)
				renderEntries(app.out, workout.Exercises, library)
			}
			return nil
		},
	}
}

func newWorkoutsAssignCmd(app *App) *cobra.Command {
	var clientID, title, fromTemplate string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Build and assign a workout to a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				return errors.New("--client is required")
			}
			library, templates, err := composeInputs(cmd.Context(), app)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			b := builder.New()
			b.SetTitle(title)
			if fromTemplate != "" {
				template, ok := templateByHandle(templates, fromTemplate)
				if !ok {
					return fmt.Errorf("no template %q; 'calibra templates list' shows ids", fromTemplate)
				}
				if err := b.LoadFromTemplate(template, false); err != nil {
					return err
				}
			}

			session := newComposeSession(app, b, library, templates)
			err = session.run(cmd.Context(), func(ctx context.Context, title, _ string, entries []domain.WorkoutExercise) error {
				_, err := app.client.Workouts.Create(ctx, api.WorkoutPayload{
					ClientID:  clientID,
					Title:     title,
					Exercises: entries,
				})
				return err
			})
			if errors.Is(err, errComposeCancelled) {
				warn(app.out, "Cancelled, nothing assigned")
				return nil
			}
			if err != nil {
				return err
			}
			success(app.out, "Workout %q assigned", b.Title())
			return nil
		},
	}
	cmd.Flags().StringVarP(&clientID, "client", "c", "", "client id to assign to")
	cmd.Flags().StringVar(&title, "title", "", "initial title")
	cmd.Flags().StringVar(&fromTemplate, "from-template", "", "start from a template (id or title)")
	return cmd
}

func templateByHandle(templates []domain.Template, handle string) (domain.Template, bool) {
	for _, template := range templates {
		if template.ID == handle || template.Title == handle {
			return template, true
		}
	}
	return domain.Template{}, false
}

func newWorkoutsEditCmd(app *App) *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "edit <workout-id>",
		Short: "Edit an assigned workout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				return errors.New("--client is required")
			}
			workouts, err := app.client.Workouts.ListForClient(cmd.Context(), clientID)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			var workout *domain.Workout
			for i := range workouts {
				if workouts[i].ID == args[0] {
					workout = &workouts[i]
					break
				}
			}
			if workout == nil {
				return fmt.Errorf("no workout %q assigned to this client", args[0])
			}

			library, templates, err := composeInputs(cmd.Context(), app)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			b := builder.Edit(*workout)
			session := newComposeSession(app, b, library, templates)
			err = session.run(cmd.Context(), func(ctx context.Context, title, _ string, entries []domain.WorkoutExercise) error {
				_, err := app.client.Workouts.Update(ctx, workout.ID, api.WorkoutPayload{
					ClientID:  workout.ClientID,
					Title:     title,
					Exercises: entries,
				})
				return err
			})
			if errors.Is(err, errComposeCancelled) {
				warn(app.out, "Cancelled, workout unchanged")
				return nil
			}
			if err != nil {
				return err
			}
			success(app.out, "Workout %q updated", b.Title())
			return nil
		},
	}
	cmd.Flags().StringVarP(&clientID, "client", "c", "", "client id the workout belongs to")
	return cmd
}

func newWorkoutsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workout-id>",
		Short: "Delete an assigned workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmYes(app.in, app.out, "Delete this workout from the client's plan?")
			if err != nil {
				return err
			}
			if !ok {
				warn(app.out, "Cancelled, nothing deleted")
				return nil
			}
			step(app.out, "Deleting workout")
			if err := app.client.Workouts.Delete(cmd.Context(), args[0]); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Workout deleted")
			return nil
		},
	}
}
