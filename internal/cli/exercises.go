package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newExercisesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"ejercicios"},
		Short:   "Manage the exercise library (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newExercisesListCmd(app),
		newExercisesAddCmd(app),
		newExercisesEditCmd(app),
		newExercisesDeleteCmd(app),
	)
	return cmd
}

func newExercisesListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading exercises")
			exercises, err := listWithFallback(app, "exercises", func() ([]domain.Exercise, error) {
				return app.client.Exercises.List(cmd.Context())
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if category != "" {
				filtered := exercises[:0]
				for _, ex := range exercises {
					if string(ex.Category) == category {
						filtered = append(filtered, ex)
					}
				}
				exercises = filtered
			}
			if len(exercises) == 0 {
				emptyState(app.out, "exercises", "Create the first one with 'calibra exercises add'.")
				return nil
			}
			for _, ex := range exercises {
				fmt.Fprintf(app.out, "%s  %s\n", faintStyle.Sprint(ex.ID), ex.Name)
				faintStyle.Fprintf(app.out, "    %s", ex.Category)
				if len(ex.Tags) > 0 {
					faintStyle.Fprintf(app.out, "  [%s]", joinOrDash(ex.Tags))
				}
				if ex.VideoURL != "" {
					faintStyle.Fprintf(app.out, "  video: %s", ex.VideoURL)
				}
				fmt.Fprintln(app.out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

// exerciseFlags binds the shared add/edit flag set. Edit leaves the
// category default empty so an unflagged edit keeps the stored one.
func exerciseFlags(cmd *cobra.Command, payload *api.ExercisePayload, category, imagePath *string, defaultCategory string) {
	cmd.Flags().StringVar(&payload.Name, "name", "", "exercise name")
	cmd.Flags().StringVar(category, "category", defaultCategory, "category (Movilidad, Fuerza, Respiración, Activación, Estiramiento, Cardio)")
	cmd.Flags().StringVar(&payload.VideoURL, "video", "", "demonstration video URL")
	cmd.Flags().StringVar(&payload.Instructions, "instructions", "", "execution instructions")
	cmd.Flags().StringSliceVar(&payload.Tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringVar(imagePath, "image", "", "path to an image attachment (switches to multipart upload)")
}

func loadImage(path string) (*api.ImageUpload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	return &api.ImageUpload{Filename: filepath.Base(path), Content: f}, func() { f.Close() }, nil
}

func newExercisesAddCmd(app *App) *cobra.Command {
	var payload api.ExercisePayload
	var category, imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exercise to the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Name == "" {
				return errors.New("name is required")
			}
			payload.Category = domain.Category(category)

			image, done, err := loadImage(imagePath)
			if err != nil {
				return err
			}
			defer done()
			payload.Image = image

			step(app.out, "Creating exercise")
			exercise, err := app.client.Exercises.Create(cmd.Context(), payload)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Exercise %q created (%s)", exercise.Name, exercise.Category)
			return nil
		},
	}
	exerciseFlags(cmd, &payload, &category, &imagePath, string(domain.CategoryMovilidad))
	return cmd
}

func newExercisesEditCmd(app *App) *cobra.Command {
	var payload api.ExercisePayload
	var category, imagePath string

	cmd := &cobra.Command{
		Use:   "edit <exercise-id>",
		Short: "Update a library exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload.Category = domain.Category(category)

			image, done, err := loadImage(imagePath)
			if err != nil {
				return err
			}
			defer done()
			payload.Image = image

			step(app.out, "Updating exercise")
			exercise, err := app.client.Exercises.Update(cmd.Context(), args[0], payload)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Exercise %q updated", exercise.Name)
			return nil
		},
	}
	exerciseFlags(cmd, &payload, &category, &imagePath, "")
	return cmd
}

func newExercisesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <exercise-id>",
		Short: "Delete an exercise from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmYes(app.in, app.out, "Workouts referencing this exercise will show a placeholder. Delete?")
			if err != nil {
				return err
			}
			if !ok {
				warn(app.out, "Cancelled, nothing deleted")
				return nil
			}

			step(app.out, "Deleting exercise")
			if err := app.client.Exercises.Delete(cmd.Context(), args[0]); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Exercise deleted")
			return nil
		},
	}
}
