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

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"plantillas"},
		Short:   "Manage reusable workout templates (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newTemplatesListCmd(app),
		newTemplatesShowCmd(app),
		newTemplatesCreateCmd(app),
		newTemplatesEditCmd(app),
		newTemplatesDeleteCmd(app),
	)
	return cmd
}

func newTemplatesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workout templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading templates")
			templates, err := listWithFallback(app, "templates", func() ([]domain.Template, error) {
				return app.client.Templates.List(cmd.Context())
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(templates) == 0 {
				emptyState(app.out, "templates", "Create the first one with 'calibra templates create'.")
				return nil
			}
			for _, template := range templates {
				fmt.Fprintf(app.out, "%s  %s", faintStyle.Sprint(template.ID), template.Title)
				faintStyle.Fprintf(app.out, "  (%d exercises)", len(template.Exercises))
				fmt.Fprintln(app.out)
				if template.Description != "" {
					faintStyle.Fprintf(app.out, "    %s\n", truncate(template.Description, 72))
				}
			}
			return nil
		},
	}
}

func newTemplatesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template's exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := findTemplateByID(cmd.Context(), app, args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			library, err := app.client.Exercises.Library(cmd.Context())
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			header(app.out, "%s", template.Title)
			if template.Description != "" {
				faintStyle.Fprintf(app.out, "%s\n", template.Description)
			}
			renderEntries(app.out, template.Exercises, library)
			return nil
		},
	}
}

// findTemplateByID resolves one template out of the list endpoint; the
// backend has no per-template read.
func findTemplateByID(ctx context.Context, app *App, id string) (*domain.Template, error) {
	templates, err := app.client.Templates.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("no template %q; 'calibra templates list' shows ids", id)
}

// composeInputs loads everything a compose session renders against.
func composeInputs(ctx context.Context, app *App) (map[string]domain.Exercise, []domain.Template, error) {
	library, err := app.client.Exercises.Library(ctx)
	if err != nil {
		return nil, nil, err
	}
	templates, err := app.client.Templates.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return library, templates, nil
}

func newTemplatesCreateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a new template interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			library, templates, err := composeInputs(cmd.Context(), app)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			b := builder.New()
			b.SetTitle(title)
			b.SetDescription(description)

			session := newComposeSession(app, b, library, templates)
			err = session.run(cmd.Context(), func(ctx context.Context, title, description string, entries []domain.WorkoutExercise) error {
				_, err := app.client.Templates.Create(ctx, api.TemplatePayload{
					Title:       title,
					Description: description,
					Exercises:   entries,
				})
				return err
			})
			if errors.Is(err, errComposeCancelled) {
				warn(app.out, "Cancelled, nothing saved")
				return nil
			}
			if err != nil {
				return err
			}
			success(app.out, "Template %q saved", b.Title())
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "initial title")
	cmd.Flags().StringVar(&description, "description", "", "template description")
	return cmd
}

func newTemplatesEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <template-id>",
		Short: "Edit a template interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := findTemplateByID(cmd.Context(), app, args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			library, templates, err := composeInputs(cmd.Context(), app)
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}

			b := builder.Edit(domain.Workout{Title: template.Title, Exercises: template.Exercises})
			b.SetDescription(template.Description)

			session := newComposeSession(app, b, library, templates)
			err = session.run(cmd.Context(), func(ctx context.Context, title, description string, entries []domain.WorkoutExercise) error {
				_, err := app.client.Templates.Update(ctx, template.ID, api.TemplatePayload{
					Title:       title,
					Description: description,
					Exercises:   entries,
				})
				return err
			})
			if errors.Is(err, errComposeCancelled) {
				warn(app.out, "Cancelled, template unchanged")
				return nil
			}
			if err != nil {
				return err
			}
			success(app.out, "Template %q updated; workouts already assigned from it keep their copies", b.Title())
			return nil
		},
	}
}

func newTemplatesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmYes(app.in, app.out, "Delete this template? Assigned workouts keep their copies.")
			if err != nil {
				return err
			}
			if !ok {
				warn(app.out, "Cancelled, nothing deleted")
				return nil
			}
			step(app.out, "Deleting template")
			if err := app.client.Templates.Delete(cmd.Context(), args[0]); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Template deleted")
			return nil
		},
	}
}
