package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"notas"},
		Short:   "Internal annotations on clients (coach)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, domain.RoleAdmin)
		},
	}
	cmd.AddCommand(
		newNotesListCmd(app),
		newNotesAddCmd(app),
		newNotesEditCmd(app),
		newNotesDeleteCmd(app),
	)
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client-id>",
		Short: "List the notes on a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Loading notes")
			notes, err := app.client.Notes.ListForClient(cmd.Context(), args[0])
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			if len(notes) == 0 {
				emptyState(app.out, "notes for this client", "Add one with 'calibra notes add'.")
				return nil
			}
			for _, note := range notes {
				fmt.Fprintf(app.out, "%s  %s\n", faintStyle.Sprint(note.ID), note.Date.Format("2006-01-02"))
				fmt.Fprintf(app.out, "    %s\n", note.Content)
			}
			return nil
		},
	}
}

func newNotesAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <client-id> <content>...",
		Short: "Add a note to a client",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Saving note")
			_, err := app.client.Notes.Create(cmd.Context(), api.NotePayload{
				ClientID: args[0],
				Content:  strings.Join(args[1:], " "),
			})
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Note saved")
			return nil
		},
	}
}

func newNotesEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <note-id> <content>...",
		Short: "Rewrite a note's content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step(app.out, "Updating note")
			_, err := app.client.Notes.Update(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Note updated")
			return nil
		},
	}
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmYes(app.in, app.out, "Delete this note?")
			if err != nil {
				return err
			}
			if !ok {
				warn(app.out, "Cancelled, nothing deleted")
				return nil
			}
			step(app.out, "Deleting note")
			if err := app.client.Notes.Delete(cmd.Context(), args[0]); err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Note deleted")
			return nil
		},
	}
}
