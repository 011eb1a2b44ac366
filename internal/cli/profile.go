package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Your account details",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireRole(cmd, "")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := app.session.Identity()
			header(app.out, "%s %s", identity.Name, identity.Surname)
			fmt.Fprintf(app.out, "  Email  %s\n", identity.Email)
			fmt.Fprintf(app.out, "  Role   %s\n", identity.Role)
			if identity.Avatar != "" {
				fmt.Fprintf(app.out, "  Avatar %s\n", identity.Avatar)
			}
			return nil
		},
	}
	cmd.AddCommand(newProfileAvatarCmd(app))
	return cmd
}

// newProfileAvatarCmd uploads a profile photo. Each role has its own
// endpoint; the session identity decides which one is hit.
func newProfileAvatarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image-path>",
		Short: "Upload a profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()

			upload := api.ImageUpload{Filename: filepath.Base(args[0]), Content: f}

			step(app.out, "Uploading avatar")
			var url string
			if app.session.Identity().Role == domain.RoleAdmin {
				url, err = app.client.Avatars.UploadAdmin(cmd.Context(), upload)
			} else {
				url, err = app.client.Avatars.UploadMine(cmd.Context(), upload)
			}
			if err != nil {
				fail(app.out, "%v", err)
				return err
			}
			success(app.out, "Avatar updated: %s", url)
			return nil
		},
	}
}
