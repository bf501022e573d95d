package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// UpdateProfileCmd creates the updateProfile command
func UpdateProfileCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updateProfile",
		Short: "Edit your own profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			update := services.ProfileUpdate{
				FirstName: volunteer.FirstName,
				LastName:  volunteer.LastName,
				Email:     volunteer.Email,
				Phone:     volunteer.Phone,
			}
			if v, _ := cmd.Flags().GetString("first-name"); v != "" {
				update.FirstName = v
			}
			if v, _ := cmd.Flags().GetString("last-name"); v != "" {
				update.LastName = v
			}
			if v, _ := cmd.Flags().GetString("email"); v != "" {
				update.Email = v
			}
			if v, _ := cmd.Flags().GetString("phone"); v != "" {
				update.Phone = v
			}

			app.Logger.Debug("updateProfile command", zap.String("volunteer_id", volunteer.ID))

			if err := services.UpdateProfile(app.Ctx, app.Database, app.Logger, volunteer.ID, update); err != nil {
				return err
			}

			fmt.Printf("\n✓ Profile updated for %s %s\n", update.FirstName, update.LastName)
			return nil
		},
	}

	cmd.Flags().String("first-name", "", "New first name")
	cmd.Flags().String("last-name", "", "New last name")
	cmd.Flags().String("email", "", "New contact email")
	cmd.Flags().String("phone", "", "New phone number")

	return cmd
}

// UploadAvatarCmd creates the uploadAvatar command
func UploadAvatarCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uploadAvatar <image-file>",
		Short: "Upload a profile picture to the avatar bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			contentType := mime.TypeByExtension(filepath.Ext(imagePath))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			file, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("failed to open image file: %w", err)
			}
			defer file.Close()

			storageClient, err := app.StorageClient()
			if err != nil {
				return err
			}

			app.Logger.Debug("uploadAvatar command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("file", imagePath))

			url, err := services.SetAvatar(app.Ctx, app.Database, storageClient, app.Logger, volunteer.ID, file, contentType)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Avatar uploaded: %s\n", url)
			return nil
		},
	}
}
