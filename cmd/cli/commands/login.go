package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/session"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in as a volunteer by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			volunteer, err := app.Database.FetchVolunteerByEmail(app.Ctx, email)
			if err != nil {
				return fmt.Errorf("failed to look up volunteer: %w", err)
			}
			if volunteer == nil {
				return fmt.Errorf("no volunteer registered with email %s", email)
			}

			err = session.Save(app.Env, &session.Session{
				VolunteerID: volunteer.ID,
				Email:       volunteer.Email,
				CreatedAt:   time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			app.Logger.Info("Volunteer logged in",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("email", volunteer.Email))

			fmt.Printf("\n✓ Logged in as %s (%s)\n", volunteer.FullName(), volunteer.Role.Display())
			if !volunteer.Active {
				fmt.Println("⚠️  This account is inactive - sign-ups will be rejected until it is reactivated.")
			}
			return nil
		},
	}
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(app.Env); err != nil {
				return err
			}
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}
