package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// SignUpCmd creates the signUp command
func SignUpCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "signUp <shift-id>",
		Short: "Sign up for a shift in your role's capacity bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			app.Logger.Debug("signUp command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("shift_id", shiftID))

			shift, err := services.SignUp(app.Ctx, app.Database, app.Logger, volunteer.ID, shiftID)
			if err != nil {
				if errors.Is(err, roster.ErrPairRequired) {
					return fmt.Errorf("team leaders cover the whole day: use signUpPair with the early and late shift IDs")
				}
				return err
			}

			fmt.Printf("\n✓ Signed up for %s (%s) as %s\n", shift.DateString(), shift.Slot, volunteer.Role.Display())
			printShiftRoster(shift)
			return nil
		},
	}
}

// SignUpPairCmd creates the signUpPair command
func SignUpPairCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "signUpPair <early-shift-id> <late-shift-id>",
		Short: "Sign up for both shifts of a day as team leader (all or nothing)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			earlyShiftID, lateShiftID := args[0], args[1]

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			app.Logger.Debug("signUpPair command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("early_shift_id", earlyShiftID),
				zap.String("late_shift_id", lateShiftID))

			err = services.PairedSignUp(app.Ctx, app.Database, app.Logger, volunteer.ID, earlyShiftID, lateShiftID)
			if err != nil {
				if errors.Is(err, roster.ErrPairIncomplete) {
					return fmt.Errorf("pair not available, nothing was booked: %w", err)
				}
				return err
			}

			fmt.Println("\n✓ Signed up for both shifts as Team Leader")
			return nil
		},
	}
}

func loginHint(err error) error {
	if errors.Is(err, roster.ErrNotAuthenticated) {
		return fmt.Errorf("not logged in: run 'login <email>' first")
	}
	return err
}

func printShiftRoster(shift *model.Shift) {
	if len(shift.Assignments) == 0 {
		return
	}
	fmt.Println("\nCurrent roster:")
	for _, role := range roster.DisplayOrder() {
		for _, a := range shift.Assignments {
			if a.Role == role {
				fmt.Printf("  %-12s %s\n", role.Display(), a.VolunteerID)
			}
		}
	}
}
