package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/core/services"
)

// WithdrawCmd creates the withdraw command
func WithdrawCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw <shift-id> <reason>",
		Short: "Withdraw from a shift, notifying the remaining volunteers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]
			reason := strings.Join(args[1:], " ")
			noEmail, _ := cmd.Flags().GetBool("no-email")

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			app.Logger.Debug("withdraw command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("shift_id", shiftID),
				zap.Bool("no_email", noEmail))

			notifier, err := app.withdrawNotifier(noEmail)
			if err != nil {
				return err
			}

			shift, err := services.Withdraw(app.Ctx, app.Database, notifier, app.Logger, volunteer.ID, shiftID, reason)
			if err != nil {
				if errors.Is(err, roster.ErrPairRequired) {
					return fmt.Errorf("team leaders cover the whole day: use withdrawPair with the early and late shift IDs")
				}
				return err
			}

			fmt.Printf("\n✓ Withdrawn from %s (%s)\n", shift.DateString(), shift.Slot)
			printShiftRoster(shift)
			return nil
		},
	}

	cmd.Flags().Bool("no-email", false, "Skip emailing the remaining volunteers")

	return cmd
}

// WithdrawPairCmd creates the withdrawPair command
func WithdrawPairCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawPair <early-shift-id> <late-shift-id> <reason>",
		Short: "Withdraw from both shifts of a day as team leader (all or nothing)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			earlyShiftID, lateShiftID := args[0], args[1]
			reason := strings.Join(args[2:], " ")
			noEmail, _ := cmd.Flags().GetBool("no-email")

			volunteer, err := app.CurrentVolunteer()
			if err != nil {
				return loginHint(err)
			}

			app.Logger.Debug("withdrawPair command",
				zap.String("volunteer_id", volunteer.ID),
				zap.String("early_shift_id", earlyShiftID),
				zap.String("late_shift_id", lateShiftID))

			notifier, err := app.withdrawNotifier(noEmail)
			if err != nil {
				return err
			}

			err = services.PairedWithdraw(app.Ctx, app.Database, notifier, app.Logger, volunteer.ID, earlyShiftID, lateShiftID, reason)
			if err != nil {
				if errors.Is(err, roster.ErrPartialPairing) {
					return fmt.Errorf("pair withdrawal left the day inconsistent, contact an administrator: %w", err)
				}
				return err
			}

			fmt.Println("\n✓ Withdrawn from both shifts")
			return nil
		},
	}

	cmd.Flags().Bool("no-email", false, "Skip emailing the remaining volunteers")

	return cmd
}

// withdrawNotifier returns the mailer for withdrawal notifications, or nil
// when emails are suppressed.
func (app *AppContext) withdrawNotifier(noEmail bool) (services.Notifier, error) {
	if noEmail {
		return nil, nil
	}
	return app.GmailClient()
}
