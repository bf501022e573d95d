package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// Notifier sends a plain-text email. Satisfied by the gmail client.
type Notifier interface {
	SendEmail(to, subject, body string) error
}

// Withdraw removes a volunteer's assignment from a single shift. The reason
// is required, stored for audit, and mailed to the volunteers remaining on
// the shift. Team leaders must use PairedWithdraw instead.
func Withdraw(ctx context.Context, store db.Store, notifier Notifier, logger *zap.Logger, volunteerID, shiftID, reason string) (*model.Shift, error) {
	logger.Info("Withdrawing from shift",
		zap.String("volunteer_id", volunteerID),
		zap.String("shift_id", shiftID))

	volunteer, err := store.FetchVolunteerProfile(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}

	if volunteer.Role == model.RoleTeamLeader {
		return nil, roster.ErrPairRequired
	}

	shift, err := store.FetchShiftByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}

	if err := roster.CanWithdraw(volunteer, shift, reason); err != nil {
		logger.Info("Withdrawal rejected",
			zap.String("volunteer_id", volunteerID),
			zap.String("shift_id", shiftID),
			zap.Error(err))
		return nil, err
	}

	if err := store.DeleteAssignment(ctx, shiftID, volunteerID, reason); err != nil {
		return nil, fmt.Errorf("failed to delete assignment: %w", err)
	}

	logger.Info("Withdrawal complete",
		zap.String("volunteer_id", volunteerID),
		zap.String("shift_id", shiftID))

	updated, err := store.FetchShiftByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh shift: %w", err)
	}

	notifyWithdrawal(ctx, store, notifier, logger, volunteer, updated, reason)

	return updated, nil
}

// notifyWithdrawal mails the withdrawal reason to the volunteers still on the
// shift. Failures are logged, never propagated: the withdrawal already
// happened and must not appear to fail.
func notifyWithdrawal(ctx context.Context, store db.VolunteerStore, notifier Notifier, logger *zap.Logger, withdrawn *model.Volunteer, shift *model.Shift, reason string) {
	if notifier == nil {
		return
	}

	subject := fmt.Sprintf("Shift change for %s (%s)", shift.DateString(), shift.Slot)
	body := fmt.Sprintf("%s has withdrawn from the %s shift on %s.\n\nReason: %s\n",
		withdrawn.FullName(), shift.Slot, shift.DateString(), reason)

	for _, a := range shift.Assignments {
		remaining, err := store.FetchVolunteerProfile(ctx, a.VolunteerID)
		if err != nil {
			logger.Warn("Failed to fetch volunteer for notification",
				zap.String("volunteer_id", a.VolunteerID),
				zap.Error(err))
			continue
		}
		if err := notifier.SendEmail(remaining.Email, subject, body); err != nil {
			logger.Warn("Failed to send withdrawal notification",
				zap.String("email", remaining.Email),
				zap.Error(err))
		}
	}
}
