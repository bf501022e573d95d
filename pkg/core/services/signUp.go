package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// SignUp signs a volunteer up for a single shift. Team leaders are rejected
// here; they join the early and late shifts of a date together via
// PairedSignUp. The returned shift is a fresh snapshot after the write.
func SignUp(ctx context.Context, store db.Store, logger *zap.Logger, volunteerID, shiftID string) (*model.Shift, error) {
	logger.Info("Signing up for shift",
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

	if err := roster.CanSignUp(volunteer, shift); err != nil {
		logger.Info("Signup rejected",
			zap.String("volunteer_id", volunteerID),
			zap.String("shift_id", shiftID),
			zap.Error(err))
		return nil, err
	}

	if err := store.CreateAssignment(ctx, shiftID, volunteerID, volunteer.Role); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	logger.Info("Signup complete",
		zap.String("volunteer_id", volunteerID),
		zap.String("shift_id", shiftID),
		zap.String("role", volunteer.Role.String()))

	// Re-fetch so the caller renders the authoritative snapshot, not a guess.
	updated, err := store.FetchShiftByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh shift: %w", err)
	}
	return updated, nil
}
