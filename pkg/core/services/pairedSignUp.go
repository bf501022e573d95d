package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// PairedSignUp signs a team leader up for the early and late shifts of one
// date as a single logical operation. Both shifts must have an open
// team-leader slot and the volunteer must be assigned to neither; otherwise
// nothing is written and ErrPairIncomplete is returned.
//
// Stores implementing db.PairStore apply both writes in one transaction.
// Otherwise the writes go out one at a time with a compensating delete on
// failure; if the compensation itself fails, ErrPartialPairing surfaces and
// the first shift keeps the assignment.
func PairedSignUp(ctx context.Context, store db.Store, logger *zap.Logger, volunteerID, earlyShiftID, lateShiftID string) error {
	logger.Info("Paired signup",
		zap.String("volunteer_id", volunteerID),
		zap.String("early_shift_id", earlyShiftID),
		zap.String("late_shift_id", lateShiftID))

	volunteer, early, late, err := fetchPair(ctx, store, volunteerID, earlyShiftID, lateShiftID)
	if err != nil {
		return err
	}

	if volunteer.Role != model.RoleTeamLeader {
		return fmt.Errorf("%w: volunteer role is %s", roster.ErrPairTeamLeaderOnly, volunteer.Role.Display())
	}

	for _, shift := range []*model.Shift{early, late} {
		if err := roster.CanSignUp(volunteer, shift); err != nil {
			logger.Info("Paired signup rejected",
				zap.String("shift_id", shift.ID),
				zap.Error(err))
			return fmt.Errorf("%w: shift %s: %v", roster.ErrPairIncomplete, shift.ID, err)
		}
	}

	if pairStore, ok := store.(db.PairStore); ok {
		if err := pairStore.CreateAssignmentPair(ctx, earlyShiftID, lateShiftID, volunteerID); err != nil {
			return fmt.Errorf("failed to create assignment pair: %w", err)
		}
		logger.Info("Paired signup complete (transactional)")
		return nil
	}

	// Two-write fallback with compensation.
	if err := store.CreateAssignment(ctx, earlyShiftID, volunteerID, model.RoleTeamLeader); err != nil {
		return fmt.Errorf("failed to create early assignment: %w", err)
	}
	if err := store.CreateAssignment(ctx, lateShiftID, volunteerID, model.RoleTeamLeader); err != nil {
		logger.Warn("Late assignment failed, rolling back early assignment",
			zap.String("early_shift_id", earlyShiftID),
			zap.Error(err))
		if rbErr := store.DeleteAssignment(ctx, earlyShiftID, volunteerID, pairRollbackReason); rbErr != nil {
			logger.Error("Rollback of early assignment failed",
				zap.String("early_shift_id", earlyShiftID),
				zap.Error(rbErr))
			return fmt.Errorf("%w: late signup failed (%v) and rollback failed (%v)",
				roster.ErrPartialPairing, err, rbErr)
		}
		return fmt.Errorf("failed to create late assignment: %w", err)
	}

	logger.Info("Paired signup complete")
	return nil
}

// PairedWithdraw withdraws a team leader from both shifts of a date as one
// unit, with the same transactional/compensating contract as PairedSignUp.
func PairedWithdraw(ctx context.Context, store db.Store, notifier Notifier, logger *zap.Logger, volunteerID, earlyShiftID, lateShiftID, reason string) error {
	logger.Info("Paired withdrawal",
		zap.String("volunteer_id", volunteerID),
		zap.String("early_shift_id", earlyShiftID),
		zap.String("late_shift_id", lateShiftID))

	volunteer, early, late, err := fetchPair(ctx, store, volunteerID, earlyShiftID, lateShiftID)
	if err != nil {
		return err
	}

	if volunteer.Role != model.RoleTeamLeader {
		return fmt.Errorf("%w: volunteer role is %s", roster.ErrPairTeamLeaderOnly, volunteer.Role.Display())
	}

	for _, shift := range []*model.Shift{early, late} {
		if err := roster.CanWithdraw(volunteer, shift, reason); err != nil {
			if errors.Is(err, roster.ErrReasonRequired) {
				return err
			}
			return fmt.Errorf("%w: shift %s: %v", roster.ErrPairIncomplete, shift.ID, err)
		}
	}

	if pairStore, ok := store.(db.PairStore); ok {
		if err := pairStore.DeleteAssignmentPair(ctx, earlyShiftID, lateShiftID, volunteerID, reason); err != nil {
			return fmt.Errorf("failed to delete assignment pair: %w", err)
		}
	} else {
		// The assignment carries the role snapshotted at signup time, which is
		// what a restore must recreate.
		earlyRole := early.AssignmentFor(volunteerID).Role

		if err := store.DeleteAssignment(ctx, earlyShiftID, volunteerID, reason); err != nil {
			return fmt.Errorf("failed to delete early assignment: %w", err)
		}
		if err := store.DeleteAssignment(ctx, lateShiftID, volunteerID, reason); err != nil {
			logger.Warn("Late withdrawal failed, restoring early assignment",
				zap.String("early_shift_id", earlyShiftID),
				zap.Error(err))
			if rbErr := store.CreateAssignment(ctx, earlyShiftID, volunteerID, earlyRole); rbErr != nil {
				logger.Error("Restore of early assignment failed",
					zap.String("early_shift_id", earlyShiftID),
					zap.Error(rbErr))
				return fmt.Errorf("%w: late withdrawal failed (%v) and restore failed (%v)",
					roster.ErrPartialPairing, err, rbErr)
			}
			return fmt.Errorf("failed to delete late assignment: %w", err)
		}
	}

	logger.Info("Paired withdrawal complete")

	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		updated, err := store.FetchShiftByID(ctx, shiftID)
		if err != nil {
			logger.Warn("Failed to refresh shift for notification", zap.String("shift_id", shiftID), zap.Error(err))
			continue
		}
		notifyWithdrawal(ctx, store, notifier, logger, volunteer, updated, reason)
	}

	return nil
}

const pairRollbackReason = "automatic rollback of incomplete paired signup"

func fetchPair(ctx context.Context, store db.Store, volunteerID, earlyShiftID, lateShiftID string) (*model.Volunteer, *model.Shift, *model.Shift, error) {
	volunteer, err := store.FetchVolunteerProfile(ctx, volunteerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}

	early, err := store.FetchShiftByID(ctx, earlyShiftID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch early shift: %w", err)
	}
	late, err := store.FetchShiftByID(ctx, lateShiftID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch late shift: %w", err)
	}

	if err := roster.ValidatePair(early, late); err != nil {
		return nil, nil, nil, err
	}

	return volunteer, early, late, nil
}
