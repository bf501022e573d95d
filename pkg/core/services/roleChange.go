package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// RequestRoleChange files a pending role-change request for the volunteer.
func RequestRoleChange(ctx context.Context, store db.Store, logger *zap.Logger, volunteerID string, requested model.Role) (*model.RoleChangeRequest, error) {
	if !requested.IsValid() {
		return nil, fmt.Errorf("invalid requested role")
	}

	volunteer, err := store.FetchVolunteerProfile(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}
	if volunteer.Role == requested {
		return nil, fmt.Errorf("volunteer already holds role %s", requested.Display())
	}

	request := &model.RoleChangeRequest{
		ID:            uuid.New().String(),
		VolunteerID:   volunteerID,
		RequestedRole: requested,
		Status:        model.RoleChangePending,
	}

	if err := store.CreateRoleChangeRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create role change request: %w", err)
	}

	logger.Info("Role change requested",
		zap.String("volunteer_id", volunteerID),
		zap.String("requested_role", requested.String()),
		zap.String("request_id", request.ID))

	return request, nil
}

// ApproveRoleChange applies a pending request. Existing assignments keep the
// role snapshot they were created with; upcoming assignments that no longer
// match the new role are logged, not revoked.
func ApproveRoleChange(ctx context.Context, store db.Store, logger *zap.Logger, admin *model.Volunteer, requestID string) error {
	if !admin.Admin {
		return fmt.Errorf("only administrators can approve role changes")
	}

	request, err := store.FetchRoleChangeRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch role change request: %w", err)
	}
	if request.Status != model.RoleChangePending {
		return fmt.Errorf("request %s is already %s", requestID, request.Status)
	}

	volunteer, err := store.FetchVolunteerProfile(ctx, request.VolunteerID)
	if err != nil {
		return fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}

	previous := volunteer.Role
	volunteer.Role = request.RequestedRole
	if err := store.UpdateVolunteerProfile(ctx, volunteer); err != nil {
		return fmt.Errorf("failed to update volunteer role: %w", err)
	}

	if err := store.ResolveRoleChangeRequest(ctx, requestID, model.RoleChangeApproved); err != nil {
		return fmt.Errorf("failed to resolve role change request: %w", err)
	}

	logger.Info("Role change approved",
		zap.String("request_id", requestID),
		zap.String("volunteer_id", volunteer.ID),
		zap.String("from", previous.String()),
		zap.String("to", volunteer.Role.String()),
		zap.String("approved_by", admin.ID))

	warnMismatchedAssignments(ctx, store, logger, volunteer)

	return nil
}

// RejectRoleChange marks a pending request rejected.
func RejectRoleChange(ctx context.Context, store db.Store, logger *zap.Logger, admin *model.Volunteer, requestID string) error {
	if !admin.Admin {
		return fmt.Errorf("only administrators can reject role changes")
	}
	if err := store.ResolveRoleChangeRequest(ctx, requestID, model.RoleChangeRejected); err != nil {
		return fmt.Errorf("failed to resolve role change request: %w", err)
	}
	logger.Info("Role change rejected",
		zap.String("request_id", requestID),
		zap.String("rejected_by", admin.ID))
	return nil
}

func warnMismatchedAssignments(ctx context.Context, store db.ShiftStore, logger *zap.Logger, volunteer *model.Volunteer) {
	now := time.Now()
	shifts, err := store.FetchUpcomingShifts(ctx, now, now.AddDate(0, 6, 0))
	if err != nil {
		logger.Warn("Failed to check upcoming assignments after role change", zap.Error(err))
		return
	}
	for i := range shifts {
		a := shifts[i].AssignmentFor(volunteer.ID)
		if a != nil && a.Role != volunteer.Role {
			logger.Warn("Upcoming assignment no longer matches volunteer role",
				zap.String("shift_id", shifts[i].ID),
				zap.String("shift_date", shifts[i].DateString()),
				zap.String("assignment_role", a.Role.String()),
				zap.String("volunteer_role", volunteer.Role.String()))
		}
	}
}
