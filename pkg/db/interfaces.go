package db

import (
	"context"
	"time"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
)

// ShiftStore defines shift read/write operations against the backend.
type ShiftStore interface {
	// FetchUpcomingShifts returns shifts whose date falls in [rangeStart, rangeEnd],
	// assignments included, ordered by date then slot.
	FetchUpcomingShifts(ctx context.Context, rangeStart, rangeEnd time.Time) ([]model.Shift, error)

	// FetchShiftByID returns the shift with its current assignments.
	FetchShiftByID(ctx context.Context, id string) (*model.Shift, error)

	// CreateShift inserts a new shift row.
	CreateShift(ctx context.Context, shift *model.Shift) error
}

// AssignmentStore defines single-assignment write operations.
type AssignmentStore interface {
	// CreateAssignment claims one role slot. Implementations enforce the
	// capacity invariants at write time and return roster.ErrShiftFull or
	// roster.ErrAlreadySignedUp when a concurrent write won the slot.
	CreateAssignment(ctx context.Context, shiftID, volunteerID string, role model.Role) error

	// DeleteAssignment removes the volunteer's assignment, recording the
	// withdrawal reason for audit. Returns roster.ErrNotSignedUp when no
	// assignment exists.
	DeleteAssignment(ctx context.Context, shiftID, volunteerID, reason string) error
}

// PairStore is implemented by stores that can apply a team-leader pair as a
// single multi-row transaction. When available it replaces the two-write
// compensating path in the service layer.
type PairStore interface {
	CreateAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID string) error
	DeleteAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID, reason string) error
}

// VolunteerStore defines volunteer profile operations.
type VolunteerStore interface {
	FetchVolunteerProfile(ctx context.Context, id string) (*model.Volunteer, error)

	// FetchVolunteerByEmail returns the volunteer with the given email, or
	// nil when none exists. Used by the login flow.
	FetchVolunteerByEmail(ctx context.Context, email string) (*model.Volunteer, error)

	UpdateVolunteerProfile(ctx context.Context, volunteer *model.Volunteer) error
}

// RoleChangeStore defines role-change request operations.
type RoleChangeStore interface {
	CreateRoleChangeRequest(ctx context.Context, request *model.RoleChangeRequest) error
	FetchRoleChangeRequest(ctx context.Context, id string) (*model.RoleChangeRequest, error)
	ResolveRoleChangeRequest(ctx context.Context, id, status string) error
}

// Store is the full backend surface used by the service layer.
type Store interface {
	ShiftStore
	AssignmentStore
	VolunteerStore
	RoleChangeStore
}
