package roster

import "errors"

// Domain errors. Validation errors are detected before any store write and
// returned synchronously; backend failures are wrapped separately by the
// store layer (see pkg/db.BackendError).
var (
	// ErrAlreadySignedUp means the volunteer already holds an assignment on the shift.
	ErrAlreadySignedUp = errors.New("volunteer is already signed up for this shift")

	// ErrShiftFull means the volunteer's role bucket has no open slots on the shift.
	ErrShiftFull = errors.New("shift has no open slots for this role")

	// ErrNotSignedUp means a withdrawal was requested without a matching assignment.
	ErrNotSignedUp = errors.New("volunteer is not signed up for this shift")

	// ErrReasonRequired means a withdrawal was requested with a blank reason.
	ErrReasonRequired = errors.New("a withdrawal reason is required")

	// ErrInactiveVolunteer means the volunteer profile is deactivated.
	ErrInactiveVolunteer = errors.New("volunteer profile is not active")

	// ErrPairRequired means a team leader attempted a single-shift operation.
	// Team leaders join and leave the early and late shifts of a date together.
	ErrPairRequired = errors.New("team leaders must use paired signup and withdrawal")

	// ErrPairTeamLeaderOnly means a non-team-leader attempted a paired
	// operation. Other roles join and leave shifts one at a time.
	ErrPairTeamLeaderOnly = errors.New("paired signup and withdrawal are for team leaders only")

	// ErrPairIncomplete means a paired operation cannot apply cleanly to both shifts.
	ErrPairIncomplete = errors.New("paired operation is not valid for both shifts")

	// ErrPartialPairing means a paired operation applied to one shift and the
	// compensating write for the other failed, leaving the pair half-applied.
	ErrPartialPairing = errors.New("paired operation applied partially")

	// ErrNotAuthenticated means no current volunteer session exists.
	ErrNotAuthenticated = errors.New("not authenticated")
)
