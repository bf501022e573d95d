package roster

import (
	"strings"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
)

// CanSignUp decides whether the volunteer may take a slot on the shift.
// It checks the snapshot only; the store enforces the same rules again at
// write time, so this check is advisory under concurrency.
func CanSignUp(volunteer *model.Volunteer, shift *model.Shift) error {
	if !volunteer.Active {
		return ErrInactiveVolunteer
	}
	if shift.AssignmentFor(volunteer.ID) != nil {
		return ErrAlreadySignedUp
	}
	if SpotsAvailable(shift, volunteer.Role) == 0 {
		return ErrShiftFull
	}
	return nil
}

// CanWithdraw decides whether the volunteer may withdraw from the shift.
// A blank reason is rejected here, before any store mutation.
func CanWithdraw(volunteer *model.Volunteer, shift *model.Shift, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if shift.AssignmentFor(volunteer.ID) == nil {
		return ErrNotSignedUp
	}
	return nil
}

// ValidatePair checks that two shifts form the early+late pair of a single
// calendar date, in that order.
func ValidatePair(early, late *model.Shift) error {
	if early.Slot != model.SlotEarly || late.Slot != model.SlotLate {
		return ErrPairIncomplete
	}
	if !early.Date.Equal(late.Date) {
		return ErrPairIncomplete
	}
	return nil
}
