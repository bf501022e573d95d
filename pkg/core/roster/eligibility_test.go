package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
)

func level1Volunteer(id string) *model.Volunteer {
	return &model.Volunteer{ID: id, FirstName: "Ana", LastName: "Reyes", Role: model.RoleLevel1, Active: true}
}

func TestCanSignUp_EmptyShift(t *testing.T) {
	// Scenario: an empty early shift accepts a level-1 volunteer, after which
	// one level-1 spot remains.
	s := shiftWith()
	v := level1Volunteer("v1")

	assert.NoError(t, CanSignUp(v, s))

	s.Assignments = append(s.Assignments, model.Assignment{VolunteerID: v.ID, Role: v.Role})
	assert.Equal(t, 1, SpotsAvailable(s, model.RoleLevel1))
}

func TestCanSignUp_AlreadySignedUp(t *testing.T) {
	s := shiftWith()
	v := level1Volunteer("v1")
	s.Assignments = append(s.Assignments, model.Assignment{VolunteerID: v.ID, Role: v.Role})

	assert.ErrorIs(t, CanSignUp(v, s), ErrAlreadySignedUp)
}

func TestCanSignUp_ShiftFullForRole(t *testing.T) {
	// Scenario: two level-1 assignments already exist; a third level-1
	// volunteer is rejected even though other buckets are open.
	s := shiftWith(model.RoleLevel1, model.RoleLevel1)
	v := level1Volunteer("v9")

	assert.ErrorIs(t, CanSignUp(v, s), ErrShiftFull)
}

func TestCanSignUp_InactiveVolunteer(t *testing.T) {
	s := shiftWith()
	v := level1Volunteer("v1")
	v.Active = false

	assert.ErrorIs(t, CanSignUp(v, s), ErrInactiveVolunteer)
}

func TestCanWithdraw(t *testing.T) {
	signedUp := shiftWith()
	v := level1Volunteer("v1")
	signedUp.Assignments = append(signedUp.Assignments, model.Assignment{VolunteerID: v.ID, Role: v.Role})

	tests := []struct {
		name    string
		shift   *model.Shift
		reason  string
		wantErr error
	}{
		{"valid withdrawal", signedUp, "family emergency", nil},
		{"empty reason rejected", signedUp, "", ErrReasonRequired},
		{"whitespace reason rejected", signedUp, "   \t", ErrReasonRequired},
		{"not signed up", shiftWith(), "family emergency", ErrNotSignedUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanWithdraw(v, tt.shift, tt.reason)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePair(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	early := &model.Shift{ID: "e", Date: date, Slot: model.SlotEarly}
	late := &model.Shift{ID: "l", Date: date, Slot: model.SlotLate}

	assert.NoError(t, ValidatePair(early, late))

	swapped := ValidatePair(late, early)
	assert.ErrorIs(t, swapped, ErrPairIncomplete)

	otherDay := &model.Shift{ID: "l2", Date: date.AddDate(0, 0, 1), Slot: model.SlotLate}
	assert.ErrorIs(t, ValidatePair(early, otherDay), ErrPairIncomplete)
}
