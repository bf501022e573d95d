package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
)

var patrolDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func emptyEarlyShift() model.Shift {
	return model.Shift{ID: "shift-early", Date: patrolDate, Slot: model.SlotEarly}
}

func TestSignUp_EmptyShift(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", FirstName: "Ana", LastName: "Reyes", Role: model.RoleLevel1, Active: true})
	store.addShift(emptyEarlyShift())

	shift, err := SignUp(context.Background(), store, zap.NewNop(), "v1", "shift-early")
	require.NoError(t, err)
	require.NotNil(t, shift)

	// One level-1 slot was taken, one remains.
	require.NotNil(t, shift.AssignmentFor("v1"))
	assert.Equal(t, 1, roster.SpotsAvailable(shift, model.RoleLevel1))
}

func TestSignUp_AlreadySignedUp(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})
	s := emptyEarlyShift()
	s.Assignments = []model.Assignment{{ID: "a1", ShiftID: s.ID, VolunteerID: "v1", Role: model.RoleLevel1}}
	store.addShift(s)

	_, err := SignUp(context.Background(), store, zap.NewNop(), "v1", "shift-early")
	assert.ErrorIs(t, err, roster.ErrAlreadySignedUp)
}

func TestSignUp_ShiftFullForRole(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v3", Role: model.RoleLevel1, Active: true})
	s := emptyEarlyShift()
	s.Assignments = []model.Assignment{
		{ID: "a1", ShiftID: s.ID, VolunteerID: "v1", Role: model.RoleLevel1},
		{ID: "a2", ShiftID: s.ID, VolunteerID: "v2", Role: model.RoleLevel1},
	}
	store.addShift(s)

	_, err := SignUp(context.Background(), store, zap.NewNop(), "v3", "shift-early")
	assert.ErrorIs(t, err, roster.ErrShiftFull)

	// Nothing was written.
	stored, fetchErr := store.FetchShiftByID(context.Background(), "shift-early")
	require.NoError(t, fetchErr)
	assert.Len(t, stored.Assignments, 2)
}

func TestSignUp_TeamLeaderMustPair(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "tl", Role: model.RoleTeamLeader, Active: true})
	store.addShift(emptyEarlyShift())

	_, err := SignUp(context.Background(), store, zap.NewNop(), "tl", "shift-early")
	assert.ErrorIs(t, err, roster.ErrPairRequired)
}

func TestSignUp_InactiveVolunteer(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel2, Active: false})
	store.addShift(emptyEarlyShift())

	_, err := SignUp(context.Background(), store, zap.NewNop(), "v1", "shift-early")
	assert.ErrorIs(t, err, roster.ErrInactiveVolunteer)
}
