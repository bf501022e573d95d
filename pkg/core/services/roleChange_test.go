package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
)

func TestRequestRoleChange(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})

	request, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleLevel2)
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, model.RoleChangePending, request.Status)
	assert.Equal(t, model.RoleLevel2, request.RequestedRole)
}

func TestRequestRoleChange_SameRole(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})

	_, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleLevel1)
	assert.Error(t, err)
}

func TestApproveRoleChange(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})
	admin := store.addVolunteer(model.Volunteer{ID: "adm", Role: model.RoleTeamLeader, Active: true, Admin: true})

	request, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleTeamLeader)
	require.NoError(t, err)

	err = ApproveRoleChange(context.Background(), store, zap.NewNop(), admin, request.ID)
	require.NoError(t, err)

	updated, err := store.FetchVolunteerProfile(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeamLeader, updated.Role)

	resolved, err := store.FetchRoleChangeRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleChangeApproved, resolved.Status)
}

func TestApproveRoleChange_NonAdmin(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})
	notAdmin := store.addVolunteer(model.Volunteer{ID: "v2", Role: model.RoleLevel2, Active: true})

	request, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleLevel2)
	require.NoError(t, err)

	err = ApproveRoleChange(context.Background(), store, zap.NewNop(), notAdmin, request.ID)
	assert.Error(t, err)

	// Role unchanged.
	v, _ := store.FetchVolunteerProfile(context.Background(), "v1")
	assert.Equal(t, model.RoleLevel1, v.Role)
}

func TestApproveRoleChange_KeepsExistingAssignments(t *testing.T) {
	// Assignments snapshot the role at signup; approval must not revoke them.
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})
	admin := store.addVolunteer(model.Volunteer{ID: "adm", Role: model.RoleTeamLeader, Active: true, Admin: true})

	s := emptyEarlyShift()
	s.Assignments = []model.Assignment{{ID: "a1", ShiftID: s.ID, VolunteerID: "v1", Role: model.RoleLevel1}}
	store.addShift(s)

	request, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleLevel2)
	require.NoError(t, err)
	require.NoError(t, ApproveRoleChange(context.Background(), store, zap.NewNop(), admin, request.ID))

	shift, _ := store.FetchShiftByID(context.Background(), "shift-early")
	a := shift.AssignmentFor("v1")
	require.NotNil(t, a)
	assert.Equal(t, model.RoleLevel1, a.Role)
}

func TestRejectRoleChange(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", Role: model.RoleLevel1, Active: true})
	admin := store.addVolunteer(model.Volunteer{ID: "adm", Role: model.RoleTeamLeader, Active: true, Admin: true})

	request, err := RequestRoleChange(context.Background(), store, zap.NewNop(), "v1", model.RoleLevel2)
	require.NoError(t, err)
	require.NoError(t, RejectRoleChange(context.Background(), store, zap.NewNop(), admin, request.ID))

	resolved, _ := store.FetchRoleChangeRequest(context.Background(), request.ID)
	assert.Equal(t, model.RoleChangeRejected, resolved.Status)

	v, _ := store.FetchVolunteerProfile(context.Background(), "v1")
	assert.Equal(t, model.RoleLevel1, v.Role)
}

func TestUpdateProfile_Validation(t *testing.T) {
	store := newMockStore()
	store.addVolunteer(model.Volunteer{ID: "v1", FirstName: "Ana", LastName: "Reyes", Email: "ana@example.org", Role: model.RoleLevel1, Active: true})

	err := UpdateProfile(context.Background(), store, zap.NewNop(), "v1", ProfileUpdate{
		FirstName: "Ana",
		LastName:  "Reyes-Wong",
		Email:     "not-an-email",
	})
	assert.Error(t, err)

	err = UpdateProfile(context.Background(), store, zap.NewNop(), "v1", ProfileUpdate{
		FirstName: "Ana",
		LastName:  "Reyes-Wong",
		Email:     "ana@example.org",
	})
	require.NoError(t, err)

	v, _ := store.FetchVolunteerProfile(context.Background(), "v1")
	assert.Equal(t, "Reyes-Wong", v.LastName)
}
