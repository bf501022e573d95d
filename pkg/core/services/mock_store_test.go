package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// mockStore is an in-memory db.Store that mirrors the backend's write-time
// admission control, so service tests can exercise both the guard and the
// store contract.
type mockStore struct {
	volunteers map[string]*model.Volunteer
	shifts     map[string]*model.Shift

	withdrawals []mockWithdrawal
	requests    map[string]*model.RoleChangeRequest

	createErr map[string]error // per shift id
	deleteErr map[string]error
}

type mockWithdrawal struct {
	ShiftID     string
	VolunteerID string
	Reason      string
}

func newMockStore() *mockStore {
	return &mockStore{
		volunteers: make(map[string]*model.Volunteer),
		shifts:     make(map[string]*model.Shift),
		requests:   make(map[string]*model.RoleChangeRequest),
		createErr:  make(map[string]error),
		deleteErr:  make(map[string]error),
	}
}

func (m *mockStore) addVolunteer(v model.Volunteer) *model.Volunteer {
	m.volunteers[v.ID] = &v
	return &v
}

func (m *mockStore) addShift(s model.Shift) *model.Shift {
	m.shifts[s.ID] = &s
	return &s
}

func (m *mockStore) FetchUpcomingShifts(ctx context.Context, rangeStart, rangeEnd time.Time) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range m.shifts {
		if !s.Date.Before(rangeStart) && !s.Date.After(rangeEnd) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStore) FetchShiftByID(ctx context.Context, id string) (*model.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, db.Backend("fetch shift", fmt.Errorf("shift %s not found", id))
	}
	copied := *s
	copied.Assignments = append([]model.Assignment(nil), s.Assignments...)
	return &copied, nil
}

func (m *mockStore) CreateShift(ctx context.Context, shift *model.Shift) error {
	m.shifts[shift.ID] = shift
	return nil
}

func (m *mockStore) CreateAssignment(ctx context.Context, shiftID, volunteerID string, role model.Role) error {
	if err := m.createErr[shiftID]; err != nil {
		return err
	}
	s, ok := m.shifts[shiftID]
	if !ok {
		return db.Backend("create assignment", fmt.Errorf("shift %s not found", shiftID))
	}
	if s.AssignmentFor(volunteerID) != nil {
		return roster.ErrAlreadySignedUp
	}
	if roster.SpotsAvailable(s, role) == 0 {
		return roster.ErrShiftFull
	}
	s.Assignments = append(s.Assignments, model.Assignment{
		ID:          uuid.New().String(),
		ShiftID:     shiftID,
		VolunteerID: volunteerID,
		Role:        role,
		SignedUpAt:  time.Now(),
	})
	return nil
}

func (m *mockStore) DeleteAssignment(ctx context.Context, shiftID, volunteerID, reason string) error {
	if err := m.deleteErr[shiftID]; err != nil {
		return err
	}
	s, ok := m.shifts[shiftID]
	if !ok {
		return db.Backend("delete assignment", fmt.Errorf("shift %s not found", shiftID))
	}
	for i := range s.Assignments {
		if s.Assignments[i].VolunteerID == volunteerID {
			s.Assignments = append(s.Assignments[:i], s.Assignments[i+1:]...)
			m.withdrawals = append(m.withdrawals, mockWithdrawal{shiftID, volunteerID, reason})
			return nil
		}
	}
	return roster.ErrNotSignedUp
}

func (m *mockStore) FetchVolunteerProfile(ctx context.Context, id string) (*model.Volunteer, error) {
	v, ok := m.volunteers[id]
	if !ok {
		return nil, db.Backend("fetch volunteer", fmt.Errorf("volunteer not found"))
	}
	copied := *v
	return &copied, nil
}

func (m *mockStore) FetchVolunteerByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	for _, v := range m.volunteers {
		if v.Email == email {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateVolunteerProfile(ctx context.Context, volunteer *model.Volunteer) error {
	if _, ok := m.volunteers[volunteer.ID]; !ok {
		return db.Backend("update volunteer", fmt.Errorf("volunteer not found"))
	}
	copied := *volunteer
	m.volunteers[volunteer.ID] = &copied
	return nil
}

func (m *mockStore) CreateRoleChangeRequest(ctx context.Context, request *model.RoleChangeRequest) error {
	copied := *request
	m.requests[request.ID] = &copied
	return nil
}

func (m *mockStore) FetchRoleChangeRequest(ctx context.Context, id string) (*model.RoleChangeRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, db.Backend("fetch role change request", fmt.Errorf("request %s not found", id))
	}
	copied := *r
	return &copied, nil
}

func (m *mockStore) ResolveRoleChangeRequest(ctx context.Context, id, status string) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.RoleChangePending {
		return db.Backend("resolve role change request", fmt.Errorf("request %s is not pending", id))
	}
	r.Status = status
	return nil
}

// mockPairStore adds the transactional pair contract on top of mockStore.
type mockPairStore struct {
	*mockStore
	pairCalls int
}

func (m *mockPairStore) CreateAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID string) error {
	m.pairCalls++
	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		s := m.shifts[shiftID]
		if s.AssignmentFor(volunteerID) != nil || roster.SpotsAvailable(s, model.RoleTeamLeader) == 0 {
			return fmt.Errorf("%w: shift %s", roster.ErrPairIncomplete, shiftID)
		}
	}
	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		if err := m.CreateAssignment(ctx, shiftID, volunteerID, model.RoleTeamLeader); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockPairStore) DeleteAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID, reason string) error {
	m.pairCalls++
	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		if m.shifts[shiftID].AssignmentFor(volunteerID) == nil {
			return fmt.Errorf("%w: shift %s", roster.ErrPairIncomplete, shiftID)
		}
	}
	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		if err := m.DeleteAssignment(ctx, shiftID, volunteerID, reason); err != nil {
			return err
		}
	}
	return nil
}

// mockNotifier records sent emails.
type mockNotifier struct {
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

func (m *mockNotifier) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}
