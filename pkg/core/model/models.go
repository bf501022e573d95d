package model

import (
	"fmt"
	"time"
)

// Role is a volunteer's certification level. It determines which capacity
// bucket of a shift the volunteer may fill.
type Role int8

const (
	RoleTeamLeader Role = iota + 1
	RoleLevel1
	RoleLevel2
)

// Role strings as stored in the backend.
const (
	roleTeamLeaderStr = "team_leader"
	roleLevel1Str     = "level_1"
	roleLevel2Str     = "level_2"
)

// ParseRole converts a stored role string into a Role.
// Unknown strings are an error rather than a silent fallback.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleTeamLeaderStr:
		return RoleTeamLeader, nil
	case roleLevel1Str:
		return RoleLevel1, nil
	case roleLevel2Str:
		return RoleLevel2, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleTeamLeader:
		return roleTeamLeaderStr
	case RoleLevel1:
		return roleLevel1Str
	case RoleLevel2:
		return roleLevel2Str
	default:
		return fmt.Sprintf("role(%d)", int8(r))
	}
}

// Display returns the human-readable role name.
func (r Role) Display() string {
	switch r {
	case RoleTeamLeader:
		return "Team Leader"
	case RoleLevel1:
		return "Level 1"
	case RoleLevel2:
		return "Level 2"
	default:
		return "Unknown"
	}
}

// IsValid reports whether r is one of the enumerated roles.
func (r Role) IsValid() bool {
	return r == RoleTeamLeader || r == RoleLevel1 || r == RoleLevel2
}

// TimeSlot is one of the two fixed patrol windows on a date.
type TimeSlot string

const (
	SlotEarly TimeSlot = "early"
	SlotLate  TimeSlot = "late"
)

// ParseTimeSlot converts a stored slot string into a TimeSlot.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(s) {
	case SlotEarly:
		return SlotEarly, nil
	case SlotLate:
		return SlotLate, nil
	default:
		return "", fmt.Errorf("unknown time slot %q", s)
	}
}

// Assignment is one volunteer's claim on a role slot of a shift.
// The role is snapshotted at signup time and stays authoritative even if the
// volunteer's profile role changes later.
type Assignment struct {
	ID          string
	ShiftID     string
	VolunteerID string
	Role        Role
	SignedUpAt  time.Time
}

// Shift is one early/late window on a calendar date. It is the aggregate root
// for its assignments as far as capacity invariants are concerned, even though
// assignments are stored as separate rows.
type Shift struct {
	ID          string
	Date        time.Time // calendar day, midnight UTC
	Slot        TimeSlot
	Label       string // e.g. holiday name, may be empty
	Assignments []Assignment
}

// AssignmentFor returns the volunteer's assignment on this shift, or nil.
func (s *Shift) AssignmentFor(volunteerID string) *Assignment {
	for i := range s.Assignments {
		if s.Assignments[i].VolunteerID == volunteerID {
			return &s.Assignments[i]
		}
	}
	return nil
}

// CountRole returns the number of assignments holding the given role.
func (s *Shift) CountRole(role Role) int {
	n := 0
	for i := range s.Assignments {
		if s.Assignments[i].Role == role {
			n++
		}
	}
	return n
}

// DateString formats the shift's calendar day.
func (s *Shift) DateString() string {
	return s.Date.Format("2006-01-02")
}

// Volunteer is a registered volunteer profile.
type Volunteer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      Role
	Active    bool
	Admin     bool
	AvatarURL string
}

// FullName returns "First Last".
func (v *Volunteer) FullName() string {
	return v.FirstName + " " + v.LastName
}

// RoleChangeRequest statuses.
const (
	RoleChangePending  = "pending"
	RoleChangeApproved = "approved"
	RoleChangeRejected = "rejected"
)

// RoleChangeRequest is a volunteer's request to move to a different role,
// resolved by an administrator.
type RoleChangeRequest struct {
	ID            string
	VolunteerID   string
	RequestedRole Role
	Status        string
	CreatedAt     time.Time
}
