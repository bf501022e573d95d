package roster

import "github.com/cedarwatch/shiftdesk/pkg/core/model"

// Slot counts per role bucket. A fully staffed shift has one team leader,
// two level-1 volunteers and one level-2 volunteer.
const (
	TeamLeaderSlots = 1
	Level1Slots     = 2
	Level2Slots     = 1
	MaxOccupancy    = TeamLeaderSlots + Level1Slots + Level2Slots
)

// Capacity reports the open slots of a shift, per role bucket.
type Capacity struct {
	TeamLeaderOpen bool
	Level1Open     int
	Level2Open     bool
}

// Snapshot computes the capacity report for a shift's current assignments.
// It is a pure function of the snapshot; the store remains the single source
// of truth and nothing is cached.
func Snapshot(shift *model.Shift) Capacity {
	level1Open := Level1Slots - shift.CountRole(model.RoleLevel1)
	if level1Open < 0 {
		level1Open = 0
	}
	return Capacity{
		TeamLeaderOpen: shift.CountRole(model.RoleTeamLeader) == 0,
		Level1Open:     level1Open,
		Level2Open:     shift.CountRole(model.RoleLevel2) == 0,
	}
}

// SpotsAvailable returns the number of open slots on the shift for a
// candidate role. Roles outside the enumerated set get zero slots.
func SpotsAvailable(shift *model.Shift, role model.Role) int {
	open := slotsFor(role) - shift.CountRole(role)
	if open < 0 {
		return 0
	}
	return open
}

func slotsFor(role model.Role) int {
	switch role {
	case model.RoleTeamLeader:
		return TeamLeaderSlots
	case model.RoleLevel1:
		return Level1Slots
	case model.RoleLevel2:
		return Level2Slots
	default:
		return 0
	}
}

// DisplayOrder lists the role buckets in the order slots are presented,
// used only for display, never for admission control.
func DisplayOrder() []model.Role {
	return []model.Role{model.RoleTeamLeader, model.RoleLevel1, model.RoleLevel2}
}
