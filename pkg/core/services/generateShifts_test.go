package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
)

type stubHolidayFeed struct {
	holidays map[string]string
	err      error
}

func (s *stubHolidayFeed) Holidays(ctx context.Context, rangeStart, rangeEnd time.Time) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.holidays, nil
}

func TestGenerateShifts_WeeklyRecurrence(t *testing.T) {
	store := newMockStore()

	params := GenerateParams{
		RangeStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC),
		RRule:      "FREQ=WEEKLY;BYDAY=SA",
	}

	result, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	require.NoError(t, err)

	// Two Saturdays in range, one early and one late shift each.
	assert.Len(t, result.Created, 4)
	assert.Equal(t, 0, result.Skipped)

	slots := map[model.TimeSlot]int{}
	for _, s := range result.Created {
		assert.Equal(t, time.Saturday, s.Date.Weekday())
		slots[s.Slot]++
	}
	assert.Equal(t, 2, slots[model.SlotEarly])
	assert.Equal(t, 2, slots[model.SlotLate])
}

func TestGenerateShifts_Idempotent(t *testing.T) {
	store := newMockStore()
	params := GenerateParams{
		RangeStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC),
		RRule:      "FREQ=WEEKLY;BYDAY=SA",
	}

	first, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	require.NoError(t, err)
	require.Len(t, first.Created, 4)

	second, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 4, second.Skipped)
}

func TestGenerateShifts_HolidaysMergedWithLabel(t *testing.T) {
	store := newMockStore()
	feed := &stubHolidayFeed{holidays: map[string]string{
		"2026-01-01": "New Year's Day",
	}}

	params := GenerateParams{
		RangeStart:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:        time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
		RRule:           "FREQ=WEEKLY;BYDAY=SA",
		IncludeHolidays: true,
	}

	result, err := GenerateShifts(context.Background(), store, feed, zap.NewNop(), params)
	require.NoError(t, err)

	// One Saturday (Jan 3) plus the holiday, two slots each.
	require.Len(t, result.Created, 4)

	var labelled int
	for _, s := range result.Created {
		if s.DateString() == "2026-01-01" {
			assert.Equal(t, "New Year's Day", s.Label)
			labelled++
		} else {
			assert.Empty(t, s.Label)
		}
	}
	assert.Equal(t, 2, labelled)
}

func TestGenerateShifts_InvalidRule(t *testing.T) {
	store := newMockStore()
	params := GenerateParams{
		RangeStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
		RRule:      "FREQ=BOGUS",
	}

	_, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	assert.Error(t, err)
}

func TestGenerateShifts_NothingToGenerate(t *testing.T) {
	store := newMockStore()
	params := GenerateParams{
		RangeStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
	}

	_, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	assert.Error(t, err)
}

func TestGenerateShifts_InvertedRange(t *testing.T) {
	store := newMockStore()
	params := GenerateParams{
		RangeStart: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RRule:      "FREQ=DAILY",
	}

	_, err := GenerateShifts(context.Background(), store, nil, zap.NewNop(), params)
	assert.Error(t, err)
}

func TestUpcomingShifts_Capacity(t *testing.T) {
	store := newMockStore()
	s := model.Shift{ID: "s1", Date: patrolDate, Slot: model.SlotEarly}
	s.Assignments = []model.Assignment{
		{ID: "a1", ShiftID: "s1", VolunteerID: "v1", Role: model.RoleTeamLeader},
		{ID: "a2", ShiftID: "s1", VolunteerID: "v2", Role: model.RoleLevel1},
	}
	store.addShift(s)

	summaries, err := UpcomingShifts(context.Background(), store, zap.NewNop(), patrolDate.AddDate(0, 0, -1), patrolDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.False(t, summaries[0].Capacity.TeamLeaderOpen)
	assert.Equal(t, 1, summaries[0].Capacity.Level1Open)
	assert.True(t, summaries[0].Capacity.Level2Open)
	assert.Equal(t, 0, summaries[0].SpotsFor(model.RoleTeamLeader))
	assert.Equal(t, 1, summaries[0].SpotsFor(model.RoleLevel1))
}
