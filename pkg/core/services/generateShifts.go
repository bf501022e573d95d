package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// HolidayFeed looks up public holidays in a date range. Keys are dates in
// 2006-01-02 form, values the holiday name. Satisfied by the calendar client.
type HolidayFeed interface {
	Holidays(ctx context.Context, rangeStart, rangeEnd time.Time) (map[string]string, error)
}

// GenerateParams controls a bulk shift-generation run.
type GenerateParams struct {
	RangeStart time.Time
	RangeEnd   time.Time
	// RRule is an RFC 5545 recurrence for the regular patrol dates,
	// e.g. "FREQ=WEEKLY;BYDAY=FR,SA". Optional when IncludeHolidays is set.
	RRule string
	// IncludeHolidays adds every holiday in the range as a patrol date,
	// labelling its shifts with the holiday name.
	IncludeHolidays bool
}

// GenerateResult reports what a generation run did.
type GenerateResult struct {
	Created []model.Shift
	Skipped int
}

// GenerateShifts bulk-creates the early and late shifts for every patrol
// date in the range: the recurrence dates plus, optionally, the holiday
// feed's dates. Dates that already have a shift for a slot are skipped, so
// re-running over the same range is safe.
func GenerateShifts(ctx context.Context, store db.ShiftStore, feed HolidayFeed, logger *zap.Logger, params GenerateParams) (*GenerateResult, error) {
	if params.RangeEnd.Before(params.RangeStart) {
		return nil, fmt.Errorf("range end %s is before range start %s",
			params.RangeEnd.Format("2006-01-02"), params.RangeStart.Format("2006-01-02"))
	}
	if params.RRule == "" && !params.IncludeHolidays {
		return nil, fmt.Errorf("nothing to generate: no recurrence rule and holidays not included")
	}

	logger.Info("Generating shifts",
		zap.String("range_start", params.RangeStart.Format("2006-01-02")),
		zap.String("range_end", params.RangeEnd.Format("2006-01-02")),
		zap.String("rrule", params.RRule),
		zap.Bool("include_holidays", params.IncludeHolidays))

	labels := make(map[string]string) // date -> label
	var dates []string

	if params.RRule != "" {
		rule, err := rrule.StrToRRule(params.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recurrence rule: %w", err)
		}
		rule.DTStart(params.RangeStart)
		for _, occ := range rule.Between(params.RangeStart, params.RangeEnd, true) {
			day := occ.Format("2006-01-02")
			if _, seen := labels[day]; !seen {
				labels[day] = ""
				dates = append(dates, day)
			}
		}
		logger.Debug("Recurrence dates resolved", zap.Int("count", len(dates)))
	}

	if params.IncludeHolidays {
		if feed == nil {
			return nil, fmt.Errorf("holiday feed is not configured")
		}
		holidays, err := feed.Holidays(ctx, params.RangeStart, params.RangeEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch holidays: %w", err)
		}
		for day, name := range holidays {
			if _, seen := labels[day]; !seen {
				dates = append(dates, day)
			}
			labels[day] = name
		}
		logger.Debug("Holidays merged", zap.Int("count", len(holidays)))
	}

	sort.Strings(dates)

	existing, err := store.FetchUpcomingShifts(ctx, params.RangeStart, params.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing shifts: %w", err)
	}
	taken := make(map[string]bool)
	for _, s := range existing {
		taken[s.DateString()+"/"+string(s.Slot)] = true
	}

	result := &GenerateResult{}
	for _, day := range dates {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse generated date: %w", err)
		}
		for _, slot := range []model.TimeSlot{model.SlotEarly, model.SlotLate} {
			if taken[day+"/"+string(slot)] {
				result.Skipped++
				continue
			}
			shift := model.Shift{
				ID:    uuid.New().String(),
				Date:  date,
				Slot:  slot,
				Label: labels[day],
			}
			if err := store.CreateShift(ctx, &shift); err != nil {
				return nil, fmt.Errorf("failed to create shift for %s (%s): %w", day, slot, err)
			}
			result.Created = append(result.Created, shift)
		}
	}

	logger.Info("Shift generation complete",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
