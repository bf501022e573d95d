package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// ShiftSummary pairs a shift snapshot with its capacity report.
type ShiftSummary struct {
	Shift    model.Shift
	Capacity roster.Capacity
}

// SpotsFor returns the open count on this shift for the given role.
func (s *ShiftSummary) SpotsFor(role model.Role) int {
	return roster.SpotsAvailable(&s.Shift, role)
}

// UpcomingShifts fetches the shifts in [rangeStart, rangeEnd] with their
// capacity, in the store's date/slot order.
func UpcomingShifts(ctx context.Context, store db.ShiftStore, logger *zap.Logger, rangeStart, rangeEnd time.Time) ([]ShiftSummary, error) {
	logger.Debug("Fetching upcoming shifts",
		zap.String("range_start", rangeStart.Format("2006-01-02")),
		zap.String("range_end", rangeEnd.Format("2006-01-02")))

	shifts, err := store.FetchUpcomingShifts(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming shifts: %w", err)
	}

	summaries := make([]ShiftSummary, 0, len(shifts))
	for i := range shifts {
		summaries = append(summaries, ShiftSummary{
			Shift:    shifts[i],
			Capacity: roster.Snapshot(&shifts[i]),
		})
	}

	logger.Debug("Upcoming shifts fetched", zap.Int("count", len(summaries)))
	return summaries, nil
}
