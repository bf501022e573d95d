package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// FetchUpcomingShifts returns shifts dated within [rangeStart, rangeEnd],
// with their assignments, ordered by date then slot (early before late).
func (d *DB) FetchUpcomingShifts(ctx context.Context, rangeStart, rangeEnd time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_date, slot, label
		FROM shift
		WHERE shift_date BETWEEN $1 AND $2
		ORDER BY shift_date, slot
	`, rangeStart, rangeEnd)
	if err != nil {
		return nil, db.Backend("fetch upcoming shifts", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	index := make(map[string]int)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, db.Backend("fetch upcoming shifts", err)
		}
		index[s.ID] = len(shifts)
		shifts = append(shifts, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Backend("fetch upcoming shifts", err)
	}
	if len(shifts) == 0 {
		return nil, nil
	}

	assignments, err := d.fetchAssignmentsForRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if i, ok := index[a.ShiftID]; ok {
			shifts[i].Assignments = append(shifts[i].Assignments, a)
		}
	}

	return shifts, nil
}

// FetchShiftByID returns one shift with its current assignments.
func (d *DB) FetchShiftByID(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, shift_date, slot, label
		FROM shift
		WHERE id = $1
	`, id)

	s, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.Backend("fetch shift", fmt.Errorf("shift %s not found", id))
		}
		return nil, db.Backend("fetch shift", err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, volunteer_id, role, signed_up_at
		FROM assignment
		WHERE shift_id = $1
		ORDER BY signed_up_at
	`, id)
	if err != nil {
		return nil, db.Backend("fetch shift assignments", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, db.Backend("fetch shift assignments", err)
		}
		s.Assignments = append(s.Assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Backend("fetch shift assignments", err)
	}

	return s, nil
}

// CreateShift inserts a new shift row.
func (d *DB) CreateShift(ctx context.Context, shift *model.Shift) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift (id, shift_date, slot, label)
		VALUES ($1, $2, $3, $4)
	`, shift.ID, shift.Date, string(shift.Slot), shift.Label)
	if err != nil {
		return db.Backend("create shift", err)
	}
	return nil
}

func (d *DB) fetchAssignmentsForRange(ctx context.Context, rangeStart, rangeEnd time.Time) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.shift_id, a.volunteer_id, a.role, a.signed_up_at
		FROM assignment a
		JOIN shift s ON s.id = a.shift_id
		WHERE s.shift_date BETWEEN $1 AND $2
		ORDER BY a.signed_up_at
	`, rangeStart, rangeEnd)
	if err != nil {
		return nil, db.Backend("fetch assignments", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, db.Backend("fetch assignments", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Backend("fetch assignments", err)
	}
	return assignments, nil
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	var slot string
	if err := row.Scan(&s.ID, &s.Date, &slot, &s.Label); err != nil {
		return nil, err
	}
	parsed, err := model.ParseTimeSlot(slot)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shift slot: %w", err)
	}
	s.Slot = parsed
	return &s, nil
}

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	var role string
	if err := row.Scan(&a.ID, &a.ShiftID, &a.VolunteerID, &role, &a.SignedUpAt); err != nil {
		return nil, err
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assignment role: %w", err)
	}
	a.Role = parsed
	return &a, nil
}
