package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// The insert only succeeds while the role bucket has an open slot. The count
// subquery alone is not race-safe under READ COMMITTED (two racing level-1
// signups would each see the last open slot), so claims on a shift serialize
// on the shift row lock taken first.
const (
	lockShiftSQL = `SELECT id FROM shift WHERE id = $1 FOR UPDATE`

	guardedInsertSQL = `
	INSERT INTO assignment (id, shift_id, volunteer_id, role)
	SELECT $1, $2, $3, $4
	WHERE (SELECT COUNT(*) FROM assignment WHERE shift_id = $2 AND role = $4) < $5
`
)

type writeTx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateAssignment claims one role slot on the shift.
func (d *DB) CreateAssignment(ctx context.Context, shiftID, volunteerID string, role model.Role) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.Backend("create assignment", err)
	}
	defer tx.Rollback(ctx)

	if err := createAssignment(ctx, tx, shiftID, volunteerID, role); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Backend("create assignment", err)
	}
	return nil
}

func createAssignment(ctx context.Context, tx writeTx, shiftID, volunteerID string, role model.Role) error {
	var locked string
	if err := tx.QueryRow(ctx, lockShiftSQL, shiftID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Backend("create assignment", fmt.Errorf("shift %s not found", shiftID))
		}
		return db.Backend("create assignment", err)
	}

	tag, err := tx.Exec(ctx, guardedInsertSQL,
		uuid.New().String(), shiftID, volunteerID, role.String(), slotsInBucket(role))
	if err != nil {
		return mapWriteError("create assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrShiftFull
	}
	return nil
}

// DeleteAssignment removes the volunteer's assignment and records the
// withdrawal reason for audit, in one transaction.
func (d *DB) DeleteAssignment(ctx context.Context, shiftID, volunteerID, reason string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.Backend("delete assignment", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteAssignment(ctx, tx, shiftID, volunteerID, reason); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Backend("delete assignment", err)
	}
	return nil
}

func deleteAssignment(ctx context.Context, tx pgx.Tx, shiftID, volunteerID, reason string) error {
	var role string
	err := tx.QueryRow(ctx, `
		DELETE FROM assignment
		WHERE shift_id = $1 AND volunteer_id = $2
		RETURNING role
	`, shiftID, volunteerID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ErrNotSignedUp
		}
		return mapWriteError("delete assignment", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO withdrawal (id, shift_id, volunteer_id, role, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), shiftID, volunteerID, role, reason)
	if err != nil {
		return mapWriteError("record withdrawal", err)
	}
	return nil
}

// CreateAssignmentPair signs a team leader up for both shifts of a date in a
// single transaction: either both assignments exist afterwards or neither does.
func (d *DB) CreateAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.Backend("create assignment pair", err)
	}
	defer tx.Rollback(ctx)

	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		if err := createAssignment(ctx, tx, shiftID, volunteerID, model.RoleTeamLeader); err != nil {
			if errors.Is(err, roster.ErrShiftFull) || errors.Is(err, roster.ErrAlreadySignedUp) {
				return fmt.Errorf("%w: shift %s: %v", roster.ErrPairIncomplete, shiftID, err)
			}
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Backend("create assignment pair", err)
	}
	return nil
}

// DeleteAssignmentPair withdraws a team leader from both shifts of a date in
// a single transaction, recording one withdrawal row per shift.
func (d *DB) DeleteAssignmentPair(ctx context.Context, earlyShiftID, lateShiftID, volunteerID, reason string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return db.Backend("delete assignment pair", err)
	}
	defer tx.Rollback(ctx)

	for _, shiftID := range []string{earlyShiftID, lateShiftID} {
		if err := deleteAssignment(ctx, tx, shiftID, volunteerID, reason); err != nil {
			if errors.Is(err, roster.ErrNotSignedUp) {
				return fmt.Errorf("%w: shift %s: %v", roster.ErrPairIncomplete, shiftID, err)
			}
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Backend("delete assignment pair", err)
	}
	return nil
}

func slotsInBucket(role model.Role) int {
	switch role {
	case model.RoleTeamLeader:
		return roster.TeamLeaderSlots
	case model.RoleLevel1:
		return roster.Level1Slots
	case model.RoleLevel2:
		return roster.Level2Slots
	default:
		return 0
	}
}

// mapWriteError turns the constraint violations that back the capacity
// invariants into their domain errors; anything else passes through as a
// BackendError.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "assignment_shift_id_volunteer_id_key":
			return roster.ErrAlreadySignedUp
		case "uq_assignment_team_leader", "uq_assignment_level_2":
			return roster.ErrShiftFull
		}
	}
	return db.Backend(op, err)
}
