package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// fakeTx records the statements a write issues, standing in for a live
// transaction.
type fakeTx struct {
	statements []string

	rowErr  error
	execTag pgconn.CommandTag
	execErr error
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	return f.execTag, f.execErr
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.statements = append(f.statements, sql)
	return fakeRow{err: f.rowErr}
}

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*string); ok {
			*p = "shift-1"
		}
	}
	return nil
}

func TestCreateAssignment_LocksShiftBeforeInsert(t *testing.T) {
	tx := &fakeTx{execTag: pgconn.NewCommandTag("INSERT 0 1")}

	err := createAssignment(context.Background(), tx, "shift-1", "vol-1", model.RoleLevel1)
	require.NoError(t, err)

	// The shift row lock must be taken before the guarded insert, otherwise
	// two racing claims can both see the last open level-1 slot.
	require.Len(t, tx.statements, 2)
	assert.Contains(t, tx.statements[0], "FOR UPDATE")
	assert.Contains(t, tx.statements[1], "INSERT INTO assignment")
}

func TestCreateAssignment_FullBucket(t *testing.T) {
	tx := &fakeTx{execTag: pgconn.NewCommandTag("INSERT 0 0")}

	err := createAssignment(context.Background(), tx, "shift-1", "vol-1", model.RoleLevel1)
	assert.ErrorIs(t, err, roster.ErrShiftFull)
}

func TestCreateAssignment_MissingShift(t *testing.T) {
	tx := &fakeTx{rowErr: pgx.ErrNoRows}

	err := createAssignment(context.Background(), tx, "gone", "vol-1", model.RoleLevel2)
	require.Error(t, err)

	var backendErr *db.BackendError
	assert.ErrorAs(t, err, &backendErr)

	// The insert never ran.
	require.Len(t, tx.statements, 1)
	assert.True(t, strings.Contains(tx.statements[0], "FOR UPDATE"))
}

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate signup",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "assignment_shift_id_volunteer_id_key"},
			want: roster.ErrAlreadySignedUp,
		},
		{
			name: "team leader slot taken",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "uq_assignment_team_leader"},
			want: roster.ErrShiftFull,
		},
		{
			name: "level 2 slot taken",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "uq_assignment_level_2"},
			want: roster.ErrShiftFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError("create assignment", tt.err), tt.want)
		})
	}

	t.Run("other violations pass through", func(t *testing.T) {
		err := mapWriteError("create assignment", &pgconn.PgError{Code: "23503"})
		var backendErr *db.BackendError
		assert.ErrorAs(t, err, &backendErr)
		assert.NotErrorIs(t, err, roster.ErrShiftFull)
	})
}
