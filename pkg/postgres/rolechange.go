package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// CreateRoleChangeRequest inserts a pending role-change request.
func (d *DB) CreateRoleChangeRequest(ctx context.Context, request *model.RoleChangeRequest) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO role_change_request (id, volunteer_id, requested_role, status)
		VALUES ($1, $2, $3, $4)
	`, request.ID, request.VolunteerID, request.RequestedRole.String(), request.Status)
	if err != nil {
		return db.Backend("create role change request", err)
	}
	return nil
}

// FetchRoleChangeRequest returns one request by id.
func (d *DB) FetchRoleChangeRequest(ctx context.Context, id string) (*model.RoleChangeRequest, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, volunteer_id, requested_role, status, created_at
		FROM role_change_request
		WHERE id = $1
	`, id)

	var r model.RoleChangeRequest
	var role string
	err := row.Scan(&r.ID, &r.VolunteerID, &role, &r.Status, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.Backend("fetch role change request", fmt.Errorf("request %s not found", id))
		}
		return nil, db.Backend("fetch role change request", err)
	}

	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, db.Backend("fetch role change request", err)
	}
	r.RequestedRole = parsed
	return &r, nil
}

// ResolveRoleChangeRequest marks a pending request approved or rejected.
func (d *DB) ResolveRoleChangeRequest(ctx context.Context, id, status string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE role_change_request
		SET status = $2
		WHERE id = $1 AND status = 'pending'
	`, id, status)
	if err != nil {
		return db.Backend("resolve role change request", err)
	}
	if tag.RowsAffected() == 0 {
		return db.Backend("resolve role change request", fmt.Errorf("request %s is not pending", id))
	}
	return nil
}
