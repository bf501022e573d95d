package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

// FetchVolunteerProfile returns one volunteer profile.
func (d *DB) FetchVolunteerProfile(ctx context.Context, id string) (*model.Volunteer, error) {
	return d.fetchVolunteer(ctx, `WHERE id = $1`, id)
}

// FetchVolunteerByEmail returns the volunteer registered under the email, used
// by login to resolve the current session.
func (d *DB) FetchVolunteerByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	return d.fetchVolunteer(ctx, `WHERE email = $1`, email)
}

func (d *DB) fetchVolunteer(ctx context.Context, where string, arg any) (*model.Volunteer, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, role, active, admin, avatar_url
		FROM volunteer
	`+where, arg)

	var v model.Volunteer
	var role string
	err := row.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Phone, &role, &v.Active, &v.Admin, &v.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.Backend("fetch volunteer", fmt.Errorf("volunteer not found"))
		}
		return nil, db.Backend("fetch volunteer", err)
	}

	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, db.Backend("fetch volunteer", err)
	}
	v.Role = parsed
	return &v, nil
}

// UpdateVolunteerProfile persists profile edits. The role column is written
// too; only the role-change approval path changes it.
func (d *DB) UpdateVolunteerProfile(ctx context.Context, volunteer *model.Volunteer) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE volunteer
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    role = $6, active = $7, admin = $8, avatar_url = $9
		WHERE id = $1
	`, volunteer.ID, volunteer.FirstName, volunteer.LastName, volunteer.Email, volunteer.Phone,
		volunteer.Role.String(), volunteer.Active, volunteer.Admin, volunteer.AvatarURL)
	if err != nil {
		return db.Backend("update volunteer", err)
	}
	if tag.RowsAffected() == 0 {
		return db.Backend("update volunteer", fmt.Errorf("volunteer %s not found", volunteer.ID))
	}
	return nil
}
