package services

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/pkg/db"
)

var validate = validator.New()

// ProfileUpdate carries the fields a volunteer may edit on their own profile.
// Role, active and admin flags change through other paths.
type ProfileUpdate struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,min=7"`
}

// AvatarUploader stores an avatar image and returns its public URL.
// Satisfied by the object-storage client.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, volunteerID string, r io.Reader, contentType string) (string, error)
}

// UpdateProfile validates and applies a volunteer's own profile edits.
func UpdateProfile(ctx context.Context, store db.VolunteerStore, logger *zap.Logger, volunteerID string, update ProfileUpdate) error {
	if err := validate.Struct(update); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}

	volunteer, err := store.FetchVolunteerProfile(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}

	volunteer.FirstName = update.FirstName
	volunteer.LastName = update.LastName
	volunteer.Email = update.Email
	volunteer.Phone = update.Phone

	if err := store.UpdateVolunteerProfile(ctx, volunteer); err != nil {
		return fmt.Errorf("failed to update volunteer profile: %w", err)
	}

	logger.Info("Profile updated", zap.String("volunteer_id", volunteerID))
	return nil
}

// SetAvatar uploads an avatar image and stores its public URL on the profile.
func SetAvatar(ctx context.Context, store db.VolunteerStore, uploader AvatarUploader, logger *zap.Logger, volunteerID string, r io.Reader, contentType string) (string, error) {
	volunteer, err := store.FetchVolunteerProfile(ctx, volunteerID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch volunteer profile: %w", err)
	}

	url, err := uploader.UploadAvatar(ctx, volunteerID, r, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	volunteer.AvatarURL = url
	if err := store.UpdateVolunteerProfile(ctx, volunteer); err != nil {
		return "", fmt.Errorf("failed to store avatar url: %w", err)
	}

	logger.Info("Avatar updated",
		zap.String("volunteer_id", volunteerID),
		zap.String("url", url))
	return url, nil
}
