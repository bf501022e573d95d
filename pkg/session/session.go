package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/core/roster"
	"github.com/cedarwatch/shiftdesk/pkg/db"
)

const sessionDirName = ".shiftdesk/sessions"

// Session records which volunteer is logged in for an environment.
type Session struct {
	VolunteerID string    `json:"volunteer_id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

func sessionFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, sessionDirName, fmt.Sprintf("session-%s.json", env)), nil
}

// Save writes the session for an environment.
func Save(env string, s *Session) error {
	path, err := sessionFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads the session for an environment. A missing file is not an error,
// just a nil session.
func Load(env string) (*Session, error) {
	path, err := sessionFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &s, nil
}

// Clear removes the session for an environment.
func Clear(env string) error {
	path, err := sessionFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// CurrentVolunteer resolves the logged-in volunteer for an environment
// against the backend. Returns ErrNotAuthenticated when no session exists or
// the session's volunteer is gone.
func CurrentVolunteer(ctx context.Context, store db.VolunteerStore, env string) (*model.Volunteer, error) {
	s, err := Load(env)
	if err != nil {
		return nil, err
	}
	if s == nil || s.VolunteerID == "" {
		return nil, roster.ErrNotAuthenticated
	}

	volunteer, err := store.FetchVolunteerProfile(ctx, s.VolunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session volunteer: %w", err)
	}
	if volunteer == nil {
		return nil, roster.ErrNotAuthenticated
	}

	return volunteer, nil
}
