package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cedarwatch/shiftdesk/internal/config"
	"github.com/cedarwatch/shiftdesk/pkg/clients/calendarclient"
	"github.com/cedarwatch/shiftdesk/pkg/clients/gmailclient"
	"github.com/cedarwatch/shiftdesk/pkg/clients/storageclient"
	"github.com/cedarwatch/shiftdesk/pkg/core/model"
	"github.com/cedarwatch/shiftdesk/pkg/postgres"
	"github.com/cedarwatch/shiftdesk/pkg/session"
)

// AppContext holds the application dependencies shared across all commands.
// The Google clients are created lazily so commands that never touch the
// Calendar, Gmail or Storage APIs don't trigger an OAuth flow.
type AppContext struct {
	Env      string
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context

	calendarClient *calendarclient.Client
	gmailClient    *gmailclient.Client
	storageClient  *storageclient.Client
}

// CalendarClient returns the holiday calendar client, creating it on first use.
func (app *AppContext) CalendarClient() (*calendarclient.Client, error) {
	if app.calendarClient != nil {
		return app.calendarClient, nil
	}

	app.Logger.Info("Initializing calendar client")
	client, err := calendarclient.NewClient(app.Ctx, app.OAuthCfg, app.Cfg.HolidayCalendarID, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	app.calendarClient = client
	return client, nil
}

// GmailClient returns the notification mailer, creating it on first use.
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	app.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(app.Ctx, app.OAuthCfg, app.Cfg.GmailUserID, app.Cfg.GmailSender, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.gmailClient = client
	return client, nil
}

// StorageClient returns the avatar bucket client, creating it on first use.
func (app *AppContext) StorageClient() (*storageclient.Client, error) {
	if app.storageClient != nil {
		return app.storageClient, nil
	}

	app.Logger.Info("Initializing storage client")
	client, err := storageclient.NewClient(app.Ctx, app.Cfg.AvatarBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	app.storageClient = client
	return client, nil
}

// CurrentVolunteer resolves the logged-in volunteer for this environment.
func (app *AppContext) CurrentVolunteer() (*model.Volunteer, error) {
	return session.CurrentVolunteer(app.Ctx, app.Database, app.Env)
}
