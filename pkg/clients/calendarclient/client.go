package calendarclient

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/cedarwatch/shiftdesk/internal/config"
	"github.com/cedarwatch/shiftdesk/pkg/utils"
)

// Client wraps the Google Calendar API client. It is read-only: the only
// consumer is the shift generator, which checks public holiday calendars.
type Client struct {
	service    *calendar.Service
	calendarID string
	ctx        context.Context
}

// NewClient creates a new Calendar client using OAuth credentials and
// performs the OAuth flow if needed.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, calendarID, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeCalendarReadonly})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	return NewClientWithToken(ctx, oauthCfg, calendarID, token)
}

// NewClientWithToken creates a new Calendar client from an existing token.
func NewClientWithToken(ctx context.Context, oauthCfg *config.OAuthClientConfig, calendarID string, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeCalendarReadonly})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
		ctx:        ctx,
	}, nil
}
