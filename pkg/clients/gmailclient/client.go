package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/cedarwatch/shiftdesk/internal/config"
	"github.com/cedarwatch/shiftdesk/pkg/utils"
)

// Client wraps the Gmail API client used for withdrawal notifications.
type Client struct {
	service      *gmail.Service
	userID       string
	sender       string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client using OAuth credentials and performs
// the OAuth flow if needed. userID is the Gmail account to send as (usually
// "me"); sender, when set, becomes the From header.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, userID, sender, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeGmailSend})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	return NewClientWithToken(ctx, oauthCfg, userID, sender, token)
}

// NewClientWithToken creates a new Gmail client from an existing token.
func NewClientWithToken(ctx context.Context, oauthCfg *config.OAuthClientConfig, userID, sender string, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeGmailSend})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		userID:  userID,
		sender:  sender,
	}, nil
}
