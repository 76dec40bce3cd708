package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paxfusion-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// DriveOAuth handles OAuth authentication with Google Drive
type DriveOAuth struct {
	config       *oauth2.Config
	refreshToken string
	logger       logger.Logger
}

// NewDriveOAuth creates a new Drive OAuth handler
func NewDriveOAuth(clientID, clientSecret, refreshToken string, logger logger.Logger) *DriveOAuth {
	return &DriveOAuth{
		config:       NewDriveConfig(clientID, clientSecret, ""),
		refreshToken: refreshToken,
		logger:       logger,
	}
}

// NewDriveConfig builds the read-only Drive OAuth client configuration
func NewDriveConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{drive.DriveReadonlyScope},
	}
}

// GetTokenSource returns a token source that can be used with the Drive API
func (o *DriveOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	token := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(), // Force refresh
	}

	return o.config.TokenSource(ctx, token)
}

// GenerateAuthURL generates a URL for the user to authorize the application
func (o *DriveOAuth) GenerateAuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token
func (o *DriveOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	o.logger.Info("Refresh token obtained")

	return token, nil
}

// TokenToJSON converts a token to JSON
func (o *DriveOAuth) TokenToJSON(token *oauth2.Token) (string, error) {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
