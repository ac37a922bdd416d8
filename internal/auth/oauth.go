package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	// Google OAuth endpoints
	AuthURL     = "https://accounts.google.com/o/oauth2/auth"
	TokenURL    = "https://oauth2.googleapis.com/token"
	UserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// Scopes needed to identify the user; no Google data is read beyond the profile
var Scopes = []string{"openid", "email", "profile"}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8089/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// UserInfo is the OpenID Connect profile of the signed-in account.
// Subject is the stable account id used as the user id.
type UserInfo struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// AuthResult contains the token and profile from a successful sign-in
type AuthResult struct {
	Token *oauth2.Token
	User  UserInfo
}

// FetchUserInfo reads the signed-in profile from the userinfo endpoint. client
// must already attach the bearer token.
func FetchUserInfo(ctx context.Context, client *http.Client, endpoint string) (*UserInfo, error) {
	if endpoint == "" {
		endpoint = UserInfoURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching user info: unexpected status %s", resp.Status)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	if info.Subject == "" {
		return nil, fmt.Errorf("user info has no subject")
	}
	return &info, nil
}
