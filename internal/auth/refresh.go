package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// RefreshBuffer is how long before expiry a token is refreshed
const RefreshBuffer = 60 * time.Second

// TokenSource wraps oauth2.TokenSource with persistence
// It automatically refreshes tokens and calls onRefresh when a new token is obtained
type TokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	onRefresh func(*oauth2.Token) error
	mu        sync.Mutex
}

// NewTokenSource creates a new TokenSource that will refresh tokens as needed
// and call onRefresh to persist new tokens
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:    cfg,
		token:     token,
		onRefresh: onRefresh,
	}
}

// Token returns a valid token, refreshing if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > RefreshBuffer {
		return ts.token, nil
	}

	// Force a refresh even if the oauth2 package still considers the token valid
	expired := *ts.token
	expired.Expiry = time.Now().Add(-time.Second)
	newToken, err := ts.config.TokenSource(context.Background(), &expired).Token()
	if err != nil {
		return nil, err
	}
	// Google omits the refresh token on refresh; keep the one we have
	if newToken.RefreshToken == "" {
		newToken.RefreshToken = ts.token.RefreshToken
	}

	if ts.onRefresh != nil {
		if err := ts.onRefresh(newToken); err != nil {
			return nil, err
		}
	}

	ts.token = newToken
	return newToken, nil
}

// Client returns an HTTP client authorized with this source
func (ts *TokenSource) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, ts)
}

// IsExpired checks if the current token is expired or will expire within the buffer
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return time.Until(ts.token.Expiry) <= RefreshBuffer
}

// CurrentToken returns the current token without refreshing
func (ts *TokenSource) CurrentToken() *oauth2.Token {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token
}
