package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestNewOAuthConfig(t *testing.T) {
	cfg := NewOAuthConfig(Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost:8089/callback"})

	if cfg.Endpoint.AuthURL != AuthURL || cfg.Endpoint.TokenURL != TokenURL {
		t.Errorf("Endpoint = %+v", cfg.Endpoint)
	}
	if len(cfg.Scopes) != 3 || cfg.Scopes[0] != "openid" {
		t.Errorf("Scopes = %v", cfg.Scopes)
	}
	if cfg.ClientID != "id" || cfg.RedirectURL != "http://localhost:8089/callback" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantErr    bool
	}{
		{"valid code", "state=abc&code=xyz", http.StatusOK, "xyz", false},
		{"state mismatch", "state=evil&code=xyz", http.StatusBadRequest, "", true},
		{"provider error", "state=abc&error=access_denied", http.StatusBadRequest, "", true},
		{"missing code", "state=abc", http.StatusBadRequest, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codeChan := make(chan string, 1)
			errChan := make(chan error, 1)
			handler := callbackHandler("abc", codeChan, errChan)

			req := httptest.NewRequest(http.MethodGet, "/callback?"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			select {
			case code := <-codeChan:
				if code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
			case err := <-errChan:
				if !tt.wantErr {
					t.Errorf("unexpected error: %v", err)
				}
			default:
				t.Error("handler sent nothing")
			}
		})
	}
}

func TestCallbackHandlerDoesNotBlock(t *testing.T) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)
	handler := callbackHandler("abc", codeChan, errChan)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=bad", nil))
	}
	if len(errChan) != 1 {
		t.Errorf("errChan has %d errors, want 1", len(errChan))
	}
}

func TestGenerateState(t *testing.T) {
	a, err := generateState()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := generateState()
	if len(a) != 32 || a == b {
		t.Errorf("states %q and %q", a, b)
	}
}

func TestFetchUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sub":"1098","email":"ada@example.com","name":"Ada L"}`)
	}))
	defer srv.Close()

	cfg := NewOAuthConfig(Config{ClientID: "id"})
	ctx := context.Background()

	good := cfg.Client(ctx, &oauth2.Token{AccessToken: "good", Expiry: time.Now().Add(time.Hour)})
	info, err := FetchUserInfo(ctx, good, srv.URL)
	if err != nil {
		t.Fatalf("FetchUserInfo failed: %v", err)
	}
	if info.Subject != "1098" || info.Email != "ada@example.com" || info.Name != "Ada L" {
		t.Errorf("info = %+v", info)
	}

	bad := cfg.Client(ctx, &oauth2.Token{AccessToken: "bad", Expiry: time.Now().Add(time.Hour)})
	if _, err := FetchUserInfo(ctx, bad, srv.URL); err == nil {
		t.Error("expected error for unauthorized token")
	}
}

func TestTokenSourceRefresh(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" || r.Form.Get("refresh_token") != "refresh-1" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"access-2","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	cfg := &oauth2.Config{ClientID: "id", ClientSecret: "secret", Endpoint: oauth2.Endpoint{TokenURL: srv.URL}}

	var persisted *oauth2.Token
	onRefresh := func(tok *oauth2.Token) error {
		persisted = tok
		return nil
	}

	fresh := &oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1", Expiry: time.Now().Add(time.Hour)}
	ts := NewTokenSource(cfg, fresh, onRefresh)
	if tok, err := ts.Token(); err != nil || tok.AccessToken != "access-1" {
		t.Fatalf("fresh token = %v, %v", tok, err)
	}
	if calls != 0 || ts.IsExpired() {
		t.Fatalf("fresh token should not refresh")
	}

	expiring := &oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1", Expiry: time.Now().Add(30 * time.Second)}
	ts = NewTokenSource(cfg, expiring, onRefresh)
	if !ts.IsExpired() {
		t.Error("token inside the refresh buffer should count as expired")
	}
	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if tok.AccessToken != "access-2" || tok.RefreshToken != "refresh-1" {
		t.Errorf("refreshed token = %+v", tok)
	}
	if persisted == nil || persisted.AccessToken != "access-2" {
		t.Error("onRefresh not called with new token")
	}
	if ts.CurrentToken().AccessToken != "access-2" {
		t.Error("CurrentToken not updated")
	}
}

func TestTokenSourceClientRefreshesBeforeRequest(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"access-2","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenSrv.Close()

	var gotAuth string
	infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sub":"1098"}`)
	}))
	defer infoSrv.Close()

	cfg := &oauth2.Config{ClientID: "id", Endpoint: oauth2.Endpoint{TokenURL: tokenSrv.URL}}
	expired := &oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute)}
	ts := NewTokenSource(cfg, expired, nil)

	ctx := context.Background()
	info, err := FetchUserInfo(ctx, ts.Client(ctx), infoSrv.URL)
	if err != nil {
		t.Fatalf("FetchUserInfo failed: %v", err)
	}
	if info.Subject != "1098" {
		t.Errorf("subject = %q", info.Subject)
	}
	if gotAuth != "Bearer access-2" {
		t.Errorf("Authorization = %q, want refreshed token", gotAuth)
	}
}
