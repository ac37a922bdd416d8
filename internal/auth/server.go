package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"nutrilog/internal/logger"
)

const (
	// CallbackPort is the port for the OAuth callback server
	CallbackPort = 8089
	// AuthTimeout is how long to wait for the user to complete auth
	AuthTimeout = 5 * time.Minute
)

// Authenticate runs the OAuth flow with a local callback server, then
// fetches the account profile. Instructions are written to out.
func Authenticate(ctx context.Context, cfg *oauth2.Config, out io.Writer) (*AuthResult, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(state, codeChan, errChan))

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To sign in with Google, open this URL in your browser:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", authURL)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Waiting for authentication...")

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		shutdownServer(server)
		return nil, err
	case <-time.After(AuthTimeout):
		shutdownServer(server)
		return nil, fmt.Errorf("authentication timeout after %v", AuthTimeout)
	case <-ctx.Done():
		shutdownServer(server)
		return nil, ctx.Err()
	}

	shutdownServer(server)

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}

	info, err := FetchUserInfo(ctx, cfg.Client(ctx, token), "")
	if err != nil {
		return nil, err
	}
	logger.Info("signed in", "user", info.Subject, "email", info.Email)

	return &AuthResult{Token: token, User: *info}, nil
}

// callbackHandler validates the redirect and hands the code to codeChan
func callbackHandler(state string, codeChan chan<- string, errChan chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			sendErr(errChan, fmt.Errorf("state mismatch - possible CSRF attack"))
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}

		if errMsg := q.Get("error"); errMsg != "" {
			sendErr(errChan, fmt.Errorf("auth error: %s", errMsg))
			http.Error(w, "Authentication failed", http.StatusBadRequest)
			return
		}

		code := q.Get("code")
		if code == "" {
			sendErr(errChan, fmt.Errorf("no code in callback"))
			http.Error(w, "No authorization code", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Signed in to nutrilog</title></head>
<body style="font-family: system-ui; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #10B981;">Signed in!</h1>
<p>You can close this window and return to the terminal.</p>
</div>
</body>
</html>`)
		select {
		case codeChan <- code:
		default:
		}
	}
}

// sendErr reports the first callback error; later ones are dropped
func sendErr(errChan chan<- error, err error) {
	select {
	case errChan <- err:
	default:
	}
}

// generateState creates a random state string for CSRF protection
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// shutdownServer gracefully shuts down the HTTP server
func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
