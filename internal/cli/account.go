package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"nutrilog/internal/auth"
	"nutrilog/internal/config"
	"nutrilog/internal/store"
)

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google so your log is kept under your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		if err := cfg.ValidateGoogle(); err != nil {
			if exErr := createExampleIfMissing(); exErr == nil {
				configDir, _ := config.GetConfigDir()
				fmt.Fprintf(out, "Please edit the config file at:\n  %s/config.json\n\n", configDir)
			}
			return err
		}

		result, err := auth.Authenticate(cmd.Context(), oauthConfig(cfg), out)
		if err != nil {
			return fmt.Errorf("authentication: %w", err)
		}

		account := accountFromResult(result)
		if err := db.SaveAuth(account); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Signed in as %s\n", account.Profile().Name())
		return nil
	},
}

func accountFromResult(result *auth.AuthResult) *store.Auth {
	return &store.Auth{
		UserID:       result.User.Subject,
		Email:        result.User.Email,
		DisplayName:  result.User.Name,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}
}

// createExampleIfMissing writes a config template the user can fill in
func createExampleIfMissing() error {
	if _, err := config.Load(); errors.Is(err, config.ErrNoConfig) {
		return config.CreateExample()
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; your data stays on disk under your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteAuth(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in account and check its token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		account, err := db.GetAuth()
		if errors.Is(err, store.ErrNoAuth) {
			fmt.Fprintln(out, "Not signed in; data is stored for the local user")
			return nil
		}
		if err != nil {
			return fmt.Errorf("checking auth: %w", err)
		}
		fmt.Fprintf(out, "Signed in as %s (%s)\n", account.Profile().Name(), account.UserID)

		if cfg.ValidateGoogle() != nil {
			return nil
		}
		oauthCfg := oauthConfig(cfg)
		token := &oauth2.Token{
			AccessToken:  account.AccessToken,
			RefreshToken: account.RefreshToken,
			Expiry:       account.ExpiresAt,
		}
		ts := auth.NewTokenSource(oauthCfg, token, func(t *oauth2.Token) error {
			return db.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry)
		})
		if _, err := ts.Token(); err != nil {
			fmt.Fprintln(out, overStyle.Render("Token could not be refreshed; run nutrilog login"))
			return nil
		}
		if _, err := auth.FetchUserInfo(cmd.Context(), ts.Client(cmd.Context()), ""); err != nil {
			fmt.Fprintln(out, overStyle.Render("Token rejected by Google; run nutrilog login"))
			return nil
		}
		fmt.Fprintln(out, "Token is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}
