package store

import (
	"errors"
	"testing"
	"time"
)

func TestAuth(t *testing.T) {
	db := setupTestDB(t)
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("GetAuth without account", func(t *testing.T) {
		_, err := db.GetAuth()
		if !errors.Is(err, ErrNoAuth) {
			t.Errorf("GetAuth() error = %v, want ErrNoAuth", err)
		}
	})

	t.Run("UpdateTokens without account", func(t *testing.T) {
		err := db.UpdateTokens("a", "r", expiry)
		if !errors.Is(err, ErrNoAuth) {
			t.Errorf("UpdateTokens() error = %v, want ErrNoAuth", err)
		}
	})

	t.Run("SaveAuth then GetAuth", func(t *testing.T) {
		err := db.SaveAuth(&Auth{
			UserID:       "1234567890",
			Email:        "sam@example.com",
			DisplayName:  "Sam",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    expiry,
		})
		if err != nil {
			t.Fatalf("SaveAuth() error = %v", err)
		}

		got, err := db.GetAuth()
		if err != nil {
			t.Fatalf("GetAuth() error = %v", err)
		}
		if got.UserID != "1234567890" || got.Email != "sam@example.com" || got.DisplayName != "Sam" {
			t.Errorf("GetAuth() = %+v", got)
		}
		if !got.ExpiresAt.Equal(expiry) {
			t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expiry)
		}
		if p := got.Profile(); p.Name() != "Sam" || p.UID != "1234567890" {
			t.Errorf("Profile() = %+v", p)
		}
	})

	t.Run("UpdateTokens keeps the account", func(t *testing.T) {
		later := expiry.Add(time.Hour)
		if err := db.UpdateTokens("access2", "refresh2", later); err != nil {
			t.Fatalf("UpdateTokens() error = %v", err)
		}
		got, err := db.GetAuth()
		if err != nil {
			t.Fatalf("GetAuth() error = %v", err)
		}
		if got.AccessToken != "access2" || got.RefreshToken != "refresh2" || got.UserID != "1234567890" {
			t.Errorf("GetAuth() = %+v", got)
		}
	})

	t.Run("DeleteAuth signs out", func(t *testing.T) {
		if err := db.DeleteAuth(); err != nil {
			t.Fatalf("DeleteAuth() error = %v", err)
		}
		if _, err := db.GetAuth(); !errors.Is(err, ErrNoAuth) {
			t.Errorf("GetAuth() error = %v, want ErrNoAuth", err)
		}
	})
}

func TestParseFitnessMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FitnessMode
		wantErr bool
	}{
		{"maintenance", ModeMaintenance, false},
		{"weightLoss", ModeWeightLoss, false},
		{"weight-loss", ModeWeightLoss, false},
		{"muscleGain", ModeMuscleGain, false},
		{"gain", ModeMuscleGain, false},
		{"bulk", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFitnessMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFitnessMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFitnessMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
