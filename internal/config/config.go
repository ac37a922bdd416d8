package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides
const (
	EnvGoogleClientID     = "NUTRILOG_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "NUTRILOG_GOOGLE_CLIENT_SECRET"
	EnvDatabase           = "NUTRILOG_DB"
	EnvDebug              = "NUTRILOG_DEBUG"
)

// Config represents the application configuration
type Config struct {
	Google  GoogleConfig  `json:"google"`
	Storage StorageConfig `json:"storage"`
	Display DisplayConfig `json:"display"`
	Debug   bool          `json:"debug,omitempty"`
}

// GoogleConfig holds the OAuth client used for sign-in
type GoogleConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// StorageConfig locates the database
type StorageConfig struct {
	Path string `json:"path,omitempty"` // empty means ~/.nutrilog/data.db
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	WaterUnit string `json:"water_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			WaterUnit: "ml",
		},
	}
}

// Load reads the configuration from ~/.nutrilog/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Display.WaterUnit == "" {
		cfg.Display.WaterUnit = defaults.Display.WaterUnit
	}

	return &cfg, nil
}

// Resolve loads the config file if present, falling back to defaults, then
// applies .env files and environment overrides and validates the result.
func Resolve() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNoConfig) {
		d := DefaultConfig()
		cfg = &d
	} else if err != nil {
		return nil, err
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory and the config directory.
// Variables already set in the environment win.
func LoadDotEnv() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	for _, path := range []string{".env", filepath.Join(dir, ".env")} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any NUTRILOG_* variables that are set
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvGoogleClientID); v != "" {
		cfg.Google.ClientID = v
	}
	if v := os.Getenv(EnvGoogleClientSecret); v != "" {
		cfg.Google.ClientSecret = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

// Save writes the configuration to ~/.nutrilog/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Google = GoogleConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks the settings every command depends on
func (c *Config) Validate() error {
	if c.Display.WaterUnit != "" && c.Display.WaterUnit != "ml" && c.Display.WaterUnit != "oz" {
		return fmt.Errorf("display.water_unit must be \"ml\" or \"oz\", got %q", c.Display.WaterUnit)
	}
	return nil
}

// ValidateGoogle checks the OAuth client needed to sign in
func (c *Config) ValidateGoogle() error {
	if c.Google.ClientID == "" || c.Google.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("google.client_id is required - create an OAuth client at https://console.cloud.google.com/apis/credentials")
	}
	if c.Google.ClientSecret == "" || c.Google.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("google.client_secret is required - create an OAuth client at https://console.cloud.google.com/apis/credentials")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".nutrilog"), nil
}
