package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	tperrors "github.com/Green254/taskpulse-cli/internal/errors"
)

// DefaultAPIBaseURL is used when neither the environment nor the config
// file names an API server. The TaskPulse backend listens on port 8000.
const DefaultAPIBaseURL = "http://127.0.0.1:8000"

// Config holds CLI configuration resolved from file and environment.
type Config struct {
	// APIBaseURL is the TaskPulse API server base URL (scheme://host:port).
	APIBaseURL string `yaml:"api_url"`

	// Passphrase, when non-empty, seals the persisted bearer token at rest.
	// Only settable via TASKPULSE_PASSPHRASE, never via the config file.
	Passphrase string `yaml:"-"`

	// LogLevel is the minimum diagnostic level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Output selects the default command output format (text, json, yaml).
	Output string `yaml:"output"`

	// PerPage is the default page size for task listings.
	PerPage int `yaml:"per_page"`

	// StateDir overrides where the session is persisted.
	StateDir string `yaml:"state_dir"`
}

// Dir returns the user-level configuration directory (~/.config/taskpulse).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taskpulse"), nil
}

// Load resolves configuration in precedence order:
//  1. environment (TASKPULSE_API_URL, TASKPULSE_PASSPHRASE, TASKPULSE_LOG_LEVEL)
//  2. config file (~/.config/taskpulse/config.yaml)
//  3. built-in defaults
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultAPIBaseURL,
		LogLevel:   "warn",
		Output:     "text",
		PerPage:    25,
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.yaml")
	if data, readErr := os.ReadFile(path); readErr == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, tperrors.NewConfigUnmarshalError(path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("TASKPULSE_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPULSE_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	cfg.Passphrase = os.Getenv("TASKPULSE_PASSPHRASE")

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.PerPage <= 0 {
		cfg.PerPage = 25
	}
	if cfg.StateDir == "" {
		cfg.StateDir = dir
	}

	return cfg, nil
}

// APIURL returns the endpoint root: the base URL joined with the /api prefix.
func (c *Config) APIURL() string {
	return c.APIBaseURL + "/api"
}

// Save writes the configuration back to the user config file.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o600)
}
