package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultServerURL is used when neither the config file nor the environment names a server
const DefaultServerURL = "http://localhost:8080"

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	ServerURL     string   `json:"server_url,omitempty"`
	SessionCookie string   `json:"session_cookie,omitempty"`
	CookieName    string   `json:"cookie_name,omitempty"`
	TypeFilters   []string `json:"type_filters,omitempty"`
	CourseFilter  string   `json:"course_filter,omitempty"`
	UpcomingLimit int      `json:"upcoming_limit,omitempty"`
	AccentColor   string   `json:"accent_color,omitempty"`
}

// getConfigPath returns the absolute path to ~/.studyctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studyctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv reads the config file and then applies STUDYCTL_SERVER and
// STUDYCTL_SESSION, picking them up from a .env file in the working directory if present.
func LoadWithEnv() (*AppConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	// A missing .env is the normal case
	_ = godotenv.Load()

	if v := os.Getenv("STUDYCTL_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("STUDYCTL_SESSION"); v != "" {
		cfg.SessionCookie = v
	}
	return cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// The file may hold a session cookie
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Server returns the configured base URL or DefaultServerURL.
func (c *AppConfig) Server() string {
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return c.ServerURL
}

// Cookie returns the session cookie name, JSESSIONID unless overridden.
func (c *AppConfig) Cookie() string {
	if c.CookieName == "" {
		return "JSESSIONID"
	}
	return c.CookieName
}

// Limit returns how many upcoming events to request.
func (c *AppConfig) Limit() int {
	if c.UpcomingLimit <= 0 {
		return 4
	}
	return c.UpcomingLimit
}
