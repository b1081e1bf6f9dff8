// ABOUTME: Kraftlog configuration management with backend selection.
// ABOUTME: Handles server settings, identity, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"kraftlog/internal/storage"
)

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:3000"

// Config stores kraftlog configuration.
type Config struct {
	// ServerURL is the base URL of the sync server.
	ServerURL string `json:"server_url,omitempty"`

	// Token is the bearer token attached to API requests.
	Token string `json:"token,omitempty"`

	// UserID is the signed-in user's id.
	UserID string `json:"user_id,omitempty"`

	// DeviceID identifies this installation to the server.
	// Generated on first use and stored back to disk.
	DeviceID string `json:"device_id,omitempty"`

	// Backend selects the storage backend: "sqlite" (default) or "none".
	// "none" runs API-only with no local mirror or outbox.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data. The SQLite mirror
	// lives here as kraftlog.db. Supports ~ expansion.
	// Defaults to ~/.local/share/kraftlog.
	DataDir string `json:"data_dir,omitempty"`
}

// GetServerURL returns the configured server URL with any trailing
// slash trimmed, defaulting to DefaultServerURL.
func (c *Config) GetServerURL() string {
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return strings.TrimRight(c.ServerURL, "/")
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUserID parses the configured user id.
func (c *Config) GetUserID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, fmt.Errorf("no user configured; run 'kraftlog login' first")
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", c.UserID, err)
	}
	return id, nil
}

// EnsureDeviceID returns the stored device id, generating and saving
// one on first use.
func (c *Config) EnsureDeviceID() (string, error) {
	if c.DeviceID != "" {
		return c.DeviceID, nil
	}
	c.DeviceID = ulid.Make().String()
	if err := c.Save(); err != nil {
		return "", fmt.Errorf("saving device id: %w", err)
	}
	return c.DeviceID, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Store implementation based on the configured
// backend. "sqlite" opens the local mirror; "none" returns the no-op
// store for API-only operation.
func (c *Config) OpenStorage() (storage.Store, error) {
	switch c.GetBackend() {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "kraftlog.db")
		return storage.Open(dbPath)
	case "none":
		return storage.NewNullStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "kraftlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
