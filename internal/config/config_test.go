// ABOUTME: Tests for kraftlog configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"kraftlog/internal/storage"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "none"}
	if got := cfg.GetBackend(); got != "none" {
		t.Errorf("GetBackend() = %q, want %q", got, "none")
	}
}

func TestGetServerURLDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetServerURL(); got != DefaultServerURL {
		t.Errorf("GetServerURL() = %q, want %q", got, DefaultServerURL)
	}
}

func TestGetServerURLTrimsTrailingSlash(t *testing.T) {
	cfg := &Config{ServerURL: "https://api.example.com/"}
	if got := cfg.GetServerURL(); got != "https://api.example.com" {
		t.Errorf("GetServerURL() = %q, want %q", got, "https://api.example.com")
	}
}

func TestGetUserIDUnconfigured(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetUserID(); err == nil {
		t.Error("Expected error when no user is configured")
	}
}

func TestGetUserIDInvalid(t *testing.T) {
	cfg := &Config{UserID: "not-a-uuid"}
	if _, err := cfg.GetUserID(); err == nil {
		t.Error("Expected error for malformed user id")
	}
}

func TestGetUserIDValid(t *testing.T) {
	cfg := &Config{UserID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}
	id, err := cfg.GetUserID()
	if err != nil {
		t.Fatalf("GetUserID() failed: %v", err)
	}
	if id.String() != cfg.UserID {
		t.Errorf("GetUserID() = %q, want %q", id, cfg.UserID)
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want %q", got, "")
	}
}

func TestExpandPathAbsolute(t *testing.T) {
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q, want %q", got, "/tmp/foo")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~")
	if got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
}

func TestExpandPathTildeSlash(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~/data/kraftlog")
	want := filepath.Join(home, "data/kraftlog")
	if got != want {
		t.Errorf("ExpandPath(\"~/data/kraftlog\") = %q, want %q", got, want)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/kraftlog-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "kraftlog-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.ServerURL != "" || cfg.Token != "" || cfg.UserID != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		ServerURL: "https://api.example.com",
		Token:     "secret",
		UserID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("ServerURL mismatch: got %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
	if loaded.Token != cfg.Token {
		t.Errorf("Token mismatch: got %q, want %q", loaded.Token, cfg.Token)
	}
	if loaded.UserID != cfg.UserID {
		t.Errorf("UserID mismatch: got %q, want %q", loaded.UserID, cfg.UserID)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{ServerURL: "https://api.example.com"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "kraftlog")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "kraftlog")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "kraftlog", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestEnsureDeviceIDGeneratesAndPersists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{}
	id, err := cfg.EnsureDeviceID()
	if err != nil {
		t.Fatalf("EnsureDeviceID() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected non-empty device id")
	}

	// Stable across calls and across reload.
	again, err := cfg.EnsureDeviceID()
	if err != nil {
		t.Fatalf("EnsureDeviceID() second call failed: %v", err)
	}
	if again != id {
		t.Errorf("Device id changed: %q then %q", id, again)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DeviceID != id {
		t.Errorf("Persisted device id = %q, want %q", loaded.DeviceID, id)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{
		Backend: "sqlite",
		DataDir: tmpDir,
	}

	store, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer store.Close()

	dbPath := filepath.Join(tmpDir, "kraftlog.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected kraftlog.db to be created")
	}
}

func TestOpenStorageNone(t *testing.T) {
	cfg := &Config{Backend: "none"}

	store, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for none failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*storage.NullStore); !ok {
		t.Errorf("Expected *storage.NullStore, got %T", store)
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{
		Backend: "invalid",
		DataDir: "/tmp",
	}

	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestOpenStorageDefaultBackend(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{DataDir: tmpDir}

	store, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() with default backend failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*storage.DB); !ok {
		t.Errorf("Expected *storage.DB, got %T", store)
	}
}
