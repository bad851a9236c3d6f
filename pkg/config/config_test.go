package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "custom", "path")
	if GetConfigDir() != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, GetConfigDir())
	}
	if _, err := os.Stat(expectedDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
	if GetConfigFilePath() != customConfigPath {
		t.Errorf("Expected config file %s, got %s", customConfigPath, GetConfigFilePath())
	}
}

// TestCredentialsPathStructure validates credentials live next to the config
func TestCredentialsPathStructure(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	credsPath := GetCredentialsPath()
	if credsPath != filepath.Join(tempDir, "credentials") {
		t.Errorf("Unexpected credentials path %s", credsPath)
	}
}

func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	stringCases := map[string]string{
		"api.base_url":  "http://localhost:5000",
		"output.format": "text",
		"log.level":     "info",
		"log.file":      filepath.Join(tempDir, "impactboard-admin.log"),
	}
	for key, want := range stringCases {
		if got := GetString(key); got != want {
			t.Errorf("%s: got %q, want %q", key, got, want)
		}
	}

	intCases := map[string]int{
		"api.timeout":         30,
		"api.retry_count":     0,
		"notify.ttl_seconds":  3,
		"approvals.page_size": 10,
	}
	for key, want := range intCases {
		if got := GetInt(key); got != want {
			t.Errorf("%s: got %d, want %d", key, got, want)
		}
	}

	if !GetBool("approvals.demo_fallback") {
		t.Error("demo fallback should default to enabled")
	}
	if GetSeconds("api.timeout") != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", GetSeconds("api.timeout"))
	}
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")
	content := "[api]\nbase_url = \"https://admin.example.org\"\ntimeout = 5\n\n[approvals]\ndemo_fallback = false\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://admin.example.org" {
		t.Errorf("Expected overridden base URL, got %s", got)
	}
	if got := GetInt("api.timeout"); got != 5 {
		t.Errorf("Expected timeout 5, got %d", got)
	}
	if GetBool("approvals.demo_fallback") {
		t.Error("demo fallback should be disabled by the config file")
	}
	// Untouched keys keep their defaults
	if got := GetInt("approvals.page_size"); got != 10 {
		t.Errorf("Expected default page size, got %d", got)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("IMPACTBOARD_API_BASE_URL", "http://env.example:9000")
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "http://env.example:9000" {
		t.Errorf("Expected env override, got %s", got)
	}
}

func TestSetAndSetString(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	Set("output.format", "json")
	if GetString("output.format") != "json" {
		t.Error("Set should override the value in memory")
	}

	if err := SetString("api.base_url", "http://saved.example"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("SetString should write the config file: %v", err)
	}
}

func TestRealtimeURL(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:5000", "ws://localhost:5000/api/ws"},
		{"https://admin.example.org/", "wss://admin.example.org/api/ws"},
	}
	for _, tt := range tests {
		Set("api.base_url", tt.base)
		if got := RealtimeURL(); got != tt.want {
			t.Errorf("RealtimeURL(%s): got %s, want %s", tt.base, got, tt.want)
		}
	}

	Set("realtime.url", "wss://push.example.org/socket")
	if got := RealtimeURL(); got != "wss://push.example.org/socket" {
		t.Errorf("explicit realtime.url should win, got %s", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/logs/admin.log"); got != filepath.Join(home, "logs", "admin.log") {
		t.Errorf("unexpected expansion: %s", got)
	}
	if got := expandPath("/var/log/admin.log"); got != "/var/log/admin.log" {
		t.Errorf("absolute paths must be untouched, got %s", got)
	}
}
