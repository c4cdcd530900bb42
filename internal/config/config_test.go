package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type testOptions struct {
	Config       string
	Port         int    `toml:"port" env:"PORT"`
	CameraURL    string `toml:"camera-url" env:"CAMERA_URL"`
	SettingsFile string `toml:"settings-file" env:"SETTINGS_FILE"`
	Debug        bool   `toml:"debug" env:"DEBUG"`
	AuthUsername string `toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `toml:"auth.password" env:"AUTH_PASSWORD"`
}

func newTestCommand(opts *testOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&opts.Config, "config", opts.Config, "")
	cmd.Flags().IntVar(&opts.Port, "port", 8080, "")
	cmd.Flags().StringVar(&opts.CameraURL, "camera-url", "", "")
	cmd.Flags().StringVar(&opts.SettingsFile, "settings-file", "", "")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "")
	cmd.Flags().StringVar(&opts.AuthUsername, "auth-username", "", "")
	cmd.Flags().StringVar(&opts.AuthPassword, "auth-password", "", "")
	return cmd
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeConfigFile(t, `
port = 9090
camera-url = "http://camera.local"
settings-file = "/var/lib/streamroles/settings.toml"
debug = true
`)

	opts := &testOptions{Config: path, Port: 8080}
	cmd := newTestCommand(opts)

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != 9090 {
		t.Errorf("expected port 9090, got %d", opts.Port)
	}
	if opts.CameraURL != "http://camera.local" {
		t.Errorf("expected camera URL from file, got %q", opts.CameraURL)
	}
	if opts.SettingsFile != "/var/lib/streamroles/settings.toml" {
		t.Errorf("expected settings file from file, got %q", opts.SettingsFile)
	}
	if !opts.Debug {
		t.Error("expected debug true from file")
	}
}

func TestLoadConfigNestedTOMLPath(t *testing.T) {
	path := writeConfigFile(t, `
[auth]
username = "admin"
password = "secret"
`)

	opts := &testOptions{Config: path}
	cmd := newTestCommand(opts)

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.AuthUsername != "admin" {
		t.Errorf("expected nested username from file, got %q", opts.AuthUsername)
	}
	if opts.AuthPassword != "secret" {
		t.Errorf("expected nested password from file, got %q", opts.AuthPassword)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `port = 9090`)

	t.Setenv("STREAMROLES_PORT", "7070")

	opts := &testOptions{Config: path, Port: 8080}
	cmd := newTestCommand(opts)

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != 7070 {
		t.Errorf("expected env to override file, got %d", opts.Port)
	}
}

func TestLoadConfigFlagOverridesEverything(t *testing.T) {
	path := writeConfigFile(t, `port = 9090`)

	t.Setenv("STREAMROLES_PORT", "7070")

	opts := &testOptions{Config: path}
	cmd := newTestCommand(opts)
	if err := cmd.Flags().Set("port", "6060"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Port != 6060 {
		t.Errorf("expected flag to win over env and file, got %d", opts.Port)
	}
}

func TestLoadConfigMissingFileIgnored(t *testing.T) {
	opts := &testOptions{Config: "/nonexistent/config.toml", Port: 8080}
	cmd := newTestCommand(opts)

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("expected missing config file to be ignored, got %v", err)
	}

	if opts.Port != 8080 {
		t.Errorf("expected default port to survive, got %d", opts.Port)
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"Port", "port"},
		{"CameraURL", "camera-url"},
		{"SettingsFile", "settings-file"},
		{"LoggingLevel", "logging-level"},
		{"AuthUsername", "auth-username"},
	}
	for _, tt := range tests {
		if got := fieldNameToFlag(tt.field); got != tt.want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeConfigFile(t, `
[logging]
level = "warn"
format = "json"
roles = "debug"
camera = "error"
`)

	cfg := LoadLoggingConfig(path)

	if cfg.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.Modules["roles"] != "debug" {
		t.Errorf("expected roles module debug, got %q", cfg.Modules["roles"])
	}
	if cfg.Modules["camera"] != "error" {
		t.Errorf("expected camera module error, got %q", cfg.Modules["camera"])
	}
}

func TestLoadLoggingConfigMissingFile(t *testing.T) {
	cfg := LoadLoggingConfig("/nonexistent/config.toml")
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("expected defaults for missing file, got level=%q format=%q", cfg.Level, cfg.Format)
	}
}
