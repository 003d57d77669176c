package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./scx.db" {
			t.Errorf("expected database path ./scx.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
		if config.API.BaseURL != "https://api.soundcloud.com" {
			t.Errorf("expected api base URL https://api.soundcloud.com, got %s", config.API.BaseURL)
		}
		if config.Store.Type != "sqlite" {
			t.Errorf("expected sqlite store, got %s", config.Store.Type)
		}
		if config.Credentials.SoundCloud.ClientID != "your_soundcloud_client_id" {
			t.Errorf("expected placeholder client_id, got %s", config.Credentials.SoundCloud.ClientID)
		}
	})

	t.Run("RedirectURI", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.RedirectURI(); got != "http://127.0.0.1:3000/callback" {
			t.Errorf("expected derived redirect URI, got %s", got)
		}

		config.Credentials.SoundCloud.RedirectURI = "https://lms.example.com/callback"
		if got := config.RedirectURI(); got != "https://lms.example.com/callback" {
			t.Errorf("expected configured redirect URI, got %s", got)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		if got := (APIConfig{}).Timeout(); got != 30*time.Second {
			t.Errorf("expected 30s default timeout, got %v", got)
		}
		if got := (APIConfig{TimeoutSeconds: 5}).Timeout(); got != 5*time.Second {
			t.Errorf("expected 5s timeout, got %v", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `user = "alice"

[credentials.soundcloud]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:4000/callback"

[store]
type = "redis"

[store.redis]
addr = "redis:6379"

[server]
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.User != "alice" {
			t.Errorf("expected user alice, got %s", config.User)
		}
		if config.Credentials.SoundCloud.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.SoundCloud.ClientID)
		}
		if config.Store.Type != "redis" || config.Store.Redis.Addr != "redis:6379" {
			t.Errorf("unexpected store config %+v", config.Store)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.API.BaseURL != "https://api.soundcloud.com" {
			t.Errorf("expected unset keys to keep defaults, got base URL %q", config.API.BaseURL)
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[broken"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("LoadConfigOrDefault missing file", func(t *testing.T) {
		config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected defaults, got %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.User = "bob"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.User != "bob" {
			t.Errorf("expected user bob, got %s", loaded.User)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("SCX_CLIENT_SECRET=from_dotenv\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Setenv(EnvClientID, "from_env")
		t.Cleanup(func() { os.Unsetenv(EnvClientSecret) })

		config := DefaultConfig()
		if err := ApplyEnv(config, envPath); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.Credentials.SoundCloud.ClientID != "from_env" {
			t.Errorf("expected client id from environment, got %s", config.Credentials.SoundCloud.ClientID)
		}
		if config.Credentials.SoundCloud.ClientSecret != "from_dotenv" {
			t.Errorf("expected client secret from dotenv, got %s", config.Credentials.SoundCloud.ClientSecret)
		}
	})

	t.Run("ApplyEnv missing dotenv is ignored", func(t *testing.T) {
		config := DefaultConfig()
		if err := ApplyEnv(config, filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Errorf("expected missing dotenv to be ignored, got %v", err)
		}
	})
}
