package config

import (
	"os"
	"testing"
)

var keys = []string{
	"EVIDENCA_DB",
	"EVIDENCA_ADDR",
	"EVIDENCA_LOG_LEVEL",
	"EVIDENCA_LOG_FORMAT",
	"EVIDENCA_LOG_FILE",
	"EVIDENCA_REDIS_URL",
	"EVIDENCA_REDIS_CHANNEL",
	"EVIDENCA_JWT_SECRET",
	"EVIDENCA_ADMIN_USER",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Store.Path != "evidenca.sqlite3" {
		t.Errorf("unexpected store path %q", cfg.Store.Path)
	}
	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Errorf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != LogFormatJSON {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Redis.URL != "" || cfg.Auth.JWTSecret != "" {
		t.Errorf("expected optional settings to be empty")
	}
	if cfg.Auth.AdminUser != "admin" {
		t.Errorf("unexpected admin user %q", cfg.Auth.AdminUser)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVIDENCA_DB", "/var/lib/evidenca/store.sqlite3")
	t.Setenv("EVIDENCA_ADDR", ":9090")
	t.Setenv("EVIDENCA_LOG_LEVEL", "debug")
	t.Setenv("EVIDENCA_LOG_FORMAT", "Console")
	t.Setenv("EVIDENCA_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EVIDENCA_ADMIN_USER", "root")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Store.Path != "/var/lib/evidenca/store.sqlite3" {
		t.Errorf("unexpected store path %q", cfg.Store.Path)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != LogFormatConsole {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("unexpected redis url %q", cfg.Redis.URL)
	}
	if cfg.Redis.Channel != "evidenca.events" {
		t.Errorf("expected default channel, got %q", cfg.Redis.Channel)
	}
	if cfg.Auth.AdminUser != "root" {
		t.Errorf("unexpected admin user %q", cfg.Auth.AdminUser)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVIDENCA_DB", "store.sqlite3")
	t.Setenv("EVIDENCA_LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
