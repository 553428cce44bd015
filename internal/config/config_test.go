package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"telegram-birthday-app/internal/config"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("default api port = %d", cfg.API.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Bot.Workers != 4 {
		t.Errorf("default workers = %d", cfg.Bot.Workers)
	}
	if err := cfg.ValidateAPI(); err == nil {
		t.Error("expected ValidateAPI to fail without a database URL")
	}
	if err := cfg.ValidateBot(); err == nil {
		t.Error("expected ValidateBot to fail without a token")
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
api:
  port: 9090
bot:
  token: from-file
database:
  url: postgres://file/db
miniapp:
  public_url: https://file.example
log:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, err := config.LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api port = %d", cfg.API.Port)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Errorf("env override lost: %q", cfg.Database.URL)
	}
	if cfg.Bot.Token != "from-file" {
		t.Errorf("bot token = %q", cfg.Bot.Token)
	}
	if !cfg.Runtime.Dev {
		t.Error("dev flag not carried into runtime config")
	}
	if err := cfg.ValidateAPI(); err != nil {
		t.Errorf("ValidateAPI: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("ValidateBot: %v", err)
	}
}
