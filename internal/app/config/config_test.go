package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
app:
  name: storefront-test
mysql:
  dsn: "user:pass@tcp(db:3306)/shop"
redis:
  addr: "redis:6379"
lmstfy:
  host: "lmstfy"
  port: 7777
  namespace: "shop"
  token: "secret"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Name != "storefront-test" {
		t.Fatalf("app name mismatch: %s", cfg.App.Name)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Notify.Queue != "order_status_notify" {
		t.Fatalf("expected default notify queue, got %s", cfg.Notify.Queue)
	}
	if cfg.Notify.TTR != 30*time.Second {
		t.Fatalf("expected default ttr 30s, got %s", cfg.Notify.TTR)
	}
	if cfg.Redis.StatusChannel != "order:status" {
		t.Fatalf("expected default status channel, got %s", cfg.Redis.StatusChannel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_MYSQL_DSN", "override-dsn")
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MySQL.DSN != "override-dsn" {
		t.Fatalf("env override not applied: %s", cfg.MySQL.DSN)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg.Lmstfy.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when lmstfy token is missing")
	}

	cfg.Lmstfy.Token = "secret"
	cfg.MySQL.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when mysql dsn is missing")
	}
}
