package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(envKeys, "CONFIG_FILE") {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "dev" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store without DATABASE_URL, got %q", cfg.StoreDriver)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" || cfg.GeminiTimeout != 0 {
		t.Fatalf("unexpected gemini defaults %q %s", cfg.GeminiModel, cfg.GeminiTimeout)
	}
	if !cfg.AllowGuests() {
		t.Fatalf("dev should allow guests")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
port: "9090"
env: production
corsAllowOrigins:
  - https://app.example.com
  - https://admin.example.com
store:
  driver: sqlite
  sqlitePath: /var/lib/matcher.db
gemini:
  model: gemini-2.5-pro
  timeout: 45s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should win over file, got port %q", cfg.Port)
	}
	if cfg.Env != "production" || cfg.AllowGuests() {
		t.Fatalf("expected production without guests, got %q", cfg.Env)
	}
	if cfg.StoreDriver != StoreSQLite || cfg.SQLitePath != "/var/lib/matcher.db" {
		t.Fatalf("unexpected store config %q %q", cfg.StoreDriver, cfg.SQLitePath)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" || cfg.GeminiTimeout != 45*time.Second {
		t.Fatalf("unexpected gemini config %q %s", cfg.GeminiModel, cfg.GeminiTimeout)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad driver":       {"STORE_DRIVER": "mongo"},
		"bad timeout":      {"GEMINI_TIMEOUT": "soon"},
		"postgres no url":  {"STORE_DRIVER": "postgres"},
		"missing file":     {"CONFIG_FILE": "/nonexistent/config.yaml"},
		"negative timeout": {"GEMINI_TIMEOUT": "-5s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDatabaseURLSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/matcher")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("expected postgres, got %q", cfg.StoreDriver)
	}
}

func TestLoadEnvFilesDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MATCHER_TEST_A=from-file\nMATCHER_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("MATCHER_TEST_A", "from-process")
	t.Setenv("MATCHER_TEST_B", "")
	os.Unsetenv("MATCHER_TEST_B")

	loadEnvFiles(path, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("MATCHER_TEST_A"); got != "from-process" {
		t.Fatalf("expected process value to win, got %q", got)
	}
	if got := os.Getenv("MATCHER_TEST_B"); got != "quoted" {
		t.Fatalf("expected quoted value to be unwrapped, got %q", got)
	}
}
