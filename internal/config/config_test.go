package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CASEWORK_CONFIG", "DB_PATH", "PORT", "APP_ENV", "LOG_LEVEL", "ORGANIZATION_NAME", "AUTO_MIGRATE", "AUTO_SEED"} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package directory out of the test.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != defaultDBPath || cfg.Port != defaultPort {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDev() || !cfg.AutoMigrate || !cfg.AutoSeed {
		t.Fatalf("expected development defaults, got %+v", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "casework.toml")
	content := []byte(`
db_path = "/var/lib/casework/shop.db"
port = "9000"
env = "production"
auto_seed = false
organization_name = "Oak & Ash"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CASEWORK_CONFIG", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/var/lib/casework/shop.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Port != "9100" {
		t.Fatalf("Port=%q, want env override", cfg.Port)
	}
	if cfg.IsDev() {
		t.Fatalf("expected production env")
	}
	if cfg.AutoSeed {
		t.Fatalf("expected auto_seed=false from file")
	}
	if cfg.OrganizationName != "Oak & Ash" {
		t.Fatalf("OrganizationName=%q", cfg.OrganizationName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CASEWORK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoad_BadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTO_MIGRATE", "maybe")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid AUTO_MIGRATE")
	}
}
