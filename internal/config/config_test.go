package config

import "testing"

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev mode by default, got env %q", cfg.Env)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("PORT", "9191")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AdminEmail != "ops@example.com" {
		t.Fatalf("AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.Port != "9191" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.IsDev() {
		t.Fatal("production env must not report dev mode")
	}
}
