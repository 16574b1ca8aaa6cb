package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DISCOVERY_METHOD", "")
	t.Setenv("DISCOVERY_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %s", cfg.Port)
	}
	if cfg.DefaultMethod != "rf" {
		t.Errorf("method = %s", cfg.DefaultMethod)
	}
	if cfg.DefaultWorkers != 1 {
		t.Errorf("workers = %d", cfg.DefaultWorkers)
	}
	if cfg.HasDatabase() {
		t.Error("no database configured")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DISCOVERY_METHOD", "spearman")
	t.Setenv("DISCOVERY_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9999" || cfg.DefaultMethod != "spearman" || cfg.DefaultWorkers != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.HasDatabase() {
		t.Error("database should be configured")
	}
}

func TestLoadRejectsBadWorkers(t *testing.T) {
	t.Setenv("DISCOVERY_WORKERS", "-2")
	if _, err := Load(); err == nil {
		t.Error("negative workers must fail validation")
	}
}

func TestBadIntFallsBack(t *testing.T) {
	t.Setenv("DISCOVERY_WORKERS", "lots")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultWorkers != 1 {
		t.Errorf("workers = %d, want fallback 1", cfg.DefaultWorkers)
	}
}
