package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NUTRIFIT_JWT_SECRET", "test-secret")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Workers != 4 || cfg.QueueSize != 256 {
		t.Errorf("workers/queue = %d/%d, want 4/256", cfg.Workers, cfg.QueueSize)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Errorf("TokenTTL = %v, want 72h", cfg.TokenTTL)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", cfg.Location)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("NUTRIFIT_JWT_SECRET", "")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "addr: \":9090\"\ntimezone: Africa/Nairobi\nworkers: 2\ns3_bucket: meals\n"
	if err := os.WriteFile(filepath.Join(dir, "nutrifit.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NUTRIFIT_JWT_SECRET", "s")
	t.Setenv("NUTRIFIT_WORKERS", "8")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 (env overrides file)", cfg.Workers)
	}
	if cfg.S3Bucket != "meals" {
		t.Errorf("S3Bucket = %q, want meals", cfg.S3Bucket)
	}
	if cfg.Location == nil || cfg.Location.String() != "Africa/Nairobi" {
		t.Errorf("Location = %v, want Africa/Nairobi", cfg.Location)
	}
}

func TestLoadBadTimezone(t *testing.T) {
	t.Setenv("NUTRIFIT_JWT_SECRET", "s")
	t.Setenv("NUTRIFIT_TIMEZONE", "Not/AZone")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
