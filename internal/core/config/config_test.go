package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.MaxOpenConns != 16 {
		t.Errorf("MaxOpenConns = %d, want 16", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 4 {
		t.Errorf("MaxIdleConns = %d, want 4", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime != 5*time.Minute {
		t.Errorf("ConnMaxIdleTime = %v, want 5m", cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", cfg.ConnMaxLifetime)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty default", cfg.DatabaseURL)
	}
}

func TestLoad_Environment(t *testing.T) {
	os.Setenv("MK_DATABASE_URL", "sqlite://test.db")
	defer os.Unsetenv("MK_DATABASE_URL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.DatabaseURL != "sqlite://test.db" {
		t.Errorf("DatabaseURL = %q, want env value", cfg.DatabaseURL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	configContent := `database:
  url: "postgres://localhost:5432/mapkeeper?sslmode=disable"
  max_open_conns: 8
`
	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/mapkeeper?sslmode=disable" {
		t.Errorf("DatabaseURL = %q, want file value", cfg.DatabaseURL)
	}
	if cfg.MaxOpenConns != 8 {
		t.Errorf("MaxOpenConns = %d, want 8", cfg.MaxOpenConns)
	}
}

func TestLoad_InvalidScheme(t *testing.T) {
	os.Setenv("MK_DATABASE_URL", "mysql://localhost/db")
	defer os.Unsetenv("MK_DATABASE_URL")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() succeeded with unsupported scheme, want error")
	}
}

func TestLoad_InvalidPool(t *testing.T) {
	os.Setenv("MK_DATABASE_MAX_OPEN_CONNS", "0")
	defer os.Unsetenv("MK_DATABASE_MAX_OPEN_CONNS")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() succeeded with zero pool size, want error")
	}
}
