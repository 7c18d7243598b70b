package database_test

import (
	"testing"
	"time"

	"github.com/slatehq/slate/pkg/database"
)

func TestConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg := database.Config{Name: "slate", User: "slate"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Host != "localhost" {
			t.Errorf("host = %q, want localhost", cfg.Host)
		}
		if cfg.Port != 5432 {
			t.Errorf("port = %d, want 5432", cfg.Port)
		}
		if cfg.SSLMode != "disable" {
			t.Errorf("ssl_mode = %q, want disable", cfg.SSLMode)
		}
		if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
			t.Errorf("pool = %d/%d, want 25/5", cfg.MaxOpenConns, cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
			t.Errorf("conn_max_lifetime = %v, want 15m", cfg.ConnMaxLifetimeDuration())
		}
	})

	t.Run("missing name fails", func(t *testing.T) {
		cfg := database.Config{User: "slate"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("missing user fails", func(t *testing.T) {
		cfg := database.Config{Name: "slate"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "db.internal")
		t.Setenv("TEST_DB_PORT", "6432")
		t.Setenv("TEST_DB_PASSWORD", "hunter2")

		cfg := database.Config{Name: "slate", User: "slate"}
		env := &database.Env{
			Host:     "TEST_DB_HOST",
			Port:     "TEST_DB_PORT",
			Password: "TEST_DB_PASSWORD",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Host != "db.internal" || cfg.Port != 6432 {
			t.Errorf("host = %s:%d, want db.internal:6432", cfg.Host, cfg.Port)
		}
		if cfg.Password != "hunter2" {
			t.Errorf("password = %q, want hunter2", cfg.Password)
		}
	})
}

func TestConfigDsn(t *testing.T) {
	cfg := database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "slate",
		User:     "slate",
		Password: "secret",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 dbname=slate user=slate password=secret sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := database.Config{Host: "localhost", Port: 5432, Name: "slate", User: "slate"}
	cfg.Merge(&database.Config{Host: "db.prod.internal", SSLMode: "require"})

	if cfg.Host != "db.prod.internal" {
		t.Errorf("host = %q, want db.prod.internal", cfg.Host)
	}
	if cfg.SSLMode != "require" {
		t.Errorf("ssl_mode = %q, want require", cfg.SSLMode)
	}
	if cfg.Port != 5432 || cfg.Name != "slate" {
		t.Errorf("base fields changed: %+v", cfg)
	}
}
