package config_test

import (
	"testing"
	"time"

	"github.com/slatehq/slate/internal/config"
)

func TestServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Addr() != "0.0.0.0:8080" {
			t.Errorf("addr = %q, want 0.0.0.0:8080", cfg.Addr())
		}
		if cfg.ReadTimeoutDuration() != time.Minute {
			t.Errorf("read timeout = %v, want 1m", cfg.ReadTimeoutDuration())
		}
		if cfg.WriteTimeoutDuration() != 10*time.Minute {
			t.Errorf("write timeout = %v, want 10m", cfg.WriteTimeoutDuration())
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(config.EnvServerHost, "127.0.0.1")
		t.Setenv(config.EnvServerPort, "9090")

		var cfg config.ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Addr() != "127.0.0.1:9090" {
			t.Errorf("addr = %q, want 127.0.0.1:9090", cfg.Addr())
		}
	})

	t.Run("invalid port fails", func(t *testing.T) {
		cfg := config.ServerConfig{Port: 99999}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected port validation error")
		}
	})

	t.Run("invalid timeout fails", func(t *testing.T) {
		cfg := config.ServerConfig{ReadTimeout: "soon"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected timeout validation error")
		}
	})

	t.Run("merge keeps base values for zero overlay fields", func(t *testing.T) {
		cfg := config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m"}
		cfg.Merge(&config.ServerConfig{Port: 9000})

		if cfg.Host != "0.0.0.0" {
			t.Errorf("host = %q, want 0.0.0.0", cfg.Host)
		}
		if cfg.Port != 9000 {
			t.Errorf("port = %d, want 9000", cfg.Port)
		}
		if cfg.ReadTimeout != "1m" {
			t.Errorf("read_timeout = %q, want 1m", cfg.ReadTimeout)
		}
	})
}

func TestWorkflowConfig(t *testing.T) {
	t.Run("default analysis timeout", func(t *testing.T) {
		var cfg config.WorkflowConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.AnalysisTimeoutDuration() != 300*time.Second {
			t.Errorf("analysis timeout = %v, want 300s", cfg.AnalysisTimeoutDuration())
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(config.EnvWorkflowAnalysisTimeout, "45s")

		var cfg config.WorkflowConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.AnalysisTimeoutDuration() != 45*time.Second {
			t.Errorf("analysis timeout = %v, want 45s", cfg.AnalysisTimeoutDuration())
		}
	})

	t.Run("non-positive timeout fails", func(t *testing.T) {
		cfg := config.WorkflowConfig{AnalysisTimeout: "0s"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("unparseable timeout fails", func(t *testing.T) {
		cfg := config.WorkflowConfig{AnalysisTimeout: "five minutes"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestAPIConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.APIConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.BasePath != "/api" {
			t.Errorf("base_path = %q, want /api", cfg.BasePath)
		}
		if cfg.MaxUploadSizeBytes() != 50*1024*1024 {
			t.Errorf("max upload = %d, want 50MB", cfg.MaxUploadSizeBytes())
		}
		if cfg.Pagination.DefaultLimit != 100 {
			t.Errorf("default_limit = %d, want 100", cfg.Pagination.DefaultLimit)
		}
	})

	t.Run("custom upload size parses", func(t *testing.T) {
		cfg := config.APIConfig{MaxUploadSize: "10MB"}
		if cfg.MaxUploadSizeBytes() != 10*1024*1024 {
			t.Errorf("max upload = %d, want 10MB", cfg.MaxUploadSizeBytes())
		}
	})

	t.Run("bad upload size falls back", func(t *testing.T) {
		cfg := config.APIConfig{MaxUploadSize: "huge"}
		if cfg.MaxUploadSizeBytes() != 50*1024*1024 {
			t.Errorf("max upload = %d, want 50MB fallback", cfg.MaxUploadSizeBytes())
		}
	})

	t.Run("cors env override", func(t *testing.T) {
		t.Setenv("SLATE_CORS_ENABLED", "true")
		t.Setenv("SLATE_CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

		var cfg config.APIConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !cfg.CORS.Enabled {
			t.Error("cors enabled = false, want true")
		}
		if len(cfg.CORS.Origins) != 2 {
			t.Errorf("origins = %v, want 2 entries", cfg.CORS.Origins)
		}
	})
}

func TestConfigEnv(t *testing.T) {
	t.Run("defaults to local", func(t *testing.T) {
		var cfg config.Config
		if cfg.Env() != "local" {
			t.Errorf("env = %q, want local", cfg.Env())
		}
	})

	t.Run("reads SLATE_ENV", func(t *testing.T) {
		t.Setenv(config.EnvSlateEnv, "production")

		var cfg config.Config
		if cfg.Env() != "production" {
			t.Errorf("env = %q, want production", cfg.Env())
		}
	})
}
