package infrastructure_test

import (
	"testing"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/internal/config"
	"github.com/slatehq/slate/internal/infrastructure"
	"github.com/slatehq/slate/pkg/database"
	"github.com/slatehq/slate/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "slate",
			User:            "slate",
			Password:        "slate",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Dir: t.TempDir(),
		},
		Agent: agent.Config{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			APIKey:      "test-key",
			Temperature: 1.0,
		},
		Workflow: config.WorkflowConfig{
			AnalysisTimeout: "300s",
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Analyzer == nil {
		t.Error("Analyzer is nil")
	}
}

func TestNewDatabaseConnection(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewMissingAPIKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.Agent.APIKey = ""

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for missing agent api key")
	}
}
