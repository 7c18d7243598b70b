package api

import (
	"time"

	"github.com/slatehq/slate/internal/config"
	"github.com/slatehq/slate/internal/infrastructure"
	"github.com/slatehq/slate/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination      pagination.Config
	AnalysisTimeout time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Analyzer:  infra.Analyzer,
		},
		Pagination:      cfg.API.Pagination,
		AnalysisTimeout: cfg.Workflow.AnalysisTimeoutDuration(),
	}
}
