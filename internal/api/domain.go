package api

import (
	"github.com/slatehq/slate/internal/scripts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Scripts scripts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	scriptsSystem := scripts.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Analyzer,
		runtime.Logger,
		runtime.Pagination,
		runtime.AnalysisTimeout,
	)

	return &Domain{
		Scripts: scriptsSystem,
	}
}
