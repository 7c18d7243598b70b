package api

import (
	"net/http"

	"github.com/slatehq/slate/internal/config"
	"github.com/slatehq/slate/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Scripts.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
