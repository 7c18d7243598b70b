package workflow

import (
	"log/slog"
	"time"

	"github.com/slatehq/slate/internal/agent"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Analyzer agent.Analyzer
	Logger   *slog.Logger
	Timeout  time.Duration
}
