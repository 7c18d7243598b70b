package scripts

import (
	"context"

	"github.com/google/uuid"

	"github.com/slatehq/slate/pkg/pagination"
)

// System defines the public contract for analyzed script domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Summary], error)

	Find(ctx context.Context, id uuid.UUID) (*AnalyzedScript, error)
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error)
	Save(ctx context.Context, cmd SaveCommand) (*AnalyzedScript, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
