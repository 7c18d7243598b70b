// Package scripts implements the analyzed script domain for Slate.
// It provides types, data access, and business logic for script analysis,
// persistence of analysis results, and retrieval with filtering and
// pagination.
package scripts

import (
	"time"

	"github.com/google/uuid"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/pkg/pagination"
)

// AnalyzedScript represents a persisted script analysis with its metadata
// and full analysis payload.
type AnalyzedScript struct {
	ID                    uuid.UUID       `json:"id"`
	Filename              string          `json:"filename"`
	OriginalFilename      string          `json:"original_filename"`
	FileSizeBytes         int64           `json:"file_size_bytes"`
	Status                string          `json:"status"`
	TotalScenes           *int            `json:"total_scenes"`
	TotalCharacters       *int            `json:"total_characters"`
	EstimatedBudget       *float64        `json:"estimated_budget"`
	BudgetCategory        *string         `json:"budget_category"`
	ProcessingTimeSeconds *float64        `json:"processing_time_seconds"`
	APICallsUsed          int             `json:"api_calls_used"`
	AnalysisData          *agent.Analysis `json:"analysis_data"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// Summary is the list-view projection of an AnalyzedScript, omitting the
// full analysis payload.
type Summary struct {
	ID                    uuid.UUID `json:"id"`
	Filename              string    `json:"filename"`
	OriginalFilename      string    `json:"original_filename"`
	FileSizeBytes         int64     `json:"file_size_bytes"`
	Status                string    `json:"status"`
	TotalScenes           *int      `json:"total_scenes"`
	TotalCharacters       *int      `json:"total_characters"`
	EstimatedBudget       *float64  `json:"estimated_budget"`
	BudgetCategory        *string   `json:"budget_category"`
	ProcessingTimeSeconds *float64  `json:"processing_time_seconds"`
	APICallsUsed          int       `json:"api_calls_used"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Summarize projects the record into its list-view form.
func (s *AnalyzedScript) Summarize() Summary {
	return Summary{
		ID:                    s.ID,
		Filename:              s.Filename,
		OriginalFilename:      s.OriginalFilename,
		FileSizeBytes:         s.FileSizeBytes,
		Status:                s.Status,
		TotalScenes:           s.TotalScenes,
		TotalCharacters:       s.TotalCharacters,
		EstimatedBudget:       s.EstimatedBudget,
		BudgetCategory:        s.BudgetCategory,
		ProcessingTimeSeconds: s.ProcessingTimeSeconds,
		APICallsUsed:          s.APICallsUsed,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// SaveCommand carries the data needed to persist an analysis result.
// It doubles as the ready-to-save request object embedded in analyze
// responses.
type SaveCommand struct {
	Filename              string         `json:"filename"`
	OriginalFilename      string         `json:"original_filename"`
	FileSizeBytes         int64          `json:"file_size_bytes"`
	AnalysisData          agent.Analysis `json:"analysis_data"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
	APICallsUsed          int            `json:"api_calls_used"`
	Status                string         `json:"status,omitempty"`
}

// AnalyzeCommand carries an uploaded script through the analysis pipeline.
// Data holds the raw PDF bytes. Save controls whether a successful analysis
// is persisted immediately.
type AnalyzeCommand struct {
	Data     []byte
	Filename string
	Save     bool
}

// Metadata summarizes a completed analysis run.
type Metadata struct {
	Filename              string    `json:"filename"`
	OriginalFilename      string    `json:"original_filename"`
	FileSizeBytes         int64     `json:"file_size_bytes"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
	Timestamp             time.Time `json:"timestamp"`
	APICallsUsed          int       `json:"api_calls_used"`
}

// AnalyzeResult is the response payload for an analysis request.
// DatabaseID is set when the analysis was persisted; DatabaseError carries
// a non-fatal persistence failure while the analysis itself still succeeds.
type AnalyzeResult struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Metadata      Metadata        `json:"metadata"`
	Data          *agent.Analysis `json:"data"`
	SaveRequest   *SaveCommand    `json:"save_request,omitempty"`
	DatabaseID    *uuid.UUID      `json:"database_id,omitempty"`
	DatabaseError *string         `json:"database_error,omitempty"`
}

// SaveResult is the response payload for a save request.
type SaveResult struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	DatabaseID uuid.UUID `json:"database_id"`
	SavedAt    time.Time `json:"saved_at"`
	Metadata   Summary   `json:"metadata"`
}

// DeleteResult is the response payload for a delete request.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListResult is the response payload for a paginated list request.
type ListResult struct {
	Success    bool            `json:"success"`
	Data       []Summary       `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
	SearchTerm *string         `json:"search_term,omitempty"`
}
