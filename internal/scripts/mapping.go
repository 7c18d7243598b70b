package scripts

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/pkg/query"
	"github.com/slatehq/slate/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyzed_scripts", "s").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("original_filename", "OriginalFilename").
	Project("file_size_bytes", "FileSizeBytes").
	Project("status", "Status").
	Project("total_scenes", "TotalScenes").
	Project("total_characters", "TotalCharacters").
	Project("estimated_budget", "EstimatedBudget").
	Project("budget_category", "BudgetCategory").
	Project("processing_time_seconds", "ProcessingTimeSeconds").
	Project("api_calls_used", "APICallsUsed").
	Project("analysis_data", "AnalysisData").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var summaryProjection = query.
	NewProjectionMap("public", "analyzed_scripts", "s").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("original_filename", "OriginalFilename").
	Project("file_size_bytes", "FileSizeBytes").
	Project("status", "Status").
	Project("total_scenes", "TotalScenes").
	Project("total_characters", "TotalCharacters").
	Project("estimated_budget", "EstimatedBudget").
	Project("budget_category", "BudgetCategory").
	Project("processing_time_seconds", "ProcessingTimeSeconds").
	Project("api_calls_used", "APICallsUsed").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// sortableFields whitelists order_by query values against logical field names.
var sortableFields = map[string]string{
	"created_at":              "CreatedAt",
	"updated_at":              "UpdatedAt",
	"filename":                "Filename",
	"file_size_bytes":         "FileSizeBytes",
	"status":                  "Status",
	"total_scenes":            "TotalScenes",
	"estimated_budget":        "EstimatedBudget",
	"processing_time_seconds": "ProcessingTimeSeconds",
}

// Filters contains optional filtering criteria for script queries.
// Nil fields are ignored. Status uses exact matching; Filename uses
// case-insensitive contains matching.
type Filters struct {
	Status   *string `json:"status,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

// SortFromQuery builds the sort order from order_by and order_direction
// query parameters. Unknown fields fall back to the default sort.
func SortFromQuery(values url.Values) []query.SortField {
	field, ok := sortableFields[values.Get("order_by")]
	if !ok {
		return nil
	}

	return []query.SortField{{
		Field:      field,
		Descending: !strings.EqualFold(values.Get("order_direction"), "asc"),
	}}
}

func scanScript(s repository.Scanner) (AnalyzedScript, error) {
	var (
		script AnalyzedScript
		data   []byte
	)

	err := s.Scan(
		&script.ID,
		&script.Filename,
		&script.OriginalFilename,
		&script.FileSizeBytes,
		&script.Status,
		&script.TotalScenes,
		&script.TotalCharacters,
		&script.EstimatedBudget,
		&script.BudgetCategory,
		&script.ProcessingTimeSeconds,
		&script.APICallsUsed,
		&data,
		&script.CreatedAt,
		&script.UpdatedAt,
	)
	if err != nil {
		return script, err
	}

	if len(data) > 0 {
		var analysis agent.Analysis
		if err := json.Unmarshal(data, &analysis); err != nil {
			return script, err
		}
		script.AnalysisData = &analysis
	}

	return script, nil
}

func scanSummary(s repository.Scanner) (Summary, error) {
	var summary Summary
	err := s.Scan(
		&summary.ID,
		&summary.Filename,
		&summary.OriginalFilename,
		&summary.FileSizeBytes,
		&summary.Status,
		&summary.TotalScenes,
		&summary.TotalCharacters,
		&summary.EstimatedBudget,
		&summary.BudgetCategory,
		&summary.ProcessingTimeSeconds,
		&summary.APICallsUsed,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	return summary, err
}
