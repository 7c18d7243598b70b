// Package agent implements the script analysis agent for Slate.
// It provides the Analyzer contract consumed by the workflow, the
// comprehensive analysis payload types, and an OpenAI-backed
// implementation that extracts script text locally and produces a
// structured analysis in two chat completions.
package agent

import "context"

// Analyzer produces a comprehensive analysis for the script PDF at the
// given path. Implementations classify failures with the package error
// kinds so callers never inspect message text.
type Analyzer interface {
	Analyze(ctx context.Context, pdfPath string) (*Analysis, error)
}

// Analysis is the comprehensive analysis payload produced by the agent.
// The workflow treats it as opaque beyond persistence; summary fields are
// projected into database columns for list views.
type Analysis struct {
	Title           string       `json:"title"`
	Logline         string       `json:"logline"`
	Genre           string       `json:"genre"`
	TotalScenes     int          `json:"total_scenes"`
	TotalCharacters int          `json:"total_characters"`
	EstimatedBudget float64      `json:"estimated_budget"`
	BudgetCategory  string       `json:"budget_category"`
	Scenes          []Scene      `json:"scenes"`
	CastBreakdown   []CastMember `json:"cast_breakdown"`
	Locations       []string     `json:"locations"`
	Themes          []string     `json:"themes"`
	Summary         string       `json:"summary"`
}

// Scene describes a single scene extracted from the script.
type Scene struct {
	SceneNumber int      `json:"scene_number"`
	Location    string   `json:"location"`
	TimeOfDay   string   `json:"time_of_day"`
	Description string   `json:"description"`
	Characters  []string `json:"characters"`
}

// CastMember describes a character and their prominence in the script.
type CastMember struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	SceneCount int    `json:"scene_count"`
}
