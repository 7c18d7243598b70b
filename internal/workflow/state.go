// Package workflow implements the script analysis state graph:
// an analyst node that produces a comprehensive analysis followed by a
// human feedback node, with a conditional edge that loops back to the
// analyst when feedback requires another pass.
package workflow

import "github.com/slatehq/slate/internal/agent"

// Status enumerates workflow states for an analysis run.
type Status string

const (
	StatusPending               Status = "pending"
	StatusCompleted             Status = "analysis_completed"
	StatusFailed                Status = "analysis_failed"
	StatusAwaitingFeedback      Status = "awaiting_human_feedback"
	StatusCompletedWithFeedback Status = "analysis_completed_with_feedback"
)

// AnalysisState carries an analysis run through the workflow graph.
// Nodes receive a copy, mutate it, and return it; Errors is append-only
// within a run.
type AnalysisState struct {
	PDFPath          string
	Status           Status
	Analysis         *agent.Analysis
	Errors           []string
	FailureKind      agent.ErrorKind
	APICallsUsed     int
	FeedbackRequired bool
	FeedbackText     string
}

// NewState creates the initial state for a run over the given PDF.
func NewState(pdfPath string) AnalysisState {
	return AnalysisState{
		PDFPath: pdfPath,
		Status:  StatusPending,
		Errors:  []string{},
	}
}

// Succeeded reports whether the run produced an analysis.
func (s AnalysisState) Succeeded() bool {
	return s.Analysis != nil &&
		(s.Status == StatusCompleted || s.Status == StatusCompletedWithFeedback)
}
