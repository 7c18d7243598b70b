package workflow

import (
	"context"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/pkg/graph"
)

// AnalystNode returns the node that invokes the analysis agent.
// Agent failures are absorbed into the state rather than aborting the
// graph: the run still proceeds to the feedback node with a failed status.
func AnalystNode(rt *Runtime) graph.Node[AnalysisState] {
	return func(ctx context.Context, s AnalysisState) (AnalysisState, error) {
		rt.Logger.InfoContext(ctx, "analyst node starting", "path", s.PDFPath)

		analysis, err := rt.Analyzer.Analyze(ctx, s.PDFPath)
		if err != nil {
			rt.Logger.ErrorContext(ctx, "analysis failed", "error", err)

			s.Status = StatusFailed
			s.Errors = append(s.Errors, err.Error())
			s.FailureKind = agent.Classify(err)
			s.APICallsUsed = 1
			return s, nil
		}

		s.Analysis = analysis
		s.Status = StatusCompleted
		s.FailureKind = agent.KindNone
		s.APICallsUsed = 2

		rt.Logger.InfoContext(ctx, "analyst node complete", "scenes", analysis.TotalScenes)
		return s, nil
	}
}

// FeedbackNode returns the human feedback node. It clears FeedbackRequired
// so a run makes at most one feedback pass, and marks a successful pass as
// completed with feedback when feedback text was supplied. A failed status
// is left intact.
func FeedbackNode(rt *Runtime) graph.Node[AnalysisState] {
	return func(ctx context.Context, s AnalysisState) (AnalysisState, error) {
		s.FeedbackRequired = false

		if s.Analysis != nil {
			if s.FeedbackText != "" {
				s.Status = StatusCompletedWithFeedback
			} else {
				s.Status = StatusCompleted
			}
		}

		return s, nil
	}
}

// routeFeedback decides whether the graph loops back to the analyst.
// Pure and total: it reads only FeedbackRequired.
func routeFeedback(s AnalysisState) bool {
	return s.FeedbackRequired
}
