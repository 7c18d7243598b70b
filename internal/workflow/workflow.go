package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/slatehq/slate/pkg/graph"
)

const (
	nodeAnalyst  = "analyst_agent"
	nodeFeedback = "human_feedback"
)

// Execute runs the analysis workflow for a single script PDF under the
// configured analysis timeout. It builds the state graph
// (analyst_agent → human_feedback, with a conditional loop back to
// analyst_agent while feedback is required), executes it, and returns the
// final state. A deadline overrun maps to ErrTimeout.
func Execute(ctx context.Context, rt *Runtime, pdfPath string) (*AnalysisState, error) {
	g, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	runCtx := ctx
	if rt.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, rt.Timeout)
		defer cancel()
	}

	final, err := g.Execute(runCtx, NewState(pdfPath))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return &final, nil
}

func buildGraph(rt *Runtime) (*graph.Graph[AnalysisState], error) {
	g := graph.New[AnalysisState]("script-analysis")

	if err := g.AddNode(nodeAnalyst, AnalystNode(rt)); err != nil {
		return nil, err
	}

	if err := g.AddNode(nodeFeedback, FeedbackNode(rt)); err != nil {
		return nil, err
	}

	// analyst_agent → human_feedback (unconditional, taken on success and failure)
	if err := g.AddEdge(nodeAnalyst, nodeFeedback, nil); err != nil {
		return nil, err
	}

	// human_feedback → analyst_agent (while feedback is required)
	if err := g.AddEdge(nodeFeedback, nodeAnalyst, routeFeedback); err != nil {
		return nil, err
	}

	if err := g.SetEntryPoint(nodeAnalyst); err != nil {
		return nil, err
	}

	if err := g.SetExitPoint(nodeFeedback); err != nil {
		return nil, err
	}

	return g, nil
}
