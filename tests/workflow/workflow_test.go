package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/internal/workflow"
)

type fakeAnalyzer struct {
	analyzeFn func(ctx context.Context, pdfPath string) (*agent.Analysis, error)
	calls     int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, pdfPath string) (*agent.Analysis, error) {
	f.calls++
	return f.analyzeFn(ctx, pdfPath)
}

func sampleAnalysis() *agent.Analysis {
	return &agent.Analysis{
		Title:           "The Long Night",
		Logline:         "A detective races a blizzard to find a missing witness.",
		Genre:           "Thriller",
		TotalScenes:     42,
		TotalCharacters: 12,
		EstimatedBudget: 8500000,
		BudgetCategory:  "medium",
	}
}

func testRuntime(a agent.Analyzer, timeout time.Duration) *workflow.Runtime {
	return &workflow.Runtime{
		Analyzer: a,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout:  timeout,
	}
}

func TestExecute(t *testing.T) {
	t.Run("successful analysis completes", func(t *testing.T) {
		analyzer := &fakeAnalyzer{
			analyzeFn: func(_ context.Context, _ string) (*agent.Analysis, error) {
				return sampleAnalysis(), nil
			},
		}

		state, err := workflow.Execute(context.Background(), testRuntime(analyzer, 0), "/tmp/script.pdf")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if state.Status != workflow.StatusCompleted {
			t.Errorf("status = %s, want %s", state.Status, workflow.StatusCompleted)
		}
		if state.Analysis == nil {
			t.Fatal("analysis = nil, want populated")
		}
		if state.Analysis.Title != "The Long Night" {
			t.Errorf("title = %q, want The Long Night", state.Analysis.Title)
		}
		if state.APICallsUsed != 2 {
			t.Errorf("api calls = %d, want 2", state.APICallsUsed)
		}
		if state.FailureKind != agent.KindNone {
			t.Errorf("failure kind = %q, want none", state.FailureKind)
		}
		if len(state.Errors) != 0 {
			t.Errorf("errors = %v, want empty", state.Errors)
		}
		if !state.Succeeded() {
			t.Error("Succeeded() = false, want true")
		}
	})

	t.Run("analyzer runs exactly once", func(t *testing.T) {
		analyzer := &fakeAnalyzer{
			analyzeFn: func(_ context.Context, _ string) (*agent.Analysis, error) {
				return sampleAnalysis(), nil
			},
		}

		if _, err := workflow.Execute(context.Background(), testRuntime(analyzer, 0), "/tmp/script.pdf"); err != nil {
			t.Fatalf("execute: %v", err)
		}
		if analyzer.calls != 1 {
			t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
		}
	})

	t.Run("analysis failure is recorded in state", func(t *testing.T) {
		analyzer := &fakeAnalyzer{
			analyzeFn: func(_ context.Context, _ string) (*agent.Analysis, error) {
				return nil, fmt.Errorf("%w: no text in document", agent.ErrExtraction)
			},
		}

		state, err := workflow.Execute(context.Background(), testRuntime(analyzer, 0), "/tmp/script.pdf")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if state.Status != workflow.StatusFailed {
			t.Errorf("status = %s, want %s", state.Status, workflow.StatusFailed)
		}
		if state.Analysis != nil {
			t.Error("analysis populated on failure, want nil")
		}
		if state.FailureKind != agent.KindExtraction {
			t.Errorf("failure kind = %q, want extraction", state.FailureKind)
		}
		if state.APICallsUsed != 1 {
			t.Errorf("api calls = %d, want 1", state.APICallsUsed)
		}
		if len(state.Errors) != 1 {
			t.Fatalf("errors = %v, want one entry", state.Errors)
		}
		if state.Succeeded() {
			t.Error("Succeeded() = true for failed run, want false")
		}
	})

	t.Run("classifies unrecognized failures as analysis errors", func(t *testing.T) {
		analyzer := &fakeAnalyzer{
			analyzeFn: func(_ context.Context, _ string) (*agent.Analysis, error) {
				return nil, errors.New("connection reset")
			},
		}

		state, err := workflow.Execute(context.Background(), testRuntime(analyzer, 0), "/tmp/script.pdf")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if state.FailureKind != agent.KindAnalysis {
			t.Errorf("failure kind = %q, want analysis", state.FailureKind)
		}
	})

	t.Run("deadline overrun maps to timeout error", func(t *testing.T) {
		analyzer := &fakeAnalyzer{
			analyzeFn: func(ctx context.Context, _ string) (*agent.Analysis, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}

		_, err := workflow.Execute(context.Background(), testRuntime(analyzer, 20*time.Millisecond), "/tmp/script.pdf")
		if !errors.Is(err, workflow.ErrTimeout) {
			t.Errorf("error = %v, want ErrTimeout", err)
		}
	})
}

func TestFeedbackNode(t *testing.T) {
	rt := testRuntime(nil, 0)
	node := workflow.FeedbackNode(rt)

	t.Run("clears feedback flag", func(t *testing.T) {
		state := workflow.NewState("/tmp/script.pdf")
		state.Analysis = sampleAnalysis()
		state.FeedbackRequired = true

		next, err := node(context.Background(), state)
		if err != nil {
			t.Fatalf("node: %v", err)
		}
		if next.FeedbackRequired {
			t.Error("feedback required still set after feedback node")
		}
	})

	t.Run("feedback text marks completion with feedback", func(t *testing.T) {
		state := workflow.NewState("/tmp/script.pdf")
		state.Analysis = sampleAnalysis()
		state.FeedbackText = "tighten the second act"

		next, err := node(context.Background(), state)
		if err != nil {
			t.Fatalf("node: %v", err)
		}
		if next.Status != workflow.StatusCompletedWithFeedback {
			t.Errorf("status = %s, want %s", next.Status, workflow.StatusCompletedWithFeedback)
		}
		if !next.Succeeded() {
			t.Error("Succeeded() = false, want true")
		}
	})

	t.Run("no feedback text marks plain completion", func(t *testing.T) {
		state := workflow.NewState("/tmp/script.pdf")
		state.Analysis = sampleAnalysis()

		next, err := node(context.Background(), state)
		if err != nil {
			t.Fatalf("node: %v", err)
		}
		if next.Status != workflow.StatusCompleted {
			t.Errorf("status = %s, want %s", next.Status, workflow.StatusCompleted)
		}
	})

	t.Run("failed status passes through intact", func(t *testing.T) {
		state := workflow.NewState("/tmp/script.pdf")
		state.Status = workflow.StatusFailed
		state.Errors = append(state.Errors, "script extraction failed")

		next, err := node(context.Background(), state)
		if err != nil {
			t.Fatalf("node: %v", err)
		}
		if next.Status != workflow.StatusFailed {
			t.Errorf("status = %s, want %s", next.Status, workflow.StatusFailed)
		}
	})
}

func TestNewState(t *testing.T) {
	state := workflow.NewState("/tmp/script.pdf")

	if state.Status != workflow.StatusPending {
		t.Errorf("status = %s, want %s", state.Status, workflow.StatusPending)
	}
	if state.PDFPath != "/tmp/script.pdf" {
		t.Errorf("pdf path = %q, want /tmp/script.pdf", state.PDFPath)
	}
	if state.Errors == nil {
		t.Error("errors = nil, want empty slice")
	}
	if state.Succeeded() {
		t.Error("Succeeded() = true for new state, want false")
	}
}
