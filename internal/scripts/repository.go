package scripts

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/internal/workflow"
	"github.com/slatehq/slate/pkg/pagination"
	"github.com/slatehq/slate/pkg/query"
	"github.com/slatehq/slate/pkg/repository"
	"github.com/slatehq/slate/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	analyzer   agent.Analyzer
	logger     *slog.Logger
	pagination pagination.Config
	timeout    time.Duration
}

// New creates an analyzed script repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	analyzer agent.Analyzer,
	logger *slog.Logger,
	pagination pagination.Config,
	timeout time.Duration,
) System {
	return &repo{
		db:         db,
		storage:    store,
		analyzer:   analyzer,
		logger:     logger.With("system", "scripts"),
		pagination: pagination,
		timeout:    timeout,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Summary], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(summaryProjection, defaultSort).
		WhereSearch(page.Search, "Filename", "OriginalFilename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count analyzed scripts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Skip, page.Limit)
	summaries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query analyzed scripts: %w", err)
	}

	result := pagination.NewPageResult(summaries, total, page.Skip, page.Limit)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AnalyzedScript, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	script, err := repository.QueryOne(ctx, r.db, q, args, scanScript)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &script, nil
}

// Analyze stages the uploaded PDF, runs the analysis workflow under the
// configured timeout, and optionally persists the result. A persistence
// failure does not fail the request: the response carries the analysis
// with the database error embedded.
func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	key := buildStagingKey(uuid.New(), sanitizeFilename(cmd.Filename))

	path, err := r.storage.Stage(ctx, key, bytes.NewReader(cmd.Data))
	if err != nil {
		return nil, fmt.Errorf("stage script: %w", err)
	}
	defer func() {
		if err := r.storage.Remove(context.WithoutCancel(ctx), key); err != nil {
			r.logger.Warn("staged script cleanup failed", "key", key, "error", err)
		}
	}()

	rt := &workflow.Runtime{
		Analyzer: r.analyzer,
		Logger:   r.logger,
		Timeout:  r.timeout,
	}

	start := time.Now()
	state, err := workflow.Execute(ctx, rt, path)
	if err != nil {
		return nil, err
	}
	processingTime := roundSeconds(time.Since(start))

	if !state.Succeeded() {
		return nil, stateError(state)
	}

	saveRequest := &SaveCommand{
		Filename:              cmd.Filename,
		OriginalFilename:      cmd.Filename,
		FileSizeBytes:         int64(len(cmd.Data)),
		AnalysisData:          *state.Analysis,
		ProcessingTimeSeconds: processingTime,
		APICallsUsed:          state.APICallsUsed,
		Status:                string(state.Status),
	}

	result := &AnalyzeResult{
		Success: true,
		Message: "Script analysis completed successfully",
		Metadata: Metadata{
			Filename:              cmd.Filename,
			OriginalFilename:      cmd.Filename,
			FileSizeBytes:         int64(len(cmd.Data)),
			ProcessingTimeSeconds: processingTime,
			Timestamp:             time.Now(),
			APICallsUsed:          state.APICallsUsed,
		},
		Data:        state.Analysis,
		SaveRequest: saveRequest,
	}

	if cmd.Save {
		script, err := r.Save(ctx, *saveRequest)
		if err != nil {
			r.logger.Error("analysis persistence failed", "filename", cmd.Filename, "error", err)
			msg := err.Error()
			result.DatabaseError = &msg
		} else {
			result.DatabaseID = &script.ID
		}
	}

	r.logger.Info(
		"script analyzed",
		"filename", cmd.Filename,
		"processing_time", processingTime,
		"api_calls", state.APICallsUsed,
	)

	return result, nil
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*AnalyzedScript, error) {
	data, err := json.Marshal(cmd.AnalysisData)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis data: %w", err)
	}

	status := cmd.Status
	if status == "" {
		status = string(workflow.StatusCompleted)
	}

	original := cmd.OriginalFilename
	if original == "" {
		original = cmd.Filename
	}

	q := `
		INSERT INTO analyzed_scripts(
			id, filename, original_filename, file_size_bytes, status,
			total_scenes, total_characters, estimated_budget, budget_category,
			processing_time_seconds, api_calls_used, analysis_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, filename, original_filename, file_size_bytes, status,
			total_scenes, total_characters, estimated_budget, budget_category,
			processing_time_seconds, api_calls_used, analysis_data,
			created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Filename,
		original,
		cmd.FileSizeBytes,
		status,
		cmd.AnalysisData.TotalScenes,
		cmd.AnalysisData.TotalCharacters,
		cmd.AnalysisData.EstimatedBudget,
		cmd.AnalysisData.BudgetCategory,
		cmd.ProcessingTimeSeconds,
		cmd.APICallsUsed,
		data,
	}

	script, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AnalyzedScript, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanScript)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis saved", "id", script.ID, "filename", script.Filename)
	return &script, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM analyzed_scripts WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analyzed script deleted", "id", id)
	return nil
}

// stateError re-raises the failure recorded in a workflow state under its
// kind sentinel so HTTP mapping stays identity-based.
func stateError(state *workflow.AnalysisState) error {
	var kind error
	switch state.FailureKind {
	case agent.KindExtraction:
		kind = agent.ErrExtraction
	case agent.KindValidation:
		kind = agent.ErrValidation
	default:
		kind = agent.ErrAnalysis
	}

	if len(state.Errors) == 0 {
		return kind
	}

	msg := state.Errors[len(state.Errors)-1]
	msg = strings.TrimPrefix(msg, kind.Error()+": ")
	return fmt.Errorf("%w: %s", kind, msg)
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

func buildStagingKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("scripts/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "script.pdf"
	}
	return url.PathEscape(name)
}
