package scripts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/slatehq/slate/pkg/handlers"
	"github.com/slatehq/slate/pkg/pagination"
	"github.com/slatehq/slate/pkg/routes"
)

// Handler provides HTTP endpoints for analyzed script operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "scripts"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for script endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/analyze-script", Handler: h.Analyze},
			{Method: "POST", Pattern: "/save-analysis", Handler: h.Save},
			{Method: "GET", Pattern: "/analyzed-scripts", Handler: h.List},
			{Method: "GET", Pattern: "/analyzed-scripts/{id}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/analyzed-scripts/{id}", Handler: h.Delete},
		},
	}
}

// Analyze processes a multipart script upload, runs the analysis workflow,
// and returns the analysis result. The save query parameter (default true)
// controls immediate persistence.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	if err := h.validateUpload(header.Filename, header.Header.Get("Content-Type"), data); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	save := true
	if v := r.URL.Query().Get("save"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			save = parsed
		}
	}

	result, err := h.sys.Analyze(r.Context(), AnalyzeCommand{
		Data:     data,
		Filename: header.Filename,
		Save:     save,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Save persists a previously produced analysis from a JSON request body.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var cmd SaveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if cmd.Filename == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	script, err := h.sys.Save(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, SaveResult{
		Success:    true,
		Message:    "Analysis saved to database successfully",
		DatabaseID: script.ID,
		SavedAt:    script.CreatedAt,
		Metadata:   script.Summarize(),
	})
}

// List returns a paginated list of script summaries with optional status
// filter, filename search, and whitelisted ordering.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page := pagination.PageRequestFromQuery(values, h.pagination)
	page.Sort = SortFromQuery(values)
	filters := FiltersFromQuery(values)

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResult{
		Success:    true,
		Data:       result.Data,
		Pagination: result.Pagination,
		SearchTerm: page.Search,
	})
}

// Find returns a single analyzed script by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	script, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, script)
}

// Delete removes an analyzed script by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResult{
		Success: true,
		Message: fmt.Sprintf("Analyzed script %s deleted successfully", id),
	})
}

func (h *Handler) validateUpload(filename, contentType string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidFile)
	}

	if int64(len(data)) > h.maxUploadSize {
		return ErrFileTooLarge
	}

	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("%w: only PDF files are supported", ErrInvalidFile)
	}

	if ct := detectContentType(contentType, data); ct != "application/pdf" {
		return fmt.Errorf("%w: unexpected content type %s", ErrInvalidFile, ct)
	}

	// probe only; a malformed page tree surfaces later as an extraction error
	if count, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		h.logger.Warn("PDF page count probe failed", "filename", filename, "error", err)
	} else {
		h.logger.Info("script upload received", "filename", filename, "pages", count)
	}

	return nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		mediaType, _, _ := strings.Cut(header, ";")
		return strings.TrimSpace(mediaType)
	}
	return http.DetectContentType(data)
}
