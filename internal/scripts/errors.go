package scripts

import (
	"errors"
	"net/http"

	"github.com/slatehq/slate/internal/agent"
	"github.com/slatehq/slate/internal/workflow"
)

// Domain errors for analyzed script operations.
var (
	ErrNotFound       = errors.New("analyzed script not found")
	ErrDuplicate      = errors.New("analyzed script already exists")
	ErrFileTooLarge   = errors.New("file exceeds maximum upload size")
	ErrInvalidFile    = errors.New("invalid script file")
	ErrInvalidRequest = errors.New("invalid request")
)

// MapHTTPStatus maps script domain, agent, and workflow errors to HTTP
// status codes. Classification is by error identity, never message text.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, workflow.ErrTimeout) {
		return http.StatusRequestTimeout
	}
	if errors.Is(err, agent.ErrExtraction) || errors.Is(err, agent.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
