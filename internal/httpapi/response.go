package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/internal/snapshot"
)

// maxRequestBodySize caps uploaded snapshot documents.
const maxRequestBodySize = 1 << 20

// APIErrorResponse is the envelope for every error body.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// apiError is an error with a client-facing status and code.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func badRequest(code, msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// JSON writes data with the given status.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal","message":"failed to marshal response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error maps err to a status and writes the error envelope. Unknown errors
// become a 500 without their message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	detail := ErrorDetail{RequestID: middleware.GetReqID(r.Context())}
	status := http.StatusInternalServerError

	var apiErr *apiError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &apiErr):
		status, detail.Code, detail.Message = apiErr.Status, apiErr.Code, apiErr.Message
	case errors.As(err, &tooLarge):
		status, detail.Code, detail.Message = http.StatusRequestEntityTooLarge, "body_too_large", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	case errors.Is(err, snapshot.ErrMissingRankings), errors.Is(err, snapshot.ErrMalformed):
		status, detail.Code, detail.Message = http.StatusBadRequest, "invalid_snapshot", err.Error()
	case errors.Is(err, snapshot.ErrEmptyResult):
		status, detail.Code, detail.Message = http.StatusUnprocessableEntity, "empty_result", err.Error()
	case errors.Is(err, chart.ErrNoData):
		status, detail.Code, detail.Message = http.StatusNotFound, "no_data", "nothing to chart for this request"
	default:
		detail.Code, detail.Message = "internal", "an unexpected error occurred"
	}
	JSON(w, status, APIErrorResponse{Error: detail})
}
