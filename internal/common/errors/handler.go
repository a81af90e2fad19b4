package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// HTTPHandler writes standardized errors to HTTP responses.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// errorResponse is the JSON body written for failed requests. Details are
// included so callers can act on validation failures; internal metadata is not.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// WriteError normalizes err to a StandardError, logs it, and writes the
// matching HTTP status and JSON body.
func (h *HTTPHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("Request failed", map[string]interface{}{
		"method":    r.Method,
		"path":      r.URL.Path,
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	status := StatusOf(stdErr.Code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
		Details: stdErr.Details,
	})
}

// StatusOf maps standardized error codes to HTTP status codes.
// Analysis-path codes never reach here in normal operation: upstream and
// parse failures are recovered internally before a response is written.
func StatusOf(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeUpstreamUnavailable, ErrCodeLLMTimeout:
		return http.StatusBadGateway
	case ErrCodePersistenceFailure, ErrCodeSearchQueryFailed:
		return http.StatusInternalServerError
	case ErrCodeRenderingFailure, ErrCodeMalformedUpstreamResponse:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// normalizeError ensures we always have a StandardError.
func (h *HTTPHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
