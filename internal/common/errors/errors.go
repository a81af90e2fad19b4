// Package errors provides standardized error handling for the assessment pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeUpstreamUnavailable        ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedUpstreamResponse  ErrorCode = "MALFORMED_UPSTREAM_RESPONSE"
	ErrCodeLLMTimeout                 ErrorCode = "LLM_TIMEOUT"

	ErrCodeRenderingFailure ErrorCode = "RENDERING_FAILURE"

	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeSearchQueryFailed  ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeWorkflowPublishFailed  ErrorCode = "WORKFLOW_PUBLISH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the error code from any error, falling back to UNKNOWN_ERROR.
func CodeOf(err error) string {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

// IsCode reports whether err carries the given standardized code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable client input error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Request input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates a retryable remote model error.
func NewUpstreamUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   "Remote model unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedUpstreamResponseError creates a non-retryable parse error for
// remote output that did not contain the expected structure.
func NewMalformedUpstreamResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedUpstreamResponse,
		Message:   "Remote model response was not parseable",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable per-model timeout error.
func NewLLMTimeoutError(model string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Remote model attempt timed out",
		Details:   fmt.Sprintf("model: %s", model),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderingFailureError creates a retryable rasterization error.
func NewRenderingFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderingFailure,
		Message:   "Document rasterization failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceFailureError creates a retryable store error. Unlike the
// analysis path, persistence failures are surfaced to the caller: silently
// dropping a lead is a correctness violation for the business.
func NewPersistenceFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailure,
		Message:   "Lead store unreachable or write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Lead search query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkflowPublishFailedError creates a retryable workflow message error.
func NewWorkflowPublishFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowPublishFailed,
		Message:   "Workflow message publication failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
