package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies a gateway failure.
type ErrorType string

const (
	ErrorTypeTimeout   ErrorType = "timeout"
	ErrorTypeTransport ErrorType = "transport"
	ErrorTypeService   ErrorType = "service"
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error is a structured completion-gateway error with classification.
type Error struct {
	Type       ErrorType // Classification of the error
	Message    string    // Human-readable message
	Retryable  bool      // Whether the operation can be retried
	Cause      error     // Underlying error
	StatusCode int       // HTTP status code if applicable
	Body       string    // Response body excerpt for service errors
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface so the
// retry package can check retryability without importing llm.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured gateway error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes an error into a structured Error. This
// consolidates classification so every provider surfaces the same
// Timeout / Transport / Service taxonomy.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	// Timeouts and cancellation surface as the Timeout type; the caller
	// decides whether to present a retry option.
	if errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded") {
		e := NewError(ErrorTypeTimeout, "request timed out", true, err)
		e.StatusCode = statusCode
		return e
	}

	// Authentication errors are never retryable.
	if strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") {
		e := NewError(ErrorTypeAuth, "authentication failed", false, err)
		e.StatusCode = statusCode
		return e
	}

	// Connection-level failures.
	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "broken pipe") {
		e := NewError(ErrorTypeTransport, "connection failed", true, err)
		e.StatusCode = statusCode
		return e
	}

	// Rate limiting is a retryable service condition.
	if strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit") {
		e := NewError(ErrorTypeService, "rate limited", true, err)
		e.StatusCode = statusCode
		return e
	}

	// 5xx server errors.
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504") {
		e := NewError(ErrorTypeService, "server error", true, err)
		e.StatusCode = statusCode
		e.Body = truncateBody(errStr)
		return e
	}

	e := NewError(ErrorTypeUnknown, "completion error", false, err)
	e.StatusCode = statusCode
	return e
}

// IsRetryable returns true if the error is a retryable gateway error.
func IsRetryable(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Retryable
	}
	return false
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Type
	}
	return ErrorTypeUnknown
}

func truncateBody(s string) string {
	const max = 500
	if len(s) > max {
		return s[:max]
	}
	return s
}
