// Package error defines domain-specific errors for the Cardwise application.
package error

import "errors"

// Explanation generation domain errors.
var (
	// ErrExplanationUnavailable is returned when no generation backend is configured.
	ErrExplanationUnavailable = errors.New("explanation service unavailable")

	// ErrExplanationTimeout is returned when generation exceeds its deadline.
	ErrExplanationTimeout = errors.New("explanation generation timed out")

	// ErrExplanationRateLimited is returned when the generation backend rate limits requests.
	ErrExplanationRateLimited = errors.New("explanation service rate limited")

	// ErrExplanationFailed is returned when the generation backend reports an error.
	ErrExplanationFailed = errors.New("explanation generation failed")

	// ErrExplanationEmpty is returned when the backend produces no usable text.
	ErrExplanationEmpty = errors.New("explanation response is empty")
)

// ExplanationErrorCode defines error codes for explanation errors.
// Format: LLM-XXYYYY where XX is category and YYYY is specific error.
type ExplanationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeExplanationEmpty ExplanationErrorCode = "LLM-010001"

	// External service errors (02XXXX)
	ErrCodeExplanationUnavailable ExplanationErrorCode = "LLM-020001"
	ErrCodeExplanationTimeout     ExplanationErrorCode = "LLM-020002"
	ErrCodeExplanationRateLimited ExplanationErrorCode = "LLM-020003"
	ErrCodeExplanationFailed      ExplanationErrorCode = "LLM-020004"
)

// ExplanationError represents an explanation generation error with code and message.
type ExplanationError struct {
	Code    ExplanationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExplanationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExplanationError) Unwrap() error {
	return e.Err
}

// NewExplanationError creates a new ExplanationError with the given code and message.
func NewExplanationError(code ExplanationErrorCode, message string, err error) *ExplanationError {
	return &ExplanationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
