// Package error defines domain-specific errors for the Cardwise application.
package error

import "errors"

// Recommendation domain errors.
var (
	// ErrInvalidSpendAmount is returned when the spend amount is zero or negative.
	ErrInvalidSpendAmount = errors.New("invalid spend amount")

	// ErrInvalidSpendCategory is returned when the category token is not in the taxonomy.
	ErrInvalidSpendCategory = errors.New("invalid spend category")

	// ErrInvalidRewardPreference is returned when the preference is not cashback, miles or empty.
	ErrInvalidRewardPreference = errors.New("invalid reward preference")

	// ErrInvalidSpendChannel is returned when the channel token is unknown.
	ErrInvalidSpendChannel = errors.New("invalid spend channel")

	// ErrRecommendationUserNotFound is returned when the recommendation target user does not exist.
	ErrRecommendationUserNotFound = errors.New("user not found")
)

// RecommendationErrorCode defines error codes for recommendation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecommendationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSpendAmount      RecommendationErrorCode = "REC-010001"
	ErrCodeInvalidSpendCategory    RecommendationErrorCode = "REC-010002"
	ErrCodeInvalidRewardPreference RecommendationErrorCode = "REC-010003"
	ErrCodeInvalidSpendChannel     RecommendationErrorCode = "REC-010004"

	// Resource errors (02XXXX)
	ErrCodeRecommendationUserNotFound RecommendationErrorCode = "REC-020001"
)

// RecommendationError represents a recommendation error with code and message.
type RecommendationError struct {
	Code    RecommendationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecommendationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecommendationError) Unwrap() error {
	return e.Err
}

// NewRecommendationError creates a new RecommendationError with the given code and message.
func NewRecommendationError(code RecommendationErrorCode, message string, err error) *RecommendationError {
	return &RecommendationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
