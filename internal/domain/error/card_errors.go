// Package error defines domain-specific errors for the Cardwise application.
package error

import "errors"

// Catalogue card domain errors.
var (
	// ErrCardNotFound is returned when a catalogue card is not found.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidBank is returned when the issuing bank is not recognised.
	ErrInvalidBank = errors.New("invalid bank")

	// ErrInvalidBenefitType is returned when the benefit type is not CASHBACK, MILES or BOTH.
	ErrInvalidBenefitType = errors.New("invalid benefit type")

	// ErrInvalidBaseRate is returned when the base rate is zero or negative.
	ErrInvalidBaseRate = errors.New("invalid base rate")

	// ErrInvalidCardStatus is returned when the card status is not VALID or INVALID.
	ErrInvalidCardStatus = errors.New("invalid card status")

	// ErrInvalidBonusCategory is returned when a bonus rule names an unknown category.
	ErrInvalidBonusCategory = errors.New("invalid bonus category")

	// ErrDuplicateBonusCategory is returned when a card already has a rule for the category.
	ErrDuplicateBonusCategory = errors.New("bonus category already defined for card")

	// ErrInvalidBonusRate is returned when a bonus rate is zero or negative.
	ErrInvalidBonusRate = errors.New("invalid bonus rate")

	// ErrInvalidBonusCap is returned when a bonus cap or minimum spend is malformed.
	ErrInvalidBonusCap = errors.New("invalid bonus cap")

	// ErrMissingCardFields is returned when required card fields are absent.
	ErrMissingCardFields = errors.New("missing required card fields")

	// ErrInvalidPeriodRule is returned when a period rule is malformed.
	ErrInvalidPeriodRule = errors.New("invalid period rule")

	// ErrCardHasWalletReferences is returned when deleting a card that users still hold.
	ErrCardHasWalletReferences = errors.New("card is still referenced by wallets")

	// ErrCardAlreadyExists is returned when a bank already lists a card with the name.
	ErrCardAlreadyExists = errors.New("card already exists")
)

// CardErrorCode defines error codes for catalogue card errors.
// Format: CARD-XXYYYY where XX is category and YYYY is specific error.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBank          CardErrorCode = "CARD-010001"
	ErrCodeInvalidBenefitType   CardErrorCode = "CARD-010002"
	ErrCodeInvalidBaseRate      CardErrorCode = "CARD-010003"
	ErrCodeInvalidCardStatus    CardErrorCode = "CARD-010004"
	ErrCodeInvalidBonusCategory CardErrorCode = "CARD-010005"
	ErrCodeInvalidBonusRate     CardErrorCode = "CARD-010006"
	ErrCodeInvalidPeriodRule    CardErrorCode = "CARD-010007"
	ErrCodeMissingCardFields    CardErrorCode = "CARD-010008"
	ErrCodeInvalidBonusCap      CardErrorCode = "CARD-010009"

	// Resource errors (02XXXX)
	ErrCodeCardNotFound           CardErrorCode = "CARD-020001"
	ErrCodeDuplicateBonusCategory CardErrorCode = "CARD-020002"
	ErrCodeCardHasWalletRefs      CardErrorCode = "CARD-020003"
	ErrCodeCardAlreadyExists      CardErrorCode = "CARD-020004"
)

// CardError represents a catalogue card error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
