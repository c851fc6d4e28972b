// Package error defines domain-specific errors for the Cardwise application.
package error

import "errors"

// Wallet domain errors.
var (
	// ErrWalletCardNotFound is returned when an owned card is not found.
	ErrWalletCardNotFound = errors.New("wallet card not found")

	// ErrCardAlreadyInWallet is returned when adding a catalogue card the user already holds.
	ErrCardAlreadyInWallet = errors.New("card already in wallet")

	// ErrNotAuthorizedToModifyWallet is returned when the wallet card belongs to another user.
	ErrNotAuthorizedToModifyWallet = errors.New("not authorized to modify wallet card")

	// ErrInvalidWalletStatus is returned when the status is not Active, Suspended or Expired.
	ErrInvalidWalletStatus = errors.New("invalid wallet card status")

	// ErrCardNotUsable is returned when the referenced catalogue card is marked invalid.
	ErrCardNotUsable = errors.New("card is not usable")

	// ErrInvalidRefreshDay is returned when the billing refresh day is outside 1-28.
	ErrInvalidRefreshDay = errors.New("invalid refresh day")
)

// WalletErrorCode defines error codes for wallet errors.
// Format: WAL-XXYYYY where XX is category and YYYY is specific error.
type WalletErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWalletStatus WalletErrorCode = "WAL-010001"
	ErrCodeInvalidRefreshDay   WalletErrorCode = "WAL-010002"
	ErrCodeMissingWalletFields WalletErrorCode = "WAL-010003"

	// Resource errors (02XXXX)
	ErrCodeWalletCardNotFound  WalletErrorCode = "WAL-020001"
	ErrCodeCardAlreadyInWallet WalletErrorCode = "WAL-020002"
	ErrCodeWalletNotAuthorized WalletErrorCode = "WAL-020003"
	ErrCodeCardNotUsable       WalletErrorCode = "WAL-020004"
)

// WalletError represents a wallet error with code and message.
type WalletError struct {
	Code    WalletErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// NewWalletError creates a new WalletError with the given code and message.
func NewWalletError(code WalletErrorCode, message string, err error) *WalletError {
	return &WalletError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
