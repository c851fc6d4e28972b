// Package error defines domain-specific errors for the Cardwise application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionChannel is returned when the channel is not online, contactless or in_store.
	ErrInvalidTransactionChannel = errors.New("invalid transaction channel")

	// ErrInvalidTransactionCategory is returned when the category token is unknown.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrInvalidBillingMonth is returned when a month filter is not in YYYY-MM form.
	ErrInvalidBillingMonth = errors.New("invalid billing month")

	// ErrTransactionCardNotInWallet is returned when logging spend against a card the user does not hold.
	ErrTransactionCardNotInWallet = errors.New("card not in wallet")

	// ErrMissingTransactionFields is returned when required transaction fields are absent or malformed.
	ErrMissingTransactionFields = errors.New("missing required transaction fields")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionChannel  TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionCategory TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidBillingMonth        TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010006"

	// Resource errors (02XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-020001"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-020002"
	ErrCodeTxnCardNotInWallet       TransactionErrorCode = "TXN-020003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
