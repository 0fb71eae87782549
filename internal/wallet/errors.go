package wallet

import "errors"

// Stable error codes rendered to API clients. The set is closed; codes and
// messages never change for a released version.
const (
	CodeValidation          = "VAL-000"
	CodeInvalidChargeValue  = "BUS-001"
	CodeInsufficientBalance = "BUS-002"
	CodePaymentError        = "BUS-003"
)

// BusinessError is a domain-rule violation carrying one (code, message) pair.
type BusinessError struct {
	Code    string
	Message string
	cause   error
}

func (e *BusinessError) Error() string { return e.Code + ": " + e.Message }

// Unwrap exposes the underlying failure, if any, for logging. It is never
// rendered to the caller.
func (e *BusinessError) Unwrap() error { return e.cause }

var (
	// ErrInvalidChargeValue rejects amounts that are zero or negative.
	ErrInvalidChargeValue = &BusinessError{
		Code:    CodeInvalidChargeValue,
		Message: "Value to charge should be a positive number greater than 0.",
	}

	// ErrInsufficientBalance rejects charges the wallet cannot cover.
	ErrInsufficientBalance = &BusinessError{
		Code:    CodeInsufficientBalance,
		Message: "Balance is not enough to make the charge.",
	}

	// ErrNotFound means the identifier does not resolve to a wallet. It is a
	// normal outcome, not part of the business taxonomy.
	ErrNotFound = errors.New("wallet not found")

	// ErrVersionConflict signals a save that lost the race against a
	// concurrent mutation of the same wallet.
	ErrVersionConflict = errors.New("wallet version conflict")
)

// NewPaymentError wraps a gateway failure into the stable BUS-003 entry.
func NewPaymentError(cause error) *BusinessError {
	return &BusinessError{
		Code:    CodePaymentError,
		Message: "Recharge cannot be completed because the third party platform rejected the charge.",
		cause:   cause,
	}
}

// ValidationError reports a missing or malformed caller argument. The
// transport layer renders it under the generic VAL-000 code.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
