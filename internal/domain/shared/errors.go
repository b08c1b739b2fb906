package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewPersistenceError wraps a storage failure as a domain error.
// The underlying cause is logged at the infrastructure layer; callers
// only see that the transaction did not commit and may retry.
func NewPersistenceError(op string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodePersistenceFailure,
		Message: fmt.Sprintf("%s: %v", op, cause),
	}
}

// Error codes carried on DomainError
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeLedgerShortfall    = "LEDGER_SHORTFALL"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
