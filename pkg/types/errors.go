package types

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies who can act on a failure.
type ErrorCategory string

const (
	// ErrorCategoryValidation covers bad caller input: config, date range,
	// capital, portfolio. The user corrects the input and retries.
	ErrorCategoryValidation ErrorCategory = "validation"
	// ErrorCategoryData covers insufficient or low-quality history. The user
	// widens the range or picks another instrument.
	ErrorCategoryData ErrorCategory = "data"
	// ErrorCategoryCalculation covers numeric preconditions: division by
	// zero, precision overflow, no completed trades.
	ErrorCategoryCalculation ErrorCategory = "calculation"
	// ErrorCategorySystem covers unexpected internal failures.
	ErrorCategorySystem ErrorCategory = "system"
)

// Machine-readable error codes.
const (
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeNoTrades         = "NO_TRADES"
	CodeInternal         = "INTERNAL"
)

// CoreError is the categorized error carried across the computation
// boundary. Every error names a code, whether the caller can recover, and a
// suggested remediation.
type CoreError struct {
	Code        string        `json:"code"`
	Category    ErrorCategory `json:"category"`
	Message     string        `json:"message"`
	Recoverable bool          `json:"recoverable"`
	Suggestion  string        `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Category, e.Code, e.Message)
}

// NewValidationError creates a recoverable validation error.
func NewValidationError(code, message, suggestion string) *CoreError {
	return &CoreError{
		Code:        code,
		Category:    ErrorCategoryValidation,
		Message:     message,
		Recoverable: true,
		Suggestion:  suggestion,
	}
}

// NewDataError creates a recoverable data-quality error.
func NewDataError(code, message, suggestion string) *CoreError {
	return &CoreError{
		Code:        code,
		Category:    ErrorCategoryData,
		Message:     message,
		Recoverable: true,
		Suggestion:  suggestion,
	}
}

// NewCalculationError creates a calculation error. Calculation errors mark
// precondition violations and are not recoverable by retrying with the same
// input.
func NewCalculationError(code, message, suggestion string) *CoreError {
	return &CoreError{
		Code:        code,
		Category:    ErrorCategoryCalculation,
		Message:     message,
		Recoverable: false,
		Suggestion:  suggestion,
	}
}

// NewSystemError wraps an unexpected internal failure.
func NewSystemError(message string) *CoreError {
	return &CoreError{
		Code:        CodeInternal,
		Category:    ErrorCategorySystem,
		Message:     message,
		Recoverable: false,
	}
}

// IsCode reports whether err is (or wraps) a CoreError with the given code.
func IsCode(err error, code string) bool {
	var ce *CoreError
	return errors.As(err, &ce) && ce.Code == code
}
