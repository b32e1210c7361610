package errors

import (
	"errors"
	"fmt"
)

// Error is the structured error type for htmldicts.
// It provides rich context for error handling, logging, and user presentation.
type Error struct {
	// Code is the unique error code (e.g., "ERR_302_BACKEND_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	Category Category
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates the caller may retry the operation.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code, so errors.Is works against sentinels
// such as New(ErrCodeBackendUnavailable, "", nil).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// New creates a new Error with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates an Error from an existing error.
// The error's message becomes the Error message.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *Error {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(code, message string) *Error {
	return New(code, message, nil)
}

// BackendUnavailable reports that the search backend cannot be reached or is
// not operational.
func BackendUnavailable(message string, cause error) *Error {
	return New(ErrCodeBackendUnavailable, message, cause).
		WithSuggestion("Check that the dictionary index exists and is not being rebuilt")
}

// BackendQueryFailed reports that the sub-query for one variant failed.
func BackendQueryFailed(variant string, cause error) *Error {
	msg := fmt.Sprintf("search for variant %q failed", variant)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return New(ErrCodeBackendQueryFailed, msg, cause).WithDetail("variant", variant)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if ae, ok := asError(err); ok {
		return ae.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if ae, ok := asError(err); ok {
		return ae.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the code of the first *Error in err's chain, or "".
func GetCode(err error) string {
	if ae, ok := asError(err); ok {
		return ae.Code
	}
	return ""
}

// GetCategory extracts the category of the first *Error in err's chain, or "".
func GetCategory(err error) Category {
	if ae, ok := asError(err); ok {
		return ae.Category
	}
	return ""
}

// HasCode reports whether err or any error it wraps carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		if ae, ok := err.(*Error); ok && ae.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// asError finds the first *Error in err's chain.
func asError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
