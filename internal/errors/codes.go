// Package errors provides structured error handling for htmldicts.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, index)
//   - 3XX: Backend reachability errors
//   - 4XX: Validation errors
//   - 5XX: Internal and backend query errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and index I/O errors.
	CategoryIO Category = "IO"
	// CategoryBackend indicates the search backend could not be reached.
	CategoryBackend Category = "BACKEND"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound = "ERR_201_FILE_NOT_FOUND"
	ErrCodeCorruptIndex = "ERR_205_CORRUPT_INDEX"
	ErrCodeIndexLocked  = "ERR_207_INDEX_LOCKED"
	ErrCodeEntryParse   = "ERR_208_ENTRY_PARSE"

	// Backend errors (300-399)
	ErrCodeBackendUnavailable = "ERR_302_BACKEND_UNAVAILABLE"

	// Validation errors (400-499)
	ErrCodeInvalidInput       = "ERR_401_INVALID_INPUT"
	ErrCodeQueryEmpty         = "ERR_404_QUERY_EMPTY"
	ErrCodeInvalidContextSize = "ERR_407_INVALID_CONTEXT_SIZE"
	ErrCodeLimitOutOfRange    = "ERR_408_LIMIT_OUT_OF_RANGE"

	// Internal errors (500-599)
	ErrCodeInternal           = "ERR_501_INTERNAL"
	ErrCodeSearchFailed       = "ERR_503_SEARCH_FAILED"
	ErrCodeIndexFailed        = "ERR_505_INDEX_FAILED"
	ErrCodeBackendQueryFailed = "ERR_506_BACKEND_QUERY_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "302" from "ERR_302_BACKEND_UNAVAILABLE"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryBackend
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCorruptIndex:
		return SeverityFatal
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}
	return SeverityError
}

// isRetryableCode reports whether a caller may retry. The search core itself
// never retries.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeBackendUnavailable, ErrCodeIndexLocked:
		return true
	default:
		return false
	}
}
