package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable category of an error. Tests and the JSON output
// match on it rather than on messages.
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Run configuration errors. These are raised before anything is written.
	ErrConfiguration ErrorCode = "CONFIGURATION"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"

	// Version control errors
	ErrNotARepository ErrorCode = "NOT_A_REPOSITORY"
	ErrDiffRetrieval  ErrorCode = "DIFF_RETRIEVAL"

	// Baseline marker errors
	ErrBaselineEmpty  ErrorCode = "BASELINE_EMPTY"
	ErrBaselineLookup ErrorCode = "BASELINE_LOOKUP"

	// FileSystem errors
	ErrFilesystem ErrorCode = "FILESYSTEM"
)

// DeltaError is an error with a code and optional details
type DeltaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DeltaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DeltaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DeltaError carrying the same code.
func (e *DeltaError) Is(target error) bool {
	t, ok := target.(*DeltaError)
	return ok && e.Code == t.Code
}

func build(err error, code ErrorCode, message string) *DeltaError {
	return &DeltaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// New creates a DeltaError with the given code and message
func New(code ErrorCode, message string) *DeltaError {
	return build(nil, code, message)
}

func Newf(code ErrorCode, format string, args ...interface{}) *DeltaError {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *DeltaError {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeltaError {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

// WithDetail records a key/value shown by the machine-readable renderers
func (e *DeltaError) WithDetail(key string, value interface{}) *DeltaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// find returns the outermost DeltaError in err's chain
func find(err error) (*DeltaError, bool) {
	var deltaErr *DeltaError
	ok := errors.As(err, &deltaErr)
	return deltaErr, ok
}

// IsErrorCode reports whether err carries code
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetErrorCode returns the code of err, ErrUnknown for plain errors
func GetErrorCode(err error) ErrorCode {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of err, nil for plain errors
func GetErrorDetails(err error) map[string]interface{} {
	if e, ok := find(err); ok {
		return e.Details
	}
	return nil
}

// Sentinels for errors.Is checks; they match any DeltaError with the same code.
var (
	ConfigurationError  = New(ErrConfiguration, "configuration error")
	NotARepositoryError = New(ErrNotARepository, "not a repository")
	DiffRetrievalError  = New(ErrDiffRetrieval, "diff retrieval failed")
	BaselineEmptyError  = New(ErrBaselineEmpty, "baseline marker is empty")
	BaselineLookupError = New(ErrBaselineLookup, "baseline lookup failed")
	FilesystemError     = New(ErrFilesystem, "filesystem error")
)
