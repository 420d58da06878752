package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown    ErrorCode = "UNKNOWN"
	ErrInternal   ErrorCode = "INTERNAL"
	ErrPermission ErrorCode = "PERMISSION"

	// Configuration errors (fatal)
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// A required capability is not available
	ErrDependencyMissing ErrorCode = "DEPENDENCY_MISSING"

	// FileSystem errors, scoped to a single entry
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrBackup        ErrorCode = "BACKUP"
	ErrRemove        ErrorCode = "REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Input errors, scoped to a single prompt
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrOutOfRange   ErrorCode = "OUT_OF_RANGE"

	// The user cancelled a prompt
	ErrInterrupted ErrorCode = "INTERRUPTED"

	// Hotspot command errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
)

// DotlinkError represents a structured error with code and details
type DotlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotlinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DotlinkError carrying the same code
func (e *DotlinkError) Is(target error) bool {
	var targetErr *DotlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotlinkError with the given code and message
func New(code ErrorCode, message string) *DotlinkError {
	return &DotlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotlinkError {
	return &DotlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotlinkError
func Wrap(err error, code ErrorCode, message string) *DotlinkError {
	if err == nil {
		return nil
	}
	return &DotlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotlinkError {
	if err == nil {
		return nil
	}
	return &DotlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotlinkError) WithDetail(key string, value interface{}) *DotlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dlErr *DotlinkError
	if errors.As(err, &dlErr) {
		return dlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotlinkError
func GetErrorCode(err error) ErrorCode {
	var dlErr *DotlinkError
	if errors.As(err, &dlErr) {
		return dlErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var dlErr *DotlinkError
	if errors.As(err, &dlErr) {
		return dlErr.Details
	}
	return nil
}

// IsFatal reports whether err belongs to a category that must terminate the
// process: configuration failures and missing required capabilities.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid, ErrDependencyMissing:
		return true
	}
	return false
}

// IsInterrupted reports whether err was caused by the user cancelling a prompt
func IsInterrupted(err error) bool {
	return IsErrorCode(err, ErrInterrupted)
}

// Message returns the error text meant for users: the messages of the chain
// without code prefixes
func Message(err error) string {
	if err == nil {
		return ""
	}
	var dlErr *DotlinkError
	if errors.As(err, &dlErr) {
		if dlErr.Wrapped != nil {
			return dlErr.Message + ": " + Message(dlErr.Wrapped)
		}
		return dlErr.Message
	}
	return err.Error()
}
