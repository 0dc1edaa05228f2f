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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Template errors
	ErrTemplate ErrorCode = "TEMPLATE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrBackup     ErrorCode = "BACKUP"
)

// CrulesError represents a structured error with code and details
type CrulesError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CrulesError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CrulesError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CrulesError) Is(target error) bool {
	var targetErr *CrulesError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CrulesError with the given code and message
func New(code ErrorCode, message string) *CrulesError {
	return &CrulesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CrulesError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CrulesError {
	return &CrulesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CrulesError
func Wrap(err error, code ErrorCode, message string) *CrulesError {
	if err == nil {
		return nil
	}
	return &CrulesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CrulesError {
	if err == nil {
		return nil
	}
	return &CrulesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CrulesError) WithDetail(key string, value interface{}) *CrulesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var crulesErr *CrulesError
	if errors.As(err, &crulesErr) {
		return crulesErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CrulesError
func GetErrorCode(err error) ErrorCode {
	var crulesErr *CrulesError
	if errors.As(err, &crulesErr) {
		return crulesErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CrulesError
func GetErrorDetails(err error) map[string]interface{} {
	var crulesErr *CrulesError
	if errors.As(err, &crulesErr) {
		return crulesErr.Details
	}
	return nil
}
