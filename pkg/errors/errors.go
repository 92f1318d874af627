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
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateInvalid  ErrorCode = "TEMPLATE_INVALID"

	// Field errors
	ErrFieldInvalid ErrorCode = "FIELD_INVALID"

	// Filter pipeline errors
	ErrFilterSpawn ErrorCode = "FILTER_SPAWN"
	ErrFilterRead  ErrorCode = "FILTER_READ"
)

// ExpandoError represents a structured error with code and details
type ExpandoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ExpandoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ExpandoError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ExpandoError) Is(target error) bool {
	var targetErr *ExpandoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ExpandoError with the given code and message
func New(code ErrorCode, message string) *ExpandoError {
	return &ExpandoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ExpandoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ExpandoError {
	return &ExpandoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ExpandoError
func Wrap(err error, code ErrorCode, message string) *ExpandoError {
	if err == nil {
		return nil
	}
	return &ExpandoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ExpandoError {
	if err == nil {
		return nil
	}
	return &ExpandoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ExpandoError) WithDetail(key string, value interface{}) *ExpandoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ExpandoError) WithDetails(details map[string]interface{}) *ExpandoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var expErr *ExpandoError
	if errors.As(err, &expErr) {
		return expErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ExpandoError
func GetErrorCode(err error) ErrorCode {
	var expErr *ExpandoError
	if errors.As(err, &expErr) {
		return expErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ExpandoError
func GetErrorDetails(err error) map[string]interface{} {
	var expErr *ExpandoError
	if errors.As(err, &expErr) {
		return expErr.Details
	}
	return nil
}
