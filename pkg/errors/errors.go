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
	ErrInvalidState ErrorCode = "INVALID_STATE"

	// Configuration errors: missing environment, unsupported platform, bad config file
	ErrConfig ErrorCode = "CONFIG"

	// Version resolution errors
	ErrMissingVersion ErrorCode = "MISSING_VERSION"

	// Toolchain store errors
	ErrNotInstalled     ErrorCode = "NOT_INSTALLED"
	ErrAlreadyInstalled ErrorCode = "ALREADY_INSTALLED"

	// Indirection errors
	ErrDanglingAlias ErrorCode = "DANGLING_ALIAS"
	ErrLink          ErrorCode = "LINK_ERROR"
	ErrLockTimeout   ErrorCode = "LOCK_TIMEOUT"

	// Download and extraction errors
	ErrIO ErrorCode = "IO_ERROR"

	// A manifest script ran and exited non-zero
	ErrScriptFailed ErrorCode = "SCRIPT_FAILED"
)

// Detail keys shared across packages
const (
	DetailPath      = "path"
	DetailVersion   = "version"
	DetailTarget    = "target"
	DetailRetryable = "retryable"
	DetailExitCode  = "exit_code"
)

// IcicleError represents a structured error with code and details
type IcicleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *IcicleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *IcicleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *IcicleError) Is(target error) bool {
	var targetErr *IcicleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new IcicleError with the given code and message
func New(code ErrorCode, message string) *IcicleError {
	return &IcicleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new IcicleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *IcicleError {
	return &IcicleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an IcicleError
func Wrap(err error, code ErrorCode, message string) *IcicleError {
	if err == nil {
		return nil
	}
	return &IcicleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *IcicleError {
	if err == nil {
		return nil
	}
	return &IcicleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *IcicleError) WithDetail(key string, value interface{}) *IcicleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *IcicleError) WithDetails(details map[string]interface{}) *IcicleError {
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
	var icicleErr *IcicleError
	if errors.As(err, &icicleErr) {
		return icicleErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an IcicleError
func GetErrorCode(err error) ErrorCode {
	var icicleErr *IcicleError
	if errors.As(err, &icicleErr) {
		return icicleErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an IcicleError
func GetErrorDetails(err error) map[string]interface{} {
	var icicleErr *IcicleError
	if errors.As(err, &icicleErr) {
		return icicleErr.Details
	}
	return nil
}

// IsRetryable reports whether the error was marked as a transient condition
// a caller may retry, such as a session link observed mid-swap.
func IsRetryable(err error) bool {
	details := GetErrorDetails(err)
	if details == nil {
		return false
	}
	retry, ok := details[DetailRetryable].(bool)
	return ok && retry
}

// UserMessage returns the text shown to users: the message and its cause,
// without the code prefix.
func UserMessage(err error) string {
	var icicleErr *IcicleError
	if !errors.As(err, &icicleErr) {
		return err.Error()
	}
	if icicleErr.Wrapped != nil {
		return fmt.Sprintf("%s: %s", icicleErr.Message, UserMessage(icicleErr.Wrapped))
	}
	return icicleErr.Message
}
