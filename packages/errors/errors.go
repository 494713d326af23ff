// Package errors provides coded errors for vercel-env-push.
//
// Every failure the push pipeline can surface carries an ErrorCode so callers
// and tests can match on the kind of failure instead of the message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure kind
type ErrorCode string

const (
	ErrUnknown ErrorCode = "UNKNOWN"

	// Validation errors
	ErrEmptyEnvironmentList ErrorCode = "EMPTY_ENVIRONMENT_LIST"
	ErrUnknownEnvironment   ErrorCode = "UNKNOWN_ENVIRONMENT"
	ErrBranchNotApplicable  ErrorCode = "BRANCH_NOT_APPLICABLE"

	// File errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrEmptyEnvFile ErrorCode = "EMPTY_ENV_FILE"
	ErrExpansion    ErrorCode = "EXPANSION"

	// Sync errors
	ErrRemoveFailed ErrorCode = "REMOVE_FAILED"
	ErrAddFailed    ErrorCode = "ADD_FAILED"

	ErrUserAborted   ErrorCode = "USER_ABORTED"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrHookFailed    ErrorCode = "HOOK_FAILED"
)

// Category groups error codes into the families reported to users
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryFile       Category = "file"
	CategorySync       Category = "sync"
	CategoryUser       Category = "user"
	CategoryConfig     Category = "config"
	CategoryTransform  Category = "transform"
	CategoryUnknown    Category = "unknown"
)

// CategoryOf returns the family an error code belongs to
func CategoryOf(code ErrorCode) Category {
	switch code {
	case ErrEmptyEnvironmentList, ErrUnknownEnvironment, ErrBranchNotApplicable:
		return CategoryValidation
	case ErrFileNotFound, ErrEmptyEnvFile, ErrExpansion:
		return CategoryFile
	case ErrRemoveFailed, ErrAddFailed:
		return CategorySync
	case ErrUserAborted:
		return CategoryUser
	case ErrConfigInvalid:
		return CategoryConfig
	case ErrHookFailed:
		return CategoryTransform
	}
	return CategoryUnknown
}

// Error is a structured error with a code and optional details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error returns the human readable message. The wrapped cause is reachable
// through Unwrap and is not repeated here.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error by code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err still produces an error so that
// callers reporting a failure never lose it.
func Wrap(err error, code ErrorCode, message string) *Error {
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of err, or ErrUnknown
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetDetails returns the details of err, or nil
func GetDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
