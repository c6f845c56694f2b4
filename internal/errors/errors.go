package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a tabkeeper error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrAlreadyTracked ErrorCode = "ALREADY_TRACKED" // 409
	ErrNoteTooLong    ErrorCode = "NOTE_TOO_LONG"   // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TrackerError represents a structured error with code, status, and details.
type TrackerError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TrackerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TrackerError {
	return &TrackerError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a tab has no intent record.
func NewNotFound(tabID int) *TrackerError {
	return &TrackerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no record for tab %d", tabID),
		Details: map[string]any{"tab_id": tabID},
	}
}

// NewAlreadyTracked creates a 409 error for a tab that already has an open record.
func NewAlreadyTracked(tabID int) *TrackerError {
	return &TrackerError{
		Code:    ErrAlreadyTracked,
		Status:  409,
		Message: fmt.Sprintf("tab %d already has an open intent record", tabID),
		Details: map[string]any{"tab_id": tabID},
	}
}

// NewNoteTooLong creates a 422 error when a note exceeds the configured limit.
func NewNoteTooLong(max, actual int) *TrackerError {
	return &TrackerError{
		Code:    ErrNoteTooLong,
		Status:  422,
		Message: fmt.Sprintf("note exceeds maximum length: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TrackerError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TrackerError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// AsTrackerError coerces any error into a TrackerError, wrapping
// unrecognized errors as internal.
func AsTrackerError(err error) *TrackerError {
	var tErr *TrackerError
	if stderrors.As(err, &tErr) {
		return tErr
	}
	return NewInternal(err)
}

// Is checks if an error is a TrackerError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TrackerError); ok {
		return tErr.Code == code
	}
	return false
}
