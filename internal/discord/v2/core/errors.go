package core

import (
	"errors"
	"fmt"
)

// HandlerError carries a message that is safe to show to the user alongside the real cause
type HandlerError struct {
	Err error

	// UserMessage is what the user sees in the ephemeral reply
	UserMessage string

	ShowToUser bool

	// Code is an HTTP-like category used in logs
	Code int
}

func (e *HandlerError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

const (
	ErrorCodeBadRequest = 400
	ErrorCodeForbidden  = 403
	ErrorCodeNotFound   = 404
	ErrorCodeGone       = 410
	ErrorCodeInternal   = 500
)

// NewHandlerError creates a new handler error
func NewHandlerError(err error, userMessage string, code int) *HandlerError {
	return &HandlerError{
		Err:         err,
		UserMessage: userMessage,
		ShowToUser:  true,
		Code:        code,
	}
}

// NewInternalError hides err behind a generic message
func NewInternalError(err error) *HandlerError {
	return NewHandlerError(err, "An internal error occurred. Please try again later.", ErrorCodeInternal)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *HandlerError {
	return NewHandlerError(nil, fmt.Sprintf("%s not found", resource), ErrorCodeNotFound)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *HandlerError {
	return NewHandlerError(nil, message, ErrorCodeForbidden)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *HandlerError {
	return NewHandlerError(nil, message, ErrorCodeBadRequest)
}

// UserMessage extracts the user-facing message from err, if it has one
func UserMessage(err error) (string, bool) {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) && handlerErr.ShowToUser && handlerErr.UserMessage != "" {
		return handlerErr.UserMessage, true
	}
	return "", false
}

// ErrorCode returns the HandlerError code for err, or ErrorCodeInternal
func ErrorCode(err error) int {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr.Code
	}
	return ErrorCodeInternal
}
