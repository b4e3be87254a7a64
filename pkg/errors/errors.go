// Package errors defines the coded errors autolayout reports at its
// boundaries.
//
// The layout core itself never fails: engine faults, partial routing and
// dangling references all degrade to a usable result. Coded errors appear
// where input is decoded and validated, configuration is loaded, or a
// collaborator such as an engine adapter or cache backend reports a fault.
// The HTTP server turns a code into a status with [HTTPStatus] and the
// message into the response body with [Message].
//
//	if err := errors.ValidateDiagram(d); errors.Is(err, errors.ErrCodeInvalidDiagram) {
//	    ...
//	}
//	return errors.Wrap(errors.ErrCodeEngine, err, "graphviz layout")
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error category.
type Code string

const (
	// Rejected input.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidDiagram Code = "INVALID_DIAGRAM"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeTooLarge       Code = "REQUEST_TOO_LARGE"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Collaborator faults.
	ErrCodeEngine Code = "ENGINE_FAILURE"
	ErrCodeCache  Code = "CACHE_ERROR"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// statuses maps codes to HTTP statuses. Unlisted codes are 500.
var statuses = map[Code]int{
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeInvalidDiagram: http.StatusBadRequest,
	ErrCodeInvalidConfig:  http.StatusBadRequest,
	ErrCodeTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeFileNotFound:   http.StatusNotFound,
	ErrCodeEngine:         http.StatusBadGateway,
	ErrCodeCache:          http.StatusServiceUnavailable,
}

// Error carries a Code, a message fit for end users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "" if
// there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error in err's chain,
// without code or cause, falling back to err.Error().
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus returns the HTTP status for err's code. Uncoded errors are 500.
func HTTPStatus(err error) int {
	if status, ok := statuses[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
