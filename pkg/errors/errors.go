// Package errors provides structured error types for the RING client.
//
// Every failure surfaced by the client carries a machine-readable [Code]:
//   - INVALID_PARAMETER: local validation failure; the request never reached the network
//   - NETWORK_ERROR: connection, TLS, DNS or timeout failure
//   - HTTP_STATUS: the service answered with a non-success status code
//   - MALFORMED_RESPONSE: the service answered 2xx but the body did not fit the typed model
//   - JOB_FAILED: the service reported the job as failed
//
// The typed errors ([InvalidParameterError], [NetworkError], [HTTPStatusError],
// [MalformedResponseError], [JobFailedError]) each expose a Code method, so
// [Is] and [GetCode] work on them as well as on the generic [Error].
//
// # Usage
//
//	_, err := client.SubmitID(ctx, req)
//	switch {
//	case errors.Is(err, errors.ErrCodeHTTPStatus):
//	    var se *errors.HTTPStatusError
//	    stderrors.As(err, &se)
//	    log.Printf("status %d: %s", se.StatusCode, se.Body)
//	case errors.Is(err, errors.ErrCodeNetwork):
//	    // retry later
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidParameter  Code = "INVALID_PARAMETER"
	ErrCodeNetwork           Code = "NETWORK_ERROR"
	ErrCodeHTTPStatus        Code = "HTTP_STATUS"
	ErrCodeMalformedResponse Code = "MALFORMED_RESPONSE"
	ErrCodeJobFailed         Code = "JOB_FAILED"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by the typed errors in this package.
type coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for the outermost *Error or typed error
// and compares its code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
