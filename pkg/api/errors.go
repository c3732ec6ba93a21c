package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a tool call or startup failed
type ErrorKind string

const (
	KindConfiguration   ErrorKind = "ConfigurationError"
	KindInvalidArgument ErrorKind = "InvalidArgument"
	KindAuthentication  ErrorKind = "AuthenticationError"
	KindNotFound        ErrorKind = "NotFound"
	KindUpstream        ErrorKind = "UpstreamError"
	KindInternal        ErrorKind = "InternalError"
)

// Error is the error type returned by every layer of the server.
// Status is the upstream HTTP status code, if any.
type Error struct {
	Kind    ErrorKind
	Tool    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	prefix := string(e.Kind)
	if e.Tool != "" {
		prefix = e.Tool + ": " + prefix
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", prefix, e.Status, msg)
	}

	return prefix + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind with a formatted message
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument is shorthand for NewError(KindInvalidArgument, ...)
func InvalidArgument(format string, args ...any) *Error {
	return NewError(KindInvalidArgument, format, args...)
}

// Internal is shorthand for NewError(KindInternal, ...)
func Internal(format string, args ...any) *Error {
	return NewError(KindInternal, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors without one are reported as KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// AsError returns the first *Error in err's chain, wrapping foreign errors as internal ones.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Kind: KindInternal, Err: err}
}
