package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures talking to the activities server
type ErrorType string

const (
	// ErrorTypeTransport means the request never completed
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeStatus means the server answered with a non-2xx status
	ErrorTypeStatus ErrorType = "status"
	// ErrorTypeMalformed means the response body was not the expected JSON
	ErrorTypeMalformed ErrorType = "malformed"
)

// ClientError is returned by the activities client for every failed call
type ClientError struct {
	Type       ErrorType
	Operation  string
	StatusCode int
	// Detail is the server-supplied `detail` field, empty when absent
	Detail   string
	Internal error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Operation, e.Type)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Internal != nil {
		msg += ": " + e.Internal.Error()
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *ClientError) Unwrap() error {
	return e.Internal
}

// NewTransportError creates an error for a request that never completed
func NewTransportError(op string, internal error) *ClientError {
	return &ClientError{Type: ErrorTypeTransport, Operation: op, Internal: internal}
}

// NewStatusError creates an error for a non-2xx response
func NewStatusError(op string, statusCode int, detail string) *ClientError {
	return &ClientError{Type: ErrorTypeStatus, Operation: op, StatusCode: statusCode, Detail: detail}
}

// NewMalformedError creates an error for an unparseable response body
func NewMalformedError(op string, statusCode int, internal error) *ClientError {
	return &ClientError{Type: ErrorTypeMalformed, Operation: op, StatusCode: statusCode, Internal: internal}
}

// AsClientError unwraps err into a *ClientError if it holds one
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsStatus reports whether err is a non-2xx response error
func IsStatus(err error) bool {
	ce, ok := AsClientError(err)
	return ok && ce.Type == ErrorTypeStatus
}
