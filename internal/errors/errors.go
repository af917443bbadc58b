// Package errors defines the error envelope of the HTTP query surface.
package errors

import (
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound       Code = "NOT_FOUND"
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeReadOnly       Code = "READ_ONLY"
	CodeQueryFailed    Code = "QUERY_FAILED"
	CodeInternal       Code = "INTERNAL_ERROR"
	CodeRateLimited    Code = "RATE_LIMITED"
)

// APIError is the body of every failed HTTP response.
type APIError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithRequestID returns a copy tagged with the request id, leaving shared values untouched.
func (e *APIError) WithRequestID(id string) *APIError {
	cp := *e
	cp.RequestID = id
	return &cp
}

var (
	// ErrReadOnly mirrors the gateway's guard rejection
	ErrReadOnly    = &APIError{Code: CodeReadOnly, Message: "only SELECT queries are allowed", HTTPStatus: http.StatusBadRequest}
	ErrRateLimited = &APIError{Code: CodeRateLimited, Message: "Rate limit exceeded", HTTPStatus: http.StatusTooManyRequests}
)

// NotFound reports a missing table or tool.
func NotFound(resource string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidRequest reports a malformed request body or arguments.
func InvalidRequest(message string) *APIError {
	return &APIError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// QueryFailed wraps a storage error raised while executing a caller's query.
// The driver message is passed through; it describes the caller's SQL, not the server.
func QueryFailed(err error) *APIError {
	return &APIError{
		Code:       CodeQueryFailed,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal reports a server-side failure without leaking its cause.
func Internal(message string) *APIError {
	if message == "" {
		message = "Internal server error"
	}
	return &APIError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}
