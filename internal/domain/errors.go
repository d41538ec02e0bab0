package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	ErrorValidation ErrorKind = "validation"
	ErrorNotFound   ErrorKind = "not_found"
	ErrorNetwork    ErrorKind = "network"
	ErrorServer     ErrorKind = "server"
	ErrorRateLimit  ErrorKind = "rate_limit"
	ErrorAuth       ErrorKind = "auth"
)

// SearchError is the only error shape that leaves the backend boundary.
type SearchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *SearchError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func (e *SearchError) Retryable() bool {
	switch e.Kind {
	case ErrorNetwork, ErrorServer, ErrorRateLimit:
		return true
	default:
		return false
	}
}

// a short human readable line for status bars
func (e *SearchError) UserMessage() string {
	switch e.Kind {
	case ErrorValidation:
		if e.Message != "" {
			return "Invalid search: " + e.Message
		}
		return "Invalid search"
	case ErrorNotFound:
		return "No artists found"
	case ErrorNetwork:
		return "Could not reach the search service"
	case ErrorServer:
		return "The search service is having trouble"
	case ErrorRateLimit:
		return "Too many searches, slow down a little"
	case ErrorAuth:
		return "You need to sign in again"
	default:
		return "Search failed"
	}
}

// Detail is the backend's own message, when UserMessage does not already
// carry it.
func (e *SearchError) Detail() string {
	if e.Kind == ErrorValidation {
		return ""
	}
	return e.Message
}

func NewValidationError(msg string, err error) *SearchError {
	return &SearchError{Kind: ErrorValidation, Message: msg, Err: err}
}

func NewNetworkError(err error) *SearchError {
	return &SearchError{Kind: ErrorNetwork, Message: "request failed", Err: err}
}

// ClassifyStatus maps a non-2xx backend status to an error kind.
// It returns nil for success codes.
func ClassifyStatus(status int, body string) *SearchError {
	if status >= 200 && status < 300 {
		return nil
	}

	e := &SearchError{StatusCode: status, Message: strings.TrimSpace(body)}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e.Kind = ErrorValidation
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = ErrorAuth
	case status == http.StatusNotFound:
		e.Kind = ErrorNotFound
	case status == http.StatusTooManyRequests:
		e.Kind = ErrorRateLimit
	case status >= 500:
		e.Kind = ErrorServer
	default:
		e.Kind = ErrorServer
	}
	return e
}

// AsSearchError coerces any error into the taxonomy. Errors that were not
// classified at the boundary are treated as connection failures.
func AsSearchError(err error) *SearchError {
	if err == nil {
		return nil
	}

	var se *SearchError
	if errors.As(err, &se) {
		return se
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &SearchError{Kind: ErrorNetwork, Message: "request timed out", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &SearchError{Kind: ErrorNetwork, Message: "request timed out", Err: err}
	}

	return NewNetworkError(err)
}

func IsErrorKind(err error, kind ErrorKind) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
