package adapter

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrTransport wraps failures where no HTTP response was received.
	ErrTransport = errors.New("server unreachable")

	// ErrDecodingResponse is returned when a 2xx body cannot be decoded.
	ErrDecodingResponse = errors.New("error decoding response")
)

// APIError is a non-2xx backend response.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Message is the "error", "message" or "detail" value of the body, or
	// the first non-field error.
	Message string
	// Fields maps form field names to their validation messages.
	Fields map[string][]string

	kind error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Fields) > 0 {
		msg = e.FieldSummary()
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return e.kind.Error() + ": " + msg
}

// Unwrap returns the sentinel matching Status.
func (e *APIError) Unwrap() error {
	return e.kind
}

// FieldSummary renders field errors as "field: msg; field: msg" in field
// name order.
func (e *APIError) FieldSummary() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return strings.Join(parts, "; ")
}
