package triage

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call so screens can react
// differently to bad credentials, duplicate ids, and a dead network.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindConflict       ErrorKind = "conflict"
	KindServer         ErrorKind = "server"
	KindUnreachable    ErrorKind = "unreachable"
	KindMalformed      ErrorKind = "malformed_response"
)

type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("triage api: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("triage api: %s: %s", e.Kind, e.Message)
}

// IsKind reports whether err wraps an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// KindOf returns the kind of the APIError wrapped in err, or an empty
// kind when err is not an API error.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func validationError(format string, a ...interface{}) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, a...),
	}
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(status int, message string) *APIError {
	kind := KindServer
	switch status {
	case 401:
		kind = KindAuthentication
	case 409:
		kind = KindConflict
	}
	if message == "" {
		message = "request rejected by server"
	}
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Message:    message,
	}
}
