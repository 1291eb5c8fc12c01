// Package apierr defines the typed errors shared by the transport layer,
// the query engine and the cache coordinator.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the categories the UI layer knows
// how to present.
type Kind int

const (
	// KindUnknown is the fallback for errors that fit no other category.
	KindUnknown Kind = iota
	// KindNotFound indicates the requested record does not exist.
	KindNotFound
	// KindInvalidArgument indicates a malformed request, e.g. a
	// non-positive page limit or an unknown sort field.
	KindInvalidArgument
	// KindUnauthorized indicates a missing or expired credential.
	KindUnauthorized
	// KindForbidden indicates the credential lacks permission.
	KindForbidden
	// KindValidationFailed carries structured field-level errors from the
	// backend.
	KindValidationFailed
	// KindServerError indicates the backend failed internally.
	KindServerError
	// KindNetworkUnreachable indicates the backend could not be reached.
	KindNetworkUnreachable
)

// String returns a stable machine-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidationFailed:
		return "validation_failed"
	case KindServerError:
		return "server_error"
	case KindNetworkUnreachable:
		return "network_unreachable"
	default:
		return "unknown"
	}
}

// Error is the uniform error surfaced by all components. It optionally
// wraps a cause and, for validation failures, carries per-field messages.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps a field name to its validation messages. Only set for
	// KindValidationFailed.
	Fields map[string][]string
	cause  error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records cause for unwrapping.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the Kind from err, walking the wrap chain. Errors that
// are not *Error report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromStatus maps an HTTP response status to an error kind. Statuses the
// contract does not name collapse to KindUnknown.
func FromStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindValidationFailed
	default:
		if status >= 500 {
			return KindServerError
		}
		return KindUnknown
	}
}

// Notification renders the human-readable message for err, falling back to
// a generic message per kind when the error carries none.
func Notification(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindNotFound:
		return "The requested record was not found."
	case KindInvalidArgument:
		return "The request was invalid."
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindForbidden:
		return "You do not have permission to perform this action."
	case KindValidationFailed:
		return "The submitted data failed validation."
	case KindServerError:
		return "The server encountered an error. Please try again later."
	case KindNetworkUnreachable:
		return "Could not reach the server. Check your connection."
	default:
		return "Something went wrong. Please try again."
	}
}
