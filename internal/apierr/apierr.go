// Package apierr defines the structured error taxonomy for remote API calls.
//
// Errors are classified exactly once, at the transport boundary. The retry
// predicate and the speech formatter both consume the Kind tag; neither
// re-parses message text.
package apierr

import (
	"errors"
	"fmt"
)

// Kind tags an API error with its failure class.
type Kind int

const (
	// KindUnknown covers errors that could not be classified.
	KindUnknown Kind = iota

	// KindNetwork covers connection-level failures (DNS, refused, reset).
	KindNetwork

	// KindTimeout covers attempts that exceeded their deadline.
	KindTimeout

	// KindServer covers 5xx responses.
	KindServer

	// KindClient covers 4xx responses.
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	default:
		return "unknown"
	}
}

// Error is a classified API error.
type Error struct {
	Kind   Kind
	Status int    // HTTP status for KindServer/KindClient, 0 otherwise
	Op     string // short operation name, e.g. "list tasks"
	Err    error  // underlying cause, may be nil for status errors
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with an underlying cause.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FromStatus creates a classified error from a non-2xx HTTP status.
func FromStatus(op string, status int) *Error {
	kind := KindUnknown
	switch {
	case status >= 500:
		kind = KindServer
	case status >= 400:
		kind = KindClient
	}
	return &Error{Kind: kind, Status: status, Op: op}
}

// KindOf returns the Kind of err, or KindUnknown if err carries no tag.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status embedded in err, or 0.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// Retryable reports whether err is transient: connectivity problems,
// timeouts and server-side 5xx are retryable; 4xx and unknowns are not.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindTimeout, KindServer:
		return true
	default:
		return false
	}
}
