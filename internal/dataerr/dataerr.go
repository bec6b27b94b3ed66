// Package dataerr carries the data-access error taxonomy surfaced by the
// event-sourced repositories. It mirrors the sentinel+wrapped-cause
// pattern used throughout this codebase's error packages, grounded on
// the teacher's internal/shared/errors package.
package dataerr

import (
	"errors"
	"fmt"
)

// Kind discriminates the fixed set of data-access errors named in spec.
type Kind string

const (
	// ConnectionError covers transport/connection/gRPC/deadline/init failures.
	ConnectionError Kind = "ConnectionError"
	// QueryError covers server, not-leader, access-denied, unsupported,
	// internal-parsing and internal-client failures from the log client.
	QueryError Kind = "QueryError"
	// ReadError covers resource-not-found/resource-deleted surfaced to a
	// caller that did not ask for them to be masked to absence.
	ReadError Kind = "ReadError"
	// WriteError covers resource-already-exists and wrong-expected-version.
	WriteError Kind = "WriteError"
	// ClientSideError covers illegal-state failures raised by the client
	// library itself rather than the server.
	ClientSideError Kind = "ClientSideError"
)

// Error is a data-access failure with a wrapped cause from the
// underlying log or index client.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New wraps cause as a data-access error of the given kind.
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Of reports the Kind of err if it is (or wraps) a *Error, and ok=false
// otherwise.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
