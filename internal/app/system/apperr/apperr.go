// Package apperr defines the error kinds shared by the course store and the
// HTTP layer.
//
// Stores return *Error values; handlers translate them to status codes in one
// place (jsonutil.WriteError) so no HTTP knowledge leaks into persistence code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by who is at fault and how it should surface.
type Kind int

const (
	// KindInternal is anything unclassified; it always surfaces as a generic 500.
	KindInternal Kind = iota
	// KindInvalidArgument is malformed or missing client input.
	KindInvalidArgument
	// KindNotFound means no document matched the id.
	KindNotFound
	// KindStore is a failure talking to the document store.
	KindStore
	// KindNotReady means the store was used before a connection was established.
	KindNotReady
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store_error"
	case KindNotReady:
		return "not_ready"
	default:
		return "internal"
	}
}

// Sentinels for errors.Is comparisons. Matching is by Kind, so
// errors.Is(apperr.InvalidArgument("title is required"), apperr.ErrInvalidArgument)
// is true.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Msg: "invalid argument"}
	ErrNotFound        = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrStore           = &Error{Kind: KindStore, Msg: "store error"}
	ErrNotReady        = &Error{Kind: KindNotReady, Msg: "store not ready"}
)

// Error is a classified error. Msg is safe to show to clients for
// InvalidArgument and NotFound; Err carries the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// InvalidArgument builds a client-fault error with a user-facing message.
func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Msg: msg}
}

// NotFound builds a not-found error. The message is always "not found".
func NotFound() error {
	return &Error{Kind: KindNotFound, Msg: "not found"}
}

// Store wraps a driver failure.
func Store(op string, err error) error {
	return &Error{Kind: KindStore, Msg: op, Err: err}
}

// KindOf returns the Kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message of a classified error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
