// Package apperr defines the error taxonomy shared by the service layer
// and the HTTP layer. Services raise a specific kind at the point of
// detection; anything else is converted to Internal once, at the service
// boundary, via Internalize.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind uint8

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindInvalidArgument
	KindUnauthenticated
)

// String returns the kind's canonical code (used in response envelopes).
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "INTERNAL"
	}
}

// Error is a kinded domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Conflict reports a uniqueness violation (duplicate email/nickname).
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent (or soft-deleted) record.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument reports a failed precondition on caller-supplied data.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports a credential or token mismatch.
func Unauthenticated(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected collaborator failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err carries no
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Internalize is the single boundary adapter: errors already carrying a
// kind pass through unchanged, everything else becomes Internal.
func Internalize(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Internal("internal error", err)
}
