package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure. Every operation in this package fails
// with exactly one kind so adapters can map it to a transport status without
// string matching.
type ErrorKind string

const (
	// KindValidation covers bad input: negative amounts, missing reasons,
	// out-of-range discounts, empty ledgers.
	KindValidation ErrorKind = "VALIDATION"

	// KindState covers illegal lifecycle transitions: paying a request that is
	// not unlocked, mutating a terminal line, settling a fully paid obligation.
	KindState ErrorKind = "STATE"

	// KindCapacity covers requested quantity exceeding available stock.
	KindCapacity ErrorKind = "CAPACITY"

	// KindNotFound covers unknown ledger, line, request, or obligation IDs.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindConflict covers a lost optimistic-concurrency race at the store
	// boundary. Callers may retry; domain errors above must not be retried.
	KindConflict ErrorKind = "CONFLICT"
)

// Error is a domain error carrying its classification. All failures leave
// prior state untouched: operations validate and recompute before committing.
type Error struct {
	Kind ErrorKind
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

// Is lets errors.Is match on kind sentinels, e.g. errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrState      = &Error{Kind: KindState}
	ErrCapacity   = &Error{Kind: KindCapacity}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
)

func validationErrorf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func stateErrorf(format string, args ...any) error {
	return &Error{Kind: KindState, Msg: fmt.Sprintf(format, args...)}
}

func capacityErrorf(format string, args ...any) error {
	return &Error{Kind: KindCapacity, Msg: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or empty string for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
