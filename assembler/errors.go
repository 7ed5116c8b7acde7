package assembler

import (
	"errors"
	"fmt"
)

// Sentinel errors for assembler operations.
var (
	// ErrDuplicateEntry indicates the identifier is already in the context.
	ErrDuplicateEntry = errors.New("already in context")

	// ErrRead indicates the content of an identifier could not be read.
	ErrRead = errors.New("read failed")

	// ErrNotMember indicates the identifier is not in the context.
	ErrNotMember = errors.New("not in context")

	// ErrClosed indicates the assembler has been closed.
	ErrClosed = errors.New("assembler closed")
)

// Kind classifies an assembler failure.
type Kind int

const (
	// KindDuplicateEntry is returned by Add for an existing member.
	KindDuplicateEntry Kind = iota + 1

	// KindRead is returned when the Reader fails.
	KindRead

	// KindNotMember is returned by Refresh for an unknown identifier.
	KindNotMember

	// KindClosed is returned by mutations after Close.
	KindClosed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDuplicateEntry:
		return "DuplicateEntry"
	case KindRead:
		return "ReadError"
	case KindNotMember:
		return "NotMember"
	case KindClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindDuplicateEntry:
		return ErrDuplicateEntry
	case KindRead:
		return ErrRead
	case KindNotMember:
		return ErrNotMember
	case KindClosed:
		return ErrClosed
	default:
		return nil
	}
}

// Error is the structured failure returned by assembler operations.
// It matches its kind's sentinel with errors.Is and unwraps to the
// underlying cause, if any.
type Error struct {
	Op   string // Operation that failed ("add", "refresh")
	ID   string // Identifier the operation was applied to
	Kind Kind
	Err  error // Underlying cause, nil for DuplicateEntry/NotMember/Closed
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.ID, e.Kind.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Kind.sentinel())
}

// Message returns a short description suitable for showing to a user:
// the underlying cause for read failures, the kind otherwise.
func (e *Error) Message() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.sentinel().Error()
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(op, id string, kind Kind, err error) *Error {
	return &Error{Op: op, ID: id, Kind: kind, Err: err}
}

// KindOf returns the Kind of an assembler error, or 0 if err is not one.
func KindOf(err error) Kind {
	var aErr *Error
	if errors.As(err, &aErr) {
		return aErr.Kind
	}
	return 0
}
