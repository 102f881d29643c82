package draken

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorKind is a closed set of error categories the core can return. Callers
// that need to branch on failure reason should test for these with
// draken.Is (an ErrorKind is not itself an error), never by matching error
// strings.
type ErrorKind uint8

const (
	_ ErrorKind = iota
	ErrOutOfMemory
	ErrIndexOutOfRange
	ErrLengthMismatch
	ErrColumnNotFound
	ErrUnsupportedType
	ErrIncomplete
	ErrCapacityMismatch
	ErrBuilderClosed
	ErrInvalidOffset
	ErrEmptySchema
)

func (k ErrorKind) String() string {
	switch k {
	case ErrOutOfMemory:
		return "out of memory"
	case ErrIndexOutOfRange:
		return "index out of range"
	case ErrLengthMismatch:
		return "length mismatch"
	case ErrColumnNotFound:
		return "column not found"
	case ErrUnsupportedType:
		return "unsupported type"
	case ErrIncomplete:
		return "incomplete"
	case ErrCapacityMismatch:
		return "capacity mismatch"
	case ErrBuilderClosed:
		return "builder closed"
	case ErrInvalidOffset:
		return "invalid offset"
	case ErrEmptySchema:
		return "empty schema"
	default:
		return "unknown error"
	}
}

// Error is the single error type kernels, builders, and the morsel layer
// return. It carries one ErrorKind plus a free-form message for humans; kind
// comparisons should use Is/As, never the message text.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether err is a *draken.Error of the given kind, looking
// through any wrapping via errors.As.
func Is(err error, kind ErrorKind) bool {
	var de *Error
	if !xerrors.As(err, &de) {
		return false
	}
	return de.Kind == kind
}

// NewError builds an *Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WrapError builds an *Error of the given kind that wraps an underlying
// cause, preserving it for errors.Unwrap/errors.As via xerrors' %w verb.
func WrapError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, msg: msg, err: xerrors.Errorf("%s: %w", msg, cause)}
}
