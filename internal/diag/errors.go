// Package diag holds the error taxonomy and source-location plumbing
// shared by the value algebra, the gadget library, and the VM dispatch
// loop (spec.md §4.6, §7). It is intentionally dependency-light: it knows
// nothing about scalars, values, or bytecode, only how to name and locate
// a failure.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the error taxonomy of spec.md §7, exhaustive at the
// run boundary.
type Kind string

const (
	TypeMismatch        Kind = "TypeMismatch"
	ExpectedBoolean      Kind = "ExpectedBoolean"
	ExpectedInteger      Kind = "ExpectedInteger"
	ExpectedAggregate    Kind = "ExpectedAggregate"
	Overflow             Kind = "Overflow"
	Underflow            Kind = "Underflow"
	NarrowingOutOfRange  Kind = "NarrowingOutOfRange"
	DivisionByZero       Kind = "DivisionByZero"
	AssertionFailed      Kind = "AssertionFailed"
	StackUnderflow       Kind = "StackUnderflow"
	MemoryOutOfBounds    Kind = "MemoryOutOfBounds"
	CallStackOverflow    Kind = "CallStackOverflow"
	InvalidProgramCounter Kind = "InvalidProgramCounter"
	MalformedInstruction Kind = "MalformedInstruction"
	UnknownOpcode        Kind = "UnknownOpcode"
	ConstraintBackendError Kind = "ConstraintBackendError"
)

// Location pinpoints a failure: always a program counter, and — when the
// program carries debug metadata — a source line/column/file.
type Location struct {
	PC     int
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("pc=%d", l.PC)
	}
	return fmt.Sprintf("pc=%d (%s:%d:%d)", l.PC, l.File, l.Line, l.Column)
}

// Error is the single error type the core returns across its boundary: a
// kind, a human message, a location, and — for errors that wrap an
// underlying Go error (typically from the scalar backend) — the wrapped
// cause, tracked with github.com/pkg/errors so the original stack survives
// the round trip through the VM.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Location, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a located error of the given kind with a formatted message.
func New(kind Kind, loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

// NewUnlocated builds an error of the given kind with no location yet;
// gadget and value code raises these, and the VM dispatch loop attaches
// the current program counter via At before the error leaves Run.
func NewUnlocated(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of e with Location set, used to tag an error raised
// deep in the value/gadget layers with the instruction that triggered it.
func (e *Error) At(loc Location) *Error {
	out := *e
	out.Location = loc
	return &out
}

// Wrap builds a ConstraintBackendError around an underlying Go error,
// attaching a stack trace at the call site via pkg/errors.WithStack.
func Wrap(cause error, loc Location, context string) *Error {
	return &Error{
		Kind:     ConstraintBackendError,
		Message:  context,
		Location: loc,
		cause:    errors.WithStack(cause),
	}
}

// Is supports errors.Is against a Kind wrapped by AsTarget, so callers can
// write errors.Is(err, diag.AsTarget(diag.DivisionByZero)) instead of a
// type assertion.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindSentinel)
	return ok && e.Kind == Kind(k)
}

// kindSentinel lets a bare Kind value be compared via errors.Is.
type kindSentinel Kind

func (k kindSentinel) Error() string { return string(k) }

// AsTarget adapts a Kind into an error usable with errors.Is(err, diag.AsTarget(diag.Overflow)).
func AsTarget(k Kind) error { return kindSentinel(k) }
