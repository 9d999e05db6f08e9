package aristid

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrArityMismatch is the cause of every grammar-construction error: two symbols share a label but not an arity.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrUnboundVariable is the cause of errors raised when an expression reads a name no pattern bound.
	ErrUnboundVariable = errors.New("unbound variable")
)

// ArityError details an arity mismatch for a label.
type ArityError struct {
	Label string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%v: label %q has arity %d, got %d", ErrArityMismatch, e.Label, e.Want, e.Got)
}

// Cause allows errors.Cause to unwrap to ErrArityMismatch.
func (e *ArityError) Cause() error {
	return ErrArityMismatch
}

// Unwrap allows errors.Is to match ErrArityMismatch.
func (e *ArityError) Unwrap() error {
	return ErrArityMismatch
}
