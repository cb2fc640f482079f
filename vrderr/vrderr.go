// Package vrderr defines the three error kinds this store's operations can
// fail with: Capacity, Parse, and IO. Kind-checking is exposed through
// vrderr.Is so callers -- in particular the ingestion drivers in package
// driver -- can distinguish "stop reading" (Parse) from "retract the
// sample and return the error" (Capacity) without string matching.
//
// github.com/grailbio/base/errors supplies the message-wrapping idiom used
// throughout this module (errors.E(err, "context", detail...)); vrderr
// layers a three-kind taxonomy on top of it, since no example repo
// exposes a reusable kind-tagged error type of this shape.
package vrderr

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Kind identifies which of the three failure categories an error
// belongs to.
type Kind int

const (
	// Capacity means a structural bound (ref_capacity, tree_capacity,
	// char_capacity, or an SSI capacity) would have been exceeded.
	Capacity Kind = iota
	// Parse means an input record failed to match the expected schema.
	Parse
	// IO means opening, reading from, or closing a stream failed.
	IO
)

func (k Kind) String() string {
	switch k {
	case Capacity:
		return "capacity"
	case Parse:
		return "parse"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a Kind-tagged error, wrapping msg (and any further context) with
// errors.E the way the rest of this module's ambient stack does.
func E(kind Kind, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.E(args...)}
}

// Is reports whether err (or something it wraps) carries the given Kind.
func Is(kind Kind, err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
