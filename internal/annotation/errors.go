package annotation

import (
	"errors"
	"fmt"
)

// FaultKind classifies why an annotation set could not be built.
type FaultKind int

const (
	// MalformedDirective is reported for a directive line with more than one '='.
	MalformedDirective FaultKind = iota + 1
	// MalformedDeprecation is reported for a deprecated(...) attribute whose
	// arguments do not yield a string note.
	MalformedDeprecation
)

func (k FaultKind) String() string {
	switch k {
	case MalformedDirective:
		return "malformed directive"
	case MalformedDeprecation:
		return "malformed deprecation attribute"
	default:
		return "unknown"
	}
}

var (
	ErrMalformedDirective   = errors.New("malformed directive")
	ErrMalformedDeprecation = errors.New("malformed deprecation attribute")
)

// Error is the fault returned by Load. It affects only the declaration being loaded.
type Error struct {
	Kind FaultKind
	// Line is the offending directive line, marker included. Empty for attribute faults.
	Line string
	Msg  string
	// Err is the underlying cause, if any (e.g. the argument parser error).
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case MalformedDirective:
		return target == ErrMalformedDirective
	case MalformedDeprecation:
		return target == ErrMalformedDeprecation
	}
	return false
}
