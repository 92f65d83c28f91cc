package parser

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// KindMismatch means an expected token or tag was not found.
	KindMismatch ErrorKind = iota
	// KindValidation means a record ended without a required field.
	KindValidation
	// KindAggregate collects the mismatches of alternatives that all failed.
	KindAggregate
)

var errorKindNames = map[ErrorKind]string{
	KindMismatch:   "mismatch",
	KindValidation: "validation",
	KindAggregate:  "aggregate",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is the only error type returned by this package.
//
// For KindMismatch, Expected describes what was missing at Pos and Context
// lists what was being parsed, outermost first. For KindValidation, Record
// and Field name the record type and its first missing field, and Pos is
// where the record starts. For KindAggregate, Errors holds one mismatch per
// alternative and Pos is the position of the deepest one.
type Error struct {
	Kind     ErrorKind
	Pos      Position
	Context  []string
	Expected string
	Record   string
	Field    string
	Errors   []*Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message is Error without the leading position.
func (e *Error) Message() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("%s is missing required field %s", e.Record, e.Field)
	case KindAggregate:
		deepest := e.Deepest()
		if deepest == nil {
			return "no alternative matched"
		}
		if len(e.Errors) == 1 {
			return deepest.Message()
		}
		return fmt.Sprintf("%s (%d alternatives failed)", deepest.Message(), len(e.Errors))
	}
	msg := "expected " + e.Expected
	if len(e.Context) > 0 {
		msg += " in " + strings.Join(e.Context, " > ")
	}
	return msg
}

// Unwrap exposes the alternatives of an aggregate to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Kind != KindAggregate {
		return nil
	}
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Deepest returns the mismatch that got furthest into the input. The first
// one wins a tie. For non-aggregate errors it returns e itself.
func (e *Error) Deepest() *Error {
	if e.Kind != KindAggregate {
		return e
	}
	var deepest *Error
	for _, err := range e.Errors {
		if deepest == nil || err.Pos.Offset > deepest.Pos.Offset {
			deepest = err
		}
	}
	return deepest
}

func aggregate(errs []*Error) *Error {
	agg := &Error{Kind: KindAggregate, Errors: errs}
	if deepest := agg.Deepest(); deepest != nil {
		agg.Pos = deepest.Pos
	}
	return agg
}
