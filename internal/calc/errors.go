// Package calc validates calculator requests and dispatches them to the
// symbolic engine. All failures surface as a typed Error whose Kind tells
// the caller whether the input could not be read (parse), asked for a
// mathematically undefined result (domain), or defeated the engine
// (computation).
package calc

import (
	"errors"
	"fmt"
)

// Kind classifies calculator failures.
type Kind int

const (
	KindParse Kind = iota
	KindDomain
	KindComputation
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindDomain:
		return "domain error"
	case KindComputation:
		return "computation error"
	}
	return "error"
}

// Error is the calculator failure type.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func ParseErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

func DomainErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindDomain, Message: fmt.Sprintf(format, args...)}
}

func ComputationErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindComputation, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from any error in the chain.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}
