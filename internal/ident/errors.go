package ident

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a translation failure. It is the single typed error
// channel used throughout the core (normalize, llvmtypes, codegen).
type ErrorKind int

const (
	// Unreachable means an invariant an earlier pass was supposed to uphold
	// has been violated. Surfaced as an internal compiler error.
	Unreachable ErrorKind = iota
	// Todo means the construct's lowering is a known, documented gap.
	Todo
	// Verification means the module the emitter built was rejected by
	// LLVM's verifier.
	Verification
)

func (k ErrorKind) String() string {
	switch k {
	case Unreachable:
		return "unreachable"
	case Todo:
		return "todo"
	case Verification:
		return "verification"
	default:
		return "unknown"
	}
}

// TranslateError is the error type every pass in the core returns. It wraps
// an underlying cause (when there is one) with github.com/pkg/errors so
// callers can still recover a stack trace during debugging.
type TranslateError struct {
	Kind    ErrorKind
	Detail  string
	cause   error
}

func (e *TranslateError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s", e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *TranslateError) Unwrap() error { return e.cause }

// NewUnreachable builds an internal-invariant-violation error.
func NewUnreachable(detail string) error {
	return errors.WithStack(&TranslateError{Kind: Unreachable, Detail: detail})
}

// NewTodo builds a not-yet-supported error naming the offending construct.
func NewTodo(construct string) error {
	return errors.WithStack(&TranslateError{Kind: Todo, Detail: construct})
}

// NewVerification builds a verifier-rejection error from LLVM's message.
func NewVerification(message string) error {
	return errors.WithStack(&TranslateError{Kind: Verification, Detail: message})
}

// IsTodo reports whether err (or something it wraps) is a Todo error.
func IsTodo(err error) bool {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.Kind == Todo
	}
	return false
}
