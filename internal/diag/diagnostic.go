// Package diag formats translation failures (internal/ident's TranslateError)
// as Rust-style diagnostics for the CLI's stderr output.
package diag

import (
	stderrors "errors"

	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// Stage identifies which pass of the pipeline produced the diagnostic.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageLLVMTypes Stage = "llvmtypes"
	StageCodegen   Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic, derived from the
// TranslateError kind that produced it.
type Code string

const (
	CodeUnreachable  Code = "INTERNAL_UNREACHABLE"
	CodeTodo         Code = "NOT_YET_SUPPORTED"
	CodeVerification Code = "LLVM_VERIFICATION_FAILED"
	CodeUnknown      Code = "UNKNOWN_ERROR"
)

// Diagnostic is a translation failure surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Notes    []string
	Help     string
}

// FromError classifies err (expected to be, or wrap, an ident.TranslateError)
// into a Diagnostic tagged with the pipeline stage it came from. Errors
// Todo carries a help string pointing at the gap; Unreachable and
// Verification do not, since there is nothing a caller can do about them
// besides filing a bug report against the stage named.
func FromError(stage Stage, err error) Diagnostic {
	var te *ident.TranslateError
	if !stderrors.As(err, &te) {
		return Diagnostic{
			Stage:    stage,
			Severity: SeverityError,
			Code:     CodeUnknown,
			Message:  err.Error(),
		}
	}

	d := Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Message:  te.Error(),
	}
	switch te.Kind {
	case ident.Unreachable:
		d.Code = CodeUnreachable
		d.Notes = []string{"this indicates a bug in an earlier pass, not a problem with the input"}
	case ident.Todo:
		d.Code = CodeTodo
		d.Help = "this PTX construct is not yet lowered; see DESIGN.md for known gaps"
	case ident.Verification:
		d.Code = CodeVerification
		d.Notes = []string{"the emitted module failed LLVM's verifier"}
	default:
		d.Code = CodeUnknown
	}
	return d
}
