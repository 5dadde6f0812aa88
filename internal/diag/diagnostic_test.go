package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ptxamd/ptx2llvm/internal/diag"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

func TestFromErrorTodo(t *testing.T) {
	err := ident.NewTodo("vector conversions")

	d := diag.FromError(diag.StageCodegen, err)

	if d.Stage != diag.StageCodegen {
		t.Fatalf("expected stage %q, got %q", diag.StageCodegen, d.Stage)
	}
	if d.Code != diag.CodeTodo {
		t.Fatalf("expected code %q, got %q", diag.CodeTodo, d.Code)
	}
	if d.Help == "" {
		t.Fatal("expected a help string for a Todo diagnostic")
	}
}

func TestFromErrorUnreachable(t *testing.T) {
	err := ident.NewUnreachable("identifier never bound")

	d := diag.FromError(diag.StageNormalize, err)

	if d.Code != diag.CodeUnreachable {
		t.Fatalf("expected code %q, got %q", diag.CodeUnreachable, d.Code)
	}
	if len(d.Notes) == 0 {
		t.Fatal("expected a note on an Unreachable diagnostic")
	}
}

func TestFromErrorVerification(t *testing.T) {
	err := ident.NewVerification("module failed verifier")

	d := diag.FromError(diag.StageCodegen, err)

	if d.Code != diag.CodeVerification {
		t.Fatalf("expected code %q, got %q", diag.CodeVerification, d.Code)
	}
}

func TestFromErrorUnwrapped(t *testing.T) {
	d := diag.FromError(diag.StageNormalize, strings_newError("not a translate error"))

	if d.Code != diag.CodeUnknown {
		t.Fatalf("expected code %q, got %q", diag.CodeUnknown, d.Code)
	}
}

func strings_newError(msg string) error {
	return &plainError{msg}
}

type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

func TestFormatterWritesSeverityAndStage(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Stage:    diag.StageLLVMTypes,
		Severity: diag.SeverityError,
		Code:     diag.CodeTodo,
		Message:  "unsupported scalar kind",
		Help:     "add a mapping in llvmtypes.Scalar",
	})

	out := buf.String()
	if !strings.Contains(out, string(diag.SeverityError)) {
		t.Fatalf("expected severity in output, got %q", out)
	}
	if !strings.Contains(out, string(diag.StageLLVMTypes)) {
		t.Fatalf("expected stage in output, got %q", out)
	}
	if !strings.Contains(out, "add a mapping") {
		t.Fatalf("expected help line in output, got %q", out)
	}
}
