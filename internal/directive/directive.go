// Package directive defines the typed directive stream: the shape that
// flows out of the normalize pass (C3) and into LLVM emission (C6/C7). Every
// operand here is a numbered ident.ID rather than a source name.
package directive

import (
	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// Directive is either a module-scope Variable or a Method.
type Directive interface {
	isDirective()
}

// Variable is a module-scope variable declaration. The core does not yet
// support these (see codegen); they are represented so the pipeline's
// shape matches the full data model.
type Variable struct {
	Linkage ast.Linkage
	Var     ast.Variable
	Name    ident.ID
}

func (Variable) isDirective() {}

// Method is a normalized kernel or device function.
type Method struct {
	FuncDecl MethodDeclaration
	Body     []Statement // nil for declarations without a definition
	ImportAs *string
	Tuning   []string
	Linkage  ast.Linkage
}

func (Method) isDirective() {}

// MethodName is a normalized method name: either an externally-visible
// Kernel name, or a Func identifier resolved through the scoped resolver.
type MethodName struct {
	Kernel *string
	Func   *ident.ID
}

// IsKernel reports whether this name denotes a kernel (as opposed to a
// device function).
func (n MethodName) IsKernel() bool { return n.Kernel != nil }

// NormalizedVariable is a variable declaration after normalization: its name
// is a numbered identifier instead of a source string.
type NormalizedVariable struct {
	Name      ident.ID
	Align     *uint32
	VType     ast.Type
	Space     ast.StateSpace
	ArrayInit []ast.ImmediateValue
}

// MethodDeclaration is a function's normalized signature.
type MethodDeclaration struct {
	ReturnArguments []NormalizedVariable
	Name            MethodName
	InputArguments  []NormalizedVariable
	SharedMem       *NormalizedVariable
}
