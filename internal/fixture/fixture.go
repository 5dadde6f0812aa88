// Package fixture builds small, hand-written ast.Directive programs for the
// CLI's smoke-test mode. There is no PTX lexer/parser in this module (the
// distilled core starts from an already-parsed ast.Directive stream); this
// package stands in for that front end so cmd/ptx2llvm has something to
// translate without requiring one.
package fixture

import "github.com/ptxamd/ptx2llvm/internal/ast"

// VectorAdd returns the directive stream for a minimal `.visible .entry`
// kernel: `out[i] = a[i] + b[i]` collapsed to a single lane, since there is
// no tid/ctaid intrinsic lowering yet. It exercises ld, add, st, and ret in
// the global address space, plus the two-block alloca prologue.
func VectorAdd() []ast.Directive {
	u32 := ast.Scalar{Kind: ast.U32}
	ptrU32 := ast.Pointer{Pointee: ast.U32, Space: ast.Global}

	param := func(name string, t ast.Type) ast.Variable {
		return ast.Variable{Name: name, VType: t, Space: ast.ParamEntry}
	}
	reg := func(name string, t ast.Type) ast.Variable {
		return ast.Variable{Name: name, VType: t, Space: ast.Reg}
	}
	op := func(name string) ast.Operand { return ast.Operand{Name: name} }

	decl := ast.MethodDeclaration{
		Name: ast.MethodName{Kernel: strPtr("vector_add")},
		InputArguments: []ast.Variable{
			param("a", ptrU32),
			param("b", ptrU32),
			param("out", ptrU32),
		},
	}

	body := []ast.Statement{
		ast.VariableStatement{Variable: ast.MultiVariable{Var: reg("va", u32)}},
		ast.VariableStatement{Variable: ast.MultiVariable{Var: reg("vb", u32)}},
		ast.VariableStatement{Variable: ast.MultiVariable{Var: reg("vsum", u32)}},
		ast.InstructionStatement{Instruction: ast.LdInst{
			Data: ast.LdDetails{Type: u32, Qualifier: ast.Weak, Space: ast.Global},
			Args: ast.LdArgs{Dst: op("va"), Src: op("a")},
		}},
		ast.InstructionStatement{Instruction: ast.LdInst{
			Data: ast.LdDetails{Type: u32, Qualifier: ast.Weak, Space: ast.Global},
			Args: ast.LdArgs{Dst: op("vb"), Src: op("b")},
		}},
		ast.InstructionStatement{Instruction: ast.AddInst{
			Data: ast.ArithDetails{Variant: ast.ArithInteger, Type: ast.U32},
			Args: ast.AddArgs{Dst: op("vsum"), Src1: op("va"), Src2: op("vb")},
		}},
		ast.InstructionStatement{Instruction: ast.StInst{
			Data: ast.StData{Type: u32, Qualifier: ast.Weak, Space: ast.Global},
			Args: ast.StArgs{Src1: op("out"), Src2: op("vsum")},
		}},
		ast.InstructionStatement{Instruction: ast.RetInst{}},
	}

	return []ast.Directive{
		ast.MethodDirective{
			Linkage: ast.Linkage{Visible: true},
			Func: ast.Function{
				FuncDirective: decl,
				Body:          body,
			},
		},
	}
}

func strPtr(s string) *string { return &s }
