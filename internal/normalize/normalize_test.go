package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
	"github.com/ptxamd/ptx2llvm/internal/normalize"
)

func u32() ast.Type { return ast.Scalar{Kind: ast.U32} }

func kernelName(s string) ast.MethodName { return ast.MethodName{Kernel: &s} }

func TestRunExpandsMultiVariableIntoIndexedNames(t *testing.T) {
	count := uint32(3)
	decl := ast.MethodDeclaration{Name: kernelName("k")}
	fn := ast.Function{
		FuncDirective: decl,
		Body: []ast.Statement{
			ast.VariableStatement{Variable: ast.MultiVariable{
				Var:   ast.Variable{Name: "r", VType: u32(), Space: ast.Reg},
				Count: &count,
			}},
		},
	}

	out, resolver, err := normalize.Run([]ast.Directive{ast.MethodDirective{Func: fn}})
	require.NoError(t, err)

	method := out[0].(directive.Method)
	require.Len(t, method.Body, 3)

	seen := map[ident.ID]bool{}
	for i, stmt := range method.Body {
		v := stmt.(directive.Variable).Var
		name := resolver.Table().Get(v.Name).Name
		require.NotNil(t, name)
		require.Equal(t, "r"+string(rune('0'+i)), *name)
		require.False(t, seen[v.Name])
		seen[v.Name] = true
	}
}

func TestRunHoistsForwardLabelReference(t *testing.T) {
	decl := ast.MethodDeclaration{Name: kernelName("k")}
	fn := ast.Function{
		FuncDirective: decl,
		Body: []ast.Statement{
			ast.InstructionStatement{
				Predicate: &ast.PredAt{Label: "done"},
				Instruction: ast.RetInst{},
			},
			ast.LabelStatement{Name: "done"},
		},
	}

	out, _, err := normalize.Run([]ast.Directive{ast.MethodDirective{Func: fn}})
	require.NoError(t, err)

	method := out[0].(directive.Method)
	require.Len(t, method.Body, 2)

	predicated := method.Body[0].(directive.Instruction)
	label := method.Body[1].(directive.Label)

	require.NotNil(t, predicated.Predicate)
	require.Equal(t, label.Name, predicated.Predicate.Label)
}

func TestRunCollapsesFuncDeclarationAndDefinitionToSameID(t *testing.T) {
	fname := "helper"
	declOnly := ast.Function{
		FuncDirective: ast.MethodDeclaration{Name: ast.MethodName{Func: &fname}},
	}
	define := ast.Function{
		FuncDirective: ast.MethodDeclaration{Name: ast.MethodName{Func: &fname}},
		Body:          []ast.Statement{ast.InstructionStatement{Instruction: ast.RetInst{}}},
	}

	out, _, err := normalize.Run([]ast.Directive{
		ast.MethodDirective{Func: declOnly},
		ast.MethodDirective{Func: define},
	})
	require.NoError(t, err)

	first := out[0].(directive.Method).FuncDecl.Name.Func
	second := out[1].(directive.Method).FuncDecl.Name.Func
	require.NotNil(t, first)
	require.NotNil(t, second)
	require.Equal(t, *first, *second)
}

func TestRunBlockStatementUsesFreshScope(t *testing.T) {
	decl := ast.MethodDeclaration{Name: kernelName("k")}
	fn := ast.Function{
		FuncDirective: decl,
		Body: []ast.Statement{
			ast.VariableStatement{Variable: ast.MultiVariable{
				Var: ast.Variable{Name: "x", VType: u32(), Space: ast.Reg},
			}},
			ast.BlockStatement{Body: []ast.Statement{
				ast.VariableStatement{Variable: ast.MultiVariable{
					Var: ast.Variable{Name: "x", VType: u32(), Space: ast.Reg},
				}},
			}},
		},
	}

	out, _, err := normalize.Run([]ast.Directive{ast.MethodDirective{Func: fn}})
	require.NoError(t, err)

	method := out[0].(directive.Method)
	outerID := method.Body[0].(directive.Variable).Var.Name
	block := method.Body[1].(directive.Block)
	innerID := block.Body[0].(directive.Variable).Var.Name

	require.NotEqual(t, outerID, innerID)
}
