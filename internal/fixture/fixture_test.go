package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/fixture"
)

func TestVectorAddShapesASingleVisibleKernel(t *testing.T) {
	directives := fixture.VectorAdd()
	require.Len(t, directives, 1)

	md, ok := directives[0].(ast.MethodDirective)
	require.True(t, ok)
	require.True(t, md.Linkage.Visible)
	require.NotNil(t, md.Func.FuncDirective.Name.Kernel)
	require.Equal(t, "vector_add", *md.Func.FuncDirective.Name.Kernel)
	require.Len(t, md.Func.FuncDirective.InputArguments, 3)
}

func TestVectorAddBodyHasTwoLoadsOneAddOneStoreOneRet(t *testing.T) {
	directives := fixture.VectorAdd()
	md := directives[0].(ast.MethodDirective)

	var loads, adds, stores, rets int
	for _, stmt := range md.Func.Body {
		is, ok := stmt.(ast.InstructionStatement)
		if !ok {
			continue
		}
		switch is.Instruction.(type) {
		case ast.LdInst:
			loads++
		case ast.AddInst:
			adds++
		case ast.StInst:
			stores++
		case ast.RetInst:
			rets++
		}
	}
	require.Equal(t, 2, loads)
	require.Equal(t, 1, adds)
	require.Equal(t, 1, stores)
	require.Equal(t, 1, rets)
}
