package llvmtypes_test

import (
	"testing"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/ident"
	"github.com/ptxamd/ptx2llvm/internal/llvmtypes"
)

func TestScalarMapping(t *testing.T) {
	cases := []struct {
		kind ast.ScalarKind
		want types.Type
	}{
		{ast.Pred, types.I1},
		{ast.U8, types.I8},
		{ast.S16, types.I16},
		{ast.B32, types.I32},
		{ast.U64, types.I64},
		{ast.F16, types.Half},
		{ast.F32, types.Float},
		{ast.F64, types.Double},
		{ast.BF16, types.I16},
	}
	for _, c := range cases {
		got, err := llvmtypes.Scalar(c.kind)
		require.NoError(t, err, c.kind)
		require.Equal(t, c.want, got, c.kind)
	}
}

func TestScalarB128IsA128BitInteger(t *testing.T) {
	got, err := llvmtypes.Scalar(ast.B128)
	require.NoError(t, err)
	it, ok := got.(*types.IntType)
	require.True(t, ok)
	require.Equal(t, uint64(128), it.BitSize)
}

func TestScalarPackedPairsAreTodo(t *testing.T) {
	for _, k := range []ast.ScalarKind{ast.U16x2, ast.S16x2, ast.F16x2, ast.BF16x2} {
		_, err := llvmtypes.Scalar(k)
		require.Error(t, err)
		require.True(t, ident.IsTodo(err), k)
	}
}

func TestVectorType(t *testing.T) {
	got, err := llvmtypes.Type(ast.Vector{Len: 4, Elem: ast.F32})
	require.NoError(t, err)
	vt, ok := got.(*types.VectorType)
	require.True(t, ok)
	require.Equal(t, uint64(4), vt.Len)
	require.Equal(t, types.Float, vt.ElemType)
}

func TestArrayDimsNestRightToLeft(t *testing.T) {
	got, err := llvmtypes.Type(ast.Array{Elem: ast.U32, Dims: []uint32{2, 3}})
	require.NoError(t, err)

	outer, ok := got.(*types.ArrayType)
	require.True(t, ok)
	require.Equal(t, uint64(2), outer.Len)

	inner, ok := outer.ElemType.(*types.ArrayType)
	require.True(t, ok)
	require.Equal(t, uint64(3), inner.Len)
	require.Equal(t, types.I32, inner.ElemType)
}

func TestArrayEmptyDimsIsZeroLength(t *testing.T) {
	got, err := llvmtypes.Type(ast.Array{Elem: ast.U8})
	require.NoError(t, err)
	at, ok := got.(*types.ArrayType)
	require.True(t, ok)
	require.Equal(t, uint64(0), at.Len)
}

func TestArrayPackedVecWrapsElementInAVectorFirst(t *testing.T) {
	width := 2
	got, err := llvmtypes.Type(ast.Array{Elem: ast.F16, PackedVec: &width, Dims: []uint32{4}})
	require.NoError(t, err)
	at, ok := got.(*types.ArrayType)
	require.True(t, ok)
	vt, ok := at.ElemType.(*types.VectorType)
	require.True(t, ok)
	require.Equal(t, uint64(2), vt.Len)
}

func TestStateSpaceAddrMatchesAMDGPUTable(t *testing.T) {
	cases := []struct {
		space ast.StateSpace
		want  uint64
	}{
		{ast.Generic, 0},
		{ast.Global, 1},
		{ast.Shared, 3},
		{ast.Const, 4},
		{ast.ParamEntry, 4},
		{ast.Local, 5},
		{ast.Reg, 5},
	}
	for _, c := range cases {
		got, err := llvmtypes.StateSpaceAddr(c.space)
		require.NoError(t, err, c.space)
		require.Equal(t, c.want, got, c.space)
	}
}

func TestStateSpaceAddrRejectsUnsupportedSpaces(t *testing.T) {
	for _, space := range []ast.StateSpace{ast.Param, ast.ParamFunc, ast.SharedCta, ast.SharedCluster} {
		_, err := llvmtypes.StateSpaceAddr(space)
		require.Error(t, err)
		require.True(t, ident.IsTodo(err), space)
	}
}

func TestPointerCarriesAddressSpace(t *testing.T) {
	pt, err := llvmtypes.Pointer(ast.Global)
	require.NoError(t, err)
	require.Equal(t, uint64(llvmtypes.GlobalAddrSpace), pt.AddrSpace)
}
