package codegen_test

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/codegen"
	"github.com/ptxamd/ptx2llvm/internal/fixture"
	"github.com/ptxamd/ptx2llvm/internal/normalize"
)

func translateFixture(t *testing.T) *ir.Func {
	t.Helper()
	normalized, resolver, err := normalize.Run(fixture.VectorAdd())
	require.NoError(t, err)

	module, err := codegen.Translate(normalized, resolver.Table())
	require.NoError(t, err)
	require.Len(t, module.Funcs, 1)
	return module.Funcs[0]
}

func TestKernelGetsAMDGPUCallingConvention(t *testing.T) {
	fn := translateFixture(t)
	require.Equal(t, enum.CallConvAMDGPU_KERNEL, fn.CallingConv)
}

func TestKernelParametersArePointersInKernargAddressSpace(t *testing.T) {
	fn := translateFixture(t)
	require.Len(t, fn.Params, 3)
	for _, p := range fn.Params {
		pt, ok := p.Typ.(*types.PointerType)
		require.True(t, ok, "kernel parameters must be pointers")
		require.Equal(t, uint64(4), pt.AddrSpace)
	}
}

func TestAllocasBlockDominatesViaSingleUnconditionalBranch(t *testing.T) {
	fn := translateFixture(t)
	require.GreaterOrEqual(t, len(fn.Blocks), 2)

	allocas := fn.Blocks[0]
	start := fn.Blocks[1]

	for _, inst := range allocas.Insts {
		_, ok := inst.(*ir.InstAlloca)
		require.True(t, ok, "allocas block must only contain alloca instructions")
	}

	br, ok := allocas.Term.(*ir.TermBr)
	require.True(t, ok, "allocas block must end in an unconditional branch")
	require.Equal(t, start, br.Target)
}

// TestVectorAddEmitsLoadAddStoreSequence exercises the alloca-backed
// register model end to end: `va`/`vb`/`vsum` are each declared once and
// spilled to their own alloca, so every read of one is a load and every
// write is a store, on top of the two loads from global memory and the one
// store back to it.
//
//	ld.global va, [a]   -> 1 load  (from a) + 1 store (spill into va's alloca)
//	ld.global vb, [b]   -> 1 load  (from b) + 1 store (spill into vb's alloca)
//	add.u32 vsum, va, vb -> 2 loads (va, vb) + 1 add + 1 store (spill into vsum's alloca)
//	st.global [out], vsum -> 1 load (vsum) + 1 store (into out)
func TestVectorAddEmitsLoadAddStoreSequence(t *testing.T) {
	fn := translateFixture(t)

	var loads, adds, stores int
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			switch inst.(type) {
			case *ir.InstLoad:
				loads++
			case *ir.InstAdd:
				adds++
			case *ir.InstStore:
				stores++
			}
		}
	}
	require.Equal(t, 5, loads)
	require.Equal(t, 1, adds)
	require.Equal(t, 4, stores)
}

func TestFunctionBodyEndsInATerminator(t *testing.T) {
	fn := translateFixture(t)
	last := fn.Blocks[len(fn.Blocks)-1]
	require.NotNil(t, last.Term)
}
