package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/ident"
)

func TestLLVMResolverRegisterIsWriteOnce(t *testing.T) {
	r := newLLVMResolver()
	id := ident.ID(1)

	require.NoError(t, r.register(id, constant.True))
	err := r.register(id, constant.False)
	require.Error(t, err)
}

func TestLLVMResolverValueFailsWhenUnbound(t *testing.T) {
	r := newLLVMResolver()
	_, err := r.value(ident.ID(42))
	require.Error(t, err)
}

func TestGetOrAddBlockIsIdempotentPerID(t *testing.T) {
	r := newLLVMResolver()
	m := ir.NewModule()
	fn := m.NewFunc("f", nil)
	id := ident.ID(7)

	first := r.getOrAddBlock(fn, id, "label7")
	second := r.getOrAddBlock(fn, id, "label7")

	require.Same(t, first, second)
}
