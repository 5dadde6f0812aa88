// Package codegen implements C5 (the LLVM-side identifier resolver), C6 (the
// module emitter), and C7 (the per-method emitter): the pass that walks the
// normalized directive stream (C3's output) and builds an *ir.Module via
// github.com/llir/llvm.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// llvmResolver (C5) is the second-stage resolver: it maps a normalized
// ident.ID to the LLVM value that id currently denotes. Unlike ident.Table,
// which is append-only and immutable once an id is minted, llvmResolver's
// bindings change as emission proceeds — a declared variable is bound once,
// to its alloca, and stays bound to that alloca for the method's lifetime;
// every later write to the same id goes through that alloca rather than
// rebinding it (see methodEmitter.bindResult). A label only gets a block
// once the method emitter reaches it, so getOrAddBlock must tolerate
// registering before resolving.
type llvmResolver struct {
	values map[ident.ID]value.Value
	blocks map[ident.ID]*ir.Block
}

func newLLVMResolver() *llvmResolver {
	return &llvmResolver{
		values: make(map[ident.ID]value.Value),
		blocks: make(map[ident.ID]*ir.Block),
	}
}

// register binds id to val for the first time. Rebinding an id is an
// internal-invariant violation: the core never mutates what an id denotes
// once emitted.
func (r *llvmResolver) register(id ident.ID, val value.Value) error {
	if _, ok := r.values[id]; ok {
		return ident.NewUnreachable(fmt.Sprintf("identifier %d already bound to an LLVM value", id))
	}
	r.values[id] = val
	return nil
}

// value resolves id to the LLVM value it denotes, failing if normalize
// handed the emitter an id it never registered.
func (r *llvmResolver) value(id ident.ID) (value.Value, error) {
	v, ok := r.values[id]
	if !ok {
		return nil, ident.NewUnreachable(fmt.Sprintf("identifier %d has no bound LLVM value", id))
	}
	return v, nil
}

// lookup is value without the error: it reports whether id has a binding at
// all, so a writer can tell "rebind my declared variable's alloca" apart
// from "this id has no variable yet, bind it fresh".
func (r *llvmResolver) lookup(id ident.ID) (value.Value, bool) {
	v, ok := r.values[id]
	return v, ok
}

// getOrAddBlock returns the block already bound to a label id, or creates a
// fresh unreachable placeholder block for it. This lets a branch target that
// appears later in the statement stream be referenced before the method
// emitter reaches its Label statement.
func (r *llvmResolver) getOrAddBlock(fn *ir.Func, id ident.ID, name string) *ir.Block {
	if b, ok := r.blocks[id]; ok {
		return b
	}
	b := fn.NewBlock(name)
	r.blocks[id] = b
	return b
}
