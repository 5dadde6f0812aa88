// Package llvmtypes implements C4: the pure, total mapping from PTX scalar,
// vector, array, and pointer types (and PTX state spaces) to LLVM types and
// AMDGPU address-space integers. Every function here either returns a type
// or a Todo/Unreachable error; none of them touch an LLVM context.
package llvmtypes

import (
	"fmt"

	"github.com/llir/llvm/ir/types"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// AMDGPU address spaces. See https://llvm.org/docs/AMDGPUUsage.html#address-spaces.
const (
	GenericAddrSpace  = 0
	GlobalAddrSpace   = 1
	SharedAddrSpace   = 3
	ConstantAddrSpace = 4
	PrivateAddrSpace  = 5
)

// Scalar maps a single PTX scalar kind to its LLVM type. Packed half-width
// pairs are not yet supported.
func Scalar(kind ast.ScalarKind) (types.Type, error) {
	switch kind {
	case ast.Pred:
		return types.I1, nil
	case ast.S8, ast.B8, ast.U8:
		return types.I8, nil
	case ast.S16, ast.B16, ast.U16:
		return types.I16, nil
	case ast.S32, ast.B32, ast.U32:
		return types.I32, nil
	case ast.S64, ast.B64, ast.U64:
		return types.I64, nil
	case ast.B128:
		return types.NewInt(128), nil
	case ast.F16:
		return types.Half, nil
	case ast.F32:
		return types.Float, nil
	case ast.F64:
		return types.Double, nil
	case ast.BF16:
		// llir/llvm does not model bfloat16 as a distinct scalar type in
		// this release; the nearest faithful representation is a 16-bit
		// integer, matching the storage width PTX cares about here.
		return types.I16, nil
	case ast.U16x2, ast.S16x2, ast.F16x2, ast.BF16x2:
		return nil, ident.NewTodo(fmt.Sprintf("packed scalar type %s", kind))
	default:
		return nil, ident.NewUnreachable(fmt.Sprintf("unknown scalar kind %d", int(kind)))
	}
}

// Type maps a full PTX type (scalar, vector, array, or pointer) to its LLVM
// equivalent.
func Type(t ast.Type) (types.Type, error) {
	switch v := t.(type) {
	case ast.Scalar:
		return Scalar(v.Kind)
	case ast.Vector:
		elem, err := Scalar(v.Elem)
		if err != nil {
			return nil, err
		}
		return types.NewVector(uint64(v.Len), elem), nil
	case ast.Array:
		return array(v)
	case ast.Pointer:
		return Pointer(v.Space)
	default:
		return nil, ident.NewUnreachable(fmt.Sprintf("unknown type shape %T", t))
	}
}

// array implements §4.4's array mapping: a scalar type, optionally wrapped
// in a vector of the packed width, with dimensions applied right-to-left
// (innermost first): dims [a, b, c] over element T produces
// [a x [b x [c x T]]]. An empty dims list produces a zero-length array.
func array(a ast.Array) (types.Type, error) {
	elem, err := Scalar(a.Elem)
	if err != nil {
		return nil, err
	}
	underlying := elem
	if a.PackedVec != nil {
		underlying = types.NewVector(uint64(*a.PackedVec), elem)
	}
	if len(a.Dims) == 0 {
		return types.NewArray(0, underlying), nil
	}
	result := underlying
	for i := len(a.Dims) - 1; i >= 0; i-- {
		result = types.NewArray(uint64(a.Dims[i]), result)
	}
	return result, nil
}

// Pointer maps a state space to an LLVM pointer type in the corresponding
// AMDGPU address space. PTX pointer element types are erased; llir/llvm
// models every pointer the same regardless of pointee, so the pointee
// scalar plays no role here beyond what Type's Pointer case discards.
func Pointer(space ast.StateSpace) (*types.PointerType, error) {
	as, err := StateSpaceAddr(space)
	if err != nil {
		return nil, err
	}
	return addrSpacePointer(as), nil
}

// addrSpacePointer builds a pointer type in the given address space. This
// mirrors LLVMPointerTypeInContext(ctx, addrspace): llir/llvm's PointerType
// carries AddrSpace directly on the struct rather than through a
// context-scoped constructor.
func addrSpacePointer(addrspace uint64) *types.PointerType {
	return &types.PointerType{AddrSpace: addrspace}
}

// StateSpaceAddr maps a PTX state space to its AMDGPU address-space integer,
// per the fixed table in the core's data model. Param, ParamFunc,
// SharedCta, and SharedCluster are rejected as not yet implemented.
func StateSpaceAddr(space ast.StateSpace) (uint64, error) {
	switch space {
	case ast.Reg:
		return PrivateAddrSpace, nil
	case ast.Generic:
		return GenericAddrSpace, nil
	case ast.Param:
		return 0, ident.NewTodo("param state space")
	case ast.ParamEntry:
		return ConstantAddrSpace, nil
	case ast.ParamFunc:
		return 0, ident.NewTodo("param_func state space")
	case ast.Local:
		return PrivateAddrSpace, nil
	case ast.Global:
		return GlobalAddrSpace, nil
	case ast.Const:
		return ConstantAddrSpace, nil
	case ast.Shared:
		return SharedAddrSpace, nil
	case ast.SharedCta:
		return 0, ident.NewTodo("shared_cta state space")
	case ast.SharedCluster:
		return 0, ident.NewTodo("shared_cluster state space")
	default:
		return 0, ident.NewUnreachable(fmt.Sprintf("unknown state space %d", int(space)))
	}
}
