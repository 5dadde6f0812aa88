// Package ast defines the input data model consumed by the translator: the
// parsed PTX directive stream as handed over by the (external) PTX lexer and
// parser. Nothing in this package parses PTX text; it only shapes the tree
// the rest of the pipeline walks.
package ast

import "fmt"

// ScalarKind enumerates every PTX scalar type the translator knows the name
// of. Packed half-precision pairs are named here even though their LLVM
// lowering is not yet implemented (see llvmtypes).
type ScalarKind int

const (
	Pred ScalarKind = iota
	S8
	B8
	U8
	S16
	B16
	U16
	S32
	B32
	U32
	S64
	B64
	U64
	B128
	F16
	F32
	F64
	BF16
	U16x2
	S16x2
	F16x2
	BF16x2
)

func (k ScalarKind) String() string {
	switch k {
	case Pred:
		return "pred"
	case S8:
		return "s8"
	case B8:
		return "b8"
	case U8:
		return "u8"
	case S16:
		return "s16"
	case B16:
		return "b16"
	case U16:
		return "u16"
	case S32:
		return "s32"
	case B32:
		return "b32"
	case U32:
		return "u32"
	case S64:
		return "s64"
	case B64:
		return "b64"
	case U64:
		return "u64"
	case B128:
		return "b128"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case BF16:
		return "bf16"
	case U16x2:
		return "u16x2"
	case S16x2:
		return "s16x2"
	case F16x2:
		return "f16x2"
	case BF16x2:
		return "bf16x2"
	default:
		return fmt.Sprintf("scalar(%d)", int(k))
	}
}

// Type is the sum of the four shapes a PTX value's type can take: Scalar,
// Vector, Array, and Pointer.
type Type interface {
	isType()
	String() string
}

// Scalar is a bare scalar type, e.g. `.u32`.
type Scalar struct {
	Kind ScalarKind
}

func (Scalar) isType()        {}
func (s Scalar) String() string { return s.Kind.String() }

// Vector is a fixed-width vector of a scalar type, e.g. `.v4.f32`.
type Vector struct {
	Len  int
	Elem ScalarKind
}

func (Vector) isType() {}
func (v Vector) String() string {
	return fmt.Sprintf("v%d.%s", v.Len, v.Elem)
}

// Array is a (possibly packed-vector) scalar repeated across one or more
// dimensions, e.g. `.u32 arr[4][8]`. An empty Dims denotes a flexible,
// zero-length array used for `.extern .shared` declarations.
type Array struct {
	PackedVec *int
	Elem      ScalarKind
	Dims      []uint32
}

func (Array) isType() {}
func (a Array) String() string {
	return fmt.Sprintf("array(%s, dims=%v)", a.Elem, a.Dims)
}

// Pointer is a pointer to a scalar in a given state space, e.g. generic
// pointers produced by `cvta`.
type Pointer struct {
	Pointee ScalarKind
	Space   StateSpace
}

func (Pointer) isType() {}
func (p Pointer) String() string {
	return fmt.Sprintf("ptr<%s>(%s)", p.Pointee, p.Space)
}

// StateSpace is PTX's memory-class annotation on a variable or pointer.
type StateSpace int

const (
	Reg StateSpace = iota
	Generic
	Param
	ParamEntry
	ParamFunc
	Local
	Global
	Const
	Shared
	SharedCta
	SharedCluster
)

func (s StateSpace) String() string {
	switch s {
	case Reg:
		return "reg"
	case Generic:
		return "generic"
	case Param:
		return "param"
	case ParamEntry:
		return "param_entry"
	case ParamFunc:
		return "param_func"
	case Local:
		return "local"
	case Global:
		return "global"
	case Const:
		return "const"
	case Shared:
		return "shared"
	case SharedCta:
		return "shared_cta"
	case SharedCluster:
		return "shared_cluster"
	default:
		return fmt.Sprintf("state_space(%d)", int(s))
	}
}
