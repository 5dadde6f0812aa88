package directive

import (
	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// Statement is one entry in a normalized method body. The normalize pass
// (C3) only ever produces Variable, Label, Instruction, and Block; the
// remaining variants are the shapes later passes (out of scope here) would
// produce and that the emitter (C7) still knows how to lower.
type Statement interface {
	isStatement()
}

// Variable declares one local variable (the output of multi-variable
// expansion is one Variable per expanded name).
type Variable struct {
	Var NormalizedVariable
}

func (Variable) isStatement() {}

// Label introduces a branch target. Labels are hoisted: an Instruction
// earlier in the same block may reference a Label id produced later.
type Label struct {
	Name ident.ID
}

func (Label) isStatement() {}

// PredAt guards an instruction with a (possibly negated) predicate.
type PredAt struct {
	Not   bool
	Label ident.ID
}

// Instruction is a (possibly predicated) normalized instruction.
type Instruction struct {
	Predicate *PredAt
	Inst      Inst
}

func (Instruction) isStatement() {}

// Block recurses into a nested lexical scope.
type Block struct {
	Body []Statement
}

func (Block) isStatement() {}

// LoadVar loads a variable's value from its storage (an alloca or kernel
// parameter). member_index (struct/vector field access) is not yet
// supported.
type LoadVar struct {
	Typ         ast.Type
	Arg         LoadStoreArgs
	MemberIndex *int
}

func (LoadVar) isStatement() {}

// LoadStoreArgs is the {dst, src} pair shared by LoadVar (dst = *src) and by
// StoreVar ({src1=ptr, src2=value}).
type LoadStoreArgs struct {
	Dst  ident.ID
	Src  ident.ID
	Src1 ident.ID
	Src2 ident.ID
}

// StoreVar stores src2 into the pointer src1.
type StoreVar struct {
	Arg LoadStoreArgs
}

func (StoreVar) isStatement() {}

// ConversionKind enumerates PTX's implicit-conversion shapes. Only
// BitToPtr is lowered by the current emitter.
type ConversionKind int

const (
	ConvDefault ConversionKind = iota
	ConvSignExtend
	ConvBitToPtr
	ConvPtrToPtr
	ConvAddressOf
)

// Conversion is an implicit type/space conversion inserted by an earlier
// pass between a value's declared type and the type an instruction expects.
type Conversion struct {
	Kind    ConversionKind
	Src     ident.ID
	Dst     ident.ID
	ToSpace ast.StateSpace
}

func (Conversion) isStatement() {}

// Constant materializes an immediate value of a scalar type and binds it to
// an identifier.
type Constant struct {
	Typ   ast.ScalarKind
	Value ast.ImmediateValue
	Dst   ident.ID
}

func (Constant) isStatement() {}

// Conditional represents control flow lowered by a pass out of scope here.
type Conditional struct {
	Cond ident.ID
	Then ident.ID
	Else ident.ID
}

func (Conditional) isStatement() {}

// RetValue is a return carrying one or more values; return-value lowering
// is not implemented (see codegen).
type RetValue struct {
	Values []ident.ID
}

func (RetValue) isStatement() {}

// PtrAccess represents pointer arithmetic lowered by a pass out of scope
// here (e.g. array/struct member addressing).
type PtrAccess struct {
	Ptr    ident.ID
	Offset ident.ID
	Dst    ident.ID
}

func (PtrAccess) isStatement() {}

// RepackVector represents vector (de)composition lowered by a pass out of
// scope here.
type RepackVector struct {
	Components []ident.ID
	Dst        ident.ID
	Pack       bool
}

func (RepackVector) isStatement() {}

// FunctionPointer binds an identifier to a function value for indirect
// calls.
type FunctionPointer struct {
	Src ident.ID
	Dst ident.ID
}

func (FunctionPointer) isStatement() {}

// VectorAccess represents an individual-lane access into a vector value.
type VectorAccess struct {
	Vector ident.ID
	Lane   int
	Dst    ident.ID
}

func (VectorAccess) isStatement() {}

// Inst is the normalized form of ast.Instruction: same opcodes, but every
// operand is a resolved ident.ID instead of a source name.
type Inst interface {
	isInst()
	Op() ast.OpCode
}

type MovArgs struct {
	Dst ident.ID
	Src ident.ID
}

type MovInst struct {
	Data ast.MovDetails
	Args MovArgs
}

func (MovInst) isInst()      {}
func (MovInst) Op() ast.OpCode { return ast.OpMov }

type LdArgs struct {
	Dst ident.ID
	Src ident.ID
}

type LdInst struct {
	Data ast.LdDetails
	Args LdArgs
}

func (LdInst) isInst()      {}
func (LdInst) Op() ast.OpCode { return ast.OpLd }

type StArgs struct {
	Src1 ident.ID
	Src2 ident.ID
}

type StInst struct {
	Data ast.StData
	Args StArgs
}

func (StInst) isInst()      {}
func (StInst) Op() ast.OpCode { return ast.OpSt }

type AddArgs struct {
	Dst  ident.ID
	Src1 ident.ID
	Src2 ident.ID
}

type AddInst struct {
	Data ast.ArithDetails
	Args AddArgs
}

func (AddInst) isInst()      {}
func (AddInst) Op() ast.OpCode { return ast.OpAdd }

type RetInst struct {
	Data ast.RetData
}

func (RetInst) isInst()      {}
func (RetInst) Op() ast.OpCode { return ast.OpRet }

type CallArgs struct {
	Func            ident.ID
	ReturnArguments []ident.ID
	InputArguments  []ident.ID
}

type CallInst struct {
	Data ast.CallDetails
	Args CallArgs
}

func (CallInst) isInst()      {}
func (CallInst) Op() ast.OpCode { return ast.OpCall }

// OtherInst is the normalized catch-all mirroring ast.OtherInstruction.
type OtherInst struct {
	OpCode   ast.OpCode
	Operands []ident.ID
}

func (o OtherInst) isInst()      {}
func (o OtherInst) Op() ast.OpCode { return o.OpCode }
