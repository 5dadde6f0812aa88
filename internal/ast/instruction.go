package ast

// ImmediateValue is a constant operand carried directly in the instruction
// stream rather than through a register.
type ImmediateValue struct {
	U64 *uint64
	S64 *int64
	F32 *float32
	F64 *float64
}

// OpCode names every PTX instruction the translator's AST can represent. Most
// are placeholders: their semantics are pinned by the end-to-end test corpus
// but their IR lowering is not implemented (see codegen's Todo errors).
type OpCode string

const (
	OpMov        OpCode = "mov"
	OpLd         OpCode = "ld"
	OpSt         OpCode = "st"
	OpAdd        OpCode = "add"
	OpRet        OpCode = "ret"
	OpCall       OpCode = "call"
	OpMul        OpCode = "mul"
	OpSetp       OpCode = "setp"
	OpSetpBool   OpCode = "setp_bool"
	OpNot        OpCode = "not"
	OpOr         OpCode = "or"
	OpAnd        OpCode = "and"
	OpBra        OpCode = "bra"
	OpCvt        OpCode = "cvt"
	OpShr        OpCode = "shr"
	OpShl        OpCode = "shl"
	OpCvta       OpCode = "cvta"
	OpAbs        OpCode = "abs"
	OpMad        OpCode = "mad"
	OpFma        OpCode = "fma"
	OpSub        OpCode = "sub"
	OpMin        OpCode = "min"
	OpMax        OpCode = "max"
	OpRcp        OpCode = "rcp"
	OpSqrt       OpCode = "sqrt"
	OpRsqrt      OpCode = "rsqrt"
	OpSelp       OpCode = "selp"
	OpBar        OpCode = "bar"
	OpAtom       OpCode = "atom"
	OpAtomCas    OpCode = "atom_cas"
	OpDiv        OpCode = "div"
	OpNeg        OpCode = "neg"
	OpSin        OpCode = "sin"
	OpCos        OpCode = "cos"
	OpLg2        OpCode = "lg2"
	OpEx2        OpCode = "ex2"
	OpClz        OpCode = "clz"
	OpBrev       OpCode = "brev"
	OpPopc       OpCode = "popc"
	OpXor        OpCode = "xor"
	OpRem        OpCode = "rem"
	OpBfe        OpCode = "bfe"
	OpBfi        OpCode = "bfi"
	OpPrmtSlow   OpCode = "prmt_slow"
	OpPrmt       OpCode = "prmt"
	OpActivemask OpCode = "activemask"
	OpMembar     OpCode = "membar"
	OpTrap       OpCode = "trap"
)

// Instruction is the sum of every opcode the parser can hand the translator.
// Instructions the core knows how to emit carry a concrete Go type (MovInst,
// LdInst, ...); everything else arrives as OtherInstruction, a generic
// operand bag that still participates in name resolution.
type Instruction interface {
	isInstruction()
	Op() OpCode
}

// MovDetails carries mov's type annotation (PTX's mov is untyped at the IR
// level: it is a pure register rename, see codegen).
type MovDetails struct {
	Type ScalarKind
}

// MovArgs is mov's two operands: destination and source.
type MovArgs struct {
	Dst Operand
	Src Operand
}

type MovInst struct {
	Data MovDetails
	Args MovArgs
}

func (MovInst) isInstruction() {}
func (MovInst) Op() OpCode     { return OpMov }

// LdStQualifier is the memory-ordering qualifier PTX attaches to ld/st.
// Only Weak is currently lowered; every other qualifier is a Todo.
type LdStQualifier int

const (
	Weak LdStQualifier = iota
	Volatile
	Relaxed
	Acquire
	Release
)

// LdDetails carries ld's type, qualifier, and coherence annotation.
type LdDetails struct {
	Type        Type
	Qualifier   LdStQualifier
	NonCoherent bool
	Space       StateSpace
}

// LdArgs is ld's two operands: destination register and source pointer.
type LdArgs struct {
	Dst Operand
	Src Operand
}

type LdInst struct {
	Data LdDetails
	Args LdArgs
}

func (LdInst) isInstruction() {}
func (LdInst) Op() OpCode     { return OpLd }

// StData carries st's type and qualifier.
type StData struct {
	Type      Type
	Qualifier LdStQualifier
	Space     StateSpace
}

// StArgs is st's two operands: destination pointer and source value.
type StArgs struct {
	Src1 Operand // pointer
	Src2 Operand // value
}

type StInst struct {
	Data StData
	Args StArgs
}

func (StInst) isInstruction() {}
func (StInst) Op() OpCode     { return OpSt }

// ArithVariant distinguishes integer from floating-point arithmetic, since
// the emitter dispatches on this rather than on the LLVM operand type.
type ArithVariant int

const (
	ArithInteger ArithVariant = iota
	ArithFloat
)

// ArithDetails carries add's (and other arithmetic instructions') variant.
type ArithDetails struct {
	Variant ArithVariant
	Type    ScalarKind
}

// AddArgs is add's three operands.
type AddArgs struct {
	Dst  Operand
	Src1 Operand
	Src2 Operand
}

type AddInst struct {
	Data ArithDetails
	Args AddArgs
}

func (AddInst) isInstruction() {}
func (AddInst) Op() OpCode     { return OpAdd }

// RetData carries ret's (currently unused) return-value info.
type RetData struct{}

type RetInst struct {
	Data RetData
}

func (RetInst) isInstruction() {}
func (RetInst) Op() OpCode     { return OpRet }

// CallDetails describes a call's static signature: the state space each
// return/input argument lives in, independent of the concrete values passed.
type CallDetails struct {
	ReturnArguments []CallArgType
	InputArguments  []CallArgType
}

// CallArgType pairs a declared type with the state space it is passed in.
type CallArgType struct {
	Type  Type
	Space StateSpace
}

// CallArgs is a call's dynamic operands: the callee, and the actual
// return/input argument identifiers.
type CallArgs struct {
	Func            Operand
	ReturnArguments []Operand
	InputArguments  []Operand
}

type CallInst struct {
	Data CallDetails
	Args CallArgs
}

func (CallInst) isInstruction() {}
func (CallInst) Op() OpCode     { return OpCall }

// OtherInstruction is the catch-all for every opcode the core does not
// lower yet (see §9 of the design notes). It still carries its operands so
// normalization can resolve their names.
type OtherInstruction struct {
	OpCode   OpCode
	Operands []Operand
}

func (OtherInstruction) isInstruction() {}
func (o OtherInstruction) Op() OpCode   { return o.OpCode }
