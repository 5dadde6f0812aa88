package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
	"github.com/ptxamd/ptx2llvm/internal/llvmtypes"
)

// methodEmitter (C7) lowers one method's statement list into basic blocks.
// It holds the two-block prologue pattern every method body starts with:
// an "allocas" block that dominates everything and branches unconditionally
// into "start", so every local variable's alloca dominates every use
// regardless of how deep the lexical nesting that declared it was.
type methodEmitter struct {
	me       *moduleEmitter
	fn       *ir.Func
	resolver *llvmResolver
	allocas  *ir.Block
	cur      *ir.Block
}

// emitMethodBody builds the body of an already-declared method.
func (me *moduleEmitter) emitMethodBody(meth directive.Method) error {
	var fn *ir.Func
	if meth.FuncDecl.Name.Kernel != nil {
		fn = me.names[*meth.FuncDecl.Name.Kernel]
	} else {
		fn = me.funcs[*meth.FuncDecl.Name.Func]
	}
	if fn == nil {
		return ident.NewUnreachable("emitMethodBody: method was never declared")
	}

	allocas := fn.NewBlock("allocas")
	start := fn.NewBlock("start")
	allocas.NewBr(start)

	em := &methodEmitter{
		me:       me,
		fn:       fn,
		resolver: newLLVMResolver(),
		allocas:  allocas,
		cur:      start,
	}

	for i, arg := range meth.FuncDecl.InputArguments {
		if err := em.bindInputArgument(arg, fn.Params[i]); err != nil {
			return err
		}
	}

	if err := em.emitStatements(meth.Body); err != nil {
		return err
	}

	if em.cur.Term == nil {
		em.cur.NewUnreachable()
	}
	return nil
}

// bindInputArgument binds a parameter's identifier to the LLVM value that
// represents it. Kernel parameters arrive as byref pointers; the emitter
// resolves the identifier directly to that pointer rather than loading
// through it, matching the core's "variables are addresses" model.
// Device-function parameters arrive by value and are stored into a fresh
// alloca so later loads/stores have a uniform address to work with.
func (em *methodEmitter) bindInputArgument(arg directive.NormalizedVariable, param *ir.Param) error {
	if arg.Space == ast.Reg { // value parameter of a device function
		t, err := llvmtypes.Type(arg.VType)
		if err != nil {
			return err
		}
		alloca := em.allocas.NewAlloca(t)
		em.cur.NewStore(param, alloca)
		return em.resolver.register(arg.Name, alloca)
	}
	return em.resolver.register(arg.Name, param)
}

func (em *methodEmitter) emitStatements(stmts []directive.Statement) error {
	for _, s := range stmts {
		if err := em.emitStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (em *methodEmitter) emitStatement(s directive.Statement) error {
	switch v := s.(type) {
	case directive.Variable:
		return em.emitVariable(v)
	case directive.Label:
		return em.emitLabel(v)
	case directive.Instruction:
		return em.emitInstruction(v)
	case directive.Block:
		return em.emitStatements(v.Body)
	case directive.LoadVar:
		return em.emitLoadVar(v)
	case directive.StoreVar:
		return em.emitStoreVar(v)
	case directive.Constant:
		return em.emitConstant(v)
	case directive.Conversion:
		return em.emitConversion(v)
	case directive.Conditional, directive.RetValue, directive.PtrAccess,
		directive.RepackVector, directive.FunctionPointer, directive.VectorAccess:
		return ident.NewTodo(fmt.Sprintf("statement kind %T", s))
	default:
		return ident.NewUnreachable(fmt.Sprintf("unknown statement kind %T", s))
	}
}

// emitVariable allocates storage for a local variable in the allocas block,
// so it dominates every block that might read or write it. The id is bound
// to the alloca itself, not to a value — every instruction that later
// writes or reads this variable goes through bindResult/resolveValue, which
// know to treat an alloca binding as "this id is an address, not a value".
func (em *methodEmitter) emitVariable(v directive.Variable) error {
	if len(v.Var.ArrayInit) != 0 {
		return ident.NewTodo("variable with array initializer")
	}
	t, err := llvmtypes.Type(v.Var.VType)
	if err != nil {
		return err
	}
	alloca := em.allocas.NewAlloca(t)
	return em.resolver.register(v.Var.Name, alloca)
}

// resolveValue reads the current scalar/pointer value an id denotes. A
// declared variable is bound to its alloca (see emitVariable,
// bindInputArgument), so reading its value means loading through that
// alloca; anything else (a byref parameter, an already-computed SSA value,
// a constant) is already a value and is returned as-is.
func (em *methodEmitter) resolveValue(id ident.ID) (value.Value, error) {
	v, err := em.resolver.value(id)
	if err != nil {
		return nil, err
	}
	if alloca, ok := v.(*ir.InstAlloca); ok {
		return em.cur.NewLoad(alloca.ElemType, alloca), nil
	}
	return v, nil
}

// bindResult writes val as the value id now holds. If id already denotes a
// declared variable's alloca, val is stored into that alloca — the
// register's address identity never changes, only what it currently holds
// does. Otherwise id has no variable of its own yet (e.g. a fresh
// intermediate), so it is bound to val directly. A non-alloca rebind
// attempt is a genuine duplicate-emission bug, not variable reuse, and is
// rejected the same way register always has.
func (em *methodEmitter) bindResult(id ident.ID, val value.Value) error {
	if existing, ok := em.resolver.lookup(id); ok {
		alloca, ok := existing.(*ir.InstAlloca)
		if !ok {
			return ident.NewUnreachable(fmt.Sprintf("identifier %d already bound to a non-variable LLVM value", int(id)))
		}
		em.cur.NewStore(val, alloca)
		return nil
	}
	return em.resolver.register(id, val)
}

// emitLabel closes the current block with an unconditional branch into the
// label's block (creating it via getOrAddBlock if no forward reference already
// did), then continues emission in that block.
func (em *methodEmitter) emitLabel(l directive.Label) error {
	block := em.resolver.getOrAddBlock(em.fn, l.Name, fmt.Sprintf("label%d", int(l.Name)))
	if em.cur.Term == nil {
		em.cur.NewBr(block)
	}
	em.cur = block
	return nil
}

func (em *methodEmitter) emitLoadVar(v directive.LoadVar) error {
	if v.MemberIndex != nil {
		return ident.NewTodo("LoadVar with member_index")
	}
	src, err := em.resolver.value(v.Arg.Src)
	if err != nil {
		return err
	}
	t, err := llvmtypes.Type(v.Typ)
	if err != nil {
		return err
	}
	load := em.cur.NewLoad(t, src)
	return em.bindResult(v.Arg.Dst, load)
}

func (em *methodEmitter) emitStoreVar(v directive.StoreVar) error {
	ptr, err := em.resolver.value(v.Arg.Src1)
	if err != nil {
		return err
	}
	val, err := em.resolveValue(v.Arg.Src2)
	if err != nil {
		return err
	}
	em.cur.NewStore(val, ptr)
	return nil
}

func (em *methodEmitter) emitConstant(v directive.Constant) error {
	t, err := llvmtypes.Scalar(v.Typ)
	if err != nil {
		return err
	}
	c, err := immediateConstant(t, v.Value)
	if err != nil {
		return err
	}
	return em.bindResult(v.Dst, c)
}

// emitConversion lowers the one conversion kind the emitter currently
// understands: BitToPtr, an inttoptr of the source's integer value into a
// pointer in the target address space. Every other kind is a documented,
// not-yet-supported gap.
func (em *methodEmitter) emitConversion(v directive.Conversion) error {
	if v.Kind != directive.ConvBitToPtr {
		return ident.NewTodo(fmt.Sprintf("conversion kind %d", int(v.Kind)))
	}
	src, err := em.resolveValue(v.Src)
	if err != nil {
		return err
	}
	pt, err := llvmtypes.Pointer(v.ToSpace)
	if err != nil {
		return err
	}
	cast := em.cur.NewIntToPtr(src, pt)
	return em.bindResult(v.Dst, cast)
}

// immediateConstant builds the constant.Constant that best represents an
// ast.ImmediateValue in the given LLVM type.
func immediateConstant(t types.Type, v ast.ImmediateValue) (constant.Constant, error) {
	switch it := t.(type) {
	case *types.IntType:
		switch {
		case v.U64 != nil:
			return constant.NewInt(it, int64(*v.U64)), nil
		case v.S64 != nil:
			return constant.NewInt(it, *v.S64), nil
		default:
			return nil, ident.NewUnreachable("integer constant with no integer payload")
		}
	case *types.FloatType:
		switch {
		case v.F64 != nil:
			return constant.NewFloat(it, *v.F64), nil
		case v.F32 != nil:
			return constant.NewFloat(it, float64(*v.F32)), nil
		default:
			return nil, ident.NewUnreachable("float constant with no float payload")
		}
	default:
		return nil, ident.NewTodo(fmt.Sprintf("constant of type %s", t))
	}
}
