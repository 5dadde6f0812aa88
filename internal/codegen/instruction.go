package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
	"github.com/ptxamd/ptx2llvm/internal/llvmtypes"
)

// emitInstruction lowers one (possibly predicated) normalized instruction.
// A predicated instruction is wrapped in a guard block: the predicate
// register is loaded, negated if required, and the instruction only
// executes on the taken path, merging back into a continuation block on
// either side.
func (em *methodEmitter) emitInstruction(stmt directive.Instruction) error {
	if stmt.Predicate == nil {
		return em.emitInst(stmt.Inst)
	}

	predVal, err := em.resolveValue(stmt.Predicate.Label)
	if err != nil {
		return err
	}
	cond := predVal
	if stmt.Predicate.Not {
		cond = em.cur.NewXor(predVal, constant.True)
	}

	thenBlock := em.fn.NewBlock(fmt.Sprintf("pred.then%d", int(stmt.Predicate.Label)))
	contBlock := em.fn.NewBlock(fmt.Sprintf("pred.cont%d", int(stmt.Predicate.Label)))
	em.cur.NewCondBr(cond, thenBlock, contBlock)

	em.cur = thenBlock
	if err := em.emitInst(stmt.Inst); err != nil {
		return err
	}
	if em.cur.Term == nil {
		em.cur.NewBr(contBlock)
	}
	em.cur = contBlock
	return nil
}

func (em *methodEmitter) emitInst(inst directive.Inst) error {
	switch v := inst.(type) {
	case directive.MovInst:
		return em.emitMov(v)
	case directive.LdInst:
		return em.emitLd(v)
	case directive.StInst:
		return em.emitSt(v)
	case directive.AddInst:
		return em.emitAdd(v)
	case directive.RetInst:
		em.cur.NewRet(nil)
		return nil
	case directive.CallInst:
		return em.emitCall(v)
	case directive.OtherInst:
		return ident.NewTodo(fmt.Sprintf("opcode %s", v.OpCode))
	default:
		return ident.NewUnreachable(fmt.Sprintf("unknown instruction kind %T", inst))
	}
}

// emitMov copies the source identifier's current value into the destination
// through resolveValue/bindResult. When neither operand is a declared
// variable this is a pure rebind and emits no IR; a declared source is read
// with a load from its alloca, and a declared destination is written with a
// store into its alloca.
func (em *methodEmitter) emitMov(v directive.MovInst) error {
	src, err := em.resolveValue(v.Args.Src)
	if err != nil {
		return err
	}
	return em.bindResult(v.Args.Dst, src)
}

func (em *methodEmitter) emitLd(v directive.LdInst) error {
	if v.Data.Qualifier != ast.Weak {
		return ident.NewTodo(fmt.Sprintf("ld with qualifier %d", int(v.Data.Qualifier)))
	}
	if v.Data.NonCoherent {
		return ident.NewTodo("non-coherent ld")
	}
	ptr, err := em.resolver.value(v.Args.Src)
	if err != nil {
		return err
	}
	t, err := llvmtypes.Type(v.Data.Type)
	if err != nil {
		return err
	}
	load := em.cur.NewLoad(t, ptr)
	return em.bindResult(v.Args.Dst, load)
}

func (em *methodEmitter) emitSt(v directive.StInst) error {
	if v.Data.Qualifier != ast.Weak {
		return ident.NewTodo(fmt.Sprintf("st with qualifier %d", int(v.Data.Qualifier)))
	}
	ptr, err := em.resolver.value(v.Args.Src1)
	if err != nil {
		return err
	}
	val, err := em.resolveValue(v.Args.Src2)
	if err != nil {
		return err
	}
	em.cur.NewStore(val, ptr)
	return nil
}

// emitAdd dispatches on the static integer/float variant the normalize pass
// recorded, rather than inspecting the LLVM operand type, matching §4.7.
func (em *methodEmitter) emitAdd(v directive.AddInst) error {
	src1, err := em.resolveValue(v.Args.Src1)
	if err != nil {
		return err
	}
	src2, err := em.resolveValue(v.Args.Src2)
	if err != nil {
		return err
	}
	var result value.Value
	switch v.Data.Variant {
	case ast.ArithInteger:
		result = em.cur.NewAdd(src1, src2)
	case ast.ArithFloat:
		result = em.cur.NewFAdd(src1, src2)
	default:
		return ident.NewUnreachable(fmt.Sprintf("unknown arithmetic variant %d", int(v.Data.Variant)))
	}
	return em.bindResult(v.Args.Dst, result)
}

// emitCall lowers a direct call: every input argument is resolved in order
// and the callee is looked up from the module's function tables rather than
// through the per-method resolver, since callees are functions, not values
// bound to an identifier within this method's scope.
func (em *methodEmitter) emitCall(v directive.CallInst) error {
	callee, err := em.me.lookupFunc(v.Args.Func)
	if err != nil {
		return err
	}
	args := make([]value.Value, 0, len(v.Args.InputArguments))
	for _, a := range v.Args.InputArguments {
		val, err := em.resolveValue(a)
		if err != nil {
			return err
		}
		args = append(args, val)
	}
	call := em.cur.NewCall(callee, args...)
	if len(v.Args.ReturnArguments) == 1 {
		return em.bindResult(v.Args.ReturnArguments[0], call)
	}
	for i, ret := range v.Args.ReturnArguments {
		ev := em.cur.NewExtractValue(call, uint64(i))
		if err := em.bindResult(ret, ev); err != nil {
			return err
		}
	}
	return nil
}
