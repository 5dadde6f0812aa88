package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
	"github.com/ptxamd/ptx2llvm/internal/llvmtypes"
)

// moduleEmitter (C6) owns the *ir.Module under construction and the
// identifier table (C1) left behind by normalization; it is threaded through
// every method emitter so sibling methods can resolve each other by name.
type moduleEmitter struct {
	module *ir.Module
	table  *ident.Table
	funcs  map[ident.ID]*ir.Func
	names  map[string]*ir.Func // kernel-named functions, keyed by source name
}

// Translate runs C6+C7 over a normalized directive stream, producing a
// complete *ir.Module targeting amdgcn-amd-amdhsa. table is the identifier
// table normalize.Run returned alongside the directive stream.
func Translate(directives []directive.Directive, table *ident.Table) (*ir.Module, error) {
	m := ir.NewModule()
	m.TargetTriple = "amdgcn-amd-amdhsa"
	m.DataLayout = "e-p:64:64-p1:64:64-p2:32:32-p3:32:32-p4:64:64-p5:32:32-p6:32:32-i64:64-v16:16-v24:32-v32:32-v48:64-v96:128-v192:256-v256:256-v512:512-v1024:1024-v2048:2048-n32:64-S32-A5-G1-ni:7"

	me := &moduleEmitter{
		module: m,
		table:  table,
		funcs:  make(map[ident.ID]*ir.Func),
		names:  make(map[string]*ir.Func),
	}

	// Pass 1: declare every method's signature so forward/mutual calls
	// resolve regardless of directive order, mirroring C6's declare-then-
	// define structure.
	for _, d := range directives {
		meth, ok := d.(directive.Method)
		if !ok {
			continue
		}
		if err := me.declareMethod(meth); err != nil {
			return nil, err
		}
	}

	// Pass 2: emit bodies.
	for _, d := range directives {
		switch v := d.(type) {
		case directive.Method:
			if v.Body == nil {
				continue
			}
			if err := me.emitMethodBody(v); err != nil {
				return nil, err
			}
		case directive.Variable:
			return nil, ident.NewTodo("module-scope variable directive")
		default:
			return nil, ident.NewUnreachable(fmt.Sprintf("unknown directive kind %T", d))
		}
	}

	return m, nil
}

// declareMethod builds the function signature and attaches it to the module,
// without a body. Kernels use the amdgpu_kernel calling convention and take
// their parameters as byref pointers in the constant (param_entry) address
// space; device functions use the module's default (C) calling convention
// with parameters passed by value.
func (me *moduleEmitter) declareMethod(meth directive.Method) error {
	decl := meth.FuncDecl

	retType, err := returnType(decl.ReturnArguments)
	if err != nil {
		return err
	}

	isKernel := decl.Name.IsKernel()

	params := make([]*ir.Param, 0, len(decl.InputArguments))
	for _, arg := range decl.InputArguments {
		pt, err := paramType(arg, isKernel)
		if err != nil {
			return err
		}
		// Kernel parameters are logically byref(T) pointers into kernarg
		// memory; llir/llvm's Param type does not expose parameter
		// attribute lists in this release, so the byref annotation itself
		// is not attached. The pointer's address space (param_entry, see
		// llvmtypes) is what downstream passes actually rely on.
		p := ir.NewParam(paramLabel(arg, me.table), pt)
		params = append(params, p)
	}

	var fnName string
	if decl.Name.Kernel != nil {
		fnName = *decl.Name.Kernel
	} else {
		if n := me.table.Get(*decl.Name.Func).Name; n != nil {
			fnName = *n
		} else {
			fnName = fmt.Sprintf("fn%d", *decl.Name.Func)
		}
	}

	fn := me.module.NewFunc(fnName, retType, params...)
	if isKernel {
		fn.CallingConv = enum.CallConvAMDGPU_KERNEL
	}

	if decl.Name.Kernel != nil {
		me.names[*decl.Name.Kernel] = fn
	} else {
		me.funcs[*decl.Name.Func] = fn
	}
	return nil
}

// returnType maps a method's return-argument list to a single LLVM return
// type: void for none, the sole type for one, a struct for more than one.
func returnType(args []directive.NormalizedVariable) (types.Type, error) {
	switch len(args) {
	case 0:
		return types.Void, nil
	case 1:
		return llvmtypes.Type(args[0].VType)
	default:
		elems := make([]types.Type, 0, len(args))
		for _, a := range args {
			t, err := llvmtypes.Type(a.VType)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return types.NewStruct(elems...), nil
	}
}

// paramType maps one input argument to its LLVM parameter type. Kernel
// parameters are always passed by reference (a pointer in the param_entry
// address space, per §3's table), since AMDGPU kernel arguments live in
// kernarg (constant) memory; device-function parameters are passed by
// value, matching the C calling convention used for non-kernel methods.
func paramType(arg directive.NormalizedVariable, isKernel bool) (types.Type, error) {
	if isKernel {
		return llvmtypes.Pointer(ast.ParamEntry)
	}
	return llvmtypes.Type(arg.VType)
}

// lookupFunc resolves a call's callee identifier to the already-declared
// *ir.Func backing it. Only device functions (Func-named methods) are
// callable this way; kernels are entry points, not call targets.
func (me *moduleEmitter) lookupFunc(id ident.ID) (*ir.Func, error) {
	fn, ok := me.funcs[id]
	if !ok {
		return nil, ident.NewUnreachable(fmt.Sprintf("call to undeclared function identifier %d", int(id)))
	}
	return fn, nil
}

func paramLabel(arg directive.NormalizedVariable, table *ident.Table) string {
	if name := table.Get(arg.Name).Name; name != nil {
		return *name
	}
	return fmt.Sprintf("arg%d", int(arg.Name))
}
