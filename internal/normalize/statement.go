package normalize

import (
	"fmt"

	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// runStatements normalizes one statement list: first a label pre-pass that
// hoists every label name into the current scope (so forward references
// resolve), then a main pass that resolves every operand and expands
// multi-variable declarations.
func runStatements(r *ident.Resolver, out *[]directive.Statement, stmts []ast.Statement) error {
	for _, s := range stmts {
		if lbl, ok := s.(ast.LabelStatement); ok {
			if _, err := r.Add(lbl.Name, nil); err != nil {
				return err
			}
		}
	}

	for _, s := range stmts {
		switch v := s.(type) {
		case ast.LabelStatement:
			id, err := r.GetInCurrentScope(v.Name)
			if err != nil {
				return err
			}
			*out = append(*out, directive.Label{Name: id})

		case ast.VariableStatement:
			if err := runMultiVariable(r, out, v.Variable); err != nil {
				return err
			}

		case ast.InstructionStatement:
			var pred *directive.PredAt
			if v.Predicate != nil {
				id, err := r.Get(v.Predicate.Label)
				if err != nil {
					return err
				}
				pred = &directive.PredAt{Not: v.Predicate.Not, Label: id}
			}
			inst, err := runInstruction(r, v.Instruction)
			if err != nil {
				return err
			}
			*out = append(*out, directive.Instruction{Predicate: pred, Inst: inst})

		case ast.BlockStatement:
			r.StartScope()
			var inner []directive.Statement
			if err := runStatements(r, &inner, v.Body); err != nil {
				r.EndScope()
				return err
			}
			r.EndScope()
			*out = append(*out, directive.Block{Body: inner})

		default:
			return ident.NewUnreachable(fmt.Sprintf("unknown statement kind %T", s))
		}
	}
	return nil
}

// runMultiVariable expands `.reg .T %base<N>` into N separate variables
// named base0..base(N-1), each with identical type, state space, alignment,
// and initializer, and N distinct ids. A plain declaration (Count == nil) is
// a single-variable expansion.
func runMultiVariable(r *ident.Resolver, out *[]directive.Statement, mv ast.MultiVariable) error {
	if mv.Count == nil {
		nv, err := runVariable(r, mv.Var)
		if err != nil {
			return err
		}
		*out = append(*out, directive.Variable{Var: nv})
		return nil
	}
	count := *mv.Count
	for i := uint32(0); i < count; i++ {
		name := fmt.Sprintf("%s%d", mv.Var.Name, i)
		id, err := r.Add(name, ident.TypedSpaceOf(mv.Var.VType, mv.Var.Space))
		if err != nil {
			return err
		}
		*out = append(*out, directive.Variable{Var: directive.NormalizedVariable{
			Name:      id,
			Align:     mv.Var.Align,
			VType:     mv.Var.VType,
			Space:     mv.Var.Space,
			ArrayInit: mv.Var.ArrayInit,
		}})
	}
	return nil
}

// resolveOperand resolves a single source-named operand through the scoped
// resolver. This is the generic "AST visitor" the spec describes, inlined
// per operand rather than expressed through a reflective visit hook.
func resolveOperand(r *ident.Resolver, op ast.Operand) (ident.ID, error) {
	return r.Get(op.Name)
}

// runInstruction resolves every operand name in an instruction, dispatching
// on its concrete Go type since normalize's AST has one struct per opcode
// rather than a single generic shape.
func runInstruction(r *ident.Resolver, inst ast.Instruction) (directive.Inst, error) {
	switch v := inst.(type) {
	case ast.MovInst:
		dst, err := resolveOperand(r, v.Args.Dst)
		if err != nil {
			return nil, err
		}
		src, err := resolveOperand(r, v.Args.Src)
		if err != nil {
			return nil, err
		}
		return directive.MovInst{Data: v.Data, Args: directive.MovArgs{Dst: dst, Src: src}}, nil

	case ast.LdInst:
		dst, err := resolveOperand(r, v.Args.Dst)
		if err != nil {
			return nil, err
		}
		src, err := resolveOperand(r, v.Args.Src)
		if err != nil {
			return nil, err
		}
		return directive.LdInst{Data: v.Data, Args: directive.LdArgs{Dst: dst, Src: src}}, nil

	case ast.StInst:
		src1, err := resolveOperand(r, v.Args.Src1)
		if err != nil {
			return nil, err
		}
		src2, err := resolveOperand(r, v.Args.Src2)
		if err != nil {
			return nil, err
		}
		return directive.StInst{Data: v.Data, Args: directive.StArgs{Src1: src1, Src2: src2}}, nil

	case ast.AddInst:
		dst, err := resolveOperand(r, v.Args.Dst)
		if err != nil {
			return nil, err
		}
		src1, err := resolveOperand(r, v.Args.Src1)
		if err != nil {
			return nil, err
		}
		src2, err := resolveOperand(r, v.Args.Src2)
		if err != nil {
			return nil, err
		}
		return directive.AddInst{Data: v.Data, Args: directive.AddArgs{Dst: dst, Src1: src1, Src2: src2}}, nil

	case ast.RetInst:
		return directive.RetInst{Data: v.Data}, nil

	case ast.CallInst:
		fn, err := resolveOperand(r, v.Args.Func)
		if err != nil {
			return nil, err
		}
		retArgs := make([]ident.ID, 0, len(v.Args.ReturnArguments))
		for _, a := range v.Args.ReturnArguments {
			id, err := resolveOperand(r, a)
			if err != nil {
				return nil, err
			}
			retArgs = append(retArgs, id)
		}
		inArgs := make([]ident.ID, 0, len(v.Args.InputArguments))
		for _, a := range v.Args.InputArguments {
			id, err := resolveOperand(r, a)
			if err != nil {
				return nil, err
			}
			inArgs = append(inArgs, id)
		}
		return directive.CallInst{Data: v.Data, Args: directive.CallArgs{Func: fn, ReturnArguments: retArgs, InputArguments: inArgs}}, nil

	case ast.OtherInstruction:
		ops := make([]ident.ID, 0, len(v.Operands))
		for _, o := range v.Operands {
			id, err := resolveOperand(r, o)
			if err != nil {
				return nil, err
			}
			ops = append(ops, id)
		}
		return directive.OtherInst{OpCode: v.OpCode, Operands: ops}, nil

	default:
		return nil, ident.NewUnreachable(fmt.Sprintf("unknown instruction kind %T", inst))
	}
}
