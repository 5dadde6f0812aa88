// Package normalize implements C3: the pass that walks the parsed PTX AST,
// interns every symbol through the scoped resolver (C2), expands
// multi-variable declarations, and produces the typed directive stream that
// LLVM emission consumes.
package normalize

import (
	"github.com/ptxamd/ptx2llvm/internal/ast"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/ident"
)

// Run normalizes an entire translation unit. The returned Resolver still
// owns the identifier table the directive stream's ids are drawn from; the
// emitter needs it to recover names and (type, state space) pairs.
func Run(directives_ []ast.Directive) ([]directive.Directive, *ident.Resolver, error) {
	r := ident.NewResolver()
	r.StartScope()
	out := make([]directive.Directive, 0, len(directives_))
	for _, d := range directives_ {
		nd, err := runDirective(r, d)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, nd)
	}
	r.EndScope()
	return out, r, nil
}

func runDirective(r *ident.Resolver, d ast.Directive) (directive.Directive, error) {
	switch v := d.(type) {
	case ast.VariableDirective:
		nv, err := runVariable(r, v.Var)
		if err != nil {
			return nil, err
		}
		return directive.Variable{Linkage: v.Linkage, Var: v.Var, Name: nv.Name}, nil
	case ast.MethodDirective:
		return runMethod(r, v.Linkage, v.Func)
	default:
		return nil, ident.NewUnreachable("unknown directive kind")
	}
}

func runMethod(r *ident.Resolver, linkage ast.Linkage, fn ast.Function) (directive.Method, error) {
	var name directive.MethodName
	switch {
	case fn.FuncDirective.Name.Kernel != nil:
		name = directive.MethodName{Kernel: fn.FuncDirective.Name.Kernel}
	case fn.FuncDirective.Name.Func != nil:
		id, err := r.AddOrGetInCurrentScopeUntyped(*fn.FuncDirective.Name.Func)
		if err != nil {
			return directive.Method{}, err
		}
		name = directive.MethodName{Func: &id}
	default:
		return directive.Method{}, ident.NewUnreachable("method with neither kernel nor func name")
	}

	r.StartScope()
	decl, err := runFunctionDecl(r, fn.FuncDirective, name)
	if err != nil {
		r.EndScope()
		return directive.Method{}, err
	}
	var body []directive.Statement
	if fn.Body != nil {
		body = make([]directive.Statement, 0, len(fn.Body))
		if err := runStatements(r, &body, fn.Body); err != nil {
			r.EndScope()
			return directive.Method{}, err
		}
	}
	r.EndScope()

	return directive.Method{
		FuncDecl: decl,
		Body:     body,
		Tuning:   fn.Tuning,
		Linkage:  linkage,
	}, nil
}

func runFunctionDecl(r *ident.Resolver, decl ast.MethodDeclaration, name directive.MethodName) (directive.MethodDeclaration, error) {
	if decl.SharedMem != nil {
		return directive.MethodDeclaration{}, ident.NewTodo("function-level shared_mem declaration")
	}
	retArgs := make([]directive.NormalizedVariable, 0, len(decl.ReturnArguments))
	for _, v := range decl.ReturnArguments {
		nv, err := runVariable(r, v)
		if err != nil {
			return directive.MethodDeclaration{}, err
		}
		retArgs = append(retArgs, nv)
	}
	inArgs := make([]directive.NormalizedVariable, 0, len(decl.InputArguments))
	for _, v := range decl.InputArguments {
		nv, err := runVariable(r, v)
		if err != nil {
			return directive.MethodDeclaration{}, err
		}
		inArgs = append(inArgs, nv)
	}
	return directive.MethodDeclaration{
		ReturnArguments: retArgs,
		Name:            name,
		InputArguments:  inArgs,
	}, nil
}

func runVariable(r *ident.Resolver, v ast.Variable) (directive.NormalizedVariable, error) {
	id, err := r.Add(v.Name, ident.TypedSpaceOf(v.VType, v.Space))
	if err != nil {
		return directive.NormalizedVariable{}, err
	}
	return directive.NormalizedVariable{
		Name:      id,
		Align:     v.Align,
		VType:     v.VType,
		Space:     v.Space,
		ArrayInit: v.ArrayInit,
	}, nil
}
