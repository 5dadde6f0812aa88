package ident

import "github.com/ptxamd/ptx2llvm/internal/ast"

// scope is a single lexical naming region: a mapping from source name to the
// identifier it currently denotes. Scopes nest; a name introduced in an
// inner scope shadows the same name in an outer one.
type scope struct {
	names map[string]ID
}

func newScope() *scope {
	return &scope{names: make(map[string]ID)}
}

// Resolver is the scoped name resolver (C2): a stack of scopes layered over
// a single identifier Table (C1). It implements PTX's lexical scoping rules,
// including shadowing and label forward-references.
type Resolver struct {
	table  *Table
	scopes []*scope
}

// NewResolver creates a resolver backed by a fresh identifier table.
func NewResolver() *Resolver {
	return &Resolver{table: NewTable()}
}

// Table returns the identifier table backing this resolver.
func (r *Resolver) Table() *Table { return r.table }

// StartScope pushes a new, empty lexical scope.
func (r *Resolver) StartScope() {
	r.scopes = append(r.scopes, newScope())
}

// EndScope pops the innermost scope. Only the name→id bindings introduced in
// that scope are discarded; the underlying identifier-table entries persist
// for the lifetime of the translation.
func (r *Resolver) EndScope() {
	if len(r.scopes) == 0 {
		panic("ident: EndScope with no open scope")
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) current() *scope {
	if len(r.scopes) == 0 {
		panic("ident: no open scope")
	}
	return r.scopes[len(r.scopes)-1]
}

// Add introduces name in the innermost scope, failing if it is already bound
// there (shadowing across scopes is fine; redeclaration within one scope is
// not). typed is nil for labels and for names that are untyped at the point
// of introduction.
func (r *Resolver) Add(name string, typed *TypedSpace) (ID, error) {
	cur := r.current()
	if _, ok := cur.names[name]; ok {
		return 0, NewUnreachable("duplicate declaration of '" + name + "' in the same scope")
	}
	nameCopy := name
	id := r.table.alloc(Descriptor{Name: &nameCopy, Typed: typed})
	cur.names[name] = id
	return id, nil
}

// AddOrGetInCurrentScopeUntyped introduces name in the innermost scope if
// absent, or returns its existing id if already bound there. It is used for
// device-function names, whose declaration and definition must collapse to
// the same identifier.
func (r *Resolver) AddOrGetInCurrentScopeUntyped(name string) (ID, error) {
	cur := r.current()
	if id, ok := cur.names[name]; ok {
		return id, nil
	}
	return r.Add(name, nil)
}

// Get resolves name starting in the innermost scope and walking outward,
// failing if no enclosing scope binds it.
func (r *Resolver) Get(name string) (ID, error) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if id, ok := r.scopes[i].names[name]; ok {
			return id, nil
		}
	}
	return 0, NewUnreachable("unresolved identifier '" + name + "'")
}

// GetInCurrentScope resolves name only in the innermost scope. It is used
// for label resolution after the label pre-pass has hoisted every label in
// the current block into scope.
func (r *Resolver) GetInCurrentScope(name string) (ID, error) {
	if id, ok := r.current().names[name]; ok {
		return id, nil
	}
	return 0, NewUnreachable("unresolved label '" + name + "'")
}

// typedSpaceOf is a small convenience used by normalize to build the
// Descriptor payload from an ast.Variable.
func typedSpaceOf(t ast.Type, space ast.StateSpace) *TypedSpace {
	return &TypedSpace{Type: t, Space: space}
}

// TypedSpaceOf is the exported form of typedSpaceOf, used by normalize.
func TypedSpaceOf(t ast.Type, space ast.StateSpace) *TypedSpace {
	return typedSpaceOf(t, space)
}
