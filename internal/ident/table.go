// Package ident implements the identifier table and scoped resolver: the
// pass-independent core that assigns stable, numbered identifiers to every
// PTX symbol and tracks PTX's lexical scoping rules. It corresponds to C1
// (identifier table) and C2 (scoped resolver) of the translator design.
package ident

import "github.com/ptxamd/ptx2llvm/internal/ast"

// ID is an opaque, totally-ordered numbered identifier. Two IDs are equal
// iff they denote the same resolved symbol. IDs are assigned starting at 1
// and are stable across every later pass.
type ID int

// TypedSpace pairs a variable's PTX type with the state space it lives in.
// Once recorded in the table it is immutable for that identifier's lifetime.
type TypedSpace struct {
	Type  ast.Type
	Space ast.StateSpace
}

// Descriptor is everything the identifier table remembers about an ID: its
// optional source name, and, for variables, its PTX type and state space.
// Labels and function names carry a nil TypedSpace.
type Descriptor struct {
	Name  *string
	Typed *TypedSpace
}

// Table is the single append-only store backing every identifier minted
// during translation. It never shrinks and ids are stable across all passes.
type Table struct {
	entries []Descriptor // index 0 unused; ids start at 1
}

// NewTable creates an empty identifier table.
func NewTable() *Table {
	return &Table{entries: make([]Descriptor, 1)}
}

// alloc appends a fresh descriptor and returns its id.
func (t *Table) alloc(desc Descriptor) ID {
	t.entries = append(t.entries, desc)
	return ID(len(t.entries) - 1)
}

// Get returns the descriptor for id. It panics if id was never allocated by
// this table, since that would violate the core's identifier-freshness
// invariant.
func (t *Table) Get(id ID) Descriptor {
	if int(id) <= 0 || int(id) >= len(t.entries) {
		panic("ident: id not allocated by this table")
	}
	return t.entries[id]
}

// Len reports how many identifiers have been allocated.
func (t *Table) Len() int {
	return len(t.entries) - 1
}
