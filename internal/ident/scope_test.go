package ident_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/ident"
)

func TestAddProducesFreshDistinctIDs(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()

	a, err := r.Add("a", nil)
	require.NoError(t, err)
	b, err := r.Add("b", nil)
	require.NoError(t, err)

	require.NotEqual(t, a, b)

	r.StartScope()
	c, err := r.Add("c", nil)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
	require.NotEqual(t, b, c)
}

func TestAddRejectsDuplicateInSameScope(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()

	_, err := r.Add("a", nil)
	require.NoError(t, err)

	_, err = r.Add("a", nil)
	require.Error(t, err)
}

func TestEndScopeUncoversShadowedOuterBinding(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()
	outer, err := r.Add("x", nil)
	require.NoError(t, err)

	r.StartScope()
	inner, err := r.Add("x", nil)
	require.NoError(t, err)
	require.NotEqual(t, outer, inner)

	got, err := r.Get("x")
	require.NoError(t, err)
	require.Equal(t, inner, got)

	r.EndScope()

	got, err = r.Get("x")
	require.NoError(t, err)
	require.Equal(t, outer, got)
}

func TestGetFailsOnceFullyOutOfScope(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()
	_, err := r.Add("only_here", nil)
	require.NoError(t, err)
	r.EndScope()

	r.StartScope()
	_, err = r.Get("only_here")
	require.Error(t, err)
}

func TestAddOrGetInCurrentScopeUntypedCollapsesToSameID(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()

	first, err := r.AddOrGetInCurrentScopeUntyped("kernel_fn")
	require.NoError(t, err)
	second, err := r.AddOrGetInCurrentScopeUntyped("kernel_fn")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, r.Table().Len())
}

func TestGetInCurrentScopeDoesNotSeeOuterBindings(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()
	_, err := r.Add("outer_label", nil)
	require.NoError(t, err)

	r.StartScope()
	_, err = r.GetInCurrentScope("outer_label")
	require.Error(t, err)
}

func TestLabelPreHoistingResolvesForwardReference(t *testing.T) {
	r := ident.NewResolver()
	r.StartScope()

	// Simulates the label pre-pass: every label in a block is interned
	// before the main walk sees any instruction referencing it.
	loopLabel, err := r.Add("loop", nil)
	require.NoError(t, err)

	// A branch earlier in the statement stream than the label's own
	// declaration must resolve to the same id.
	got, err := r.GetInCurrentScope("loop")
	require.NoError(t, err)
	require.Equal(t, loopLabel, got)
}
