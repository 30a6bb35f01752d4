package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arglex/arglex/core"
)

// TestSimplifyElidesPassthroughAndDeadNodes builds a tiny machine with one
// passthrough node (a node whose only edge is an unconditional shortcut)
// and one node no transition ever targets, then checks Simplify collapses
// the passthrough into its target and drops the dead node entirely.
func TestSimplifyElidesPassthroughAndDeadNodes(t *testing.T) {
	m := core.NewMachine[string, int](0)

	a := m.CreateNode() // reachable, carries the real static edge
	b := m.CreateNode() // passthrough: single shortcut to SuccessNode
	_ = m.CreateNode()  // dead: nothing ever points at it

	m.RegisterStatic(core.InitialNode, core.StartOfInput(), a, 0)
	m.RegisterStatic(a, core.User("x"), b, 0)
	m.RegisterShortcut(b, core.SuccessNode)

	out := core.Simplify[string, int](m)

	require.Len(t, out.Nodes, int(core.FirstUserNode)+1, "only node a should survive")

	aNew := out.Nodes[core.InitialNode].Statics[core.StartOfInput()][0].To
	require.Equal(t, core.SuccessNode, out.Nodes[aNew].Statics[core.User("x")][0].To)
}

// TestSimplifyResolvesPassthroughChains checks that a chain of several
// passthrough nodes collapses to the final non-passthrough target in one
// pass.
func TestSimplifyResolvesPassthroughChains(t *testing.T) {
	m := core.NewMachine[string, int](0)

	a := m.CreateNode()
	p1 := m.CreateNode()
	p2 := m.CreateNode()

	m.RegisterStatic(core.InitialNode, core.StartOfInput(), a, 0)
	m.RegisterStatic(a, core.User("x"), p1, 0)
	m.RegisterShortcut(p1, p2)
	m.RegisterShortcut(p2, core.ErrorNode)

	out := core.Simplify[string, int](m)

	aNew := out.Nodes[core.InitialNode].Statics[core.StartOfInput()][0].To
	require.Equal(t, core.ErrorNode, out.Nodes[aNew].Statics[core.User("x")][0].To)
}

func TestSimplifyNeverRemovesReservedNodes(t *testing.T) {
	m := core.NewMachine[string, int](0)

	out := core.Simplify[string, int](m)

	require.True(t, out.Nodes != nil)
	require.GreaterOrEqual(t, len(out.Nodes), int(core.FirstUserNode))
}
