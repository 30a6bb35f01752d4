package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arglex/arglex/core"
)

// testMachine aliases a Machine with simple stand-in C/R types so tests
// don't need the real compiler.Check/compiler.Reducer types.
type testMachine = core.Machine[string, int]

func TestNewMachineHasReservedNodes(t *testing.T) {
	m := core.NewMachine[string, int](7)

	require.Equal(t, []int{7}, m.Contexts)
	require.Len(t, m.Nodes, int(core.FirstUserNode))
}

func TestCreateNodeAssignsIncreasingIDs(t *testing.T) {
	m := core.NewMachine[string, int](0)

	first := m.CreateNode()
	second := m.CreateNode()

	require.Equal(t, core.FirstUserNode, first)
	require.Equal(t, core.FirstUserNode+1, second)
}

func TestRegisterStaticAppendsUnderKey(t *testing.T) {
	m := core.NewMachine[string, int](0)
	a := m.CreateNode()
	b := m.CreateNode()

	m.RegisterStatic(a, core.User("add"), b, 1)
	m.RegisterStatic(a, core.User("add"), core.SuccessNode, 2)

	got := m.Nodes[a].Statics[core.User("add")]
	require.Len(t, got, 2)
	require.Equal(t, b, got[0].To)
	require.Equal(t, core.SuccessNode, got[1].To)
}

func TestRegisterShortcutUsesZeroReducer(t *testing.T) {
	m := core.NewMachine[string, int](0)
	a := m.CreateNode()

	m.RegisterShortcut(a, core.SuccessNode)

	require.Len(t, m.Nodes[a].Shortcuts, 1)
	require.Equal(t, 0, m.Nodes[a].Shortcuts[0].Reducer)
}

// TestUnionRebasesSubMachines checks that Union assigns each sub-machine
// its own contiguous block of node IDs, wires InitialNode to each
// sub-machine's relocated INITIAL via a shortcut, and rewrites every
// internal target so the sub-machine's own shape survives the merge.
func TestUnionRebasesSubMachines(t *testing.T) {
	sub1 := core.NewMachine[string, int](10)
	n1 := sub1.CreateNode() // FirstUserNode in sub1
	sub1.RegisterStatic(core.InitialNode, core.StartOfInput(), n1, 0)
	sub1.RegisterStatic(n1, core.User("add"), core.SuccessNode, 1)

	sub2 := core.NewMachine[string, int](20)
	n2 := sub2.CreateNode()
	sub2.RegisterStatic(core.InitialNode, core.StartOfInput(), n2, 0)
	sub2.RegisterStatic(n2, core.User("rm"), core.ErrorNode, 2)

	merged := core.Union([]*testMachine{sub1, sub2})

	require.Equal(t, []int{10, 20}, merged.Contexts)
	require.Len(t, merged.Nodes[core.InitialNode].Shortcuts, 2)

	sub1Initial := merged.Nodes[core.InitialNode].Shortcuts[0].To
	sub2Initial := merged.Nodes[core.InitialNode].Shortcuts[1].To
	require.NotEqual(t, sub1Initial, sub2Initial)

	sub1Next := merged.Nodes[sub1Initial].Statics[core.StartOfInput()][0].To
	require.Equal(t, core.SuccessNode, merged.Nodes[sub1Next].Statics[core.User("add")][0].To)

	sub2Next := merged.Nodes[sub2Initial].Statics[core.StartOfInput()][0].To
	require.Equal(t, core.ErrorNode, merged.Nodes[sub2Next].Statics[core.User("rm")][0].To)
}
