package selector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arglex/arglex/clierr"
	"github.com/arglex/arglex/core"
	"github.com/arglex/arglex/runner"
	"github.com/arglex/arglex/selector"
	"github.com/arglex/arglex/spec"
)

func okHydrate(_ *runner.State) (struct{}, *clierr.CommandError) { return struct{}{}, nil }

func TestResolveStateHelpShortCircuits(t *testing.T) {
	cmd := &spec.CommandSpec{}
	states := []runner.State{{ContextID: 0, NodeID: core.SuccessNode, IsHelp: true}}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{"--help"}, states)
	result, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.Nil(t, err)
	require.Equal(t, selector.ResultBuiltin, result.Kind)
	require.Equal(t, selector.BuiltinHelp, result.Builtin.Kind)
	require.Len(t, result.Builtin.Commands, 1)
}

func TestResolveStatePicksUniqueSuccess(t *testing.T) {
	cmd := &spec.CommandSpec{}
	states := []runner.State{
		{ContextID: 0, NodeID: core.ErrorNode},
		{ContextID: 0, NodeID: core.SuccessNode},
	}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{"x"}, states)
	result, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.Nil(t, err)
	require.Equal(t, selector.ResultCommand, result.Kind)
	require.Equal(t, core.SuccessNode, result.State.NodeID)
}

func TestResolveStateAllUnsuccessfulYieldsNotFound(t *testing.T) {
	cmd1 := &spec.CommandSpec{}
	cmd2 := &spec.CommandSpec{}
	states := []runner.State{
		{ContextID: 0, NodeID: core.ErrorNode},
		{ContextID: 1, NodeID: core.ErrorNode},
	}

	sel := selector.New([]*spec.CommandSpec{cmd1, cmd2}, []string{"x"}, states)
	_, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.NotNil(t, err)
	require.Equal(t, clierr.KindNotFound, err.Kind)
}

func TestResolveStateFavorsGreedierEarlierPositional(t *testing.T) {
	cmd := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Optional()),
			spec.PositionalComponent(spec.Rest()),
		},
	}

	greedy := runner.State{
		ContextID: 0,
		NodeID:    core.SuccessNode,
		PositionalValues: []runner.IndexedValues{
			{Index: 0, Values: []string{"foo"}},
			{Index: 1, Values: []string{"bar", "baz"}},
		},
	}
	lazy := runner.State{
		ContextID: 0,
		NodeID:    core.SuccessNode,
		PositionalValues: []runner.IndexedValues{
			{Index: 1, Values: []string{"foo", "bar", "baz"}},
		},
	}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{"foo", "bar", "baz"}, []runner.State{greedy, lazy})
	result, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.Nil(t, err)
	require.Equal(t, selector.ResultCommand, result.Kind)
	require.Equal(t, []string{"foo"}, result.State.PositionalValues[0].Values)
}

func TestResolveStateAllUnsuccessfulDiagnosesUnknownOption(t *testing.T) {
	cmd := &spec.CommandSpec{
		Components: []spec.Component{
			spec.OptionComponent(spec.Boolean("--force")),
		},
	}
	states := []runner.State{
		{ContextID: 0, NodeID: core.ErrorNode, UnmatchedToken: "--bogus"},
	}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{"--bogus"}, states)
	_, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.NotNil(t, err)
	require.Equal(t, clierr.KindNotFound, err.Kind)
	require.NotNil(t, err.Cause)
	require.Equal(t, clierr.KindUnknownOption, err.Cause.Kind)
	require.Contains(t, err.Error(), "--bogus")
}

func TestResolveStateAllUnsuccessfulDiagnosesMissingPositional(t *testing.T) {
	cmd := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Required()),
		},
	}
	states := []runner.State{
		{ContextID: 0, NodeID: core.ErrorNode},
	}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{}, states)
	_, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.NotNil(t, err)
	require.Equal(t, clierr.KindNotFound, err.Kind)
	require.NotNil(t, err.Cause)
	require.Equal(t, clierr.KindMissingPositionalArguments, err.Cause.Kind)
}

func TestResolveStateAllUnsuccessfulDiagnosesExtraneousPositional(t *testing.T) {
	cmd := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Required()),
		},
	}
	states := []runner.State{
		{
			ContextID: 0,
			NodeID:    core.ErrorNode,
			PositionalValues: []runner.IndexedValues{
				{Index: 0, Values: []string{"foo"}},
			},
			UnmatchedToken: "extra",
		},
	}

	sel := selector.New([]*spec.CommandSpec{cmd}, []string{"foo", "extra"}, states)
	_, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.NotNil(t, err)
	require.Equal(t, clierr.KindNotFound, err.Kind)
	require.NotNil(t, err.Cause)
	require.Equal(t, clierr.KindExtraneousPositionalArguments, err.Cause.Kind)
}

func TestResolveStateAmbiguousAcrossCommands(t *testing.T) {
	cmd1 := &spec.CommandSpec{}
	cmd2 := &spec.CommandSpec{}
	states := []runner.State{
		{ContextID: 0, NodeID: core.SuccessNode},
		{ContextID: 1, NodeID: core.SuccessNode},
	}

	sel := selector.New([]*spec.CommandSpec{cmd1, cmd2}, []string{"x"}, states)
	_, err := selector.ResolveState[struct{}](sel, okHydrate)

	require.NotNil(t, err)
	require.Equal(t, clierr.KindAmbiguousSyntax, err.Kind)
	require.Len(t, err.Specs, 2)
}
