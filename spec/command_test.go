package spec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arglex/arglex/spec"
)

func TestIsDefault(t *testing.T) {
	c := &spec.CommandSpec{}
	require.True(t, c.IsDefault())

	c.Paths = [][]string{{"foo"}}
	require.False(t, c.IsDefault())
}

func TestLongestPath(t *testing.T) {
	c := &spec.CommandSpec{Paths: [][]string{{"a"}, {"a", "b", "c"}, {"x", "y"}}}
	require.Equal(t, []string{"a", "b", "c"}, c.LongestPath())
}

func TestValidateRejectsMultipleRestParameters(t *testing.T) {
	c := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Rest()),
			spec.PositionalComponent(spec.Rest()),
		},
	}
	require.ErrorIs(t, c.Validate(), spec.ErrMultipleRestParameters)
}

func TestValidateRejectsOptionalAfterRest(t *testing.T) {
	c := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Rest()),
			spec.PositionalComponent(spec.Optional()),
		},
	}
	require.ErrorIs(t, c.Validate(), spec.ErrOptionalParametersAfterRest)
}

func TestValidateAcceptsRequiredThenRest(t *testing.T) {
	c := &spec.CommandSpec{
		Components: []spec.Component{
			spec.PositionalComponent(spec.Required()),
			spec.PositionalComponent(spec.Rest()),
		},
	}
	require.NoError(t, c.Validate())
}

func TestUsageJoinsPrefixPathAndSuffix(t *testing.T) {
	c := &spec.CommandSpec{
		Paths: [][]string{{"run"}},
		Components: []spec.Component{
			spec.OptionComponent(spec.Boolean("--verbose")),
			spec.PositionalComponent(spec.Required()),
		},
	}
	require.Equal(t, "run <--verbose> <>", c.Usage())
}
