package spec

import "strings"

// ComponentKind distinguishes the two Component shapes.
type ComponentKind uint8

const (
	ComponentPositional ComponentKind = iota
	ComponentOption
)

// Component is one entry of a CommandSpec's declaration order, either a
// positional or an option. Its index within CommandSpec.Components is the
// stable identifier recorded in match results (positional_values /
// option_values in the runner's State).
type Component struct {
	Kind       ComponentKind
	Positional PositionalSpec
	Option     OptionSpec
}

// PositionalComponent wraps a PositionalSpec as a Component.
func PositionalComponent(p PositionalSpec) Component {
	return Component{Kind: ComponentPositional, Positional: p}
}

// OptionComponent wraps an OptionSpec as a Component.
func OptionComponent(o OptionSpec) Component {
	return Component{Kind: ComponentOption, Option: o}
}

func (c Component) String() string {
	if c.Kind == ComponentPositional {
		return c.Positional.String()
	}
	return c.Option.String()
}

// CommandSpec is a declarative description of one command: the paths
// that select it, its ordered components, and which option components
// must be present in any valid parse.
type CommandSpec struct {
	Category    string
	Description string
	Details     string

	// Paths is an ordered list of path-segment sequences; multiple
	// aliases for the same command are permitted. An empty Paths (or a
	// Paths containing only the empty segment sequence) means "default
	// command".
	Paths [][]string

	Components []Component

	// RequiredOptions holds indices into Components identifying options
	// that must appear in any valid parse.
	RequiredOptions []int
}

// IsDefault reports whether this command has no non-empty path, i.e. it
// matches when no path segment is consumed at all.
func (c *CommandSpec) IsDefault() bool {
	if len(c.Paths) == 0 {
		return true
	}
	for _, p := range c.Paths {
		if len(p) != 0 {
			return false
		}
	}
	return true
}

// LongestPath returns the longest declared path, used to render the
// command's canonical usage line.
func (c *CommandSpec) LongestPath() []string {
	var longest []string
	for _, p := range c.Paths {
		if len(p) > len(longest) {
			longest = p
		}
	}
	return longest
}

// Usage renders a human-readable summary of this command's shape: its
// prefix positionals, its longest path, then its remaining components in
// declaration order.
func (c *CommandSpec) Usage() string {
	var prefix, suffix []string

	for _, comp := range c.Components {
		if comp.Kind == ComponentPositional && comp.Positional.Kind == PositionalDynamic && comp.Positional.IsPrefix {
			prefix = append(prefix, comp.String())
		} else {
			suffix = append(suffix, comp.String())
		}
	}

	parts := append([]string{}, prefix...)
	parts = append(parts, c.LongestPath()...)
	parts = append(parts, suffix...)

	return strings.Join(parts, " ")
}
