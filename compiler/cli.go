// File: cli.go
// Role: the public entry point — register commands, compile them into one
// machine, and run argv through it down to a Selector.

package compiler

import (
	"github.com/arglex/arglex/core"
	"github.com/arglex/arglex/runner"
	"github.com/arglex/arglex/selector"
	"github.com/arglex/arglex/spec"
)

// CliBuilder accumulates command specifications and compiles them into a
// single machine shared by every parse.
type CliBuilder struct {
	commands []*spec.CommandSpec
	fallback runner.Fallback
}

// CliBuilderOption configures a CliBuilder at construction time.
type CliBuilderOption func(*CliBuilder)

// WithFallback overrides the fallback runner.Run invokes when a state has
// no matching transition for the current token. Defaults to
// runner.DefaultFallback, which moves the state to core.ErrorNode and
// otherwise preserves it; a caller wanting to attach diagnostic context
// to the unmatched token can do so here instead of post-processing every
// ERROR state by hand.
func WithFallback(fallback runner.Fallback) CliBuilderOption {
	return func(b *CliBuilder) { b.fallback = fallback }
}

// NewCliBuilder returns an empty builder.
func NewCliBuilder(opts ...CliBuilderOption) *CliBuilder {
	b := &CliBuilder{fallback: runner.DefaultFallback}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddCommand registers one command and returns the builder for chaining.
func (b *CliBuilder) AddCommand(cmd *spec.CommandSpec) *CliBuilder {
	b.commands = append(b.commands, cmd)
	return b
}

// Compile builds every registered command's sub-machine, unions them
// under shared terminals, and simplifies the result.
func (b *CliBuilder) Compile() *Machine {
	subMachines := make([]*Machine, len(b.commands))
	for i, cmd := range b.commands {
		subMachines[i] = newCommandBuilder(cmd, i).build()
	}

	return core.Simplify(core.Union(subMachines))
}

// Run compiles the registered commands (callers that parse repeatedly
// should call Compile once and reuse the machine instead) and feeds argv
// through it, returning a Selector ready for ResolveState.
func (b *CliBuilder) Run(argv []string) *selector.Selector {
	machine := b.Compile()
	states := runner.Run[Check, Reducer](machine, b.fallback, argv)
	return selector.New(b.commands, argv, states)
}
