// Package arglex compiles a declarative set of command specifications
// into a nondeterministic finite-state machine over argument tokens, runs
// that machine against an argv, and disambiguates the surviving parses
// down to a single matched command.
//
// The module is organized as six packages, leaves first:
//
//	core/     — the node arena: static/dynamic/shortcut transition tables,
//	            addressed by stable integer IDs, plus Union (merge several
//	            sub-machines into one) and Simplify (passthrough
//	            elimination + dead-node compaction).
//	spec/     — the data model a caller hands to the compiler: CommandSpec,
//	            its Components (Positional or Option), and the shape
//	            invariants a spec must satisfy before it can compile.
//	compiler/ — turns one spec.CommandSpec into a core.Machine sub-graph,
//	            unions every registered command under one machine, and
//	            exposes CliBuilder as the package's single public entry
//	            point.
//	runner/   — advances a set of candidate States through a compiled
//	            machine one token at a time, forking on every matching
//	            transition and pruning branches with a lower keyword count
//	            as soon as a better one is found.
//	selector/ — narrows a runner's final states to one resolved command,
//	            or a clierr.Error explaining why none could be chosen.
//	clierr/   — the CommandError / Error taxonomy returned by selector.
//
// A typical caller builds a CliBuilder, registers one spec.CommandSpec per
// command, and resolves an argv:
//
//	cli := compiler.NewCliBuilder().AddCommand(cmd)
//	result, err := selector.ResolveState(cli.Run(os.Args[1:]), hydrate)
//
// compiler, runner and selector together implement the core of the
// specification this module ports; core and spec are the reusable
// substrate beneath them. Nothing here renders help or version text,
// tokenizes a raw command-line string on the caller's behalf beyond the
// compiler.Tokenize convenience wrapper, or performs any I/O — those are
// front-end concerns left outside this module's scope.
package arglex
