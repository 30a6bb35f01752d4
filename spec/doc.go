// Package spec is the data model a caller hands to the command compiler:
// CommandSpec, its Components (Positional or Option), and the validation
// rules a spec must satisfy before it can be compiled into a machine.
//
// Nothing here parses argv or builds a graph — spec only describes the
// shape of commands. Package compiler consumes it; package clierr owns
// the per-parse error taxonomy, separate from the BuildError values
// defined here.
package spec
