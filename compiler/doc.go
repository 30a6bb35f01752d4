// Package compiler turns a spec.CommandSpec into a compiled core.Machine
// and drives it through package runner, producing a selector.Selector
// that resolves to a command or a clierr.Error. It is the concrete Predicate/Reducer implementation the
// generic core/runner packages are parameterized over.
package compiler
