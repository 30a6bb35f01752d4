// File: selector.go
// Role: narrows a runner's final states to one resolved command.

package selector

import (
	"sort"
	"strings"

	"github.com/arglex/arglex/clierr"
	"github.com/arglex/arglex/core"
	"github.com/arglex/arglex/runner"
	"github.com/arglex/arglex/spec"
)

// ResultKind distinguishes the two SelectionResult shapes.
type ResultKind uint8

const (
	ResultBuiltin ResultKind = iota
	ResultCommand
)

// SelectionResult is the outcome of a successful resolution: either a
// built-in short-circuit, or a single command together with its matched
// state and the caller's hydrated value.
type SelectionResult[T any] struct {
	Kind    ResultKind
	Builtin BuiltinCommand

	Command *spec.CommandSpec
	State   runner.State
	Value   T
}

// Hydrate converts a matched State into a caller-defined typed value,
// failing with a CommandError when the state doesn't satisfy validation
// the compiled machine itself couldn't express (e.g. cross-option
// constraints).
type Hydrate[T any] func(s *runner.State) (T, *clierr.CommandError)

// Selector holds every candidate state produced by a parse and narrows it
// down to one command.
type Selector struct {
	commands []*spec.CommandSpec
	argv     []string
	states   []runner.State

	candidates []int
}

// New builds a Selector over the full state set a parse produced.
func New(commands []*spec.CommandSpec, argv []string, states []runner.State) *Selector {
	candidates := make([]int, len(states))
	for i := range states {
		candidates[i] = i
	}
	return &Selector{commands: commands, argv: argv, states: states, candidates: candidates}
}

func isBuiltinArgv(argv []string, flags ...string) bool {
	if len(argv) != 1 {
		return false
	}
	for _, f := range flags {
		if argv[0] == f {
			return true
		}
	}
	return false
}

func (s *Selector) pruneUnsuccessfulNodes() *clierr.Error {
	owned := s.candidates
	s.candidates = nil

	var successful []int
	for _, id := range owned {
		if s.states[id].NodeID == core.SuccessNode {
			successful = append(successful, id)
		}
	}

	if len(successful) == 0 {
		return s.handleEverythingIsAnError()
	}

	s.candidates = successful
	return nil
}

func (s *Selector) pruneByKeywordCount() {
	maxCount := -1
	for _, id := range s.candidates {
		if s.states[id].KeywordCount > maxCount {
			maxCount = s.states[id].KeywordCount
		}
	}
	if maxCount < 0 {
		return
	}

	kept := s.candidates[:0]
	for _, id := range s.candidates {
		if s.states[id].KeywordCount == maxCount {
			kept = append(kept, id)
		}
	}
	s.candidates = kept
}

func hasOptionValue(state *runner.State, componentIndex int) bool {
	for _, ov := range state.OptionValues {
		if ov.Index == componentIndex {
			return true
		}
	}
	return false
}

func (s *Selector) pruneMissingRequiredOptions() *clierr.Error {
	owned := s.candidates
	s.candidates = nil

	type withMissing struct {
		id      int
		missing []int
	}

	var ok []withMissing
	var bad []withMissing

	for _, id := range owned {
		state := &s.states[id]
		command := s.commands[state.ContextID]

		var missing []int
		for _, optionID := range command.RequiredOptions {
			if !hasOptionValue(state, optionID) {
				missing = append(missing, optionID)
			}
		}

		if len(missing) == 0 {
			ok = append(ok, withMissing{id: id})
		} else {
			bad = append(bad, withMissing{id: id, missing: missing})
		}
	}

	if len(ok) == 0 {
		if len(bad) == 1 {
			commandSpec := s.commands[s.states[bad[0].id].ContextID]

			names := make([]string, 0, len(bad[0].missing))
			for _, idx := range bad[0].missing {
				names = append(names, commandSpec.Components[idx].Option.PrimaryName)
			}

			return clierr.CommandErr(commandSpec, clierr.MissingOptionArguments(strings.Join(names, ", ")))
		}

		specs := make([]*spec.CommandSpec, 0, len(bad))
		for _, wm := range bad {
			specs = append(specs, s.commands[s.states[wm.id].ContextID])
		}
		return clierr.AmbiguousSyntax(specs)
	}

	s.candidates = make([]int, 0, len(ok))
	for _, wm := range ok {
		s.candidates = append(s.candidates, wm.id)
	}
	return nil
}

type hydrationFailure struct {
	id  int
	err *clierr.CommandError
}

func pruneByHydrationResults[T any](s *Selector, failures []hydrationFailure) *clierr.Error {
	failed := make(map[int]bool, len(failures))
	for _, f := range failures {
		failed[f.id] = true
	}

	kept := s.candidates[:0]
	for _, id := range s.candidates {
		if !failed[id] {
			kept = append(kept, id)
		}
	}
	s.candidates = kept

	if len(s.candidates) == 0 {
		if len(failures) == 1 {
			commandSpec := s.commands[s.states[failures[0].id].ContextID]
			return clierr.CommandErr(commandSpec, failures[0].err)
		}

		specs := make([]*spec.CommandSpec, 0, len(failures))
		for _, f := range failures {
			specs = append(specs, s.commands[s.states[f.id].ContextID])
		}
		return clierr.NotFound(specs)
	}

	return nil
}

// pruneByGreediness favors, among states of the same command, the parse
// that feeds the earliest positional groups: a sort key of
// (wrapping-negated index, value count) per positional entry makes lower
// indices and higher counts sort first, then only the first candidate
// per distinct context id survives.
func (s *Selector) pruneByGreediness() {
	owned := s.candidates
	s.candidates = nil

	type track struct {
		id   int
		keys [][2]int
	}

	tracks := make([]track, 0, len(owned))
	for _, id := range owned {
		pv := s.states[id].PositionalValues
		keys := make([][2]int, len(pv))
		for i, iv := range pv {
			keys[i] = [2]int{wrappingNegSub1(iv.Index), len(iv.Values)}
		}
		tracks = append(tracks, track{id: id, keys: keys})
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i].keys, tracks[j].keys
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k][0] > b[k][0] || (a[k][0] == b[k][0] && a[k][1] > b[k][1])
			}
		}
		return len(a) > len(b)
	})

	seen := make(map[int]bool, len(s.commands))
	kept := make([]int, 0, len(tracks))
	for _, t := range tracks {
		contextID := s.states[t.id].ContextID
		if seen[contextID] {
			continue
		}
		seen[contextID] = true
		kept = append(kept, t.id)
	}

	s.candidates = kept
}

// wrappingNegSub1 produces a sort key where lower component indices sort
// higher: for signed int indices that's simply negation.
func wrappingNegSub1(idx int) int { return -idx }

// pruneByUnusedPositionals keeps only the candidates tied for the fewest
// declared positional components that received no values at all.
func (s *Selector) pruneByUnusedPositionals() {
	unusedCount := func(id int) int {
		state := &s.states[id]
		command := s.commands[state.ContextID]

		total := 0
		for _, comp := range command.Components {
			if comp.Kind != spec.ComponentPositional {
				continue
			}
			total++
		}

		used := 0
		for _, iv := range state.PositionalValues {
			if len(iv.Values) > 0 {
				used++
			}
		}
		if used > total {
			used = total
		}
		return total - used
	}

	minUnused := -1
	for _, id := range s.candidates {
		u := unusedCount(id)
		if minUnused < 0 || u < minUnused {
			minUnused = u
		}
	}

	kept := s.candidates[:0]
	for _, id := range s.candidates {
		if unusedCount(id) == minUnused {
			kept = append(kept, id)
		}
	}
	s.candidates = kept
}

func (s *Selector) handleEverythingIsAnError() *clierr.Error {
	s.candidates = make([]int, len(s.states))
	for i := range s.states {
		s.candidates[i] = i
	}

	s.pruneByKeywordCount()
	s.pruneByGreediness()

	seen := make(map[int]bool)
	var order []int
	for _, id := range s.candidates {
		ctx := s.states[id].ContextID
		if !seen[ctx] {
			seen[ctx] = true
			order = append(order, ctx)
		}
	}

	specs := make([]*spec.CommandSpec, len(order))
	for i, ctx := range order {
		specs[i] = s.commands[ctx]
	}

	err := clierr.NotFound(specs)
	err.Cause = s.diagnoseFailure()
	return err
}

// diagnoseFailure inspects the best-ranked surviving candidate and tries,
// in order, to explain why it failed: a positional group that never
// received enough values, an unmatched token shaped like an option, or
// (what's left over) an ordinary token no positional group could absorb.
// Returns nil when none of these applies, leaving the caller with the bare
// "no match" outcome.
func (s *Selector) diagnoseFailure() *clierr.CommandError {
	if len(s.candidates) == 0 {
		return nil
	}

	state := s.states[s.candidates[0]]
	command := s.commands[state.ContextID]

	if cause := diagnosePositionalArity(&state, command); cause != nil {
		return cause
	}

	if state.UnmatchedToken == "" {
		return nil
	}

	var known []string
	for _, comp := range command.Components {
		if comp.Kind != spec.ComponentOption {
			continue
		}
		known = append(known, comp.Option.PrimaryName)
		known = append(known, comp.Option.Aliases...)
	}

	if cause := clierr.ClassifyOptionToken(state.UnmatchedToken, known); cause != nil {
		return cause
	}

	return clierr.ExtraneousPositionalArguments()
}

// diagnosePositionalArity reports a KindMissingPositionalArguments error
// when some dynamic positional component never reached its declared
// minimum number of values.
func diagnosePositionalArity(state *runner.State, command *spec.CommandSpec) *clierr.CommandError {
	for i, comp := range command.Components {
		if comp.Kind != spec.ComponentPositional || comp.Positional.Kind != spec.PositionalDynamic {
			continue
		}

		filled := 0
		for _, iv := range state.PositionalValues {
			if iv.Index == i {
				filled = len(iv.Values)
				break
			}
		}

		if filled < comp.Positional.MinLen {
			return clierr.MissingPositionalArguments()
		}
	}
	return nil
}

// ResolveState runs the full resolution pipeline (help and built-in
// short-circuits, then pruning by success, required options, hydration,
// keyword count, greediness and unused positionals) and returns the single matched command (hydrated through f), a
// built-in short-circuit, or an *clierr.Error explaining why no single
// candidate could be chosen.
func ResolveState[T any](s *Selector, f Hydrate[T]) (SelectionResult[T], *clierr.Error) {
	var helpContexts []int
	seenHelp := make(map[int]bool)
	for _, state := range s.states {
		if state.IsHelp && !seenHelp[state.ContextID] {
			seenHelp[state.ContextID] = true
			helpContexts = append(helpContexts, state.ContextID)
		}
	}
	if len(helpContexts) > 0 {
		specs := make([]*spec.CommandSpec, len(helpContexts))
		for i, ctx := range helpContexts {
			specs[i] = s.commands[ctx]
		}
		return SelectionResult[T]{Kind: ResultBuiltin, Builtin: Help(specs)}, nil
	}

	if isBuiltinArgv(s.argv, "--version") {
		return SelectionResult[T]{Kind: ResultBuiltin, Builtin: Version()}, nil
	}
	if isBuiltinArgv(s.argv, "--help", "-h") {
		return SelectionResult[T]{Kind: ResultBuiltin, Builtin: Help(nil)}, nil
	}

	if err := s.pruneUnsuccessfulNodes(); err != nil {
		return SelectionResult[T]{}, err
	}
	if err := s.pruneMissingRequiredOptions(); err != nil {
		return SelectionResult[T]{}, err
	}

	var values []T
	var okIDs []int
	var failures []hydrationFailure
	for _, id := range s.candidates {
		v, cerr := f(&s.states[id])
		if cerr != nil {
			failures = append(failures, hydrationFailure{id: id, err: cerr})
			continue
		}
		okIDs = append(okIDs, id)
		values = append(values, v)
	}

	if err := pruneByHydrationResults[T](s, failures); err != nil {
		return SelectionResult[T]{}, err
	}

	s.pruneByKeywordCount()
	s.pruneByGreediness()
	s.pruneByUnusedPositionals()

	if len(s.candidates) > 1 {
		seen := make(map[int]bool)
		var specs []*spec.CommandSpec
		for _, id := range s.candidates {
			ctx := s.states[id].ContextID
			if !seen[ctx] {
				seen[ctx] = true
				specs = append(specs, s.commands[ctx])
			}
		}
		return SelectionResult[T]{}, clierr.AmbiguousSyntax(specs)
	}

	index := s.candidates[0]
	command := s.commands[s.states[index].ContextID]

	var value T
	for i, id := range okIDs {
		if id == index {
			value = values[i]
			break
		}
	}

	return SelectionResult[T]{
		Kind:    ResultCommand,
		Command: command,
		State:   s.states[index],
		Value:   value,
	}, nil
}
