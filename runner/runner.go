// File: runner.go
// Role: advances a set of candidate States through a compiled machine,
// one token at a time, forking on every matching transition and
// resolving shortcut closures with a color counter to avoid infinite
// loops on shortcut cycles.

package runner

import "github.com/arglex/arglex/core"

// Fallback is invoked whenever a state has no matching static or dynamic
// transition for the current token. It must return a new state; Run keeps
// the result exactly as returned, so a fallback is itself responsible for
// moving the state to core.ErrorNode (as DefaultFallback does).
type Fallback func(s State, token string) State

// DefaultFallback preserves all accumulated state and moves it to
// core.ErrorNode, the behavior every entry point in package compiler
// uses: the runner never raises errors itself, it only routes unmatched
// tokens to ERROR for the selector to diagnose later. The unmatched token
// itself is recorded on the state so the selector can classify it.
func DefaultFallback(s State, token string) State {
	if token != "" && s.NodeID != core.ErrorNode {
		s.UnmatchedToken = token
	}
	s.NodeID = core.ErrorNode
	return s
}

type engine[C Predicate, R Reducer] struct {
	machine  *core.Machine[C, R]
	fallback Fallback

	states     []State
	next       []State
	seen       map[signature]bool
	nodeColors []int
	color      int
}

func newEngine[C Predicate, R Reducer](m *core.Machine[C, R], fallback Fallback) *engine[C, R] {
	return &engine[C, R]{
		machine:    m,
		fallback:   fallback,
		nodeColors: make([]int, len(m.Nodes)),
	}
}

func (e *engine[C, R]) resetNext() {
	e.next = nil
	e.seen = make(map[signature]bool)
}

func (e *engine[C, R]) insertNext(s State) {
	sig := s.signature()
	if e.seen[sig] {
		return
	}
	e.seen[sig] = true
	e.next = append(e.next, s)
}

// transitionTo forks from.clone(), applies the reducer (on sentinel edges
// too, e.g. EnableHelp on EndOfInput) and lands it at transition's
// target, then recursively follows
// every shortcut reachable from the target that the current color hasn't
// already visited.
func (e *engine[C, R]) transitionTo(from State, to core.NodeID, reducer R, token string, isUser bool) {
	e.color++
	e.transitionToColor(from, to, reducer, token, isUser, e.color)
}

func (e *engine[C, R]) transitionToColor(from State, to core.NodeID, reducer R, token string, isUser bool, color int) {
	next := from.clone()
	reducer.Apply(&next, token)
	next.NodeID = to

	e.nodeColors[to] = color

	target := &e.machine.Nodes[to]
	for _, shortcut := range target.Shortcuts {
		if e.nodeColors[shortcut.To] != color {
			e.transitionToColor(next, shortcut.To, shortcut.Reducer, token, isUser, color)
		}
	}

	e.insertNext(next)
}

// update advances every current state by one token, then keeps only the
// states tied for the highest keyword count. States that landed on
// core.ErrorNode via the fallback stay in the pool (ErrorNode has no
// outgoing transitions, so they never progress further) so that Run can
// still report them after the final EndOfInput step; RunPartial strips
// them explicitly once the loop over argv is done.
func (e *engine[C, R]) update(key core.TokenKey, raw string) {
	current := e.states
	e.resetNext()

	isUser := key.IsUser()

	for _, s := range current {
		node := &e.machine.Nodes[s.NodeID]
		transitioned := false

		for _, t := range node.Statics[key] {
			e.transitionTo(s, t.To, t.Reducer, raw, isUser)
			transitioned = true
		}

		if isUser {
			for _, d := range node.Dynamics {
				if d.Predicate.Check(&s, raw) {
					e.transitionTo(s, d.Transition.To, d.Transition.Reducer, raw, true)
					transitioned = true
				}
			}
		}

		if !transitioned {
			e.insertNext(e.fallback(s, raw))
		}
	}

	maxKeywords := -1
	for _, s := range e.next {
		if s.KeywordCount > maxKeywords {
			maxKeywords = s.KeywordCount
		}
	}
	pruned := e.next[:0]
	for _, s := range e.next {
		if s.KeywordCount == maxKeywords {
			pruned = append(pruned, s)
		}
	}

	e.states = pruned
}

func (e *engine[C, R]) seedInitial() {
	e.resetNext()
	initial := &e.machine.Nodes[core.InitialNode]
	for _, shortcut := range initial.Shortcuts {
		e.transitionTo(State{}, shortcut.To, shortcut.Reducer, "", false)
	}
	e.states = e.next
}

// Run feeds argv through m, injecting StartOfInput before the first
// token and EndOfInput after the last, and returns every resulting
// state including those that ended at core.ErrorNode.
func Run[C Predicate, R Reducer](m *core.Machine[C, R], fallback Fallback, argv []string) []State {
	e := newEngine(m, fallback)
	e.seedInitial()

	e.update(core.StartOfInput(), "")
	for i := range e.states {
		e.states[i].ContextID = m.Nodes[e.states[i].NodeID].Context
	}

	for _, tok := range argv {
		e.update(core.User(tok), tok)
	}
	e.update(core.EndOfInput(), "")

	return e.states
}

// RunPartial feeds argv through m without injecting EndOfInput, and
// drops every state that ended at core.ErrorNode — used by callers
// reasoning about prefixes (e.g. shell completion).
func RunPartial[C Predicate, R Reducer](m *core.Machine[C, R], fallback Fallback, argv []string) []State {
	e := newEngine(m, fallback)
	e.seedInitial()

	e.update(core.StartOfInput(), "")
	for i := range e.states {
		e.states[i].ContextID = m.Nodes[e.states[i].NodeID].Context
	}

	for _, tok := range argv {
		e.update(core.User(tok), tok)
	}

	out := e.states[:0]
	for _, s := range e.states {
		if s.NodeID != core.ErrorNode {
			out = append(out, s)
		}
	}
	return out
}
