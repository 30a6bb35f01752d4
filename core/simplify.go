// File: simplify.go
// Role: machine minimization — passthrough elimination followed by
// dead-node compaction, via a queue-and-visited-set walker generalized
// from string vertex IDs to NodeID.

package core

// Simplify returns a minimized copy of m: nodes that do nothing but
// forward through a single unconditional shortcut are eliminated, and any
// node no longer reachable from InitialNode is dropped, with every
// surviving NodeID remapped to a dense range starting at FirstUserNode.
//
// Reserved nodes (InitialNode, SuccessNode, ErrorNode) are never removed
// and never act as passthroughs, even if ErrorNode or SuccessNode happens
// to carry no other edges — IsTerminal nodes are excluded from the
// passthrough candidate set explicitly.
func Simplify[C any, R any](m *Machine[C, R]) *Machine[C, R] {
	resolved := resolvePassthroughs(m)
	return compactDead(resolved)
}

// isPassthrough reports whether id names a non-terminal node whose only
// outgoing edge, of any kind, is a single shortcut.
func isPassthrough[C any, R any](m *Machine[C, R], id NodeID) (NodeID, bool) {
	if IsTerminal(id) || id == InitialNode {
		return 0, false
	}
	n := &m.Nodes[id]
	if len(n.Dynamics) != 0 || len(n.Shortcuts) != 1 {
		return 0, false
	}
	for _, transitions := range n.Statics {
		if len(transitions) != 0 {
			return 0, false
		}
	}
	return n.Shortcuts[0].To, true
}

// resolveTarget follows a chain of passthrough nodes to the first node
// that isn't one, guarding against shortcut cycles with a visited set.
func resolveTarget[C any, R any](m *Machine[C, R], start NodeID) NodeID {
	seen := map[NodeID]bool{start: true}
	cur := start
	for {
		next, ok := isPassthrough(m, cur)
		if !ok || seen[next] {
			return cur
		}
		seen[next] = true
		cur = next
	}
}

// resolvePassthroughs rewrites every transition target through the
// passthrough chain it leads into, then returns a copy of m with those
// rewritten tables. The passthrough nodes themselves are left in place;
// compactDead removes them once nothing points at them anymore.
func resolvePassthroughs[C any, R any](m *Machine[C, R]) *Machine[C, R] {
	out := &Machine[C, R]{
		Contexts: append([]int(nil), m.Contexts...),
		Nodes:    make([]Node[C, R], len(m.Nodes)),
	}

	retarget := func(to NodeID) NodeID { return resolveTarget(m, to) }

	for id, n := range m.Nodes {
		rn := newNode[C, R]()
		rn.Context = n.Context

		for _, s := range n.Shortcuts {
			rn.Shortcuts = append(rn.Shortcuts, Transition[R]{To: retarget(s.To), Reducer: s.Reducer})
		}
		for _, d := range n.Dynamics {
			rn.Dynamics = append(rn.Dynamics, DynamicTransition[C, R]{
				Predicate:  d.Predicate,
				Transition: Transition[R]{To: retarget(d.Transition.To), Reducer: d.Transition.Reducer},
			})
		}
		for key, transitions := range n.Statics {
			cloned := make([]Transition[R], len(transitions))
			for i, t := range transitions {
				cloned[i] = Transition[R]{To: retarget(t.To), Reducer: t.Reducer}
			}
			rn.Statics[key] = cloned
		}

		out.Nodes[id] = rn
	}

	return out
}

// walker carries the BFS frontier used by compactDead's reachability pass.
type walker struct {
	queue   []NodeID
	visited map[NodeID]bool
}

func newWalker(start NodeID) *walker {
	w := &walker{queue: []NodeID{start}, visited: map[NodeID]bool{start: true}}
	return w
}

func (w *walker) enqueue(id NodeID) {
	if w.visited[id] {
		return
	}
	w.visited[id] = true
	w.queue = append(w.queue, id)
}

func (w *walker) dequeue() NodeID {
	id := w.queue[0]
	w.queue = w.queue[1:]
	return id
}

func (w *walker) empty() bool { return len(w.queue) == 0 }

// compactDead removes every node unreachable from InitialNode and remaps
// surviving user-node IDs to a dense range starting at FirstUserNode,
// preserving relative order. Reserved nodes keep their fixed IDs.
func compactDead[C any, R any](m *Machine[C, R]) *Machine[C, R] {
	w := newWalker(InitialNode)
	w.visited[SuccessNode] = true
	w.visited[ErrorNode] = true

	for !w.empty() {
		id := w.dequeue()
		n := &m.Nodes[id]
		for _, s := range n.Shortcuts {
			w.enqueue(s.To)
		}
		for _, d := range n.Dynamics {
			w.enqueue(d.Transition.To)
		}
		for _, transitions := range n.Statics {
			for _, t := range transitions {
				w.enqueue(t.To)
			}
		}
	}

	remap := make(map[NodeID]NodeID, len(w.visited))
	for i := NodeID(0); i < FirstUserNode; i++ {
		remap[i] = i
	}
	next := FirstUserNode
	for id := FirstUserNode; id < NodeID(len(m.Nodes)); id++ {
		if w.visited[id] {
			remap[id] = next
			next++
		}
	}

	out := &Machine[C, R]{
		Contexts: append([]int(nil), m.Contexts...),
		Nodes:    make([]Node[C, R], next),
	}
	for i := NodeID(0); i < FirstUserNode; i++ {
		out.Nodes[i] = newNode[C, R]()
	}

	for oldID, newID := range remap {
		if oldID < FirstUserNode && !w.visited[oldID] {
			continue
		}
		n := m.Nodes[oldID]
		rn := newNode[C, R]()
		rn.Context = n.Context

		for _, s := range n.Shortcuts {
			rn.Shortcuts = append(rn.Shortcuts, Transition[R]{To: remap[s.To], Reducer: s.Reducer})
		}
		for _, d := range n.Dynamics {
			rn.Dynamics = append(rn.Dynamics, DynamicTransition[C, R]{
				Predicate:  d.Predicate,
				Transition: Transition[R]{To: remap[d.Transition.To], Reducer: d.Transition.Reducer},
			})
		}
		for key, transitions := range n.Statics {
			cloned := make([]Transition[R], len(transitions))
			for i, t := range transitions {
				cloned[i] = Transition[R]{To: remap[t.To], Reducer: t.Reducer}
			}
			rn.Statics[key] = cloned
		}

		out.Nodes[newID] = rn
	}

	return out
}
