// File: machine.go
// Role: the node arena itself — construction, mutation, and Union
// (merging N independently built sub-machines into one). Simplification
// lives in simplify.go.

package core

// Machine is an arena of nodes plus the list of context (command) IDs it
// knows about. Contexts[i] identifies which caller-supplied command owns
// the i'th context; Node.Context indexes into it.
//
// A freshly constructed Machine already contains the three reserved nodes
// (InitialNode, SuccessNode, ErrorNode); CreateNode hands out IDs starting
// at FirstUserNode and never reuses one.
type Machine[C any, R any] struct {
	Contexts []int
	Nodes    []Node[C, R]
}

// MachineOption configures a Machine before construction.
type MachineOption[C any, R any] func(*machineConfig)

type machineConfig struct {
	nodeCapacity int
}

// WithNodeCapacity preallocates room for n user nodes in addition to the
// three reserved ones, avoiding reallocation while a command compiler
// grows the arena. Purely a performance hint; it never changes behavior.
func WithNodeCapacity[C any, R any](n int) MachineOption[C, R] {
	return func(cfg *machineConfig) { cfg.nodeCapacity = n }
}

// NewMachine returns a single-context Machine with only the three reserved
// nodes present. context is the caller-supplied command ID that every node
// created on this machine (until Union) will belong to.
func NewMachine[C any, R any](context int, opts ...MachineOption[C, R]) *Machine[C, R] {
	var cfg machineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Machine[C, R]{Contexts: []int{context}}
	m.Nodes = make([]Node[C, R], 0, int(FirstUserNode)+cfg.nodeCapacity)
	for i := NodeID(0); i < FirstUserNode; i++ {
		m.Nodes = append(m.Nodes, newNode[C, R]())
	}
	return m
}

// CreateNode appends a fresh node to the arena, belonging to context 0
// (the single context of a not-yet-unioned machine), and returns its ID.
// Complexity: O(1) amortized.
func (m *Machine[C, R]) CreateNode() NodeID {
	id := NodeID(len(m.Nodes))
	m.Nodes = append(m.Nodes, newNode[C, R]())
	return id
}

// RegisterStatic adds a literal-keyed transition from→to, labeled key,
// applying reducer when taken.
func (m *Machine[C, R]) RegisterStatic(from NodeID, key TokenKey, to NodeID, reducer R) {
	n := &m.Nodes[from]
	n.Statics[key] = append(n.Statics[key], Transition[R]{To: to, Reducer: reducer})
}

// RegisterDynamic adds a predicate-guarded transition from→to, applying
// reducer when predicate accepts the current token.
func (m *Machine[C, R]) RegisterDynamic(from NodeID, predicate C, to NodeID, reducer R) {
	n := &m.Nodes[from]
	n.Dynamics = append(n.Dynamics, DynamicTransition[C, R]{
		Predicate:  predicate,
		Transition: Transition[R]{To: to, Reducer: reducer},
	})
}

// RegisterShortcut adds an unconditional ε-transition from→to. Shortcuts
// never carry a reducer other than R's zero value.
func (m *Machine[C, R]) RegisterShortcut(from, to NodeID) {
	var zero R
	n := &m.Nodes[from]
	n.Shortcuts = append(n.Shortcuts, Transition[R]{To: to, Reducer: zero})
}

// Union merges N independently compiled sub-machines into one: a single
// shared InitialNode/SuccessNode/ErrorNode triple, each sub-machine's
// nodes rebased by a per-machine offset and appended to a common context
// table, and one ε-shortcut from the unified InitialNode to each
// sub-machine's own (now rebased) InitialNode. Transitions that targeted
// SuccessNode or ErrorNode in a sub-machine keep pointing at the shared
// terminals.
func Union[C any, R any](machines []*Machine[C, R]) *Machine[C, R] {
	out := &Machine[C, R]{}
	for i := NodeID(0); i < FirstUserNode; i++ {
		out.Nodes = append(out.Nodes, newNode[C, R]())
	}

	for _, sub := range machines {
		contextOffset := len(out.Contexts)
		base := NodeID(len(out.Nodes))

		out.Contexts = append(out.Contexts, sub.Contexts...)
		out.RegisterShortcut(InitialNode, base)

		for local := NodeID(0); local < NodeID(len(sub.Nodes)); local++ {
			if IsTerminal(local) {
				continue
			}
			cloned := sub.Nodes[local].cloneToOffset(base)
			cloned.Context += contextOffset
			out.Nodes = append(out.Nodes, cloned)
		}
	}

	return out
}
