// File: state.go
// Role: the per-branch parse state the runner forks and advances.

package runner

import (
	"strconv"

	"github.com/arglex/arglex/core"
)

// IndexedValues pairs a component index with the tokens captured for it,
// in the order they were consumed.
type IndexedValues struct {
	Index  int
	Values []string
}

// State is one candidate parse, advancing through the compiled machine
// one token at a time. String fields reference the caller's argv; States
// are cheap to clone (append-only slices, copied on fork).
type State struct {
	ContextID    int
	NodeID       core.NodeID
	KeywordCount int

	Path             []string
	PositionalValues []IndexedValues
	OptionValues     []IndexedValues

	PostDoubleSlash bool
	IsHelp          bool

	// UnmatchedToken is the raw token that caused this state to fall
	// through to the fallback, set by DefaultFallback. Empty for any
	// state that never hit the fallback. Diagnostic only — it plays no
	// part in transition matching or selection pruning.
	UnmatchedToken string
}

// clone returns a deep-enough copy: every slice is its own backing array,
// so appends on the fork never alias the original.
func (s State) clone() State {
	out := s
	out.Path = append([]string(nil), s.Path...)
	out.PositionalValues = cloneIndexed(s.PositionalValues)
	out.OptionValues = cloneIndexed(s.OptionValues)
	return out
}

func cloneIndexed(src []IndexedValues) []IndexedValues {
	out := make([]IndexedValues, len(src))
	for i, iv := range src {
		out[i] = IndexedValues{Index: iv.Index, Values: append([]string(nil), iv.Values...)}
	}
	return out
}

// signature is a comparable fingerprint used to de-duplicate states that
// reach the same shape via different transition paths, since Go slices
// can't be map keys directly.
type signature struct {
	contextID       int
	nodeID          core.NodeID
	keywordCount    int
	path            string
	positionals     string
	options         string
	postDoubleSlash bool
	isHelp          bool
	unmatchedToken  string
}

func (s State) signature() signature {
	return signature{
		contextID:       s.ContextID,
		nodeID:          s.NodeID,
		keywordCount:    s.KeywordCount,
		path:            joinValues(s.Path),
		positionals:     joinIndexed(s.PositionalValues),
		options:         joinIndexed(s.OptionValues),
		postDoubleSlash: s.PostDoubleSlash,
		isHelp:          s.IsHelp,
		unmatchedToken:  s.UnmatchedToken,
	}
}

func joinValues(vs []string) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += "\x1f"
		}
		out += v
	}
	return out
}

func joinIndexed(ivs []IndexedValues) string {
	out := ""
	for i, iv := range ivs {
		if i > 0 {
			out += "\x1e"
		}
		out += strconv.Itoa(iv.Index) + ":" + joinValues(iv.Values)
	}
	return out
}
