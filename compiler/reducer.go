package compiler

import "github.com/arglex/arglex/runner"

// Attachment distinguishes which of a State's two value tables a reducer
// targets.
type Attachment uint8

const (
	AttachmentOption Attachment = iota
	AttachmentPositional
)

type reducerKind uint8

const (
	reducerNone reducerKind = iota
	reducerEnableDoubleSlash
	reducerEnableHelp
	reducerIncreaseKeywordCount
	reducerStartValue
	reducerPushValue
	reducerBindValue
	reducerPushNegated
	reducerPushBatch
)

// Reducer is the sole runner.Reducer implementation, again a tagged value
// rather than a closure; use Equals to compare two Reducers.
type Reducer struct {
	kind       reducerKind
	attachment Attachment
	index      int
	skipLen    int
	letters    map[byte]int
}

// NoopReducer performs no mutation; used for transitions (like the
// StartOfInput edge) that don't need to touch the state.
func NoopReducer() Reducer { return Reducer{kind: reducerNone} }

// EnableDoubleSlash marks every token after the "--" one as occurring
// after the double-slash marker.
func EnableDoubleSlash() Reducer { return Reducer{kind: reducerEnableDoubleSlash} }

// EnableHelp flags the state as a --help/-h match.
func EnableHelp() Reducer { return Reducer{kind: reducerEnableHelp} }

// IncreaseKeywordCount bumps the count used to favor the most specific
// command path among tied candidates.
func IncreaseKeywordCount() Reducer { return Reducer{kind: reducerIncreaseKeywordCount} }

// StartValue opens a new value slot at componentIndex in the given table,
// seeding it with token when it's a positional (tokens aren't consumed by
// boolean option edges, so option slots start empty).
func StartValue(attachment Attachment, componentIndex int) Reducer {
	return Reducer{kind: reducerStartValue, attachment: attachment, index: componentIndex}
}

// PushValue appends token to the most recently opened slot in the given
// table.
func PushValue(attachment Attachment) Reducer {
	return Reducer{kind: reducerPushValue, attachment: attachment}
}

// BindValue handles the "--option=value" form: it opens a new option slot
// directly with the post-'=' text, skipLen being the length of the option
// name consumed before the '='.
func BindValue(skipLen, optionIndex int) Reducer {
	return Reducer{kind: reducerBindValue, skipLen: skipLen, index: optionIndex}
}

// PushNegated records a "--no-name" match as an explicit false value.
func PushNegated(optionIndex int) Reducer {
	return Reducer{kind: reducerPushNegated, index: optionIndex}
}

// PushBatch expands a "-xyz" cluster into one boolean slot per letter,
// resolved through letters.
func PushBatch(letters map[byte]int) Reducer {
	return Reducer{kind: reducerPushBatch, letters: letters}
}

// Equals reports whether r and other behave identically. Reducer carries
// a map field (letters), so it isn't comparable with ==; this compares
// every field that participates in Apply's behavior instead.
func (r Reducer) Equals(other Reducer) bool {
	if r.kind != other.kind || r.attachment != other.attachment || r.index != other.index || r.skipLen != other.skipLen {
		return false
	}
	if len(r.letters) != len(other.letters) {
		return false
	}
	for k, v := range r.letters {
		if other.letters[k] != v {
			return false
		}
	}
	return true
}

func (r Reducer) Apply(s *runner.State, token string) {
	switch r.kind {
	case reducerNone:

	case reducerEnableDoubleSlash:
		s.PostDoubleSlash = true

	case reducerEnableHelp:
		s.IsHelp = true

	case reducerIncreaseKeywordCount:
		s.KeywordCount++

	case reducerStartValue:
		entry := runner.IndexedValues{Index: r.index}
		if r.attachment == AttachmentPositional {
			entry.Values = []string{token}
		}
		appendValue(s, r.attachment, entry)

	case reducerPushValue:
		pushToLastValue(s, r.attachment, token)

	case reducerBindValue:
		appendValue(s, AttachmentOption, runner.IndexedValues{
			Index:  r.index,
			Values: []string{token[r.skipLen+1:]},
		})

	case reducerPushNegated:
		appendValue(s, AttachmentOption, runner.IndexedValues{
			Index:  r.index,
			Values: []string{"false"},
		})

	case reducerPushBatch:
		for i := 1; i < len(token); i++ {
			if idx, ok := r.letters[token[i]]; ok {
				appendValue(s, AttachmentOption, runner.IndexedValues{Index: idx})
			}
		}
	}
}

// appendValue and pushToLastValue operate directly on State's exported
// value tables; State deliberately carries no such helpers itself so that
// package runner stays free of any CLI-specific vocabulary.
func appendValue(s *runner.State, attachment Attachment, entry runner.IndexedValues) {
	switch attachment {
	case AttachmentOption:
		s.OptionValues = append(s.OptionValues, entry)
	case AttachmentPositional:
		s.PositionalValues = append(s.PositionalValues, entry)
	}
}

func pushToLastValue(s *runner.State, attachment Attachment, token string) {
	switch attachment {
	case AttachmentOption:
		if n := len(s.OptionValues); n > 0 {
			s.OptionValues[n-1].Values = append(s.OptionValues[n-1].Values, token)
		}
	case AttachmentPositional:
		if n := len(s.PositionalValues); n > 0 {
			s.PositionalValues[n-1].Values = append(s.PositionalValues[n-1].Values, token)
		}
	}
}
