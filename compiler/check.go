package compiler

import (
	"strings"

	"github.com/arglex/arglex/runner"
)

type checkKind uint8

const (
	checkIsOption checkKind = iota
	checkIsOptionLike
	checkIsOptionBinding
	checkIsNotOptionLike
	checkIsNegatedOption
	checkIsBatchOption
	checkAlways
)

// Check is the sole runner.Predicate implementation: a small tagged value
// rather than a closure, so that compiled machines stay cheap to copy. It
// carries a map field (letters), so it isn't comparable with ==.
type Check struct {
	kind    checkKind
	name    string
	letters map[byte]int
}

// IsOption matches a token equal to name, e.g. "--verbose" or "-v".
func IsOption(name string) Check { return Check{kind: checkIsOption, name: name} }

// IsOptionLike matches any token that looks like an option ("-" prefixed,
// but not the bare "--" double-slash marker).
func IsOptionLike() Check { return Check{kind: checkIsOptionLike} }

// IsOptionBinding matches "name=value" tokens, the --option=value form.
func IsOptionBinding(name string) Check { return Check{kind: checkIsOptionBinding, name: name} }

// IsNotOptionLike matches any token that doesn't start with "-", plus
// anything once the "--" marker has been seen. A bare "--" before the
// marker matches neither this nor IsOptionLike.
func IsNotOptionLike() Check { return Check{kind: checkIsNotOptionLike} }

// IsNegatedOption matches "--no-<rest>" where primaryName is "--<rest>".
// Supplements the boolean-option grammar with negation, per the
// --no-name convention option parsers in this ecosystem support.
func IsNegatedOption(primaryName string) Check {
	return Check{kind: checkIsNegatedOption, name: primaryName}
}

// IsBatchOption matches a short-flag cluster like "-xyz" where every
// letter after the leading "-" resolves, via letters, to a boolean
// option's index. Supplements single-letter boolean options with Unix-
// style batching.
func IsBatchOption(letters map[byte]int) Check {
	return Check{kind: checkIsBatchOption, letters: letters}
}

// IsAlways matches unconditionally; used for positional slots inside a
// proxy (where every token, option-like or not, is absorbed) and for the
// --help consumer's catch-all self-loop.
func IsAlways() Check { return Check{kind: checkAlways} }

func (c Check) Check(s *runner.State, token string) bool {
	switch c.kind {
	case checkAlways:
		return true

	case checkIsOption:
		return !s.PostDoubleSlash && token == c.name

	case checkIsOptionLike:
		return !s.PostDoubleSlash && strings.HasPrefix(token, "-") && token != "--"

	case checkIsOptionBinding:
		prefix := c.name + "="
		return !s.PostDoubleSlash && strings.HasPrefix(token, prefix)

	case checkIsNotOptionLike:
		return s.PostDoubleSlash || !strings.HasPrefix(token, "-")

	case checkIsNegatedOption:
		if s.PostDoubleSlash || !strings.HasPrefix(token, "--no-") {
			return false
		}
		return token[5:] == c.name[2:]

	case checkIsBatchOption:
		if s.PostDoubleSlash || !strings.HasPrefix(token, "-") || len(token) < 3 {
			return false
		}
		for i := 1; i < len(token); i++ {
			if _, ok := c.letters[token[i]]; !ok {
				return false
			}
		}
		return true

	default:
		return false
	}
}
