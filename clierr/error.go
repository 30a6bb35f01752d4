package clierr

import "github.com/arglex/arglex/spec"

// ErrorKind enumerates the parse-level outcomes the selector can return
// in place of a single resolved command.
type ErrorKind uint8

const (
	// KindCommandError: exactly one candidate matched and it failed.
	KindCommandError ErrorKind = iota
	// KindAmbiguousSyntax: multiple candidates remain indistinguishable.
	KindAmbiguousSyntax
	// KindNotFound: no candidate matched; Specs holds the closest
	// suggestions produced by the fallback path.
	KindNotFound
	// KindInternalError: an invariant was violated. Treated as a bug,
	// never a user-facing outcome.
	KindInternalError
)

// Error is the parse-level result the selector returns when it cannot
// resolve a single Command.
type Error struct {
	Kind    ErrorKind
	Command *spec.CommandSpec   // set for KindCommandError
	Cause   *CommandError       // set for KindCommandError; best-effort diagnosis for KindNotFound
	Specs   []*spec.CommandSpec // set for KindAmbiguousSyntax / KindNotFound
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCommandError:
		return e.Cause.Error()
	case KindAmbiguousSyntax:
		return "the provided arguments are ambiguous and need to be refined further"
	case KindNotFound:
		if e.Cause != nil {
			return "the provided arguments don't match any known syntax: " + e.Cause.Error()
		}
		return "the provided arguments don't match any known syntax; use --help to get a list of possible options"
	case KindInternalError:
		return "something unexpected happened; this looks like a bug in arglex itself"
	default:
		return "parse error"
	}
}

// Unwrap exposes the underlying CommandError, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// CommandErr wraps a single candidate's failure.
func CommandErr(command *spec.CommandSpec, cause *CommandError) *Error {
	return &Error{Kind: KindCommandError, Command: command, Cause: cause}
}

// AmbiguousSyntax wraps the set of commands a parse could not
// distinguish between.
func AmbiguousSyntax(specs []*spec.CommandSpec) *Error {
	return &Error{Kind: KindAmbiguousSyntax, Specs: specs}
}

// NotFound wraps the closest suggestions for an unmatched parse.
func NotFound(specs []*spec.CommandSpec) *Error {
	return &Error{Kind: KindNotFound, Specs: specs}
}

// Internal returns a KindInternalError, signaling a violated invariant.
func Internal() *Error {
	return &Error{Kind: KindInternalError}
}
