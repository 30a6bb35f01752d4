package compiler

import "github.com/google/shlex"

// Tokenize splits a single command-line string into argv the way a POSIX
// shell would (quoting, escaping, comments), for callers that receive raw
// command text instead of an already-split argv (e.g. a REPL or a
// BuiltinCommand.Tokenize request).
func Tokenize(line string) ([]string, error) {
	return shlex.Split(line)
}
