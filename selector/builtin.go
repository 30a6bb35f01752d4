package selector

import "github.com/arglex/arglex/spec"

// BuiltinKind distinguishes the four BuiltinCommand shapes.
type BuiltinKind uint8

const (
	BuiltinHelp BuiltinKind = iota
	BuiltinVersion
	BuiltinDescribe
	BuiltinTokenize
)

// BuiltinCommand is a parse outcome that bypasses ordinary command
// resolution: --help/-h, --version, and the front-end-only describe/
// tokenize introspection requests.
type BuiltinCommand struct {
	Kind     BuiltinKind
	Commands []*spec.CommandSpec // set for BuiltinHelp
	Argv     []string            // set for BuiltinTokenize
}

func Help(commands []*spec.CommandSpec) BuiltinCommand {
	return BuiltinCommand{Kind: BuiltinHelp, Commands: commands}
}

func Version() BuiltinCommand { return BuiltinCommand{Kind: BuiltinVersion} }

func Describe() BuiltinCommand { return BuiltinCommand{Kind: BuiltinDescribe} }

func TokenizeResult(argv []string) BuiltinCommand {
	return BuiltinCommand{Kind: BuiltinTokenize, Argv: argv}
}
