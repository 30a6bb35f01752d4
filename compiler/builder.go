// File: builder.go
// Role: compiles one spec.CommandSpec into a core.Machine, the Go
// analogue of CommandBuilderContext.

package compiler

import (
	"github.com/arglex/arglex/core"
	"github.com/arglex/arglex/spec"
)

// Machine is the concrete machine type every command compiles to.
type Machine = core.Machine[Check, Reducer]

type commandBuilder struct {
	machine *Machine
	cmd     *spec.CommandSpec

	inhibitOptions int
	proxyOptions   int
}

func newCommandBuilder(cmd *spec.CommandSpec, commandID int) *commandBuilder {
	return &commandBuilder{
		machine: core.NewMachine[Check, Reducer](commandID),
		cmd:     cmd,
	}
}

func (b *commandBuilder) enterInhibitOptions() { b.inhibitOptions++ }
func (b *commandBuilder) exitInhibitOptions()  { b.inhibitOptions-- }
func (b *commandBuilder) enterProxyOptions()   { b.proxyOptions++ }
func (b *commandBuilder) exitProxyOptions()    { b.proxyOptions-- }

// getPositionalCheck reports ok=false (meaning "always accept") while
// inside a proxy positional, and returns IsNotOptionLike otherwise.
func (b *commandBuilder) getPositionalCheck() (Check, bool) {
	if b.proxyOptions > 0 {
		return Check{}, false
	}
	return IsNotOptionLike(), true
}

// singleLetterBatchTargets collects every boolean option opted into
// batching whose primary name or an alias is a single dash-letter flag
// ("-x"), keyed by that letter.
func (b *commandBuilder) singleLetterBatchTargets() map[byte]int {
	letters := make(map[byte]int)
	for i, comp := range b.cmd.Components {
		if comp.Kind != spec.ComponentOption {
			continue
		}
		opt := comp.Option
		if !opt.AllowBatching || !opt.AllowBoolean {
			continue
		}
		for _, name := range append([]string{opt.PrimaryName}, opt.Aliases...) {
			if len(name) == 2 && name[0] == '-' && name[1] != '-' {
				letters[name[1]] = i
			}
		}
	}
	return letters
}

// attachOptions wires every option component as a transition looping back
// to itself from preOptionsNodeID, plus the "--" double-slash edge, plus
// (supplemented) negation and batch-expansion edges. Returns the node
// options funnel back through once none match.
func (b *commandBuilder) attachOptions(preOptionsNodeID core.NodeID) core.NodeID {
	if b.inhibitOptions > 0 || b.proxyOptions > 0 {
		return preOptionsNodeID
	}

	postOptionsNodeID := b.machine.CreateNode()
	b.machine.RegisterShortcut(preOptionsNodeID, postOptionsNodeID)

	b.machine.RegisterDynamic(preOptionsNodeID, IsOption("--"), preOptionsNodeID, EnableDoubleSlash())

	if letters := b.singleLetterBatchTargets(); len(letters) > 0 {
		batchNodeID := b.machine.CreateNode()
		b.machine.RegisterDynamic(preOptionsNodeID, IsBatchOption(letters), batchNodeID, PushBatch(letters))
		b.machine.RegisterShortcut(batchNodeID, preOptionsNodeID)
	}

	for optionID, comp := range b.cmd.Components {
		if comp.Kind != spec.ComponentOption {
			continue
		}
		opt := comp.Option

		names := append([]string{opt.PrimaryName}, opt.Aliases...)
		for _, name := range names {
			postOptionNodeID := b.machine.CreateNode()

			b.machine.RegisterDynamic(preOptionsNodeID, IsOption(name), postOptionNodeID, StartValue(AttachmentOption, optionID))

			acceptsArguments := opt.AcceptsArguments()

			if opt.AllowBoolean && acceptsArguments && opt.MinLen > 0 {
				b.machine.RegisterShortcut(postOptionNodeID, preOptionsNodeID)
			}

			finalNodeID := postOptionNodeID
			if acceptsArguments {
				b.enterInhibitOptions()
				finalNodeID = b.attachVariadic(postOptionNodeID, opt.MinLen, opt.ExtraLen, PushValue(AttachmentOption), PushValue(AttachmentOption))
				b.exitInhibitOptions()

				if n, fixed := opt.Arity(); fixed && n == 1 {
					b.machine.RegisterDynamic(preOptionsNodeID, IsOptionBinding(name), finalNodeID, BindValue(len(name), optionID))
				}
			}

			b.machine.RegisterShortcut(finalNodeID, preOptionsNodeID)
		}

		if opt.AllowNegation && opt.AllowBoolean {
			negatedNodeID := b.machine.CreateNode()
			b.machine.RegisterDynamic(preOptionsNodeID, IsNegatedOption(opt.PrimaryName), negatedNodeID, PushNegated(optionID))
			b.machine.RegisterShortcut(negatedNodeID, preOptionsNodeID)
		}
	}

	return postOptionsNodeID
}

func (b *commandBuilder) attachRequired(preNodeID core.NodeID, reducer Reducer) core.NodeID {
	nextNodeID := b.machine.CreateNode()

	check, ok := b.getPositionalCheck()
	if ok {
		b.machine.RegisterDynamic(preNodeID, check, nextNodeID, reducer)
	} else {
		b.machine.RegisterDynamic(preNodeID, IsAlways(), nextNodeID, reducer)
	}

	return b.attachOptions(nextNodeID)
}

func (b *commandBuilder) attachVariadic(preNodeID core.NodeID, minLen int, extraLen *int, startAction, subsequentActions Reducer) core.NodeID {
	currentNodeID := preNodeID
	nextAction := startAction

	for i := 0; i < minLen; i++ {
		currentNodeID = b.attachRequired(currentNodeID, nextAction)
		nextAction = subsequentActions
	}

	switch {
	case extraLen != nil:
		if *extraLen > 0 {
			endNodeID := b.machine.CreateNode()
			b.machine.RegisterShortcut(currentNodeID, endNodeID)

			for i := 0; i < *extraLen; i++ {
				currentNodeID = b.attachRequired(currentNodeID, nextAction)
				nextAction = subsequentActions
				b.machine.RegisterShortcut(currentNodeID, endNodeID)
			}
			currentNodeID = endNodeID
		}

	default: // unbounded: a self-loop consuming as many tokens as match
		endNodeID := b.machine.CreateNode()
		b.machine.RegisterShortcut(currentNodeID, endNodeID)

		// minLen == 0 means the loop above never ran, so nextAction is
		// still startAction. Only open the value slot via this explicit
		// extra step when startAction and subsequentActions actually
		// differ — if they're equal, the self-looping consumption below
		// already opens an equivalent first slot, and adding this step
		// would compile a redundant node.
		if minLen == 0 && !startAction.Equals(subsequentActions) {
			currentNodeID = b.attachRequired(currentNodeID, nextAction)
			nextAction = subsequentActions
			b.machine.RegisterShortcut(currentNodeID, endNodeID)
		}

		postVariadicNodeID := b.attachRequired(currentNodeID, nextAction)
		b.machine.RegisterShortcut(postVariadicNodeID, currentNodeID)

		currentNodeID = endNodeID
	}

	return currentNodeID
}

func (b *commandBuilder) attachPositionals(preNodeID core.NodeID, positionals []indexedPositional) core.NodeID {
	currentNodeID := preNodeID

	for _, ip := range positionals {
		p := ip.spec
		switch p.Kind {
		case spec.PositionalKeyword:
			nextNodeID := b.machine.CreateNode()
			b.machine.RegisterStatic(currentNodeID, coreUser(p.Expected), nextNodeID, IncreaseKeywordCount())
			currentNodeID = b.attachOptions(nextNodeID)

		case spec.PositionalDynamic:
			if p.IsProxy {
				b.enterProxyOptions()
			}
			currentNodeID = b.attachVariadic(currentNodeID, p.MinLen, p.ExtraLen, StartValue(AttachmentPositional, ip.index), PushValue(AttachmentPositional))
			if p.IsProxy {
				b.exitProxyOptions()
			}
		}
	}

	return currentNodeID
}

type indexedPositional struct {
	index int
	spec  spec.PositionalSpec
}

// build assembles the full per-command sub-machine: StartOfInput, leading
// options, prefix positionals, the --help short-circuit, the command's
// declared paths, trailing positionals, then EndOfInput into SuccessNode.
func (b *commandBuilder) build() *Machine {
	firstNodeID := b.machine.CreateNode()
	b.machine.RegisterStatic(core.InitialNode, core.StartOfInput(), firstNodeID, NoopReducer())

	currentNodeID := b.attachOptions(firstNodeID)

	var prefixPositionals, positionals []indexedPositional
	for i, comp := range b.cmd.Components {
		if comp.Kind != spec.ComponentPositional {
			continue
		}
		ip := indexedPositional{index: i, spec: comp.Positional}
		if comp.Positional.Kind == spec.PositionalDynamic && comp.Positional.IsPrefix {
			prefixPositionals = append(prefixPositionals, ip)
		} else {
			positionals = append(positionals, ip)
		}
	}

	currentNodeID = b.attachPositionals(currentNodeID, prefixPositionals)

	isFirstPositionalAProxy := false
	for _, comp := range b.cmd.Components {
		if comp.Kind == spec.ComponentPositional && comp.Positional.Kind == spec.PositionalDynamic && !comp.Positional.IsPrefix {
			isFirstPositionalAProxy = comp.Positional.IsProxy
			break
		}
	}

	var helpNodeID core.NodeID
	hasHelpNode := !isFirstPositionalAProxy
	if hasHelpNode {
		helpNodeID = b.machine.CreateNode()
		b.machine.RegisterDynamic(helpNodeID, IsAlways(), helpNodeID, NoopReducer())
		b.machine.RegisterStatic(helpNodeID, core.EndOfInput(), core.SuccessNode, EnableHelp())
	}

	if !b.cmd.IsDefault() {
		postPathsNodeID := b.machine.CreateNode()

		for _, path := range b.cmd.Paths {
			currentPathNodeID := currentNodeID

			for _, segment := range path {
				postSegmentNodeID := b.machine.CreateNode()
				b.machine.RegisterStatic(currentPathNodeID, coreUser(segment), postSegmentNodeID, IncreaseKeywordCount())
				currentPathNodeID = b.attachOptions(postSegmentNodeID)
			}

			if len(path) > 0 && hasHelpNode {
				b.machine.RegisterStatic(currentPathNodeID, coreUser("--help"), helpNodeID, IncreaseKeywordCount())
				b.machine.RegisterStatic(currentPathNodeID, coreUser("-h"), helpNodeID, IncreaseKeywordCount())
			}

			b.machine.RegisterShortcut(currentPathNodeID, postPathsNodeID)
		}

		currentNodeID = postPathsNodeID
	}

	currentNodeID = b.attachPositionals(currentNodeID, positionals)

	b.machine.RegisterStatic(currentNodeID, core.EndOfInput(), core.SuccessNode, NoopReducer())

	return b.machine
}

func coreUser(token string) core.TokenKey { return core.User(token) }
