// Package core is the graph substrate beneath arglex: an arena of nodes
// addressed by stable integer IDs, each holding three transition tables
// (static, dynamic, shortcut/ε), plus the machinery to union several
// independently built sub-machines into one and simplify the result.
//
// core knows nothing about command-line syntax. It is generic over the
// predicate type used to guard dynamic transitions and the reducer type
// carried by every transition, so higher layers (package compiler) can
// supply a closed, CLI-specific enumeration of checks and actions without
// the substrate itself depending on them.
//
// Reserved node IDs:
//
//	InitialNode   = 0
//	SuccessNode   = 1
//	ErrorNode     = 2
//	FirstUserNode = 3 (first ID handed out by CreateNode)
//
// SuccessNode and ErrorNode always have empty transition tables; neither
// is ever targeted by CreateNode, and Simplify never removes them.
package core
