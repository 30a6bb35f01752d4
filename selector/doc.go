// Package selector narrows the states a runner produced down to a single
// resolved command, or an error describing why none could be chosen.
package selector
