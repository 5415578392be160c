package clop

import (
	"fmt"

	"github.com/sgfkit/cloptune"
)

// Outcome tokens on the connection script's standard output. Anything
// that is not W, D, or L is read by the optimizer as an error report;
// TokenError is the literal emitted on every failure path so the
// optimizer is never left waiting for a result.
const (
	TokenError = "Error"
)

// TrialCommand is the literal sub-command token written into the
// declaration's Script line; the optimizer appends the processor id,
// seed, and parameter pairs after it.
const TrialCommand = "play"

// TrialArgs is the decoded argument tail of one trial invocation:
// <processor-id> <seed> [<name> <value>]...
//
// Processor identifies the parallel slot the optimizer scheduled the
// trial on. It is accepted but unused by the trial bridge itself —
// purely informational, for log and record partitioning.
type TrialArgs struct {
	Processor string
	Seed      string
	Vector    cloptune.Vector
}

// ParseTrialArgs decodes the connection calling convention's argument
// tail. Parameter pairs must come in complete (name, value) tuples; an
// odd trailing argument fails, wrapping [cloptune.ErrProtocol] and
// naming the dangling name.
func ParseTrialArgs(args []string) (TrialArgs, error) {
	if len(args) < 2 {
		return TrialArgs{}, fmt.Errorf("%w: got %d arguments, want at least <processor> <seed>",
			cloptune.ErrProtocol, len(args))
	}
	ta := TrialArgs{Processor: args[0], Seed: args[1]}
	rest := args[2:]
	if len(rest)%2 != 0 {
		return TrialArgs{}, fmt.Errorf("%w: parameter %q has no value",
			cloptune.ErrProtocol, rest[len(rest)-1])
	}
	ta.Vector = make(cloptune.Vector, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		ta.Vector = append(ta.Vector, cloptune.Assignment{Name: rest[i], Raw: rest[i+1]})
	}
	return ta, nil
}
