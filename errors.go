package cloptune

import "errors"

// Sentinel errors for the tuning pipeline.
var (
	// ErrConfig indicates an invalid parameter-space or tuning
	// configuration. Configuration errors are fatal at setup time and
	// cannot occur during a trial, since the space is fixed by then.
	ErrConfig = errors.New("cloptune: invalid configuration")

	// ErrProtocol indicates that the optimizer-supplied connection
	// arguments or parameter vector do not match the declared space
	// (wrong count, wrong order, dangling name, unparseable value).
	// Fatal for the current invocation only.
	ErrProtocol = errors.New("cloptune: malformed connection arguments")

	// ErrExecution indicates the game runner failed to complete a match,
	// as opposed to completing one abnormally.
	ErrExecution = errors.New("cloptune: game execution failed")

	// ErrUnexpectedResult indicates a completed match whose result falls
	// outside the three-way win/draw/loss classification, under
	// [PolicyStrict]. Under [PolicyTolerant] such results degrade to
	// [Draw] instead.
	ErrUnexpectedResult = errors.New("cloptune: unexpected game result")
)

// BuildError represents a failed candidate construction: the user
// callback returned an error, panicked, or produced a configuration
// that does not resolve into a runnable competitor.
//
// Params carries the formatted parameter assignment the callback was
// invoked with, and Trace the captured diagnostic (panic stack or
// validation detail), both attached for post-hoc debugging. Wraps the
// underlying error to preserve the cause chain.
type BuildError struct {
	Params string
	Trace  string
	Err    error
}

func (e *BuildError) Error() string {
	msg := "cloptune: build candidate"
	if e.Params != "" {
		msg += " [" + e.Params + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.Err }

// BuildTrace extracts the diagnostic trace from an error chain
// containing *BuildError. Returns ("", false) if the error does not
// contain a BuildError.
func BuildTrace(err error) (string, bool) {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Trace, true
	}
	return "", false
}
