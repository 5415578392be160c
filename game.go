package cloptune

import (
	"context"
	"fmt"
	"strings"
)

// Color identifies one side of a match.
type Color string

const (
	Black Color = "b"
	White Color = "w"
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) known() bool { return c == Black || c == White }

// HandicapStyle selects how handicap stones are placed.
type HandicapStyle string

const (
	// HandicapFixed places handicap stones on the standard points.
	HandicapFixed HandicapStyle = "fixed"

	// HandicapFree lets the handicapped player choose placements.
	HandicapFree HandicapStyle = "free"
)

// Scoring selects the counting method used to decide a finished game.
type Scoring string

const (
	ScoringTerritory Scoring = "territory"
	ScoringArea      Scoring = "area"
)

// Competitor is one configurable match participant: the engine command
// to launch plus free-form engine options. The candidate builder returns
// one of these; the fixed opponent is another, from static configuration.
type Competitor struct {
	// Name identifies the competitor in logs and game records.
	Name string `yaml:"name"`

	// Command is the engine executable and its arguments.
	Command []string `yaml:"command"`

	// Options holds engine-specific key-value settings.
	Options map[string]string `yaml:"options,omitempty"`
}

// Validate checks that the configuration resolves into a runnable
// competitor: a non-empty command whose parts contain no null bytes.
func (c *Competitor) Validate() error {
	if c == nil {
		return fmt.Errorf("nil competitor")
	}
	if len(c.Command) == 0 || c.Command[0] == "" {
		return fmt.Errorf("competitor %s: empty command", c.Name)
	}
	for i, part := range c.Command {
		if strings.Contains(part, "\x00") {
			return fmt.Errorf("competitor %s: command[%d] contains null bytes", c.Name, i)
		}
	}
	return nil
}

// GameJob fully specifies one automated match. Owned by the trial bridge
// for the duration of one trial and handed to the [Runner].
type GameJob struct {
	// Black and White are the two participants by color.
	Black Competitor
	White Competitor

	// CandidateColor records which color the trial candidate occupies.
	CandidateColor Color

	BoardSize int
	Komi      float64
	MoveLimit int

	Handicap      int
	HandicapStyle HandicapStyle

	Scoring Scoring
	// CompensateHandicap adjusts area scores by the handicap stone count.
	CompensateHandicap bool

	// Seed is the optimizer-supplied trial seed, kept for game records.
	Seed string

	// Annotation records the candidate's parameter assignment for
	// post-hoc audit of the game record.
	Annotation string
}

// ResultKind tags the variant of a [GameResult].
type ResultKind int

const (
	// ResultWin means one side won; Winner names it.
	ResultWin ResultKind = iota

	// ResultJigo means the match tied with no decisive winner.
	ResultJigo

	// ResultAbnormal means the match ended without a score, e.g. it hit
	// the move limit. Detail describes what happened.
	ResultAbnormal
)

func (k ResultKind) String() string {
	switch k {
	case ResultWin:
		return "win"
	case ResultJigo:
		return "jigo"
	case ResultAbnormal:
		return "abnormal"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// GameResult is the structured outcome of one completed match. It is a
// tagged variant — Winner is meaningful only when Kind is [ResultWin] —
// so the classifier's dispatch is exhaustive rather than field-probing.
type GameResult struct {
	Kind   ResultKind
	Winner Color

	// Detail is a human-readable description of the result,
	// e.g. "B+3.5" or "hit move limit".
	Detail string

	// Warnings and Log carry diagnostic entries from the game backend,
	// forwarded to the trial logger.
	Warnings []string
	Log      []string
}

func (r GameResult) String() string {
	if r.Detail != "" {
		return fmt.Sprintf("%s (%s)", r.Kind, r.Detail)
	}
	return r.Kind.String()
}

// Runner is the external game backend: it plays the fully specified
// match synchronously and returns a structured result, or an error if
// the match could not be completed at all. A match that completed
// abnormally is a [ResultAbnormal] result, not an error.
//
// Runner is an interface to enable wrapping with logging or recording
// middleware; the runnertest package provides a scriptable fake.
type Runner interface {
	Run(ctx context.Context, job GameJob) (GameResult, error)
}

// RunnerFunc adapts a function to the [Runner] interface.
type RunnerFunc func(ctx context.Context, job GameJob) (GameResult, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, job GameJob) (GameResult, error) {
	return f(ctx, job)
}

// Builder is the user-supplied candidate constructor. It is invoked
// exactly once per trial with the typed parameter values in declaration
// order, and returns the competitor configuration to evaluate. Any
// error (or panic) aborts the trial as a [*BuildError]; there is no
// retry.
type Builder func(values Values) (*Competitor, error)
