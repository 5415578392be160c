package cloptune

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/sgfkit/cloptune/internal/errfmt"
)

// Settings is the fixed tuning configuration shared by every trial of a
// run. It is constructed once at startup and never mutated; per-trial
// state (seed, vector, job) stays out of it.
type Settings struct {
	// CandidateColor is the color the candidate occupies in every game.
	// The opponent takes the other color.
	CandidateColor Color

	// Opponent is the fixed competitor every candidate plays against.
	Opponent Competitor

	BoardSize int
	Komi      float64
	MoveLimit int

	Handicap      int
	HandicapStyle HandicapStyle

	Scoring            Scoring
	CompensateHandicap bool

	// Policy controls classification of abnormally completed matches.
	Policy ErrorPolicy
}

func (s Settings) validate() error {
	if !s.CandidateColor.known() {
		return fmt.Errorf("%w: candidate color %q", ErrConfig, s.CandidateColor)
	}
	if s.BoardSize <= 0 {
		return fmt.Errorf("%w: board size %d", ErrConfig, s.BoardSize)
	}
	if s.MoveLimit < 0 {
		return fmt.Errorf("%w: move limit %d", ErrConfig, s.MoveLimit)
	}
	if s.Handicap < 0 {
		return fmt.Errorf("%w: handicap %d", ErrConfig, s.Handicap)
	}
	if s.Handicap > 0 && s.HandicapStyle != HandicapFixed && s.HandicapStyle != HandicapFree {
		return fmt.Errorf("%w: handicap style %q", ErrConfig, s.HandicapStyle)
	}
	if s.Scoring != ScoringTerritory && s.Scoring != ScoringArea {
		return fmt.Errorf("%w: scoring %q", ErrConfig, s.Scoring)
	}
	if err := s.Opponent.Validate(); err != nil {
		return fmt.Errorf("%w: opponent: %v", ErrConfig, err)
	}
	return nil
}

// Tuner runs trials: it interprets optimizer-supplied vectors against
// the parameter space, builds candidates through the user callback,
// hands fully specified jobs to the game runner, and classifies results.
//
// A Tuner has no internal concurrency and no shared mutable state: one
// connection-script invocation runs one trial start-to-finish. The
// optimizer achieves parallelism by launching independent invocations.
type Tuner struct {
	space    *Space
	build    Builder
	runner   Runner
	settings Settings
	logger   *slog.Logger
}

// New validates the settings and returns a Tuner. space, build, and
// runner are required.
func New(space *Space, build Builder, runner Runner, settings Settings, opts ...Option) (*Tuner, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: nil space", ErrConfig)
	}
	if build == nil {
		return nil, fmt.Errorf("%w: nil builder", ErrConfig)
	}
	if runner == nil {
		return nil, fmt.Errorf("%w: nil runner", ErrConfig)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	t := &Tuner{
		space:    space,
		build:    build,
		runner:   runner,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Space returns the validated parameter-space registry.
func (t *Tuner) Space() *Space { return t.space }

// Settings returns the fixed tuning configuration.
func (t *Tuner) Settings() Settings { return t.settings }

// Report describes one completed trial: the classified outcome together
// with the interpreted values and the raw game result, so callers can
// log and archive the trial without re-deriving either.
type Report struct {
	Outcome Outcome
	Values  Values
	Result  GameResult
}

// RunTrial evaluates one candidate: it interprets the raw vector,
// builds the candidate competitor, plays one match against the fixed
// opponent, and classifies the result from the candidate's perspective.
//
// A failed game is reported as an error, never retried. The returned
// Report is meaningful only when err is nil.
func (t *Tuner) RunTrial(ctx context.Context, seed string, vector Vector) (Report, error) {
	values, err := t.space.Interpret(vector)
	if err != nil {
		return Report{}, err
	}

	candidate, err := t.buildCandidate(seed, values)
	if err != nil {
		return Report{}, err
	}

	job := t.assembleJob(seed, *candidate, values)
	t.logger.Info("trial starting",
		"seed", seed,
		"candidate", candidate.Name,
		"params", values.String(),
	)

	result, err := t.runner.Run(ctx, job)
	if err != nil {
		return Report{}, fmt.Errorf("%w: seed %s: %v", ErrExecution, seed, err)
	}
	t.forwardDiagnostics(seed, result)

	outcome, err := Classify(result, t.settings.CandidateColor, t.settings.Policy)
	if err != nil {
		return Report{}, err
	}
	t.logger.Info("trial finished", "seed", seed, "outcome", string(outcome), "result", result.String())
	return Report{Outcome: outcome, Values: values, Result: result}, nil
}

// buildCandidate invokes the user callback exactly once, recovering
// panics into a *BuildError with the captured stack, and validates the
// returned configuration. The candidate's identity is derived from the
// seed so repeated trials are distinguishable in logs and game records.
func (t *Tuner) buildCandidate(seed string, values Values) (candidate *Competitor, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BuildError{
				Params: values.String(),
				Trace:  errfmt.Truncate(fmt.Sprintf("panic: %v\n%s", r, debug.Stack())),
				Err:    fmt.Errorf("builder panicked: %v", r),
			}
		}
	}()

	candidate, buildErr := t.build(values)
	if buildErr != nil {
		return nil, &BuildError{
			Params: values.String(),
			Trace:  errfmt.Truncate(buildErr.Error()),
			Err:    buildErr,
		}
	}
	if candidate == nil {
		return nil, &BuildError{
			Params: values.String(),
			Err:    fmt.Errorf("builder returned no competitor"),
		}
	}
	if err := candidate.Validate(); err != nil {
		return nil, &BuildError{
			Params: values.String(),
			Trace:  errfmt.Truncate(err.Error()),
			Err:    err,
		}
	}
	// Identity comes from the seed so repeated trials are
	// distinguishable in logs and game records.
	candidate.Name = "#" + seed
	return candidate, nil
}

// assembleJob places the candidate on the configured color and fills in
// the fixed game parameters. The annotation records the parameter
// assignment for post-hoc audit.
func (t *Tuner) assembleJob(seed string, candidate Competitor, values Values) GameJob {
	job := GameJob{
		CandidateColor:     t.settings.CandidateColor,
		BoardSize:          t.settings.BoardSize,
		Komi:               t.settings.Komi,
		MoveLimit:          t.settings.MoveLimit,
		Handicap:           t.settings.Handicap,
		HandicapStyle:      t.settings.HandicapStyle,
		Scoring:            t.settings.Scoring,
		CompensateHandicap: t.settings.CompensateHandicap,
		Seed:               seed,
		Annotation:         values.String(),
	}
	if t.settings.CandidateColor == Black {
		job.Black = candidate
		job.White = t.settings.Opponent
	} else {
		job.White = candidate
		job.Black = t.settings.Opponent
	}
	return job
}

// forwardDiagnostics relays the game backend's warnings and log entries
// to the trial logger.
func (t *Tuner) forwardDiagnostics(seed string, result GameResult) {
	for _, w := range result.Warnings {
		t.logger.Warn("game warning", "seed", seed, "warning", w)
	}
	for _, entry := range result.Log {
		t.logger.Debug("game log", "seed", seed, "entry", entry)
	}
}
