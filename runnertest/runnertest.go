package runnertest

import (
	"context"
	"sync"
	"testing"

	"github.com/sgfkit/cloptune"
)

// Fake is a scriptable [cloptune.Runner]. It returns Result/Err for
// every job, or delegates to RunFn when set, and records the jobs it
// received. Safe for concurrent use.
type Fake struct {
	Result cloptune.GameResult
	Err    error

	// RunFn, when non-nil, overrides Result/Err.
	RunFn func(ctx context.Context, job cloptune.GameJob) (cloptune.GameResult, error)

	mu   sync.Mutex
	jobs []cloptune.GameJob
}

// Compile-time interface satisfaction check.
var _ cloptune.Runner = (*Fake)(nil)

// Run records the job and returns the scripted result.
func (f *Fake) Run(ctx context.Context, job cloptune.GameJob) (cloptune.GameResult, error) {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()

	if f.RunFn != nil {
		return f.RunFn(ctx, job)
	}
	return f.Result, f.Err
}

// Jobs returns a copy of the jobs received so far.
func (f *Fake) Jobs() []cloptune.GameJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]cloptune.GameJob, len(f.jobs))
	copy(out, f.jobs)
	return out
}

// WinBy returns a decided result with the given winner.
func WinBy(winner cloptune.Color, detail string) cloptune.GameResult {
	return cloptune.GameResult{Kind: cloptune.ResultWin, Winner: winner, Detail: detail}
}

// Jigo returns a tied result.
func Jigo() cloptune.GameResult {
	return cloptune.GameResult{Kind: cloptune.ResultJigo, Detail: "jigo"}
}

// Abnormal returns a result for a match that completed without a score.
func Abnormal(detail string) cloptune.GameResult {
	return cloptune.GameResult{Kind: cloptune.ResultAbnormal, Detail: detail}
}

// RunRunnerTests exercises the behavioral contract every Runner must
// uphold: a completed match yields a well-formed tagged result, and a
// win names its winner. The factory is called once per subtest; job is
// a fully specified match the implementation can actually play.
func RunRunnerTests(t *testing.T, factory func() cloptune.Runner, job cloptune.GameJob) {
	t.Helper()

	t.Run("WellFormedResult", func(t *testing.T) {
		result, err := factory().Run(context.Background(), job)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		switch result.Kind {
		case cloptune.ResultWin:
			if result.Winner != cloptune.Black && result.Winner != cloptune.White {
				t.Errorf("win result with winner %q", result.Winner)
			}
		case cloptune.ResultJigo, cloptune.ResultAbnormal:
			// No winner required.
		default:
			t.Errorf("unknown result kind %d", int(result.Kind))
		}
	})

	t.Run("Repeatable", func(t *testing.T) {
		// Two runs of the identical job must both complete; outcome
		// equality is not required (engines may be stochastic).
		for i := 0; i < 2; i++ {
			if _, err := factory().Run(context.Background(), job); err != nil {
				t.Fatalf("run %d: %v", i, err)
			}
		}
	})
}
