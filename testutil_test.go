package cloptune

import (
	"context"
	"io"
	"log/slog"
)

// fakeRunner is a minimal scripted Runner for bridge tests. The richer,
// exported fixture lives in the runnertest package; this one stays local
// to avoid an import cycle.
type fakeRunner struct {
	result GameResult
	err    error
	jobs   []GameJob
}

func (f *fakeRunner) Run(_ context.Context, job GameJob) (GameResult, error) {
	f.jobs = append(f.jobs, job)
	return f.result, f.err
}

// testSpace returns a one-dimensional space.
func testSpace(t interface{ Fatalf(string, ...any) }) *Space {
	space, err := NewSpace([]ParamSpec{
		{Code: "a", Kind: KindLinear, Min: 0, Max: 1},
	})
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return space
}

// testSettings returns a valid fixed configuration with the candidate
// playing black.
func testSettings() Settings {
	return Settings{
		CandidateColor: Black,
		Opponent:       Competitor{Name: "anchor", Command: []string{"anchor-engine"}},
		BoardSize:      19,
		Komi:           7.5,
		MoveLimit:      1000,
		Scoring:        ScoringTerritory,
	}
}

// testBuilder returns a builder producing a runnable candidate.
func testBuilder(values Values) (*Competitor, error) {
	return &Competitor{Command: []string{"candidate-engine"}}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
