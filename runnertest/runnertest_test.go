package runnertest

import (
	"context"
	"testing"

	"github.com/sgfkit/cloptune"
)

func TestFake_RecordsJobs(t *testing.T) {
	fake := &Fake{Result: Jigo()}

	job := cloptune.GameJob{Seed: "42", BoardSize: 19}
	result, err := fake.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Kind != cloptune.ResultJigo {
		t.Errorf("Kind = %v, want jigo", result.Kind)
	}

	jobs := fake.Jobs()
	if len(jobs) != 1 || jobs[0].Seed != "42" {
		t.Errorf("Jobs() = %+v, want the recorded job", jobs)
	}
}

func TestFake_RunFnOverrides(t *testing.T) {
	fake := &Fake{
		Result: Jigo(),
		RunFn: func(_ context.Context, job cloptune.GameJob) (cloptune.GameResult, error) {
			return WinBy(job.CandidateColor, "override"), nil
		},
	}

	result, err := fake.Run(context.Background(), cloptune.GameJob{CandidateColor: cloptune.White})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Kind != cloptune.ResultWin || result.Winner != cloptune.White {
		t.Errorf("result = %+v, want win by white", result)
	}
}

func TestFake_PassesCompliance(t *testing.T) {
	RunRunnerTests(t, func() cloptune.Runner {
		return &Fake{Result: WinBy(cloptune.Black, "B+1.5")}
	}, cloptune.GameJob{BoardSize: 9, Seed: "1"})
}
