package cloptune

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		result    GameResult
		candidate Color
		policy    ErrorPolicy
		want      Outcome
		wantErr   error
	}{
		{"CandidateWins", GameResult{Kind: ResultWin, Winner: Black}, Black, PolicyStrict, Win, nil},
		{"CandidateLoses", GameResult{Kind: ResultWin, Winner: White}, Black, PolicyStrict, Loss, nil},
		{"WhiteCandidateWins", GameResult{Kind: ResultWin, Winner: White}, White, PolicyStrict, Win, nil},
		{"Jigo", GameResult{Kind: ResultJigo}, Black, PolicyStrict, Draw, nil},
		{"AbnormalTolerant", GameResult{Kind: ResultAbnormal, Detail: "hit move limit"}, Black, PolicyTolerant, Draw, nil},
		{"AbnormalStrict", GameResult{Kind: ResultAbnormal, Detail: "hit move limit"}, Black, PolicyStrict, "", ErrUnexpectedResult},
		{"UnknownKind", GameResult{Kind: ResultKind(42)}, Black, PolicyTolerant, "", ErrUnexpectedResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.result, tt.candidate, tt.policy)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_StrictCarriesDetail(t *testing.T) {
	_, err := Classify(GameResult{Kind: ResultAbnormal, Detail: "hit move limit"}, Black, PolicyStrict)
	if err == nil || !strings.Contains(err.Error(), "hit move limit") {
		t.Errorf("err = %v, want raw result description", err)
	}
}
