package cloptune

import "fmt"

// Outcome is the three-way trial classification from the candidate's
// perspective. The constant values are the literal tokens the optimizer
// reads on standard output.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// ErrorPolicy controls how abnormally completed matches are classified.
type ErrorPolicy int

const (
	// PolicyStrict fails the trial on an abnormal result.
	PolicyStrict ErrorPolicy = iota

	// PolicyTolerant degrades an abnormal result to [Draw], so a single
	// anomalous game cannot abort a long-running search.
	PolicyTolerant
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyTolerant:
		return "tolerant"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// Classify maps a game result to the candidate's outcome. It is total
// over the [GameResult] variants: a win by the candidate's color is
// [Win], a win by the other color is [Loss], jigo is [Draw], and an
// abnormal result is [Draw] under [PolicyTolerant] or an error wrapping
// [ErrUnexpectedResult] under [PolicyStrict].
func Classify(result GameResult, candidate Color, policy ErrorPolicy) (Outcome, error) {
	switch result.Kind {
	case ResultWin:
		if result.Winner == candidate {
			return Win, nil
		}
		return Loss, nil
	case ResultJigo:
		return Draw, nil
	case ResultAbnormal:
		if policy == PolicyTolerant {
			return Draw, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnexpectedResult, result)
	}
	return "", fmt.Errorf("%w: unknown result kind %d", ErrUnexpectedResult, int(result.Kind))
}
