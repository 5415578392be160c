package cloptune

import (
	"errors"
	"testing"
)

func FuzzSpaceInterpret(f *testing.F) {
	f.Add("a", "0.5", "b", "3")
	f.Add("a", "", "b", "")
	f.Add("b", "3", "a", "0.5")
	f.Add("a", "not-a-number", "b", "1e999")

	space, err := NewSpace([]ParamSpec{
		{Code: "a", Kind: KindLinear, Min: 0, Max: 1},
		{Code: "b", Kind: KindInteger, Min: 1, Max: 10},
	})
	if err != nil {
		f.Fatalf("NewSpace: %v", err)
	}

	f.Fuzz(func(t *testing.T, n1, v1, n2, v2 string) {
		values, err := space.Interpret(Vector{{Name: n1, Raw: v1}, {Name: n2, Raw: v2}})
		if err != nil {
			// Every failure is a protocol-level error; panics are bugs.
			if !errors.Is(err, ErrProtocol) {
				t.Errorf("err = %v, want ErrProtocol", err)
			}
			return
		}
		if len(values) != 2 {
			t.Errorf("got %d values, want 2", len(values))
		}
		if n1 != "a" || n2 != "b" {
			t.Errorf("mismatched names %q %q accepted", n1, n2)
		}
	})
}
