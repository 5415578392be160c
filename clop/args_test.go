package clop

import (
	"errors"
	"strings"
	"testing"

	"github.com/sgfkit/cloptune"
)

func TestParseTrialArgs(t *testing.T) {
	got, err := ParseTrialArgs([]string{"p0", "42", "a", "0.5", "b", "3"})
	if err != nil {
		t.Fatalf("ParseTrialArgs error: %v", err)
	}
	if got.Processor != "p0" {
		t.Errorf("Processor = %q, want %q", got.Processor, "p0")
	}
	if got.Seed != "42" {
		t.Errorf("Seed = %q, want %q", got.Seed, "42")
	}
	want := cloptune.Vector{{Name: "a", Raw: "0.5"}, {Name: "b", Raw: "3"}}
	if len(got.Vector) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(got.Vector), len(want))
	}
	for i := range want {
		if got.Vector[i] != want[i] {
			t.Errorf("Vector[%d] = %+v, want %+v", i, got.Vector[i], want[i])
		}
	}
}

func TestParseTrialArgs_NoParams(t *testing.T) {
	got, err := ParseTrialArgs([]string{"p3", "7"})
	if err != nil {
		t.Fatalf("ParseTrialArgs error: %v", err)
	}
	if len(got.Vector) != 0 {
		t.Errorf("got %d assignments, want 0", len(got.Vector))
	}
}

func TestParseTrialArgs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		dangling string
	}{
		{"Empty", nil, ""},
		{"ProcessorOnly", []string{"p0"}, ""},
		{"DanglingName", []string{"p0", "42", "a", "0.5", "b"}, "b"},
		{"SingleDanglingName", []string{"p0", "42", "a"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrialArgs(tt.args)
			if !errors.Is(err, cloptune.ErrProtocol) {
				t.Fatalf("err = %v, want ErrProtocol", err)
			}
			if tt.dangling != "" && !strings.Contains(err.Error(), `"`+tt.dangling+`"`) {
				t.Errorf("error %q does not name dangling argument %q", err, tt.dangling)
			}
		})
	}
}

func FuzzParseTrialArgs(f *testing.F) {
	f.Add(byte(2), "p0", "42", "a", "0.5")
	f.Add(byte(5), "p0", "42", "a", "0.5")
	f.Add(byte(0), "", "", "", "")

	f.Fuzz(func(t *testing.T, n byte, a, b, c, d string) {
		pool := []string{a, b, c, d, a, b, c, d}
		args := pool[:int(n)%len(pool)]
		got, err := ParseTrialArgs(args)
		if err != nil {
			if !errors.Is(err, cloptune.ErrProtocol) {
				t.Errorf("err = %v, want ErrProtocol", err)
			}
			return
		}
		if len(args) < 2 || (len(args)-2)%2 != 0 {
			t.Errorf("malformed args %q accepted", args)
		}
		if len(got.Vector) != (len(args)-2)/2 {
			t.Errorf("got %d assignments from %d args", len(got.Vector), len(args))
		}
	})
}
