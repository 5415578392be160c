package clop

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sgfkit/cloptune"
)

func testDeclaration() Declaration {
	return Declaration{
		Name:   "opening-weights",
		Script: []string{"./tune.sh", "--config", "tuning.yaml", TrialCommand},
		Params: []cloptune.ParamSpec{
			{Code: "a", Kind: cloptune.KindLinear, Min: 0, Max: 1},
			{Code: "depth", Kind: cloptune.KindInteger, Min: 1, Max: 12},
		},
		Processors:   2,
		Replications: 1,
		DrawElo:      100,
		H:            3,
		Correlations: CorrelationsAll,
		StopOnError:  true,
	}
}

func TestDeclaration_Write(t *testing.T) {
	decl := testDeclaration()
	var buf bytes.Buffer
	if err := decl.Write(&buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := strings.Join([]string{
		"Name opening-weights",
		"Script ./tune.sh --config tuning.yaml play",
		"",
		"LinearParameter a 0.000000 1.000000",
		"IntegerParameter depth 1 12",
		"",
		"Processor p0",
		"Processor p1",
		"",
		"Replications 1",
		"DrawElo 100",
		"H 3",
		"Correlations all",
		"StopOnError true",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("declaration mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeclaration_Write_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Declaration)
	}{
		{"NoName", func(d *Declaration) { d.Name = "" }},
		{"NameWithSpace", func(d *Declaration) { d.Name = "opening weights" }},
		{"NoScript", func(d *Declaration) { d.Script = nil }},
		{"NoParams", func(d *Declaration) { d.Params = nil }},
		{"NoProcessors", func(d *Declaration) { d.Processors = 0 }},
		{"BadCorrelations", func(d *Declaration) { d.Correlations = "some" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := testDeclaration()
			tt.mutate(&decl)
			var buf bytes.Buffer
			err := decl.Write(&buf)
			if !errors.Is(err, cloptune.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
			if buf.Len() != 0 {
				t.Error("invalid declaration must produce no output")
			}
		})
	}
}

// Parameter lines must round-trip: re-parsing a declaration reproduces
// the registered (kind, code, min, max) tuples.
func TestParseParamLine_RoundTrip(t *testing.T) {
	specs := []cloptune.ParamSpec{
		{Code: "a", Kind: cloptune.KindLinear, Min: 0, Max: 1},
		{Code: "b", Kind: cloptune.KindInteger, Min: 1, Max: 10},
		{Code: "c", Kind: cloptune.KindGamma, Min: 0.01, Max: 2.5},
		{Code: "d", Kind: cloptune.KindIntegerGamma, Min: 1, Max: 1000},
	}
	space, err := cloptune.NewSpace(specs)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	for i, line := range space.Declarations() {
		got, err := ParseParamLine(line)
		if err != nil {
			t.Fatalf("ParseParamLine(%q): %v", line, err)
		}
		if got != specs[i] {
			t.Errorf("round-trip %q = %+v, want %+v", line, got, specs[i])
		}
	}
}

func TestParseParamLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"Empty", ""},
		{"TooFewFields", "LinearParameter a 0"},
		{"TooManyFields", "LinearParameter a 0 1 2"},
		{"UnknownKind", "QuadraticParameter a 0 1"},
		{"BadMin", "LinearParameter a zero 1"},
		{"BadMax", "LinearParameter a 0 one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseParamLine(tt.line); !errors.Is(err, cloptune.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}
