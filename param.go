package cloptune

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParamKind identifies how the optimizer explores one tunable dimension.
// The constant values are the literal kind tokens used in the CLOP
// declaration file.
type ParamKind string

const (
	// KindLinear is a real-valued parameter explored on a linear scale.
	KindLinear ParamKind = "LinearParameter"

	// KindInteger is an integer parameter explored on a linear scale.
	KindInteger ParamKind = "IntegerParameter"

	// KindGamma is a real-valued parameter explored on a log scale.
	KindGamma ParamKind = "GammaParameter"

	// KindIntegerGamma is an integer parameter explored on a log scale.
	KindIntegerGamma ParamKind = "IntegerGammaParameter"
)

// Integer reports whether k's values are integers.
func (k ParamKind) Integer() bool {
	return k == KindInteger || k == KindIntegerGamma
}

// Known reports whether k is one of the four recognized variants.
func (k ParamKind) Known() bool {
	switch k {
	case KindLinear, KindInteger, KindGamma, KindIntegerGamma:
		return true
	}
	return false
}

// ParamSpec declares one tunable dimension: an opaque code, the
// exploration kind, and inclusive numeric bounds. For integer kinds both
// bounds must be exact integers.
type ParamSpec struct {
	Code string
	Kind ParamKind
	Min  float64
	Max  float64
}

// Declaration formats the spec as one CLOP declaration-file line:
// "<kind> <code> <min> <max>", with integer bounds for integer kinds.
func (p ParamSpec) Declaration() string {
	if p.Kind.Integer() {
		return fmt.Sprintf("%s %s %d %d", p.Kind, p.Code, int(p.Min), int(p.Max))
	}
	return fmt.Sprintf("%s %s %f %f", p.Kind, p.Code, p.Min, p.Max)
}

// Space is the validated parameter-space registry. It is constructed
// once from static configuration, immutable thereafter, and defines the
// count and order every per-trial [Vector] must match.
type Space struct {
	specs []ParamSpec
}

// NewSpace validates the declared dimensions and returns the registry.
// It fails, wrapping [ErrConfig], when the list is empty, a kind is not
// one of the four recognized variants, an integer-kind spec has a
// non-integral bound, bounds are reversed, a code is empty or contains
// whitespace, or a code repeats.
func NewSpace(specs []ParamSpec) (*Space, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no parameters declared", ErrConfig)
	}
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		if spec.Code == "" {
			return nil, fmt.Errorf("%w: parameter %d: empty code", ErrConfig, i)
		}
		if strings.IndexFunc(spec.Code, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: parameter %s: code contains whitespace", ErrConfig, spec.Code)
		}
		if !spec.Kind.Known() {
			return nil, fmt.Errorf("%w: parameter %s: unknown kind %q", ErrConfig, spec.Code, spec.Kind)
		}
		if spec.Kind.Integer() && (spec.Min != math.Trunc(spec.Min) || spec.Max != math.Trunc(spec.Max)) {
			return nil, fmt.Errorf("%w: parameter %s: %s bounds must be integers, got [%v, %v]",
				ErrConfig, spec.Code, spec.Kind, spec.Min, spec.Max)
		}
		// Reversed or empty ranges are rejected outright: the optimizer
		// has no meaningful interpretation for them.
		if spec.Min >= spec.Max {
			return nil, fmt.Errorf("%w: parameter %s: min %v not below max %v",
				ErrConfig, spec.Code, spec.Min, spec.Max)
		}
		if _, dup := seen[spec.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter code %q", ErrConfig, spec.Code)
		}
		seen[spec.Code] = struct{}{}
	}
	s := &Space{specs: make([]ParamSpec, len(specs))}
	copy(s.specs, specs)
	return s, nil
}

// Len returns the number of declared dimensions.
func (s *Space) Len() int { return len(s.specs) }

// Specs returns a copy of the declared dimensions in registration order.
func (s *Space) Specs() []ParamSpec {
	out := make([]ParamSpec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Declarations returns one CLOP declaration-file line per dimension, in
// registration order.
func (s *Space) Declarations() []string {
	lines := make([]string, len(s.specs))
	for i, spec := range s.specs {
		lines[i] = spec.Declaration()
	}
	return lines
}

// Interpret types the optimizer-supplied raw vector against the
// registry: position by position, the assignment name must equal the
// corresponding spec's code and the raw value must parse under the
// spec's kind. Any length mismatch, name mismatch, or unparseable value
// fails with a single aggregate error, wrapping [ErrProtocol], that
// names the full received vector. The optimizer side is not expected to
// recover, only to surface the error for human debugging.
func (s *Space) Interpret(v Vector) (Values, error) {
	if len(v) != len(s.specs) {
		return nil, fmt.Errorf("%w: got %d parameters, want %d (received %s)",
			ErrProtocol, len(v), len(s.specs), v)
	}
	values := make(Values, len(v))
	for i, a := range v {
		spec := s.specs[i]
		if a.Name != spec.Code {
			return nil, fmt.Errorf("%w: parameter %d is %q, want %q (received %s)",
				ErrProtocol, i, a.Name, spec.Code, v)
		}
		if spec.Kind.Integer() {
			n, err := strconv.Atoi(a.Raw)
			if err != nil {
				return nil, fmt.Errorf("%w: parameter %s: %q is not an integer (received %s)",
					ErrProtocol, spec.Code, a.Raw, v)
			}
			values[i] = Value{Spec: spec, Int: n, Float: float64(n)}
			continue
		}
		f, err := strconv.ParseFloat(a.Raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %s: %q is not a number (received %s)",
				ErrProtocol, spec.Code, a.Raw, v)
		}
		values[i] = Value{Spec: spec, Float: f}
	}
	return values, nil
}

// Assignment is one (name, raw value) pair from the optimizer.
type Assignment struct {
	Name string
	Raw  string
}

// Vector is the ordered raw parameter assignment supplied by the
// optimizer for one trial, positionally aligned with the registry.
type Vector []Assignment

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", a.Name, a.Raw)
	}
	b.WriteByte(']')
	return b.String()
}

// Value is one typed parameter value. Float always holds the numeric
// value; Int is additionally populated for integer kinds.
type Value struct {
	Spec  ParamSpec
	Float float64
	Int   int
}

func (v Value) String() string {
	if v.Spec.Kind.Integer() {
		return fmt.Sprintf("%s=%d", v.Spec.Code, v.Int)
	}
	return fmt.Sprintf("%s=%v", v.Spec.Code, v.Float)
}

// Values is the typed parameter set fed, in positional order, to the
// candidate builder.
type Values []Value

// String formats the assignment for job annotations and diagnostics,
// e.g. "capture_bonus=0.5 depth=3".
func (vs Values) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
