package clop

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sgfkit/cloptune"
)

// Correlation modes understood by the optimizer.
const (
	CorrelationsAll  = "all"
	CorrelationsNone = "none"
)

// Declaration models the static file the optimizer consumes: the
// connection command line, the parameter space, the parallel processor
// slots, and the scalar tuning settings.
type Declaration struct {
	// Name labels the tuning experiment.
	Name string

	// Script is the connection command line: script path, any fixed
	// leading arguments, and [TrialCommand] last.
	Script []string

	// Params are the declared dimensions, in registration order.
	Params []cloptune.ParamSpec

	// Processors is the number of parallel trial slots.
	Processors int

	// Replications is how many times the optimizer may repeat one
	// sample point.
	Replications int

	// DrawElo indicates the plausible draw-probability range.
	DrawElo int

	// H is the optimizer's sensitivity parameter.
	H float64

	// Correlations is [CorrelationsAll] or [CorrelationsNone].
	Correlations string

	// StopOnError makes the optimizer halt the search when a trial
	// reports an error instead of carrying on.
	StopOnError bool
}

func (d *Declaration) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: declaration has no name", cloptune.ErrConfig)
	}
	if strings.IndexAny(d.Name, " \t") >= 0 {
		return fmt.Errorf("%w: declaration name %q contains whitespace", cloptune.ErrConfig, d.Name)
	}
	if len(d.Script) == 0 || d.Script[0] == "" {
		return fmt.Errorf("%w: declaration has no script", cloptune.ErrConfig)
	}
	if len(d.Params) == 0 {
		return fmt.Errorf("%w: declaration has no parameters", cloptune.ErrConfig)
	}
	if d.Processors <= 0 {
		return fmt.Errorf("%w: %d processors", cloptune.ErrConfig, d.Processors)
	}
	if d.Correlations != CorrelationsAll && d.Correlations != CorrelationsNone {
		return fmt.Errorf("%w: correlations %q", cloptune.ErrConfig, d.Correlations)
	}
	return nil
}

// Write emits the declaration in the optimizer's line-oriented format.
func (d *Declaration) Write(w io.Writer) error {
	if err := d.validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Name %s\n", d.Name)
	fmt.Fprintf(bw, "Script %s\n", strings.Join(d.Script, " "))
	bw.WriteByte('\n')
	for _, p := range d.Params {
		fmt.Fprintln(bw, p.Declaration())
	}
	bw.WriteByte('\n')
	for i := 0; i < d.Processors; i++ {
		fmt.Fprintf(bw, "Processor p%d\n", i)
	}
	bw.WriteByte('\n')
	fmt.Fprintf(bw, "Replications %d\n", d.Replications)
	fmt.Fprintf(bw, "DrawElo %d\n", d.DrawElo)
	fmt.Fprintf(bw, "H %v\n", d.H)
	fmt.Fprintf(bw, "Correlations %s\n", d.Correlations)
	fmt.Fprintf(bw, "StopOnError %t\n", d.StopOnError)

	return bw.Flush()
}

// ParseParamLine decodes one parameter declaration line,
// "<kind> <code> <min> <max>", back into a spec. It is the inverse of
// [cloptune.ParamSpec.Declaration].
func ParseParamLine(line string) (cloptune.ParamSpec, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return cloptune.ParamSpec{}, fmt.Errorf("%w: parameter line %q: want 4 fields, got %d",
			cloptune.ErrConfig, line, len(fields))
	}
	kind := cloptune.ParamKind(fields[0])
	if !kind.Known() {
		return cloptune.ParamSpec{}, fmt.Errorf("%w: parameter line %q: unknown kind %q",
			cloptune.ErrConfig, line, fields[0])
	}
	min, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return cloptune.ParamSpec{}, fmt.Errorf("%w: parameter line %q: bad min: %v",
			cloptune.ErrConfig, line, err)
	}
	max, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return cloptune.ParamSpec{}, fmt.Errorf("%w: parameter line %q: bad max: %v",
			cloptune.ErrConfig, line, err)
	}
	return cloptune.ParamSpec{Code: fields[1], Kind: kind, Min: min, Max: max}, nil
}
