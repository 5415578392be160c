package cli

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sgfkit/cloptune"
	"github.com/sgfkit/cloptune/clop"
	"github.com/sgfkit/cloptune/internal/archive"
)

// runSetup validates the full configuration, prepares the run's
// filesystem surface, and writes the optimizer's declaration file.
// Any configuration error aborts before the file is written.
func (a *App) runSetup() error {
	space, err := a.Config.Space()
	if err != nil {
		return err
	}
	// Construct the tuner once to surface settings/builder/runner
	// problems at setup time rather than mid-search.
	if _, err := a.tuner(nil); err != nil {
		return err
	}

	if err := a.ensureDirs(); err != nil {
		return err
	}
	if a.Config.Paths.MatchDir != "" {
		arch, err := archive.Open(filepath.Join(a.Config.Paths.MatchDir, archiveFile))
		if err != nil {
			return err
		}
		arch.Close()
	}

	decl := a.declaration(space)
	var buf bytes.Buffer
	if err := decl.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(a.Config.Paths.Declaration, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: write declaration: %v", cloptune.ErrConfig, err)
	}
	return nil
}

// ensureDirs creates the directories the trial path will write into.
func (a *App) ensureDirs() error {
	dirs := []string{
		a.Config.Paths.MatchDir,
		filepath.Dir(a.Config.Paths.Declaration),
	}
	if a.Config.Paths.Log != "" {
		dirs = append(dirs, filepath.Dir(a.Config.Paths.Log))
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", cloptune.ErrConfig, dir, err)
		}
	}
	return nil
}

// declaration assembles the optimizer's input from the configuration
// and the validated space.
func (a *App) declaration(space *cloptune.Space) clop.Declaration {
	script := make([]string, 0, len(a.Config.Connection.FixedArgs)+2)
	script = append(script, a.Config.Connection.Script)
	script = append(script, a.Config.Connection.FixedArgs...)
	script = append(script, clop.TrialCommand)

	return clop.Declaration{
		Name:         a.Config.Name,
		Script:       script,
		Params:       space.Specs(),
		Processors:   a.Config.Tuning.Processors,
		Replications: a.Config.Tuning.Replications,
		DrawElo:      a.drawElo(),
		H:            a.Config.Tuning.H,
		Correlations: a.Config.Tuning.Correlations,
		StopOnError:  !a.Config.Tuning.TolerateErrors,
	}
}

// drawElo estimates the plausible draw-probability range for the
// optimizer: an integral komi makes jigo possible, and a tolerant error
// policy converts abnormal games into draws, so either pushes the
// indicator up; a fractional komi under a strict policy means draws
// cannot happen.
func (a *App) drawElo() int {
	komi := a.Config.Game.Komi
	if komi == math.Trunc(komi) || a.Config.Tuning.TolerateErrors {
		return 100
	}
	return 0
}
