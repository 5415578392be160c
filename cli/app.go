package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sgfkit/cloptune"
	"github.com/sgfkit/cloptune/clop"
	"github.com/sgfkit/cloptune/config"
	"github.com/sgfkit/cloptune/internal/archive"
)

// SetupCommand is the sub-command that exports the declaration file and
// prepares output directories. Trial invocations use [clop.TrialCommand].
const SetupCommand = "setup"

// archiveFile is the SQLite database name under the match directory.
const archiveFile = "matches.db"

// App wires the configuration, the user's candidate builder, and a game
// runner into the connection-script process surface.
type App struct {
	// ConfigPath, when set, makes [App.Main] load the configuration
	// itself so a load failure on the trial path still reaches the
	// fallback token. Leave it empty to supply Config preloaded.
	ConfigPath string

	Config  config.Config
	Builder cloptune.Builder
	Runner  cloptune.Runner

	// Stdout and Stderr default to the process streams. Stdout carries
	// nothing but the single outcome token on the trial path.
	Stdout io.Writer
	Stderr io.Writer
}

// Main dispatches one invocation and returns the process exit code.
//
// The argument list is the configured fixed leading arguments followed
// by a sub-command token. For [SetupCommand] no further arguments are
// accepted; for [clop.TrialCommand] the tail is the connection calling
// convention (<processor> <seed> [<name> <value>]...).
//
// On the trial path Main upholds the connection contract's critical
// invariant: no matter where the pipeline fails — argument decoding,
// configuration, candidate construction, game execution, classification,
// log or archive plumbing — it still prints the literal Error token on
// stdout before returning non-zero, so the waiting optimizer process is
// never left without a terminal signal. The setup path never emits
// tokens.
func (a *App) Main(argv []string) int {
	stdout, stderr := a.streams()

	if a.ConfigPath != "" {
		cfg, err := config.Load(a.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "cloptune: config: %v\n", err)
			// The fixed-argument count is unknown without the
			// configuration, so a trial invocation is recognized by
			// its sub-command token alone.
			for _, arg := range argv {
				if arg == clop.TrialCommand {
					fmt.Fprintln(stdout, clop.TokenError)
					break
				}
			}
			return 1
		}
		a.Config = cfg
	}

	fixed := len(a.Config.Connection.FixedArgs)
	if len(argv) < fixed+1 {
		a.usage(stderr)
		return 2
	}
	cmd, rest := argv[fixed], argv[fixed+1:]

	switch cmd {
	case SetupCommand:
		if len(rest) != 0 {
			fmt.Fprintf(stderr, "cloptune: %s takes no arguments\n", SetupCommand)
			a.usage(stderr)
			return 2
		}
		if err := a.runSetup(); err != nil {
			fmt.Fprintf(stderr, "cloptune: setup: %v\n", err)
			return 1
		}
		return 0

	case clop.TrialCommand:
		outcome, err := a.playTrial(rest, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "cloptune: trial: %v\n", err)
			fmt.Fprintln(stdout, clop.TokenError)
			return 1
		}
		fmt.Fprintln(stdout, string(outcome))
		return 0

	default:
		fmt.Fprintf(stderr, "cloptune: unknown command %q\n", cmd)
		a.usage(stderr)
		return 2
	}
}

// playTrial runs one trial end to end and returns its outcome. All
// failure modes, including panics anywhere downstream, surface as the
// returned error so Main's single emission point decides between the
// outcome token and the Error fallback.
func (a *App) playTrial(args []string, stderr io.Writer) (outcome cloptune.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	trial, err := clop.ParseTrialArgs(args)
	if err != nil {
		return "", err
	}

	logger, closeLog, err := a.openLogger(stderr)
	if err != nil {
		return "", err
	}
	defer closeLog()
	logger = logger.With("processor", trial.Processor, "seed", trial.Seed)

	// Runs before closeLog, so failures (including panics from the
	// trial body) reach the shared log with full detail.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			a.logFailure(logger, err)
		}
	}()

	tuner, err := a.tuner(logger)
	if err != nil {
		return "", err
	}

	// One invocation is one trial: it runs to completion or to a
	// reported failure, with no timeout or cancellation of its own.
	ctx := context.Background()

	report, err := tuner.RunTrial(ctx, trial.Seed, trial.Vector)
	if err != nil {
		return "", err
	}

	if err := a.archiveTrial(ctx, trial, report); err != nil {
		return "", err
	}
	return report.Outcome, nil
}

// tuner assembles the trial bridge from the loaded configuration.
func (a *App) tuner(logger *slog.Logger) (*cloptune.Tuner, error) {
	space, err := a.Config.Space()
	if err != nil {
		return nil, err
	}
	settings, err := a.Config.Settings()
	if err != nil {
		return nil, err
	}
	return cloptune.New(space, a.Builder, a.Runner, settings, cloptune.WithLogger(logger))
}

// openLogger opens the shared append-only JSON log. Each invocation
// appends short self-contained records, so concurrent siblings need no
// coordination beyond O_APPEND. With no log path configured, records go
// to stderr; stdout stays reserved for the outcome token either way.
func (a *App) openLogger(stderr io.Writer) (*slog.Logger, func(), error) {
	if a.Config.Paths.Log == "" {
		return slog.New(slog.NewJSONHandler(stderr, nil)), func() {}, nil
	}
	f, err := os.OpenFile(a.Config.Paths.Log, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", a.Config.Paths.Log, err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

// logFailure records the failure with full detail, including any
// captured build trace.
func (a *App) logFailure(logger *slog.Logger, err error) {
	attrs := []any{"error", err.Error()}
	if trace, ok := cloptune.BuildTrace(err); ok && trace != "" {
		attrs = append(attrs, "trace", trace)
	}
	logger.Error("trial failed", attrs...)
}

// archiveTrial appends the classified trial to the match archive.
// Archiving is disabled when no match directory is configured.
func (a *App) archiveTrial(ctx context.Context, trial clop.TrialArgs, report cloptune.Report) error {
	if a.Config.Paths.MatchDir == "" {
		return nil
	}
	arch, err := archive.Open(filepath.Join(a.Config.Paths.MatchDir, archiveFile))
	if err != nil {
		return err
	}
	defer arch.Close()

	_, err = arch.Append(ctx, archive.Record{
		Processor: trial.Processor,
		Seed:      trial.Seed,
		Params:    report.Values.String(),
		Outcome:   report.Outcome,
		Detail:    report.Result.Detail,
	})
	return err
}

func (a *App) streams() (io.Writer, io.Writer) {
	stdout, stderr := a.Stdout, a.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

func (a *App) usage(stderr io.Writer) {
	script := a.Config.Connection.Script
	if script == "" {
		script = "connection-script"
	}
	prefix := script
	for _, arg := range a.Config.Connection.FixedArgs {
		prefix += " " + arg
	}
	fmt.Fprintf(stderr, "usage:\n  %s %s\n  %s %s <processor> <seed> [<name> <value>]...\n",
		prefix, SetupCommand, prefix, clop.TrialCommand)
}
