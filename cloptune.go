// Package cloptune bridges the CLOP black-box optimizer with a game
// backend that plays one automated match and reports the outcome.
//
// cloptune implements the CLOP connection-script side of a tuning run:
// the optimizer repeatedly spawns a short-lived process with a candidate
// parameter vector and a trial seed, and expects exactly one outcome
// token on standard output.
//
// # Core Types
//
//   - [Space] — the validated, immutable parameter-space registry
//   - [Builder] — user callback turning typed parameter values into a competitor
//   - [Runner] — the external game backend that plays one match
//   - [Tuner] — runs one trial: interpret → build → play → classify
//   - [Outcome] — the three-way Win/Draw/Loss classification
//
// # Vocabulary
//
// The root package defines the shared vocabulary for a tuning run:
// parameter kinds and specs, the per-trial raw [Vector], the typed
// [Values] fed to the builder, and the [GameJob]/[GameResult] exchanged
// with the game backend. The clop package speaks the optimizer's wire
// formats (declaration file, connection arguments, outcome tokens), and
// the cli package adapts a [Tuner] to the connection-script process
// contract.
//
// # Quick Start
//
//	space, err := cloptune.NewSpace([]cloptune.ParamSpec{
//	    {Code: "capture_bonus", Kind: cloptune.KindLinear, Min: 0, Max: 1},
//	})
//	if err != nil { log.Fatal(err) }
//	tuner, err := cloptune.New(space, buildCandidate, runner, settings)
//	if err != nil { log.Fatal(err) }
//	report, err := tuner.RunTrial(ctx, "42", vector)
package cloptune
