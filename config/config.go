// Package config loads and validates the tuning-run configuration from
// a YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sgfkit/cloptune"
)

// Config holds the fixed configuration for one tuning run: everything
// the setup step exports to the optimizer plus everything a trial needs
// beyond its seed and vector.
type Config struct {
	// Name labels the experiment in the declaration file.
	Name string `yaml:"name" env:"CLOPTUNE_NAME"`

	Connection Connection          `yaml:"connection"`
	Tuning     Tuning              `yaml:"tuning"`
	Game       Game                `yaml:"game"`
	Opponent   cloptune.Competitor `yaml:"opponent"`
	Parameters []Param             `yaml:"parameters"`
	Paths      Paths               `yaml:"paths"`
}

// Connection describes how the optimizer invokes the connection script.
type Connection struct {
	// Script is the path the optimizer launches for each trial.
	Script string `yaml:"script" env:"CLOPTUNE_SCRIPT"`

	// FixedArgs are leading arguments written into the declaration's
	// Script line and skipped again when decoding a trial invocation.
	FixedArgs []string `yaml:"fixed_args" env:"CLOPTUNE_FIXED_ARGS" envSeparator:","`
}

// Tuning holds the optimizer's scalar settings.
type Tuning struct {
	Processors   int     `yaml:"processors" env:"CLOPTUNE_PROCESSORS"`
	Replications int     `yaml:"replications" env:"CLOPTUNE_REPLICATIONS"`
	H            float64 `yaml:"h" env:"CLOPTUNE_H"`
	Correlations string  `yaml:"correlations" env:"CLOPTUNE_CORRELATIONS"`

	// TolerateErrors degrades abnormally completed matches to draws
	// instead of failing the trial, and is exported to the optimizer as
	// the inverse of StopOnError.
	TolerateErrors bool `yaml:"tolerate_errors" env:"CLOPTUNE_TOLERATE_ERRORS"`
}

// Game holds the fixed match parameters shared by every trial.
type Game struct {
	// CandidateColor is "b" or "w"; the opponent takes the other color.
	CandidateColor string `yaml:"candidate_color"`

	BoardSize          int     `yaml:"board_size"`
	Komi               float64 `yaml:"komi"`
	MoveLimit          int     `yaml:"move_limit"`
	Handicap           int     `yaml:"handicap"`
	HandicapStyle      string  `yaml:"handicap_style"`
	Scoring            string  `yaml:"scoring"`
	CompensateHandicap bool    `yaml:"compensate_handicap"`
}

// Param declares one tunable dimension.
type Param struct {
	Code string  `yaml:"code"`
	Kind string  `yaml:"kind"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// Paths locates the run's filesystem surface.
type Paths struct {
	// Declaration is where setup writes the optimizer's input file.
	Declaration string `yaml:"declaration" env:"CLOPTUNE_DECLARATION"`

	// Log is the append-only JSON log shared by concurrent invocations.
	Log string `yaml:"log" env:"CLOPTUNE_LOG"`

	// MatchDir holds per-trial game records and the match archive.
	// Empty disables archiving.
	MatchDir string `yaml:"match_dir" env:"CLOPTUNE_MATCH_DIR"`
}

// Default returns the configuration baseline applied before the YAML
// file and environment overrides.
func Default() Config {
	return Config{
		Name: "cloptune",
		Tuning: Tuning{
			Processors:   1,
			Replications: 1,
			H:            3,
			Correlations: "all",
		},
		Game: Game{
			CandidateColor: string(cloptune.Black),
			BoardSize:      19,
			Komi:           7.5,
			MoveLimit:      1000,
			HandicapStyle:  string(cloptune.HandicapFixed),
			Scoring:        string(cloptune.ScoringTerritory),
		},
		Paths: Paths{
			Declaration: "tuning.clop",
			Log:         "cloptune.log",
			MatchDir:    "games",
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, and validates the result. Unknown YAML keys
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", cloptune.ErrConfig, path, err)
		}
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", cloptune.ErrConfig, path, err)
		}
	}

	// A .env file is a development convenience; absence is fine.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", cloptune.ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the optimizer-facing surface depends on.
// Parameter and game validation happens in [Config.Space] and
// [Config.Settings] respectively.
func (c Config) Validate() error {
	if c.Connection.Script == "" {
		return fmt.Errorf("%w: connection.script is required", cloptune.ErrConfig)
	}
	if c.Tuning.Processors <= 0 {
		return fmt.Errorf("%w: tuning.processors must be positive, got %d",
			cloptune.ErrConfig, c.Tuning.Processors)
	}
	if c.Tuning.Replications <= 0 {
		return fmt.Errorf("%w: tuning.replications must be positive, got %d",
			cloptune.ErrConfig, c.Tuning.Replications)
	}
	if c.Tuning.H <= 0 {
		return fmt.Errorf("%w: tuning.h must be positive, got %v", cloptune.ErrConfig, c.Tuning.H)
	}
	if c.Paths.Declaration == "" {
		return fmt.Errorf("%w: paths.declaration is required", cloptune.ErrConfig)
	}
	return nil
}

// Space builds the validated parameter-space registry from the declared
// parameters.
func (c Config) Space() (*cloptune.Space, error) {
	specs := make([]cloptune.ParamSpec, len(c.Parameters))
	for i, p := range c.Parameters {
		kind, err := parseKind(p.Kind)
		if err != nil {
			return nil, err
		}
		specs[i] = cloptune.ParamSpec{Code: p.Code, Kind: kind, Min: p.Min, Max: p.Max}
	}
	return cloptune.NewSpace(specs)
}

// Settings builds the immutable per-run trial settings.
func (c Config) Settings() (cloptune.Settings, error) {
	s := cloptune.Settings{
		CandidateColor:     cloptune.Color(c.Game.CandidateColor),
		Opponent:           c.Opponent,
		BoardSize:          c.Game.BoardSize,
		Komi:               c.Game.Komi,
		MoveLimit:          c.Game.MoveLimit,
		Handicap:           c.Game.Handicap,
		HandicapStyle:      cloptune.HandicapStyle(c.Game.HandicapStyle),
		Scoring:            cloptune.Scoring(c.Game.Scoring),
		CompensateHandicap: c.Game.CompensateHandicap,
		Policy:             cloptune.PolicyStrict,
	}
	if c.Tuning.TolerateErrors {
		s.Policy = cloptune.PolicyTolerant
	}
	return s, nil
}

// parseKind accepts either the CLOP declaration token or a lowercase
// shorthand ("linear", "integer", "gamma", "integer_gamma").
func parseKind(raw string) (cloptune.ParamKind, error) {
	switch raw {
	case "linear":
		return cloptune.KindLinear, nil
	case "integer":
		return cloptune.KindInteger, nil
	case "gamma":
		return cloptune.KindGamma, nil
	case "integer_gamma":
		return cloptune.KindIntegerGamma, nil
	}
	kind := cloptune.ParamKind(raw)
	if kind.Known() {
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown parameter kind %q", cloptune.ErrConfig, raw)
}
