package cloptune

import "log/slog"

// Option configures a [Tuner] at construction time.
type Option func(*Tuner)

// WithLogger sets the logger for trial progress and forwarded game
// diagnostics. Nil values are ignored; the default is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tuner) {
		if logger != nil {
			t.logger = logger
		}
	}
}
