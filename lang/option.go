package lang

import "github.com/ardnew/utcalc/log"

// Option configures document evaluation.
type Option func(*config)

type config struct {
	logger   log.Logger
	evaluate func(string, State) Expression
}

func makeConfig(opts ...Option) config {
	c := config{evaluate: EvaluateLine}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithLogger sets the structured logger for evaluation diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
