package edit

import (
	"io"
	"time"

	"github.com/atotto/clipboard"

	"github.com/ardnew/utcalc/log"
)

// Option configures an editor session.
type Option func(config) config

type config struct {
	clock  func() int64
	logger log.Logger
	copy   func(string) error
	input  io.Reader
	output io.Writer
	tick   time.Duration
}

func makeConfig(opts ...Option) config {
	cfg := config{
		clock:  func() int64 { return time.Now().Unix() },
		logger: log.Default(),
		copy:   clipboard.WriteAll,
		tick:   time.Second,
	}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithClock sets the source of "now". The editor polls it once per tick.
func WithClock(clock func() int64) Option {
	return func(c config) config {
		if clock != nil {
			c.clock = clock
		}

		return c
	}
}

// WithLogger sets the logger for the session and for document evaluation.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithClipboard replaces the function that receives copied results.
func WithClipboard(copy func(string) error) Option {
	return func(c config) config {
		if copy != nil {
			c.copy = copy
		}

		return c
	}
}

// WithInput sets the terminal input. Nil keeps the program default.
func WithInput(r io.Reader) Option {
	return func(c config) config {
		c.input = r

		return c
	}
}

// WithOutput sets the terminal output. Nil keeps the program default.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		c.output = w

		return c
	}
}
