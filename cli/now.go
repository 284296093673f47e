package cli

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ardnew/utcalc/cli/cmd"
	"github.com/ardnew/utcalc/lang"
)

// nowFlag pins the value of "now" for a run.
//
// It accepts any expression that evaluates to a timestamp, such as
// "1700000000", "'2024-03-01 07:00:00'" or "now - 1d" (where "now" is the
// wall clock), or an RFC 3339 time such as "2024-03-01T07:00:00+01:00".
type nowFlag struct {
	unix int64
	set  bool
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *nowFlag) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*n = nowFlag{}

		return nil
	}

	expr, err := lang.ParseExpression(s, lang.State{Now: cmd.SystemClock()})
	if err == nil {
		if unix, ok := expr.Unix(); ok {
			*n = nowFlag{unix: unix, set: true}

			return nil
		}
	}

	if t, terr := time.Parse(time.RFC3339, s); terr == nil {
		*n = nowFlag{unix: t.Unix(), set: true}

		return nil
	}

	return cmd.ErrInvalidNow.With(slog.String("now", s))
}

// clock returns the fixed clock when the flag was given, or the wall clock.
func (n nowFlag) clock() cmd.Clock {
	if n.set {
		return cmd.FixedClock(n.unix)
	}

	return cmd.SystemClock
}
