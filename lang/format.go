package lang

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder is the projection of a none expression.
const Placeholder = "..."

// TimeLayout is the layout of a displayed timestamp.
const TimeLayout = "2006-01-02 15:04:05-07:00"

// Timestamps outside these bounds (years -262144 through 262143 in UTC) are
// not displayed as dates.
var (
	minDisplayUnix = time.Date(-262144, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxDisplayUnix = time.Date(262144, time.January, 1, 0, 0, 0, 0, time.UTC).Unix() - 1
)

// Display renders the record for reading: a date-time in the record's offset,
// a compact duration, an offset name, or [Placeholder].
func (r Record) Display() string {
	switch r.Expression.kind {
	case KindTimestamp:
		sec := r.Expression.value
		if sec < minDisplayUnix || sec > maxDisplayUnix {
			return Placeholder
		}

		return time.Unix(sec, 0).In(r.Offset.Location()).Format(TimeLayout)

	case KindDuration:
		return FormatDuration(r.Expression.value)

	case KindOffset:
		return Offset(r.Expression.value).String()

	default:
		return Placeholder
	}
}

// Numeric renders the record as a number: Unix seconds for timestamps,
// fractional seconds for durations. Offsets render by name and none as
// [Placeholder].
func (r Record) Numeric() string {
	switch r.Expression.kind {
	case KindTimestamp:
		return strconv.FormatInt(r.Expression.value, 10)

	case KindDuration:
		return strconv.FormatFloat(float64(r.Expression.value)/1000, 'f', -1, 64)

	case KindOffset:
		return Offset(r.Expression.value).String()

	default:
		return Placeholder
	}
}

// FormatDuration renders milliseconds as the non-zero components among days,
// hours, minutes, seconds and milliseconds, e.g. "1d1h1m1s500ms". Negative
// durations are prefixed with "-" and zero renders as "0s".
func FormatDuration(ms int64) string {
	if ms == 0 {
		return "0s"
	}

	var sb strings.Builder

	abs := uint64(ms)
	if ms < 0 {
		abs = -abs

		sb.WriteByte('-')
	}

	for _, unit := range []struct {
		suffix string
		value  uint64
	}{
		{"d", abs / (24 * 60 * 60 * 1000)},
		{"h", abs / (60 * 60 * 1000) % 24},
		{"m", abs / (60 * 1000) % 60},
		{"s", abs / 1000 % 60},
		{"ms", abs % 1000},
	} {
		if unit.value > 0 {
			sb.WriteString(strconv.FormatUint(unit.value, 10))
			sb.WriteString(unit.suffix)
		}
	}

	return sb.String()
}
