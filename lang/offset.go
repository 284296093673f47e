package lang

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Offset is a UTC offset in whole hours east of Greenwich.
type Offset int8

// MaxOffset is the largest offset magnitude accepted by a directive.
const MaxOffset Offset = 23

// UTC is the offset every document starts with.
const UTC Offset = 0

// Valid reports whether o is within [-MaxOffset, MaxOffset].
func (o Offset) Valid() bool { return -MaxOffset <= o && o <= MaxOffset }

// Seconds returns the offset in seconds east of UTC.
func (o Offset) Seconds() int { return int(o) * 60 * 60 }

// String renders the offset as "UTC+H" or "UTC-H".
func (o Offset) String() string {
	if o < 0 {
		return "UTC-" + strconv.Itoa(-int(o))
	}

	return "UTC+" + strconv.Itoa(int(o))
}

// Location returns a fixed time zone for the offset, named by [Offset.String].
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), o.Seconds())
}

// MarshalText implements encoding.TextMarshaler.
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

var directive = regexp.MustCompile(`^#UTC([+-])([0-9]{1,2})$`)

// ParseDirective recognizes an offset directive line such as "#UTC+5" or
// "#UTC-11". Surrounding whitespace is ignored. The second result is false
// when s is not a directive or names an offset outside [-23, 23].
func ParseDirective(s string) (Offset, bool) {
	m := directive.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[2])
	if err != nil || n > int(MaxOffset) {
		return 0, false
	}

	if m[1] == "-" {
		n = -n
	}

	return Offset(n), true
}
