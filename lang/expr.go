package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by an [Expression].
type Kind uint8

const (
	KindNone      Kind = iota // none
	KindTimestamp             // timestamp
	KindDuration              // duration
	KindOffset                // offset
)

// Expression is the result of evaluating one line: a timestamp in seconds
// since the Unix epoch, a signed duration in milliseconds, a UTC offset
// declaration, or nothing.
//
// The zero value is the none expression. Expressions are comparable values;
// arithmetic never mutates its operands.
type Expression struct {
	kind  Kind
	value int64
}

// NewTimestamp returns a timestamp expression for the given Unix seconds.
func NewTimestamp(seconds int64) Expression {
	return Expression{kind: KindTimestamp, value: seconds}
}

// NewDuration returns a duration expression for the given milliseconds.
// Durations are symmetric around zero, so [math.MinInt64] yields none.
func NewDuration(milliseconds int64) Expression {
	if milliseconds == math.MinInt64 {
		return Expression{}
	}

	return Expression{kind: KindDuration, value: milliseconds}
}

// NewOffset returns an offset expression, or none if o is out of range.
func NewOffset(o Offset) Expression {
	if !o.Valid() {
		return Expression{}
	}

	return Expression{kind: KindOffset, value: int64(o)}
}

// Kind returns the active variant.
func (e Expression) Kind() Kind { return e.kind }

// IsNone reports whether e holds no value.
func (e Expression) IsNone() bool { return e.kind == KindNone }

// Unix returns the timestamp in seconds and whether e is a timestamp.
func (e Expression) Unix() (int64, bool) {
	return e.value, e.kind == KindTimestamp
}

// Milliseconds returns the duration in milliseconds and whether e is a
// duration.
func (e Expression) Milliseconds() (int64, bool) {
	return e.value, e.kind == KindDuration
}

// Offset returns the declared offset and whether e is an offset.
func (e Expression) Offset() (Offset, bool) {
	if e.kind != KindOffset {
		return 0, false
	}

	return Offset(e.value), true
}

// Equal reports whether e and other hold the same variant and value.
func (e Expression) Equal(other Expression) bool {
	if e.kind == KindNone {
		return other.kind == KindNone
	}

	return e.kind == other.kind && e.value == other.value
}

// String returns a compact representation used in logs and test failures.
func (e Expression) String() string {
	switch e.kind {
	case KindTimestamp:
		return "timestamp(" + strconv.FormatInt(e.value, 10) + ")"
	case KindDuration:
		return "duration(" + FormatDuration(e.value) + ")"
	case KindOffset:
		return "offset(" + Offset(e.value).String() + ")"
	default:
		return KindNone.String()
	}
}

// Add combines e and other. The result kind depends on the operand kinds:
//
//	duration  + duration  = duration
//	duration  + timestamp = timestamp
//	timestamp + duration  = timestamp
//	timestamp + timestamp = duration (sum of seconds)
//
// Any other combination, or an overflow, yields none.
func (e Expression) Add(other Expression) Expression {
	switch [2]Kind{e.kind, other.kind} {
	case [2]Kind{KindDuration, KindDuration}:
		return duration(addInt64(e.value, other.value))

	case [2]Kind{KindDuration, KindTimestamp}:
		return timestamp(addInt64(other.value, e.seconds()))

	case [2]Kind{KindTimestamp, KindDuration}:
		return timestamp(addInt64(e.value, other.seconds()))

	case [2]Kind{KindTimestamp, KindTimestamp}:
		return seconds(addInt64(e.value, other.value))
	}

	return Expression{}
}

// Sub subtracts other from e. The result kind follows the same table as
// [Expression.Add], except duration - timestamp subtracts the timestamp from
// the duration's whole seconds and yields a timestamp.
func (e Expression) Sub(other Expression) Expression {
	switch [2]Kind{e.kind, other.kind} {
	case [2]Kind{KindDuration, KindDuration}:
		return duration(subInt64(e.value, other.value))

	case [2]Kind{KindDuration, KindTimestamp}:
		return timestamp(subInt64(e.seconds(), other.value))

	case [2]Kind{KindTimestamp, KindDuration}:
		return timestamp(subInt64(e.value, other.seconds()))

	case [2]Kind{KindTimestamp, KindTimestamp}:
		return seconds(subInt64(e.value, other.value))
	}

	return Expression{}
}

// seconds returns the whole seconds of a duration, truncated toward zero.
func (e Expression) seconds() int64 { return e.value / 1000 }

func timestamp(v int64, ok bool) Expression {
	if !ok {
		return Expression{}
	}

	return NewTimestamp(v)
}

func duration(v int64, ok bool) Expression {
	if !ok {
		return Expression{}
	}

	return NewDuration(v)
}

// seconds converts a sum or difference of timestamps to a duration.
func seconds(v int64, ok bool) Expression {
	if !ok {
		return Expression{}
	}

	return duration(mulInt64(v, 1000))
}

func addInt64(a, b int64) (int64, bool) {
	s := a + b

	return s, (s > a) == (b > 0)
}

func subInt64(a, b int64) (int64, bool) {
	d := a - b

	return d, (d < a) == (b > 0)
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) ||
		(b == -1 && a == math.MinInt64) {
		return 0, false
	}

	return p, true
}

// saturate converts f to int64, truncating toward zero and clamping values
// outside the int64 range. NaN converts to zero.
func saturate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}
