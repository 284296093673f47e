package lang

import (
	"math"
	"testing"
)

func TestExpression_ZeroValue(t *testing.T) {
	var e Expression

	if e.Kind() != KindNone || !e.IsNone() {
		t.Fatalf("zero expression kind = %v, want none", e.Kind())
	}

	if _, ok := e.Unix(); ok {
		t.Error("zero expression reported a timestamp")
	}

	if _, ok := e.Milliseconds(); ok {
		t.Error("zero expression reported a duration")
	}

	if _, ok := e.Offset(); ok {
		t.Error("zero expression reported an offset")
	}

	if e.String() != "none" {
		t.Errorf("String() = %q, want none", e.String())
	}
}

func TestExpression_Constructors(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		kind Kind
	}{
		{"timestamp", NewTimestamp(-5), KindTimestamp},
		{"duration", NewDuration(1500), KindDuration},
		{"max duration", NewDuration(math.MaxInt64), KindDuration},
		{"min duration", NewDuration(math.MinInt64), KindNone},
		{"offset", NewOffset(-23), KindOffset},
		{"offset out of range", NewOffset(24), KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestExpression_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Expression
		want bool
	}{
		{"same timestamp", NewTimestamp(1), NewTimestamp(1), true},
		{"different timestamp", NewTimestamp(1), NewTimestamp(2), false},
		{"same value different kind", NewTimestamp(1), NewDuration(1), false},
		{"none", Expression{}, NewOffset(99), true},
		{"none and zero timestamp", Expression{}, NewTimestamp(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}

			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestExpression_Arithmetic(t *testing.T) {
	var (
		none = Expression{}
		ts   = NewTimestamp
		dur  = NewDuration
		off  = NewOffset(3)
	)

	tests := []struct {
		name string
		a, b Expression
		add  Expression
		sub  Expression
	}{
		{"duration duration", dur(3000), dur(500), dur(3500), dur(2500)},
		{"timestamp duration", ts(100), dur(2500), ts(102), ts(98)},
		{"duration timestamp", dur(2500), ts(100), ts(102), ts(-98)},
		{"negative duration truncates toward zero", ts(100), dur(-2500), ts(98), ts(102)},
		{"timestamp timestamp", ts(100), ts(70), dur(170000), dur(30000)},
		{"offset left", off, ts(1), none, none},
		{"offset right", dur(1), off, none, none},
		{"none left", none, dur(1), none, none},
		{"none right", ts(1), none, none, none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); !got.Equal(tt.add) {
				t.Errorf("%v + %v = %v, want %v", tt.a, tt.b, got, tt.add)
			}

			if got := tt.a.Sub(tt.b); !got.Equal(tt.sub) {
				t.Errorf("%v - %v = %v, want %v", tt.a, tt.b, got, tt.sub)
			}
		})
	}
}

func TestExpression_AdditionCommutesForTimestampAndDuration(t *testing.T) {
	for _, sec := range []int64{-86400, 0, 1, 1399403287} {
		for _, ms := range []int64{-1500, 0, 999, 1000, 90061500} {
			ts, d := NewTimestamp(sec), NewDuration(ms)

			want := NewTimestamp(sec + ms/1000)
			if got := ts.Add(d); !got.Equal(want) {
				t.Errorf("%v + %v = %v, want %v", ts, d, got, want)
			}

			if got := d.Add(ts); !got.Equal(want) {
				t.Errorf("%v + %v = %v, want %v", d, ts, got, want)
			}
		}
	}
}

func TestExpression_Overflow(t *testing.T) {
	var (
		maxTS  = NewTimestamp(math.MaxInt64)
		minTS  = NewTimestamp(math.MinInt64)
		maxDur = NewDuration(math.MaxInt64)
	)

	tests := []struct {
		name string
		got  Expression
	}{
		{"timestamp sum", maxTS.Add(NewTimestamp(1))},
		{"timestamp difference", minTS.Sub(NewTimestamp(1))},
		{"timestamp sum to milliseconds", NewTimestamp(math.MaxInt64 / 999).Add(NewTimestamp(0))},
		{"timestamp plus duration", maxTS.Add(NewDuration(1000))},
		{"duration plus timestamp", NewDuration(1000).Add(maxTS)},
		{"timestamp minus duration", minTS.Sub(NewDuration(1000))},
		{"duration minus timestamp", NewDuration(-2000).Sub(maxTS)},
		{"duration sum", maxDur.Add(NewDuration(1))},
		{"duration difference", NewDuration(-math.MaxInt64).Sub(NewDuration(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsNone() {
				t.Errorf("got %v, want none", tt.got)
			}
		})
	}
}

func TestExpression_NoOverflowAtBounds(t *testing.T) {
	if got := NewDuration(math.MaxInt64 - 1).Add(NewDuration(1)); !got.Equal(NewDuration(math.MaxInt64)) {
		t.Errorf("got %v, want max duration", got)
	}

	if got := NewTimestamp(math.MaxInt64).Add(NewDuration(999)); !got.Equal(NewTimestamp(math.MaxInt64)) {
		t.Errorf("sub-second duration changed saturated timestamp: %v", got)
	}

	if got := NewTimestamp(math.MaxInt64).Add(NewDuration(0)); got.IsNone() {
		t.Error("adding zero overflowed")
	}
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{1.9, 1},
		{-1.9, -1},
		{1e300, math.MaxInt64},
		{-1e300, math.MinInt64},
		{math.Inf(1), math.MaxInt64},
		{math.Inf(-1), math.MinInt64},
		{math.NaN(), 0},
		{9223372036854775807, math.MaxInt64},
	}

	for _, tt := range tests {
		if got := saturate(tt.in); got != tt.want {
			t.Errorf("saturate(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
