package lang

import "time"

// dateTimeLayout names the separators of a quoted date-time literal
// 'YYYY<date>MM<date>DD<clock>HH:MM:SS'.
type dateTimeLayout struct {
	date  byte
	clock byte
}

// dateTimeLayouts is ordered by match priority.
var dateTimeLayouts = []dateTimeLayout{
	{date: '-', clock: ' '},
	{date: '-', clock: 'T'},
	{date: '/', clock: ' '},
}

// datetime parses a single-quoted date-time literal in the state's offset.
// A literal that matches a layout but names an impossible instant (month 13,
// February 30, hour 24) still matches and yields none.
func (p *parser) datetime() (Expression, bool) {
	for _, layout := range dateTimeLayouts {
		if e, ok := p.dateTimeLiteral(layout); ok {
			return e, true
		}
	}

	return Expression{}, false
}

func (p *parser) dateTimeLiteral(layout dateTimeLayout) (Expression, bool) {
	mark := p.pos

	fields := [...]struct {
		width int
		sep   byte // repeatable, zero after the last field
	}{
		{4, layout.date},  // year
		{2, layout.date},  // month
		{2, layout.clock}, // day
		{2, ':'},          // hour
		{2, ':'},          // minute
		{2, 0},            // second
	}

	var values [len(fields)]int

	if !p.accept('\'') {
		return Expression{}, false
	}

	for i, field := range fields {
		v, ok := p.fixedDigits(field.width)
		if !ok {
			p.reset(mark)

			return Expression{}, false
		}

		values[i] = v

		if field.sep == 0 {
			continue
		}

		if !p.accept(field.sep) {
			p.reset(mark)

			return Expression{}, false
		}

		for p.accept(field.sep) {
		}
	}

	if !p.accept('\'') {
		p.reset(mark)

		return Expression{}, false
	}

	return civilTime(values, p.state.Offset), true
}

// fixedDigits parses exactly n decimal digits.
func (p *parser) fixedDigits(n int) (int, bool) {
	if len(p.input)-p.pos < n {
		return 0, false
	}

	v := 0

	for _, c := range []byte(p.input[p.pos : p.pos+n]) {
		if !isDigit(c) {
			return 0, false
		}

		v = v*10 + int(c-'0')
	}

	p.pos += n

	return v, true
}

// civilTime converts year, month, day, hour, minute and second in offset o
// to a timestamp. Out-of-range fields yield none instead of normalizing.
func civilTime(f [6]int, o Offset) Expression {
	year, month, day := f[0], time.Month(f[1]), f[2]
	hour, minute, second := f[3], f[4], f[5]

	switch {
	case month < time.January || month > time.December,
		day < 1 || day > daysIn(year, month),
		hour > 23, minute > 59, second > 59:
		return Expression{}
	}

	t := time.Date(year, month, day, hour, minute, second, 0, o.Location())

	return NewTimestamp(t.Unix())
}

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
