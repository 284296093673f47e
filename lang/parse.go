package lang

import (
	"errors"
	"strconv"
)

// State is the read-only context a single line is evaluated in.
type State struct {
	// Offset is the UTC offset active for the line. Date-time literals are
	// interpreted in it.
	Offset Offset
	// Now is the instant "now" resolves to, in Unix seconds.
	Now int64
	// Prior holds the expressions of all preceding lines. Back-reference #N
	// resolves to Prior[N-1].
	Prior []Expression
}

// ParseExpression parses text as a single expression evaluated in state.
//
// The whole text must match. Grammar mismatches return [ErrParse] with the
// furthest position reached. Well-formed input that cannot be evaluated
// (invalid calendar dates, arithmetic overflow, dangling references) is not
// an error; it yields the none expression.
//
// Offset directives are not expressions; see [EvaluateLine].
func ParseExpression(text string, state State) (Expression, error) {
	p := parser{input: text, state: &state}

	e, ok := p.expression()
	if !ok || !p.eof() {
		return Expression{}, ErrParse.WithPosition(p.furthest())
	}

	return e, nil
}

// EvaluateLine evaluates one document line. Lines that are not expressions
// are tried as offset directives; anything else yields none.
func EvaluateLine(line string, state State) Expression {
	e, err := ParseExpression(line, state)
	if err == nil {
		return e
	}

	if o, ok := ParseDirective(line); ok {
		return NewOffset(o)
	}

	return Expression{}
}

// parser is a backtracking recursive descent parser over a single line.
// Each rule either consumes its match and reports true, or leaves pos where
// it found it and reports false.
type parser struct {
	input string
	pos   int
	far   int
	state *State
}

// expression parses Atom ( _ ('+' | '-') _ Atom )*, left-associative.
func (p *parser) expression() (Expression, bool) {
	lhs, ok := p.atom()
	if !ok {
		return Expression{}, false
	}

	for {
		mark := p.pos

		p.spaces()

		op := p.peek()
		if op != '+' && op != '-' {
			p.reset(mark)

			return lhs, true
		}

		p.pos++
		p.spaces()

		rhs, ok := p.atom()
		if !ok {
			// The operator belongs to no expression.
			p.reset(mark)

			return lhs, true
		}

		if op == '+' {
			lhs = lhs.Add(rhs)
		} else {
			lhs = lhs.Sub(rhs)
		}
	}
}

// atom tries, in order: a parenthesized expression, a duration, a timestamp
// and a back-reference.
func (p *parser) atom() (Expression, bool) {
	if e, ok := p.group(); ok {
		return e, true
	}

	if e, ok := p.durations(); ok {
		return e, true
	}

	if e, ok := p.timestamp(); ok {
		return e, true
	}

	return p.reference()
}

func (p *parser) group() (Expression, bool) {
	mark := p.pos

	if !p.accept('(') {
		return Expression{}, false
	}

	p.spaces()

	e, ok := p.expression()
	if ok {
		p.spaces()

		if p.accept(')') {
			return e, true
		}
	}

	p.reset(mark)

	return Expression{}, false
}

// durations parses one or more adjacent duration terms and sums them.
func (p *parser) durations() (Expression, bool) {
	sum, ok := p.durationTerm()
	if !ok {
		return Expression{}, false
	}

	for {
		term, ok := p.durationTerm()
		if !ok {
			return sum, true
		}

		sum = sum.Add(term)
	}
}

// durationUnit converts a number to milliseconds by multiplying the factors
// in order.
type durationUnit struct {
	suffix  string
	factors []float64
	bounded bool // suffix must not be followed by a letter
}

// durationUnits is ordered by match priority. "m" precedes "ms" and relies on
// its boundary check to reject "5ms".
var durationUnits = []durationUnit{
	{suffix: "s", factors: []float64{1e3}, bounded: true},
	{suffix: "m", factors: []float64{1e3, 60}, bounded: true},
	{suffix: "h", factors: []float64{1e3, 60, 60}, bounded: true},
	{suffix: "d", factors: []float64{1e3, 60, 60, 24}},
	{suffix: "ms", bounded: true},
}

func (p *parser) durationTerm() (Expression, bool) {
	mark := p.pos

	n, ok := p.number()
	if !ok {
		return Expression{}, false
	}

	after := p.pos

	for _, unit := range durationUnits {
		p.reset(after)

		if !p.literal(unit.suffix) || (unit.bounded && !p.end()) {
			continue
		}

		ms := n
		for _, f := range unit.factors {
			ms *= f
		}

		return NewDuration(saturate(ms)), true
	}

	p.reset(mark)

	return Expression{}, false
}

// timestamp parses '-' Number End | Number End | DateTime | "now".
func (p *parser) timestamp() (Expression, bool) {
	mark := p.pos

	if p.accept('-') {
		if n, ok := p.number(); ok && p.end() {
			return NewTimestamp(saturate(-n)), true
		}

		p.reset(mark)
	}

	if n, ok := p.number(); ok && p.end() {
		return NewTimestamp(saturate(n)), true
	}

	p.reset(mark)

	if e, ok := p.datetime(); ok {
		return e, true
	}

	if p.literal("now") {
		return NewTimestamp(p.state.Now), true
	}

	return Expression{}, false
}

// reference parses '#'+ Digit+ and resolves it against the prior lines.
func (p *parser) reference() (Expression, bool) {
	mark := p.pos

	if !p.accept('#') {
		return Expression{}, false
	}

	for p.accept('#') {
	}

	start := p.pos
	if !p.digits() {
		p.reset(mark)

		return Expression{}, false
	}

	n, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil || n == 0 || n > uint64(len(p.state.Prior)) {
		return Expression{}, true
	}

	return p.state.Prior[n-1], true
}

// number parses Digit+ ( '.' Digit* )? as a float. Literals beyond the
// float64 range become infinities and saturate on conversion.
func (p *parser) number() (float64, bool) {
	start := p.pos

	if !p.digits() {
		return 0, false
	}

	if p.accept('.') {
		p.digits()
	}

	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.reset(start)

		return 0, false
	}

	return n, true
}

// Helper methods

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) accept(ch byte) bool {
	if !p.eof() && p.input[p.pos] == ch {
		p.pos++

		return true
	}

	return false
}

func (p *parser) literal(s string) bool {
	if len(p.input)-p.pos < len(s) || p.input[p.pos:p.pos+len(s)] != s {
		return false
	}

	p.pos += len(s)

	return true
}

func (p *parser) digits() bool {
	start := p.pos
	for !p.eof() && isDigit(p.input[p.pos]) {
		p.pos++
	}

	return p.pos > start
}

func (p *parser) spaces() {
	for p.accept(' ') {
	}
}

// end succeeds when the next byte is not an ASCII letter. It consumes
// nothing.
func (p *parser) end() bool {
	return p.eof() || !isLetter(p.input[p.pos])
}

// reset backtracks to mark, remembering how far parsing got.
func (p *parser) reset(mark int) {
	p.far = max(p.far, p.pos)
	p.pos = mark
}

func (p *parser) furthest() int {
	return max(p.far, p.pos)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
