package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// Record is the resolved form of one document line.
type Record struct {
	// Input is the raw line text.
	Input string
	// Offset is the UTC offset that was active when the line was evaluated.
	// A directive line reports the offset from before its own declaration.
	Offset Offset
	// Expression is the evaluated line.
	Expression Expression
}

// Records is the ordered result of evaluating a document, one per line.
type Records []Record

// Expressions returns the expression of every record, in order.
func (rs Records) Expressions() []Expression {
	exprs := make([]Expression, len(rs))
	for i, r := range rs {
		exprs[i] = r.Expression
	}

	return exprs
}

// Failed returns the number of records that evaluated to none.
func (rs Records) Failed() int {
	n := 0

	for _, r := range rs {
		if r.Expression.IsNone() {
			n++
		}
	}

	return n
}

// Parse evaluates every line of text and returns one record per line.
//
// Lines are separated by '\n' only, so an empty document yields a single
// record. The active offset starts at [UTC] and changes on the line after an
// offset directive, or after a back-reference that resolves to an offset.
// Every "now" in the document resolves to now.
//
// Parse never fails. A line that does not parse, or that faults while
// evaluating, becomes a none record without affecting any other line.
func Parse(ctx context.Context, text string, now int64, opts ...Option) Records {
	cfg := makeConfig(opts...)

	lines := strings.Split(text, "\n")
	records := make(Records, 0, len(lines))
	prior := make([]Expression, 0, len(lines))
	offset := UTC

	for i, line := range lines {
		state := State{
			Offset: offset,
			Now:    now,
			Prior:  prior[:len(prior):len(prior)],
		}

		expr := cfg.safeEvaluate(ctx, i+1, line, state)

		records = append(records, Record{
			Input:      line,
			Offset:     offset,
			Expression: expr,
		})
		prior = append(prior, expr)

		if o, ok := expr.Offset(); ok {
			offset = o
		}

		cfg.logger.TraceContext(ctx, "evaluated line",
			slog.Int("line", i+1),
			slog.String("kind", expr.Kind().String()),
		)
	}

	cfg.logger.DebugContext(ctx, "evaluated document",
		slog.Int("lines", len(records)),
		slog.Int("failed", records.Failed()),
	)

	return records
}

// ParseReader reads a whole document from r and evaluates it with [Parse].
// CRLF line endings are read as LF.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	now int64,
	opts ...Option,
) (Records, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	return Parse(ctx, text, now, opts...), nil
}

// safeEvaluate runs the line evaluator, converting a panic into none.
func (c config) safeEvaluate(
	ctx context.Context,
	line int,
	text string,
	state State,
) (expr Expression) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.WarnContext(ctx, "recovered line evaluation",
				slog.Int("line", line),
				slog.String("panic", fmt.Sprint(r)),
			)

			expr = Expression{}
		}
	}()

	return c.evaluate(text, state)
}
