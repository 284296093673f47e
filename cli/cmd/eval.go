package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ardnew/utcalc/lang"
	"github.com/ardnew/utcalc/log"
)

// Output formats accepted by eval.
const (
	OutputAuto  = "auto"
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Eval evaluates a document and prints one result per line.
//
// The document comes from the positional arguments (one line each), from
// --source, or from a piped stdin, in that order of preference.
type Eval struct {
	Output string   `default:"auto" enum:"auto,text,table,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int      `default:"2"                                      help:"Indentation for json and yaml output."`
	Lines  []string `                                                 help:"Document lines to evaluate."            arg:"" optional:"" name:"line"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	streams := streamsFrom(ctx)
	now := clockFrom(ctx)()
	opts := []lang.Option{lang.WithLogger(log.With(slog.String("command", "eval")))}

	records, err := e.records(ctx, streams.In, now, opts...)
	if err != nil {
		return err
	}

	output := resolveOutput(e.Output, streams.Out)

	log.DebugContext(ctx, "eval formatting records",
		slog.String("output", output),
		slog.Int("records", len(records)),
		slog.Int64("now", now),
	)

	switch output {
	case OutputText:
		return records.FormatText(ctx, streams.Out)
	case OutputTable:
		return records.FormatTable(ctx, streams.Out)
	case OutputJSON:
		return records.FormatJSON(ctx, streams.Out, e.Indent)
	case OutputYAML:
		return records.FormatYAML(ctx, streams.Out, e.Indent)
	default:
		return ErrInvalidOutput.With(slog.String("output", e.Output))
	}
}

func (e *Eval) records(
	ctx context.Context,
	stdin io.Reader,
	now int64,
	opts ...lang.Option,
) (lang.Records, error) {
	if len(e.Lines) > 0 {
		return lang.Parse(ctx, strings.Join(e.Lines, "\n"), now, opts...), nil
	}

	if src := sourceFilesFrom(ctx); src != nil {
		defer src.Close()

		text, err := src.Document()
		if err != nil {
			return nil, ErrReadSource.Wrap(err)
		}

		return lang.Parse(ctx, text, now, opts...), nil
	}

	if isTerminal(stdin) {
		return nil, ErrNoInput
	}

	records, err := lang.ParseReader(ctx, stdin, now, opts...)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("source", "stdin")).Wrap(err)
	}

	// A trailing newline ends the last line rather than starting a new one.
	if n := len(records); n > 1 && records[n-1].Input == "" {
		records = records[:n-1]
	}

	return records, nil
}

// resolveOutput picks a concrete output format for "auto": a table on a
// terminal, plain text otherwise.
func resolveOutput(output string, w io.Writer) string {
	if output != OutputAuto && output != "" {
		return output
	}

	if isTerminal(w) {
		return OutputTable
	}

	return OutputText
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}
