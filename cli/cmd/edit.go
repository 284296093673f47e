package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/ardnew/utcalc/cli/cmd/edit"
	"github.com/ardnew/utcalc/log"
)

// Edit opens the interactive editor, seeded with the given lines or with the
// --source documents.
type Edit struct {
	Lines []string `arg:"" help:"Initial document lines." name:"line" optional:""`
}

// Run executes the edit command.
func (e *Edit) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	document, err := e.document(ctx)
	if err != nil {
		return err
	}

	streams := streamsFrom(ctx)

	return edit.Run(ctx, document,
		edit.WithClock(clockFrom(ctx)),
		edit.WithLogger(log.With(slog.String("command", "edit"))),
		edit.WithClipboard(copyText),
		edit.WithInput(streams.In),
		edit.WithOutput(streams.Out),
	)
}

func (e *Edit) document(ctx context.Context) (string, error) {
	if len(e.Lines) > 0 {
		return strings.Join(e.Lines, "\n"), nil
	}

	src := sourceFilesFrom(ctx)
	if src == nil {
		return "", nil
	}

	defer src.Close()

	text, err := src.Document()
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	return text, nil
}

func copyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return ErrClipboard.Wrap(err)
	}

	return nil
}
