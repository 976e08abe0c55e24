package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/mdt/mfile"
)

// Eval evaluates an expression against a dataset.
type Eval struct {
	Source string `arg:"" help:"NOVA .m export, or '-' for stdin."          name:"file"`
	Expr   string `arg:"" help:"Expression; variables are nested number lists." name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, e.Source)
	if err != nil {
		return err
	}

	result, err := ds.Evaluate(ctx, e.Expr)
	if err != nil {
		return ErrEvaluate.With(slog.String("expr", e.Expr)).Wrap(err)
	}

	_, err = fmt.Fprintln(outputFrom(ctx), mfile.FormatResult(result))
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
