package cmd

import (
	"context"

	"github.com/ardnew/mdt/cli/cmd/repl"
	"github.com/ardnew/mdt/log"
)

// Repl starts an interactive session over a dataset.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file."`

	Source string `arg:"" help:"NOVA .m export." name:"file"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, r.Source)
	if err != nil {
		return err
	}

	var history string
	if !r.NoHistory {
		history = kongVar(ctx, HistoryIdentifier)
	}

	return repl.Run(ctx, ds, history, log.Default())
}
