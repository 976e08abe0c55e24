package cmd

import (
	"context"
	"log/slog"
)

// Fmt re-emits a dataset in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as .m statements (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native re-emits a dataset as .m statements that load back to an equal
// dataset.
type Native struct {
	Source string `arg:"" default:"-" help:"NOVA .m export, or '-' for stdin." name:"file"`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := ds.Format(ctx, outputFrom(ctx)); err != nil {
		return ErrWriteOutput.With(slog.String("format", "native")).Wrap(err)
	}

	return nil
}

// JSON re-emits a dataset as a JSON object of nested number arrays.
type JSON struct {
	Indent int `default:"2" help:"Indent width; 0 writes one line." short:"i"`

	Source string `arg:"" default:"-" help:"NOVA .m export, or '-' for stdin." name:"file"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, j.Source)
	if err != nil {
		return err
	}

	if err := ds.FormatJSON(ctx, outputFrom(ctx), j.Indent); err != nil {
		return ErrWriteOutput.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML re-emits a dataset as a YAML mapping of nested number sequences.
type YAML struct {
	Indent int `default:"2" help:"Indent width; 0 writes flow style." short:"i"`

	Source string `arg:"" default:"-" help:"NOVA .m export, or '-' for stdin." name:"file"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, y.Source)
	if err != nil {
		return err
	}

	if err := ds.FormatYAML(ctx, outputFrom(ctx), y.Indent); err != nil {
		return ErrWriteOutput.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}
