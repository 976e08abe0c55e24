package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mdt/log"
	"github.com/ardnew/mdt/mfile"
)

// stdinSource is the FILE argument that selects standard input.
const stdinSource = "-"

type (
	contextKey     struct{}
	loadOptionsKey struct{}
	streamsKey     struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or "" if there is none.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

// WithLoadOptions returns a new context.Context carrying options applied to
// every dataset a command loads.
func WithLoadOptions(ctx context.Context, opts ...mfile.Option) context.Context {
	return context.WithValue(ctx, loadOptionsKey{}, opts)
}

func loadOptionsFrom(ctx context.Context) []mfile.Option {
	opts, _ := ctx.Value(loadOptionsKey{}).([]mfile.Option)

	return opts
}

type streams struct {
	in  io.Reader
	out io.Writer
}

// WithStreams returns a new context.Context in which commands read "-" from
// in and write results to out instead of the process's standard streams.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)
	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

func outputFrom(ctx context.Context) io.Writer { return streamsFrom(ctx).out }

// loadSource loads the dataset named by source, reading stdin for "-".
func loadSource(ctx context.Context, source string) (*mfile.Dataset, error) {
	opts := loadOptionsFrom(ctx)

	var (
		ds  *mfile.Dataset
		err error
	)

	if source == stdinSource {
		ds, err = mfile.LoadReader(ctx, streamsFrom(ctx).in, opts...)
	} else {
		ds, err = mfile.LoadFile(ctx, source, opts...)
	}

	if err != nil {
		return nil, ErrLoad.With(slog.String("source", source)).Wrap(err)
	}

	log.DebugContext(ctx, "dataset loaded",
		slog.String("source", source),
		slog.Int("variables", ds.Len()),
	)

	return ds, nil
}
