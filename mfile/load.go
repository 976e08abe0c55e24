package mfile

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/readahead"
)

// LoadFile reads the ".m" file at path and assembles its variables.
// The file is closed before LoadFile returns.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}
	defer f.Close()

	ds, err := LoadReader(ctx, f, opts...)
	if err != nil {
		var ee *Error
		if errors.As(err, &ee) && errors.Is(err, ErrReadInput) {
			return nil, ee.With(slog.String("path", path))
		}

		return nil, err
	}

	return ds, nil
}

// LoadString assembles the variables of the ".m" content in s.
func LoadString(ctx context.Context, s string, opts ...Option) (*Dataset, error) {
	return LoadReader(ctx, strings.NewReader(s), opts...)
}

// LoadReader reads ".m" content from r and assembles its variables.
// Input is fetched asynchronously ahead of the parser.
func LoadReader(ctx context.Context, r io.Reader, opts ...Option) (*Dataset, error) {
	o := makeOptions(opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	if o.cache {
		data, err := io.ReadAll(ra)
		if err != nil {
			return nil, ErrReadInput.Wrap(err).
				With(slog.String("source", "reader"))
		}

		return loadCached(ctx, data, o)
	}

	return load(ctx, ra, o)
}

// load scans r line by line, parsing and assembling each statement.
func load(ctx context.Context, r io.Reader, o options) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(bufio.MaxScanTokenSize, o.maxLineSize)), o.maxLineSize)

	asm := NewAssembler(WithLogger(o.logger))
	line, count := 0, 0

	for sc.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := sc.Text()
		if skipLine(text) {
			continue
		}

		st, err := parseStatement(line, text)
		if err == nil {
			err = asm.Apply(ctx, st)
		}

		if err != nil {
			return nil, &LineError{Line: line, Text: text, Err: err}
		}

		count++
	}

	if err := sc.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err).With(
			slog.Int("line", line+1),
			slog.Int("max_line_size", o.maxLineSize),
		)
	}

	o.logger.DebugContext(ctx, "load complete",
		slog.Int("lines", line),
		slog.Int("statements", count),
		slog.Int("variables", asm.Len()),
	)

	return asm.Dataset(), nil
}

// skipLine reports whether a line carries no statement: it is blank, a
// single character, or a full-line comment.
func skipLine(text string) bool {
	s := strings.TrimSpace(text)

	return len(s) <= 1 || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "%")
}
