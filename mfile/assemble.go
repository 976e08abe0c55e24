package mfile

import (
	"context"
	"log/slog"

	"github.com/ardnew/mdt/log"
)

// Assembler folds statements, in input order, into a name to array mapping.
// It is not safe for concurrent use.
type Assembler struct {
	vars   map[string]Array
	logger log.Logger
}

// NewAssembler returns an empty Assembler. Only [WithLogger] affects it.
func NewAssembler(opts ...Option) *Assembler {
	o := makeOptions(opts...)

	return &Assembler{
		vars:   make(map[string]Array),
		logger: o.logger,
	}
}

// Apply merges st into the mapping.
//
// Plain assignments and zeros declarations bind the name, replacing any
// earlier binding. A slice assignment copies its payload into one plane of
// the tensor already bound to the name, leaving the other planes untouched.
// It fails with [ErrUnboundTarget] unless the name is bound to a tensor
// whose first two dimensions match the payload and whose third dimension
// exceeds the plane index.
func (a *Assembler) Apply(ctx context.Context, st *Statement) error {
	if st.Kind != KindSliceAssign {
		if prev, ok := a.vars[st.Name]; ok {
			a.logger.DebugContext(ctx, "rebinding variable",
				slog.String("name", st.Name),
				slog.String("previous", FormatShape(prev)),
				slog.String("shape", FormatShape(st.Payload)),
			)
		}

		a.vars[st.Name] = st.Payload

		a.logger.TraceContext(ctx, "bound variable",
			slog.String("name", st.Name),
			slog.String("kind", st.Kind.String()),
			slog.String("shape", FormatShape(st.Payload)),
			slog.Int("line", st.Line),
		)

		return nil
	}

	fail := ErrUnboundTarget.With(
		slog.String("name", st.Name),
		slog.Int("plane", st.Index+1),
		slog.String("payload", FormatShape(st.Payload)),
	)

	bound, ok := a.vars[st.Name]
	if !ok {
		return fail.With(slog.String("reason", "no prior zeros declaration"))
	}

	t, ok := bound.(*Tensor)
	if !ok {
		return fail.With(
			slog.String("reason", "bound to "+KindOf(bound)),
			slog.String("shape", FormatShape(bound)),
		)
	}

	d0, d1, d2 := t.Dims()

	if !planeCompatible(st.Payload, d0, d1) {
		return fail.With(
			slog.String("reason", "payload shape differs from plane"),
			slog.String("shape", FormatShape(t)),
		)
	}

	if st.Index < 0 || st.Index >= d2 {
		return fail.With(
			slog.String("reason", "plane index out of range"),
			slog.String("shape", FormatShape(t)),
		)
	}

	t.setPlane(st.Index, st.Payload.Values())

	a.logger.TraceContext(ctx, "assigned plane",
		slog.String("name", st.Name),
		slog.Int("plane", st.Index+1),
		slog.Int("line", st.Line),
	)

	return nil
}

// planeCompatible reports whether payload can fill a d0×d1 plane.
// A single-row payload parses as a Vector, which fills a 1×d1 plane.
func planeCompatible(payload Array, d0, d1 int) bool {
	switch p := payload.(type) {
	case *Matrix:
		return p.Rows() == d0 && p.Cols() == d1
	case Vector:
		return d0 == 1 && len(p) == d1
	default:
		return false
	}
}

// Len returns the number of bound variables.
func (a *Assembler) Len() int { return len(a.vars) }

// Dataset returns the assembled mapping and resets the Assembler.
// The returned Dataset is never modified by later calls to Apply.
func (a *Assembler) Dataset() *Dataset {
	ds := &Dataset{vars: a.vars}
	a.vars = make(map[string]Array)

	return ds
}
