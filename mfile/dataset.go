package mfile

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Dataset maps variable names to arrays. It is read-only and safe for
// concurrent use. Arrays obtained from it share its storage and must not be
// modified.
type Dataset struct {
	vars map[string]Array

	envOnce sync.Once
	envMap  map[string]any // expression environment
}

// Len returns the number of variables.
func (d *Dataset) Len() int { return len(d.vars) }

// Get returns the array bound to name.
func (d *Dataset) Get(name string) (Array, bool) {
	a, ok := d.vars[name]

	return a, ok
}

// Names returns the variable names in sorted order.
func (d *Dataset) Names() []string {
	return slices.Sorted(maps.Keys(d.vars))
}

// All returns an iterator over all variables in name order.
func (d *Dataset) All() iter.Seq2[string, Array] {
	return func(yield func(string, Array) bool) {
		for _, name := range d.Names() {
			if !yield(name, d.vars[name]) {
				return
			}
		}
	}
}

func (d *Dataset) lookup(name string, rank int) (Array, error) {
	a, ok := d.vars[name]
	if !ok {
		return nil, ErrUnknownVariable.With(slog.String("name", name))
	}

	if a.Rank() != rank {
		return nil, ErrRankMismatch.With(
			slog.String("name", name),
			slog.Int("expected", rank),
			slog.Int("got", a.Rank()),
		)
	}

	return a, nil
}

// Vector returns a copy of the rank-1 array bound to name.
func (d *Dataset) Vector(name string) (Vector, error) {
	a, err := d.lookup(name, 1)
	if err != nil {
		return nil, err
	}

	return slices.Clone(a.(Vector)), nil
}

// Matrix returns the rank-2 array bound to name.
func (d *Dataset) Matrix(name string) (*Matrix, error) {
	a, err := d.lookup(name, 2)
	if err != nil {
		return nil, err
	}

	return a.(*Matrix), nil
}

// Tensor returns the rank-3 array bound to name.
func (d *Dataset) Tensor(name string) (*Tensor, error) {
	a, err := d.lookup(name, 3)
	if err != nil {
		return nil, err
	}

	return a.(*Tensor), nil
}

// Equal reports whether d and other bind the same names to equal arrays.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}

	return maps.EqualFunc(d.vars, other.vars, Equal)
}
