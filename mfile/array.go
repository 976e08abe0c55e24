package mfile

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Array is a dense float64 array of rank 1, 2, or 3.
// It is implemented by [Vector], [*Matrix], and [*Tensor] only.
type Array interface {
	// Rank returns the number of dimensions.
	Rank() int
	// Shape returns the size of each dimension.
	Shape() []int
	// Len returns the total number of elements.
	Len() int
	// Values returns the backing storage. Callers must not modify it.
	Values() []float64
	// Nested returns the elements as nested float64 slices indexed in
	// shape order.
	Nested() any

	array()
}

// Vector is a rank-1 array.
type Vector []float64

// NewVector returns a Vector holding a copy of v.
func NewVector(v ...float64) Vector { return slices.Clone(Vector(v)) }

func (v Vector) Rank() int { return 1 }
func (v Vector) Shape() []int { return []int{len(v)} }
func (v Vector) Len() int { return len(v) }
func (v Vector) Values() []float64 { return v }
func (v Vector) Nested() any { return []float64(slices.Clone(v)) }
func (Vector) array() {}

// Matrix is a rank-2 array stored in row-major order.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a rows×cols Matrix backed by data, which must hold
// exactly rows*cols elements in row-major order.
func NewMatrix(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, ErrRankMismatch.With(
			slog.Int("rows", rows),
			slog.Int("cols", cols),
			slog.Int("len", len(data)),
		)
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

func (m *Matrix) Rank() int { return 2 }
func (m *Matrix) Shape() []int { return []int{m.rows, m.cols} }
func (m *Matrix) Len() int { return len(m.data) }
func (m *Matrix) Values() []float64 { return m.data }
func (*Matrix) array() {}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Row returns row i. The result shares storage with m.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Nested returns the matrix as a [][]float64 indexed [row][col].
func (m *Matrix) Nested() any {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = slices.Clone(m.Row(i))
	}

	return out
}

// Tensor is a rank-3 array of shape (d0, d1, d2) held in a single buffer.
// The d0×d1 plane k is contiguous; element (i, j, k) is stored at
// k*d0*d1 + i*d1 + j.
type Tensor struct {
	dims [3]int
	data []float64
}

// NewTensor returns a zero-filled Tensor of shape (d0, d1, d2).
func NewTensor(d0, d1, d2 int) (*Tensor, error) {
	if d0 <= 0 || d1 <= 0 || d2 <= 0 {
		return nil, ErrRankMismatch.With(
			slog.String("shape", formatShape([]int{d0, d1, d2})),
		)
	}

	return &Tensor{
		dims: [3]int{d0, d1, d2},
		data: make([]float64, d0*d1*d2),
	}, nil
}

func (t *Tensor) Rank() int { return 3 }
func (t *Tensor) Shape() []int { return []int{t.dims[0], t.dims[1], t.dims[2]} }
func (t *Tensor) Len() int { return len(t.data) }
func (t *Tensor) Values() []float64 { return t.data }
func (*Tensor) array() {}

// Dims returns the three dimensions of t.
func (t *Tensor) Dims() (d0, d1, d2 int) { return t.dims[0], t.dims[1], t.dims[2] }

func (t *Tensor) planeSize() int { return t.dims[0] * t.dims[1] }

// At returns element (i, j, k).
func (t *Tensor) At(i, j, k int) float64 {
	return t.data[k*t.planeSize()+i*t.dims[1]+j]
}

// Plane returns plane k as a d0×d1 Matrix sharing storage with t.
func (t *Tensor) Plane(k int) *Matrix {
	n := t.planeSize()

	return &Matrix{
		rows: t.dims[0],
		cols: t.dims[1],
		data: t.data[k*n : (k+1)*n : (k+1)*n],
	}
}

// Pixel returns the d2 values at position (i, j) across all planes.
func (t *Tensor) Pixel(i, j int) Vector {
	n := t.planeSize()
	out := make(Vector, t.dims[2])

	for k := range out {
		out[k] = t.data[k*n+i*t.dims[1]+j]
	}

	return out
}

// setPlane overwrites plane k with src, which holds d0*d1 values in
// row-major order.
func (t *Tensor) setPlane(k int, src []float64) {
	n := t.planeSize()
	copy(t.data[k*n:(k+1)*n], src)
}

// Nested returns the tensor as a [][][]float64 indexed [i][j][k].
func (t *Tensor) Nested() any {
	d0, d1, _ := t.Dims()
	out := make([][][]float64, d0)

	for i := range out {
		out[i] = make([][]float64, d1)
		for j := range out[i] {
			out[i][j] = t.Pixel(i, j)
		}
	}

	return out
}

// Zeros returns a zero-filled array with the given shape.
// One dimension yields a Vector, two a Matrix, three a Tensor.
func Zeros(shape ...int) (Array, error) {
	for _, d := range shape {
		if d <= 0 {
			return nil, ErrRankMismatch.With(
				slog.String("shape", formatShape(shape)),
			)
		}
	}

	switch len(shape) {
	case 1:
		return make(Vector, shape[0]), nil

	case 2:
		return &Matrix{
			rows: shape[0],
			cols: shape[1],
			data: make([]float64, shape[0]*shape[1]),
		}, nil

	case 3:
		return NewTensor(shape[0], shape[1], shape[2])

	default:
		return nil, ErrRankMismatch.With(
			slog.Int("rank", len(shape)),
		)
	}
}

// Equal reports whether a and b have the same rank, shape, and elements.
func Equal(a, b Array) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Rank() == b.Rank() &&
		slices.Equal(a.Shape(), b.Shape()) &&
		slices.Equal(a.Values(), b.Values())
}

// KindOf returns a short name for the variant held by a.
func KindOf(a Array) string {
	switch a.(type) {
	case Vector:
		return "vector"
	case *Matrix:
		return "matrix"
	case *Tensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// formatShape joins dimensions with "x".
func formatShape(shape []int) string {
	part := make([]string, len(shape))
	for i, d := range shape {
		part[i] = strconv.Itoa(d)
	}

	return strings.Join(part, "x")
}

// FormatShape renders the shape of a, for example "3x3x2".
func FormatShape(a Array) string { return formatShape(a.Shape()) }
