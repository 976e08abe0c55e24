package mfile

import (
	"errors"
	"slices"
	"testing"
)

func TestZeros(t *testing.T) {
	tests := []struct {
		shape   []int
		kind    string
		wantErr bool
	}{
		{[]int{4}, "vector", false},
		{[]int{2, 3}, "matrix", false},
		{[]int{3, 3, 2}, "tensor", false},
		{[]int{}, "", true},
		{[]int{1, 1, 1, 1}, "", true},
		{[]int{2, 0}, "", true},
	}

	for _, tt := range tests {
		a, err := Zeros(tt.shape...)
		if tt.wantErr {
			if !errors.Is(err, ErrRankMismatch) {
				t.Errorf("Zeros(%v): expected ErrRankMismatch, got %v", tt.shape, err)
			}

			continue
		}

		if err != nil {
			t.Fatalf("Zeros(%v): %v", tt.shape, err)
		}

		if KindOf(a) != tt.kind {
			t.Errorf("Zeros(%v) kind = %s, want %s", tt.shape, KindOf(a), tt.kind)
		}

		if !slices.Equal(a.Shape(), tt.shape) {
			t.Errorf("Zeros(%v) shape = %v", tt.shape, a.Shape())
		}

		if slices.ContainsFunc(a.Values(), func(x float64) bool { return x != 0 }) {
			t.Errorf("Zeros(%v) is not zero-filled", tt.shape)
		}
	}
}

func TestTensor_PlaneLayout(t *testing.T) {
	tn, err := NewTensor(2, 3, 4)
	if err != nil {
		t.Fatal(err)
	}

	plane := []float64{1, 2, 3, 4, 5, 6}
	tn.setPlane(2, plane)

	if got := tn.Plane(2).Values(); !slices.Equal(got, plane) {
		t.Errorf("plane 2 = %v, want %v", got, plane)
	}

	for _, k := range []int{0, 1, 3} {
		if slices.ContainsFunc(tn.Plane(k).Values(), func(x float64) bool { return x != 0 }) {
			t.Errorf("plane %d was modified", k)
		}
	}

	// Element (i, j, k) lives at k*d0*d1 + i*d1 + j.
	if got := tn.Values()[2*6+1*3+2]; got != 6 {
		t.Errorf("arena offset holds %v, want 6", got)
	}

	if got := tn.At(1, 2, 2); got != 6 {
		t.Errorf("At(1,2,2) = %v, want 6", got)
	}

	if got := tn.Pixel(0, 1); !slices.Equal(got, Vector{0, 0, 2, 0}) {
		t.Errorf("Pixel(0,1) = %v", got)
	}
}

func TestTensor_ShapeIsCopy(t *testing.T) {
	tn, _ := NewTensor(1, 2, 3)
	tn.Shape()[0] = 9

	if d0, _, _ := tn.Dims(); d0 != 1 {
		t.Errorf("Shape exposed internal dims, d0 = %d", d0)
	}
}

func TestMatrix(t *testing.T) {
	m, err := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}

	if m.At(1, 0) != 4 {
		t.Errorf("At(1,0) = %v, want 4", m.At(1, 0))
	}

	if !slices.Equal(m.Row(1), []float64{4, 5, 6}) {
		t.Errorf("Row(1) = %v", m.Row(1))
	}

	nested, ok := m.Nested().([][]float64)
	if !ok || len(nested) != 2 || !slices.Equal(nested[0], []float64{1, 2, 3}) {
		t.Errorf("Nested() = %v", m.Nested())
	}

	if _, err := NewMatrix(2, 2, []float64{1}); !errors.Is(err, ErrRankMismatch) {
		t.Errorf("expected ErrRankMismatch, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	m1, _ := NewMatrix(1, 2, []float64{1, 2})
	m2, _ := NewMatrix(2, 1, []float64{1, 2})
	m3, _ := NewMatrix(1, 2, []float64{1, 2})

	tests := []struct {
		name string
		a, b Array
		want bool
	}{
		{"same vector", NewVector(1, 2), NewVector(1, 2), true},
		{"different values", NewVector(1, 2), NewVector(1, 3), false},
		{"vector vs matrix", NewVector(1, 2), m1, false},
		{"transposed shape", m1, m2, false},
		{"same matrix", m1, m3, true},
		{"nil", nil, nil, true},
		{"nil vs vector", nil, NewVector(1), false},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatShape(t *testing.T) {
	tn, _ := NewTensor(3, 3, 2)

	if got := FormatShape(tn); got != "3x3x2" {
		t.Errorf("FormatShape = %q, want 3x3x2", got)
	}
}
