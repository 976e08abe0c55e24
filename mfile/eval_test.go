package mfile

import (
	"context"
	"errors"
	"testing"
)

func TestDataset_Evaluate(t *testing.T) {
	ds := loadSimple(t)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"vector index", "X[0]", "236227.1094"},
		{"length", "len(WavelengthCalibr)", "2"},
		{"shape", `shape("Map")`, "[3 3 2]"},
		{"spectrum", "spectrum(1, 2)", "[10 11]"},
		{"plane", `plane("Map", 1)`, "[1 3 5;7 9 11;13 15 17]"},
		{"nested index", "Map[2][0][1]", "13"},
		{"builtin over spectrum", "max(spectrum(2, 2))", "17"},
		{"unit", `unit("RamanShiftCalibr")`, "1/cm"},
		{"arithmetic", "RamanShiftCalibr[1] - RamanShiftCalibr[0] > 0.5", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ds.Evaluate(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.source, err)
			}

			if got := FormatResult(result); got != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.source, got, tt.want)
			}
		})
	}
}

func TestDataset_Evaluate_Errors(t *testing.T) {
	ds := loadSimple(t)

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"syntax", "X[", ErrExprCompile},
		{"unknown name", "Nope + 1", ErrExprCompile},
		{"bad argument type", `spectrum("a", 1)`, ErrExprCompile},
		{"pixel out of range", "spectrum(3, 0)", ErrExprEvaluate},
		{"plane out of range", `plane("Map", 2)`, ErrExprEvaluate},
		{"plane of vector", `plane("X", 0)`, ErrExprEvaluate},
		{"shape of unknown", `shape("Nope")`, ErrExprEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ds.Evaluate(context.Background(), tt.source)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate(%q): expected %v, got %v", tt.source, tt.wantErr, err)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{true, "true"},
		{42, "42"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{"nm", "nm"},
		{Vector{1, 2}, "[1 2]"},
		{[]int{3, 3, 2}, "[3 3 2]"},
		{[][]float64{{1, 2}, {3, 4}}, "[1 2;3 4]"},
		{[]any{1, 2.5, "x"}, "[1 2.5 x]"},
		{map[string]any{"b": 2, "a": 1}, "{a: 1, b: 2}"},
		{[][][]float64{{{1, 2}}}, "[[1 2]]"},
	}

	for _, tt := range tests {
		if got := FormatResult(tt.in); got != tt.want {
			t.Errorf("FormatResult(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
