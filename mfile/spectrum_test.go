package mfile

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestDataset_Spectrum(t *testing.T) {
	ds := loadSimple(t)

	got, err := ds.Spectrum(2, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got, Vector{14, 15}) {
		t.Errorf("Spectrum(2,1) = %v, want [14 15]", got)
	}

	got[0] = -1

	again, _ := ds.Spectrum(2, 1)
	if again[0] != 14 {
		t.Error("Spectrum result shares storage with the dataset")
	}

	for _, ij := range [][2]int{{-1, 0}, {0, 3}, {3, 0}} {
		if _, err := ds.Spectrum(ij[0], ij[1]); !errors.Is(err, ErrIndexRange) {
			t.Errorf("Spectrum(%d,%d): expected ErrIndexRange, got %v", ij[0], ij[1], err)
		}
	}
}

func TestDataset_Spectrum_NoMap(t *testing.T) {
	ds, err := LoadString(context.Background(), "X = [1 2];\n")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ds.Spectrum(0, 0); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestDataset_Calibration(t *testing.T) {
	ds := loadSimple(t)

	tests := []struct {
		axis Axis
		want Vector
	}{
		{AxisWavelength, Vector{535.9459, 535.9609}},
		{AxisRamanShift, Vector{138.3936, 138.9163}},
	}

	for _, tt := range tests {
		got, err := ds.Calibration(tt.axis)
		if err != nil {
			t.Fatalf("Calibration(%v): %v", tt.axis, err)
		}

		if !slices.Equal(got, tt.want) {
			t.Errorf("Calibration(%v) = %v, want %v", tt.axis, got, tt.want)
		}
	}
}

func TestDataset_TypedLookup(t *testing.T) {
	ds := loadSimple(t)

	if _, err := ds.Matrix("X"); !errors.Is(err, ErrRankMismatch) {
		t.Errorf("Matrix(X): expected ErrRankMismatch, got %v", err)
	}

	if _, err := ds.Vector("Nope"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Vector(Nope): expected ErrUnknownVariable, got %v", err)
	}
}

func TestAxis_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    Axis
		wantErr bool
	}{
		{"wavelength", AxisWavelength, false},
		{"Raman", AxisRamanShift, false},
		{"raman-shift", AxisRamanShift, false},
		{"energy", 0, true},
	}

	for _, tt := range tests {
		var a Axis

		err := a.UnmarshalText([]byte(tt.in))
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAxis) {
				t.Errorf("UnmarshalText(%q): expected ErrInvalidAxis, got %v", tt.in, err)
			}

			continue
		}

		if err != nil || a != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", tt.in, a, err, tt.want)
		}
	}
}

func TestUnit(t *testing.T) {
	for name, want := range map[string]string{
		NameX:          "Å",
		NameY:          "Å",
		NameWavelength: "nm",
		NameRamanShift: "1/cm",
		NameMap:        "",
	} {
		if got := Unit(name); got != want {
			t.Errorf("Unit(%q) = %q, want %q", name, got, want)
		}
	}
}
