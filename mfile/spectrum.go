package mfile

import (
	"log/slog"
	"strings"
)

// Variable names written by the NOVA exporter.
const (
	NameX          = "X"                // pixel positions along x, Å
	NameY          = "Y"                // pixel positions along y, Å
	NameWavelength = "WavelengthCalibr" // spectral axis, nm
	NameRamanShift = "RamanShiftCalibr" // spectral axis, 1/cm
	NameMap        = "Map"              // intensities, one plane per spectral channel
)

// Axis selects a spectral calibration.
type Axis int

const (
	AxisWavelength Axis = iota
	AxisRamanShift
)

// String returns the name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisWavelength:
		return "wavelength"
	case AxisRamanShift:
		return "raman"
	default:
		return "unknown"
	}
}

// Variable returns the name of the calibration vector for a.
func (a Axis) Variable() string {
	switch a {
	case AxisRamanShift:
		return NameRamanShift
	default:
		return NameWavelength
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It accepts "wavelength" or "raman", case-insensitively.
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "wavelength", "nm":
		*a = AxisWavelength
	case "raman", "ramanshift", "raman-shift":
		*a = AxisRamanShift
	default:
		return ErrInvalidAxis.With(slog.String("axis", string(text)))
	}

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Unit returns the physical unit of a well-known variable, or "" if the
// variable is not one the exporter documents.
func Unit(name string) string {
	switch name {
	case NameX, NameY:
		return "Å"
	case NameWavelength:
		return "nm"
	case NameRamanShift:
		return "1/cm"
	default:
		return ""
	}
}

// Calibration returns the spectral axis values for a.
func (d *Dataset) Calibration(a Axis) (Vector, error) {
	return d.Vector(a.Variable())
}

// Spectrum returns the intensities of [NameMap] at pixel (i, j), one value
// per plane. The result does not share storage with d.
func (d *Dataset) Spectrum(i, j int) (Vector, error) {
	t, err := d.Tensor(NameMap)
	if err != nil {
		return nil, err
	}

	d0, d1, _ := t.Dims()
	if i < 0 || i >= d0 || j < 0 || j >= d1 {
		return nil, ErrIndexRange.With(
			slog.Int("i", i),
			slog.Int("j", j),
			slog.String("shape", FormatShape(t)),
		)
	}

	return t.Pixel(i, j), nil
}
