package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/mdt/mfile"
)

// Spectrum prints the spectrum at one map pixel as tab-separated
// calibration and intensity columns.
type Spectrum struct {
	Axis   mfile.Axis `default:"wavelength" help:"Calibration axis (wavelength, raman)."       short:"a"`
	Raw    bool       `                     help:"Print intensities only, one per line."`
	Header bool       `default:"true"       help:"Print a header line naming the columns." negatable:""`

	Source string `arg:"" help:"NOVA .m export, or '-' for stdin." name:"file"`
	I      int    `arg:"" help:"Pixel row (0-based)."              name:"i"`
	J      int    `arg:"" help:"Pixel column (0-based)."           name:"j"`
}

// Run executes the spectrum command.
func (s *Spectrum) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, s.Source)
	if err != nil {
		return err
	}

	intensity, err := ds.Spectrum(s.I, s.J)
	if err != nil {
		return ErrEvaluate.With(
			slog.Int("i", s.I),
			slog.Int("j", s.J),
		).Wrap(err)
	}

	var calib mfile.Vector

	if !s.Raw {
		calib, err = ds.Calibration(s.Axis)
		if err != nil {
			return ErrEvaluate.With(slog.String("axis", s.Axis.String())).Wrap(err)
		}

		if len(calib) != len(intensity) {
			return ErrEvaluate.With(
				slog.String("axis", s.Axis.String()),
				slog.Int("calibration", len(calib)),
				slog.Int("planes", len(intensity)),
			).Wrap(mfile.ErrRankMismatch)
		}
	}

	w := bufio.NewWriter(outputFrom(ctx))

	if s.Header {
		w.WriteString("# ")

		if !s.Raw {
			name := s.Axis.Variable()
			w.WriteString(s.Axis.String() + " [" + mfile.Unit(name) + "]\t")
		}

		w.WriteString("intensity\n")
	}

	var buf []byte

	for k, v := range intensity {
		buf = buf[:0]

		if !s.Raw {
			buf = strconv.AppendFloat(buf, calib[k], 'f', -1, 64)
			buf = append(buf, '\t')
		}

		buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
		buf = append(buf, '\n')

		w.Write(buf)
	}

	if err := w.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
