package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/mdt/mfile"
)

// Info lists the variables of a dataset.
type Info struct {
	Source string `arg:"" default:"-" help:"NOVA .m export, or '-' for stdin." name:"file"`
}

var infoHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var infoCellStyle = lipgloss.NewStyle().Padding(0, 1)

// Run executes the info command.
func (i *Info) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ds, err := loadSource(ctx, i.Source)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), infoTable(ds))
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// infoTable renders one row per variable: name, kind, shape, element count,
// and unit.
func infoTable(ds *mfile.Dataset) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "KIND", "SHAPE", "ELEMENTS", "UNIT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return infoHeaderStyle
			}

			return infoCellStyle
		})

	for name, a := range ds.All() {
		t.Row(
			name,
			mfile.KindOf(a),
			mfile.FormatShape(a),
			strconv.Itoa(a.Len()),
			mfile.Unit(name),
		)
	}

	return t.Render()
}
