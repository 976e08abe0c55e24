package mfile

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes d as ".m" statements that load back to an equal Dataset.
// Variables are written in name order. A tensor is written as a zeros
// declaration followed by one slice assignment per plane that is not all
// zero.
func (d *Dataset) Format(ctx context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for name, a := range d.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		formatArray(bw, name, a)
	}

	return bw.Flush()
}

func formatArray(w *bufio.Writer, name string, a Array) {
	switch v := a.(type) {
	case Vector:
		w.WriteString(name)
		w.WriteString(" = ")
		writeLiteral(w, 1, len(v), v, false)
		w.WriteString(";\n")

	case *Matrix:
		w.WriteString(name)
		w.WriteString(" = ")
		// A lone row needs the trailing ';' to stay a matrix.
		writeLiteral(w, v.Rows(), v.Cols(), v.Values(), v.Rows() == 1)
		w.WriteString(";\n")

	case *Tensor:
		d0, d1, d2 := v.Dims()

		fmt.Fprintf(w, "%s = zeros(%d,%d,%d);\n", name, d0, d1, d2)

		for k := range d2 {
			plane := v.Plane(k).Values()
			if !slices.ContainsFunc(plane, func(x float64) bool { return x != 0 }) {
				continue
			}

			fmt.Fprintf(w, "%s(:,:,%d) = ", name, k+1)
			writeLiteral(w, d0, d1, plane, false)
			w.WriteString(";\n")
		}
	}
}

// writeLiteral writes rows×cols values in row-major order as a bracketed
// literal, separating values by one space and rows by ';'.
func writeLiteral(w *bufio.Writer, rows, cols int, data []float64, trailing bool) {
	var num []byte

	w.WriteByte('[')

	for i := range rows {
		if i > 0 {
			w.WriteByte(';')
		}

		for j, x := range data[i*cols : (i+1)*cols] {
			if j > 0 {
				w.WriteByte(' ')
			}

			num = strconv.AppendFloat(num[:0], x, 'f', -1, 64)
			w.Write(num)
		}
	}

	if trailing {
		w.WriteByte(';')
	}

	w.WriteByte(']')
}

// FormatJSON writes d as a JSON object mapping names to nested arrays.
func (d *Dataset) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes d as a YAML mapping of names to nested sequences.
// An indent of zero selects flow style.
func (d *Dataset) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
