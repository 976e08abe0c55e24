package mfile

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Functions lists the names of the functions available to [Dataset.Evaluate]
// in addition to the expr-lang builtins.
var Functions = []string{"plane", "shape", "spectrum", "unit"}

// Evaluate compiles and runs an expr-lang expression against d.
//
// Every variable is visible by name as nested float64 slices (see
// [Dataset.ToMap]). The following functions are also defined:
//
//	shape(name)       dimensions of a variable, as []int
//	spectrum(i, j)    intensities of Map at pixel (i, j)
//	plane(name, k)    plane k (0-based) of a tensor, as [][]float64
//	unit(name)        documented unit of a well-known variable
func (d *Dataset) Evaluate(ctx context.Context, source string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := expr.Compile(source, d.exprOptions()...)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := vm.Run(program, d.env())
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}

// env returns the expression environment, built on first use.
func (d *Dataset) env() map[string]any {
	d.envOnce.Do(func() { d.envMap = d.ToMap() })

	return d.envMap
}

func (d *Dataset) exprOptions() []expr.Option {
	return []expr.Option{
		expr.Env(d.env()),
		expr.Function("shape",
			func(params ...any) (any, error) {
				name, _ := params[0].(string)

				a, ok := d.Get(name)
				if !ok {
					return nil, ErrUnknownVariable.With(slog.String("name", name))
				}

				return a.Shape(), nil
			},
			new(func(string) []int),
		),
		expr.Function("spectrum",
			func(params ...any) (any, error) {
				i, _ := params[0].(int)
				j, _ := params[1].(int)

				v, err := d.Spectrum(i, j)
				if err != nil {
					return nil, err
				}

				return []float64(v), nil
			},
			new(func(int, int) []float64),
		),
		expr.Function("plane",
			func(params ...any) (any, error) {
				name, _ := params[0].(string)
				k, _ := params[1].(int)

				t, err := d.Tensor(name)
				if err != nil {
					return nil, err
				}

				if _, _, d2 := t.Dims(); k < 0 || k >= d2 {
					return nil, ErrIndexRange.With(
						slog.String("name", name),
						slog.Int("plane", k),
						slog.Int("planes", d2),
					)
				}

				return t.Plane(k).Nested(), nil
			},
			new(func(string, int) [][]float64),
		),
		expr.Function("unit",
			func(params ...any) (any, error) {
				name, _ := params[0].(string)

				return Unit(name), nil
			},
			new(func(string) string),
		),
	}
}

// FormatResult formats an evaluation result for display. Numeric slices
// use the ".m" literal syntax: values separated by spaces, rows by ';'.
func FormatResult(result any) string {
	return formatResultValue(result)
}

func formatResultValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case string:
		return val

	case Vector:
		return formatRow(val)

	case []float64:
		return formatRow(val)

	case []int:
		part := make([]string, len(val))
		for i, n := range val {
			part[i] = strconv.Itoa(n)
		}

		return "[" + strings.Join(part, " ") + "]"

	case [][]float64:
		part := make([]string, len(val))
		for i, row := range val {
			part[i] = strings.Trim(formatRow(row), "[]")
		}

		return "[" + strings.Join(part, ";") + "]"

	case []any:
		part := make([]string, len(val))
		for i, e := range val {
			part[i] = formatResultValue(e)
		}

		return "[" + strings.Join(part, " ") + "]"

	case map[string]any:
		keys := slices.Sorted(maps.Keys(val))

		part := make([]string, len(keys))
		for i, k := range keys {
			part[i] = k + ": " + formatResultValue(val[k])
		}

		return "{" + strings.Join(part, ", ") + "}"

	default:
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Slice {
			part := make([]string, rv.Len())
			for i := range part {
				part[i] = formatResultValue(rv.Index(i).Interface())
			}

			return "[" + strings.Join(part, " ") + "]"
		}

		return fmt.Sprintf("%v", val)
	}
}

func formatRow(row []float64) string {
	part := make([]string, len(row))
	for i, x := range row {
		part[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}

	return "[" + strings.Join(part, " ") + "]"
}
