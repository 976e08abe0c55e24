package mfile

import "encoding/json"

// MarshalJSON implements json.Marshaler for Dataset.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// ToMap converts d to a map of nested float64 slices: []float64 for
// vectors, [][]float64 for matrices, and [][][]float64 indexed [i][j][k]
// for tensors.
func (d *Dataset) ToMap() map[string]any {
	result := make(map[string]any, len(d.vars))

	for name, a := range d.vars {
		result[name] = a.Nested()
	}

	return result
}
