// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column-oriented transforms used on genes × samples data:
//     per-column sums (library sizes), per-column division (depth scaling and
//     factor application) and elementwise maps.
//
// Determinism & Performance:
//   - Dense fast-paths walk the row-major buffer one row at a time and hand the
//     contiguous row slice to gonum/floats kernels.
//   - Non-Dense inputs fall back to At with full error propagation.
//   - Inputs are never mutated; every transform returns a fresh *Dense.

package matrix

import "gonum.org/v1/gonum/floats"

// Operation name constants for unified error wrapping.
const (
	opColSums            = "ColSums"
	opDivColumns         = "DivColumns"
	opApply              = "Apply"
)

// toDense returns X as *Dense, copying through At when X is another implementation.
func toDense(op string, X Matrix) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if d, ok := X.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(X.Rows(), X.Cols())
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, matrixErrorf(op, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// ColSums returns Σ_i X[i,j] for every column j.
// Complexity: O(r*c) time, O(c) space.
func ColSums(X Matrix) ([]float64, error) {
	d, err := toDense(opColSums, X)
	if err != nil {
		return nil, err
	}
	sums := make([]float64, d.c)
	for i := 0; i < d.r; i++ { // deterministic row order
		floats.Add(sums, d.data[i*d.c:(i+1)*d.c])
	}

	return sums, nil
}

// DivColumns returns out[i,j] = X[i,j] / div[j].
// True division is used rather than multiplication by a reciprocal, so results
// match a direct x/d evaluation bit for bit.
// Complexity: O(r*c).
func DivColumns(X Matrix, div []float64) (*Dense, error) {
	d, err := toDense(opDivColumns, X)
	if err != nil {
		return nil, err
	}
	if err = ValidateVecLen(div, d.c); err != nil {
		return nil, matrixErrorf(opDivColumns, err)
	}
	out := d.clone()
	for i := 0; i < out.r; i++ {
		floats.Div(out.data[i*out.c:(i+1)*out.c], div)
	}

	return out, nil
}

// Apply returns out[i,j] = fn(X[i,j]).
// Complexity: O(r*c).
func Apply(X Matrix, fn func(float64) float64) (*Dense, error) {
	d, err := toDense(opApply, X)
	if err != nil {
		return nil, err
	}
	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	for k, v := range d.data {
		out.data[k] = fn(v)
	}

	return out, nil
}
