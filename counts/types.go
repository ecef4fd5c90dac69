// SPDX-License-Identifier: MIT

package counts

import "gonum.org/v1/gonum/floats"

// SampleVector is one sample column of a Matrix: the values of every gene for
// that sample, in the matrix's gene order.
type SampleVector struct {
	Sample string    // sample identifier
	Genes  []string  // gene identifiers, same order as Values
	Values []float64 // one value per gene
}

// Sum returns the total of the vector's values (the library size for raw counts).
func (v SampleVector) Sum() float64 {
	return floats.Sum(v.Values)
}
