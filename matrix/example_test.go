// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/getmm/matrix"
)

// ExampleDivColumns scales two sample columns to unit library size.
func ExampleDivColumns() {
	// genes × samples
	counts, _ := matrix.NewDenseFrom(2, 2, []float64{
		10, 5,
		30, 15,
	})

	sizes, err := matrix.ColSums(counts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, err := matrix.DivColumns(counts, sizes)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("library sizes:", sizes)
	fmt.Println("fractions:", out.Values())
	// Output:
	// library sizes: [40 20]
	// fractions: [0.25 0.25 0.75 0.75]
}
