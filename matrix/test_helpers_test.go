// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels.
//   • Force the non-Dense fallback paths so both code paths are covered.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/getmm/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// which forces the At/Set fallback paths in code under test.
type hide struct{ matrix.Matrix }

// mustDense allocates an r×c *Dense holding data (row-major) or fails the test.
func mustDense(tb testing.TB, r, c int, data ...float64) *matrix.Dense {
	tb.Helper()
	if len(data) == 0 {
		data = make([]float64, r*c)
	}
	d, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(tb, err)

	return d
}
