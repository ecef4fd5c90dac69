// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/getmm/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	dense := func(r, c int) matrix.Matrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"equal 2x3", dense(2, 3), dense(2, 3), nil},
		{"row mismatch", dense(2, 3), dense(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", dense(2, 3), dense(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.wantErr),
				"expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

// TestValidateNotNil rejects both untyped and typed nil matrices.
func TestValidateNotNil(t *testing.T) {
	t.Parallel()

	var typed *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)

	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateNotNil(m))
}

// TestValidateValues walks the finite and non-negative policies, on both the
// Dense fast-path and the At fallback.
func TestValidateValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      []float64
		finiteErr error
		nonNegErr error
	}{
		{"clean", []float64{0, 1, 2, 3}, nil, nil},
		{"nan", []float64{0, math.NaN(), 2, 3}, matrix.ErrNaNInf, matrix.ErrNaNInf},
		{"inf", []float64{0, 1, math.Inf(1), 3}, matrix.ErrNaNInf, matrix.ErrNaNInf},
		{"negative", []float64{0, 1, 2, -3}, nil, matrix.ErrNegative},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := matrix.NewDenseFrom(2, 2, tc.data)
			require.NoError(t, err)

			for _, m := range []matrix.Matrix{d, hide{d}} {
				err = matrix.ValidateFinite(m)
				if tc.finiteErr == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, tc.finiteErr)
				}

				err = matrix.ValidateNonNegative(m)
				if tc.nonNegErr == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, tc.nonNegErr)
				}
			}
		})
	}
}

// TestValidateVecLen checks exact-length matching.
func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 1), matrix.ErrDimensionMismatch)
}
