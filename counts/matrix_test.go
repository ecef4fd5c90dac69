// SPDX-License-Identifier: MIT
package counts_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture returns the two-gene, two-sample matrix used across tests.
func fixture(t *testing.T) *counts.Matrix {
	t.Helper()
	m, err := counts.FromRows(
		[]string{"A", "B"},
		[]string{"S1", "S2"},
		[][]float64{
			{10, 5},
			{20, 40},
		},
	)
	require.NoError(t, err)

	return m
}

func TestFromRows(t *testing.T) {
	m := fixture(t)

	assert.Equal(t, 2, m.NumGenes())
	assert.Equal(t, 2, m.NumSamples())
	assert.Equal(t, []string{"A", "B"}, m.Genes())
	assert.Equal(t, []string{"S1", "S2"}, m.Samples())

	v, err := m.At("B", "S2")
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)

	_, err = m.At("C", "S1")
	require.ErrorIs(t, err, counts.ErrUnknownGene)
	_, err = m.At("A", "S3")
	require.ErrorIs(t, err, counts.ErrUnknownSample)
}

func TestFromRowsRejects(t *testing.T) {
	tests := []struct {
		name    string
		genes   []string
		samples []string
		rows    [][]float64
		want    error
	}{
		{"no genes", nil, []string{"S"}, nil, counts.ErrEmpty},
		{"row count", []string{"A", "B"}, []string{"S"}, [][]float64{{1}}, counts.ErrShape},
		{"row width", []string{"A"}, []string{"S", "T"}, [][]float64{{1}}, counts.ErrShape},
		{"dup gene", []string{"A", "A"}, []string{"S"}, [][]float64{{1}, {2}}, counts.ErrDuplicateGene},
		{"dup sample", []string{"A"}, []string{"S", "S"}, [][]float64{{1, 2}}, counts.ErrDuplicateSample},
		{"blank id", []string{" "}, []string{"S"}, [][]float64{{1}}, counts.ErrEmptyID},
		{"negative", []string{"A"}, []string{"S"}, [][]float64{{-1}}, counts.ErrNegativeCount},
		{"nan", []string{"A"}, []string{"S"}, [][]float64{{math.NaN()}}, counts.ErrNonFinite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := counts.FromRows(tc.genes, tc.samples, tc.rows)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewCopiesDense(t *testing.T) {
	d, err := matrix.NewDenseFrom(1, 2, []float64{1, 2})
	require.NoError(t, err)

	m, err := counts.New([]string{"A"}, []string{"S1", "S2"}, d)
	require.NoError(t, err)

	require.NoError(t, d.Set(0, 0, 100))
	v, err := m.At("A", "S1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = counts.New([]string{"A", "B"}, []string{"S1", "S2"}, d)
	require.ErrorIs(t, err, counts.ErrShape)
}

func TestSampleMapRoundTrip(t *testing.T) {
	in := map[string]map[string]float64{
		"S2": {"B": 40, "A": 5},
		"S1": {"A": 10, "B": 20},
	}
	m, err := counts.FromSampleMap(in)
	require.NoError(t, err)

	// Lexicographic axes.
	assert.Equal(t, []string{"A", "B"}, m.Genes())
	assert.Equal(t, []string{"S1", "S2"}, m.Samples())
	assert.Equal(t, in, m.ToSampleMap())
}

func TestFromSampleMapRagged(t *testing.T) {
	_, err := counts.FromSampleMap(map[string]map[string]float64{
		"S1": {"A": 1, "B": 2},
		"S2": {"A": 1},
	})
	require.ErrorIs(t, err, counts.ErrRagged)

	_, err = counts.FromSampleMap(map[string]map[string]float64{
		"S1": {"A": 1, "B": 2},
		"S2": {"A": 1, "C": 2},
	})
	require.ErrorIs(t, err, counts.ErrRagged)

	_, err = counts.FromSampleMap(nil)
	require.ErrorIs(t, err, counts.ErrEmpty)
}

func TestSampleVector(t *testing.T) {
	m := fixture(t)

	v, err := m.Sample("S2")
	require.NoError(t, err)
	assert.Equal(t, "S2", v.Sample)
	assert.Equal(t, []string{"A", "B"}, v.Genes)
	assert.Equal(t, []float64{5, 40}, v.Values)
	assert.Equal(t, 45.0, v.Sum())

	_, err = m.Sample("nope")
	require.ErrorIs(t, err, counts.ErrUnknownSample)
}

func TestDropSamples(t *testing.T) {
	m := fixture(t)

	out, err := m.DropSamples("S1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, out.Samples())
	assert.Equal(t, []float64{5, 40}, out.Dense().Values())

	// Original untouched.
	assert.Equal(t, 2, m.NumSamples())

	_, err = m.DropSamples("S1", "S2")
	require.ErrorIs(t, err, counts.ErrEmpty)
	_, err = m.DropSamples("S9")
	require.ErrorIs(t, err, counts.ErrUnknownSample)
}

func TestDerive(t *testing.T) {
	m := fixture(t)

	d, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	out, err := m.Derive(d)
	require.NoError(t, err)
	assert.Equal(t, m.Genes(), out.Genes())
	assert.Equal(t, m.Samples(), out.Samples())

	bad, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	_, err = m.Derive(bad)
	require.ErrorIs(t, err, counts.ErrShape)
	assert.ErrorContains(t, err, "ValidateSameShape: Rows")

	_, err = m.Derive(nil)
	require.ErrorIs(t, err, counts.ErrShape)
}
