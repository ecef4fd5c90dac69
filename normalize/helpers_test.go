// SPDX-License-Identifier: MIT
package normalize_test

import (
	"testing"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/genelength"
	"github.com/stretchr/testify/require"
)

// tol is the relative tolerance for values locked against hand-computed references.
const tol = 1e-9

// twoGene returns the two-gene, two-sample reference scenario:
// lengths {A: 1000, B: 2000}; S1 = [A=10, B=20]; S2 = [A=5, B=40].
func twoGene(t testing.TB) (*counts.Matrix, *genelength.Table) {
	t.Helper()
	m, err := counts.FromSampleMap(map[string]map[string]float64{
		"S1": {"A": 10, "B": 20},
		"S2": {"A": 5, "B": 40},
	})
	require.NoError(t, err)

	return m, mustTable(t, map[string]float64{"A": 1000, "B": 2000})
}

func mustTable(t testing.TB, lengths map[string]float64) *genelength.Table {
	t.Helper()
	tab, err := genelength.New(lengths)
	require.NoError(t, err)

	return tab
}

func mustRows(t testing.TB, genes, samples []string, rows [][]float64) *counts.Matrix {
	t.Helper()
	m, err := counts.FromRows(genes, samples, rows)
	require.NoError(t, err)

	return m
}

// at reads one value or fails the test.
func at(t testing.TB, m *counts.Matrix, gene, sample string) float64 {
	t.Helper()
	v, err := m.At(gene, sample)
	require.NoError(t, err)

	return v
}
