// SPDX-License-Identifier: MIT
package normalize_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/getmm/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthTwoGene(t *testing.T) {
	m, _ := twoGene(t)

	dr, err := normalize.Depth(m)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 45}, dr.LibrarySizes)
	assert.InEpsilon(t, 1.0/3, at(t, dr.CPM, "A", "S1"), tol)
	assert.InEpsilon(t, 2.0/3, at(t, dr.CPM, "B", "S1"), tol)
	assert.InEpsilon(t, 1.0/9, at(t, dr.CPM, "A", "S2"), tol)
	assert.InEpsilon(t, 8.0/9, at(t, dr.CPM, "B", "S2"), tol)

	assert.InEpsilon(t, 18.346610396681648, at(t, dr.LogExpr, "A", "S1"), tol)
	assert.InEpsilon(t, 19.346608232643955, at(t, dr.LogExpr, "B", "S1"), tol)
	assert.InEpsilon(t, 16.7616565520788, at(t, dr.LogExpr, "A", "S2"), tol)
	assert.InEpsilon(t, 19.76164519091287, at(t, dr.LogExpr, "B", "S2"), tol)
}

func TestDepthZeroCountIsZeroLog(t *testing.T) {
	m := mustRows(t, []string{"A", "B"}, []string{"S"}, [][]float64{{0}, {7}})

	dr, err := normalize.Depth(m)
	require.NoError(t, err)

	// The pseudocount keeps log2 at exactly 0 for a zero count.
	assert.Equal(t, 0.0, at(t, dr.LogExpr, "A", "S"))
	assert.Equal(t, math.Log2(1e6+1), at(t, dr.LogExpr, "B", "S"))
}

func TestDepthDegenerateSamples(t *testing.T) {
	m := mustRows(t,
		[]string{"A", "B"},
		[]string{"S1", "EMPTY1", "S3", "EMPTY2"},
		[][]float64{
			{1, 0, 2, 0},
			{3, 0, 4, 0},
		})

	dr, err := normalize.Depth(m)
	require.ErrorIs(t, err, normalize.ErrDegenerateSample)
	assert.Equal(t, []string{"EMPTY1", "EMPTY2"}, normalize.FailedSamples(err))

	var se *normalize.SampleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "EMPTY1", se.Sample)

	// The healthy samples are still returned, in input order.
	require.NotNil(t, dr)
	assert.Equal(t, []string{"S1", "S3"}, dr.CPM.Samples())
	assert.Equal(t, []string{"S1", "S3"}, dr.LogExpr.Samples())
	assert.Equal(t, []float64{4, 6}, dr.LibrarySizes)
	assert.InEpsilon(t, 0.75, at(t, dr.CPM, "B", "S1"), tol)
	assert.InEpsilon(t, 2.0/6, at(t, dr.CPM, "A", "S3"), tol)
}

func TestDepthAllSamplesDegenerate(t *testing.T) {
	m := mustRows(t, []string{"A"}, []string{"E1", "E2"}, [][]float64{{0, 0}})

	dr, err := normalize.Depth(m)
	assert.Nil(t, dr)
	require.ErrorIs(t, err, normalize.ErrDegenerateSample)
	assert.Equal(t, []string{"E1", "E2"}, normalize.FailedSamples(err))
}

func TestDepthLibrarySizeOverflow(t *testing.T) {
	// Each count is finite but the column sum overflows to +Inf.
	m := mustRows(t, []string{"A", "B"}, []string{"HUGE", "S"},
		[][]float64{{math.MaxFloat64, 1}, {math.MaxFloat64, 3}})

	dr, err := normalize.Depth(m)
	require.ErrorIs(t, err, normalize.ErrDegenerateSample)
	assert.Equal(t, []string{"HUGE"}, normalize.FailedSamples(err))
	assert.ErrorContains(t, err, "+Inf")

	require.NotNil(t, dr)
	assert.Equal(t, []string{"S"}, dr.CPM.Samples())
	assert.Equal(t, []float64{4}, dr.LibrarySizes)
}

func TestDepthDoesNotMutateInput(t *testing.T) {
	m, _ := twoGene(t)
	before := m.Dense().Values()

	_, err := normalize.Depth(m)
	require.NoError(t, err)
	assert.Equal(t, before, m.Dense().Values())
}

func TestDepthNil(t *testing.T) {
	_, err := normalize.Depth(nil)
	require.ErrorIs(t, err, normalize.ErrNilInput)
}
