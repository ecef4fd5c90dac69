// SPDX-License-Identifier: MIT
package normalize_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/katalvlaran/getmm/normalize"
	"github.com/stretchr/testify/assert"
)

func TestSampleErrorUnwraps(t *testing.T) {
	err := &normalize.SampleError{Sample: "S9", Err: normalize.ErrDegenerateSample}
	assert.Equal(t, `sample "S9": normalize: sample library size is zero or infinite`, err.Error())
	assert.ErrorIs(t, err, normalize.ErrDegenerateSample)
}

func TestGeneErrorUnwraps(t *testing.T) {
	err := &normalize.GeneError{Gene: "TP53", Err: normalize.ErrMissingGeneLength}
	assert.Equal(t, `gene "TP53": normalize: gene has no length entry`, err.Error())
	assert.ErrorIs(t, err, normalize.ErrMissingGeneLength)
}

func TestFailedSamplesWalksJoinedAndWrapped(t *testing.T) {
	joined := errors.Join(
		&normalize.SampleError{Sample: "A", Err: normalize.ErrDegenerateSample},
		fmt.Errorf("stage: %w", &normalize.SampleError{Sample: "B", Err: normalize.ErrDegenerateFactor}),
		&normalize.GeneError{Gene: "G1", Err: normalize.ErrMissingGeneLength},
		&normalize.GeneError{Gene: "G2", Err: normalize.ErrZeroWeight},
	)

	assert.Equal(t, []string{"A", "B"}, normalize.FailedSamples(joined))
	assert.Equal(t, []string{"G1"}, normalize.MissingGenes(joined))
	assert.Nil(t, normalize.FailedSamples(nil))
	assert.Nil(t, normalize.MissingGenes(errors.New("plain")))
}
