// SPDX-License-Identifier: MIT

package normalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/matrix"
)

// perMillion scales CPM fractions before the pseudocount is added.
const perMillion = 1e6

// Depth removes library-size bias from raw counts.
//
// Implementation:
//   - Stage 1: column sums S[s] and cpm[g,s] = count[g,s] / S[s].
//   - Stage 2: every sample whose S[s] is 0 or overflows to +Inf is reported
//     as a SampleError wrapping ErrDegenerateSample; all such samples are joined.
//   - Stage 3: logExpr[g,s] = log2(cpm[g,s]·1e6 + 1).
//
// A degenerate sample only removes itself: the returned DepthResult holds
// every other sample, in input order, alongside the joined error. The result
// is nil only when no sample survives. Depth is pure: m is not modified.
func Depth(m *counts.Matrix) (*DepthResult, error) {
	if m == nil {
		return nil, ErrNilInput
	}
	raw := m.Dense()

	// Stage 1 (CPM): degenerate columns are divided by +Inf, which zeroes them
	// so the log transform stays finite; they are dropped below.
	sizes, err := matrix.ColSums(raw)
	if err != nil {
		return nil, err
	}
	div := make([]float64, len(sizes))
	for j, s := range sizes {
		div[j] = math.Inf(1)
		if !degenerate(s) {
			div[j] = s
		}
	}
	cpm, err := matrix.DivColumns(raw, div)
	if err != nil {
		return nil, err
	}

	// Stage 2 (Degenerate samples).
	var (
		errs   []error
		failed []string
	)
	samples := m.Samples()
	for j, s := range sizes {
		if degenerate(s) {
			failed = append(failed, samples[j])
			errs = append(errs, &SampleError{
				Sample: samples[j],
				Err:    fmt.Errorf("%w: library size %v", ErrDegenerateSample, s),
			})
		}
	}
	depthErr := errors.Join(errs...)

	// Stage 3 (Log transform): the +1 pseudocount keeps the argument ≥ 1.
	logExpr, err := matrix.Apply(cpm, func(v float64) float64 {
		return math.Log2(v*perMillion + 1)
	})
	if err != nil {
		return nil, err
	}

	cpmM, err := m.Derive(cpm)
	if err != nil {
		return nil, err
	}
	logM, err := m.Derive(logExpr)
	if err != nil {
		return nil, err
	}

	dr := &DepthResult{CPM: cpmM, LogExpr: logM, LibrarySizes: sizes}
	if len(failed) == 0 {
		return dr, nil
	}
	kept, err := dr.without(failed)
	if err != nil {
		if errors.Is(err, counts.ErrEmpty) {
			return nil, depthErr
		}
		return nil, err
	}

	return kept, depthErr
}

// degenerate reports a library size that cannot serve as a CPM divisor.
func degenerate(size float64) bool {
	return !(size > 0) || math.IsInf(size, 1)
}

// without returns dr restricted to the samples not named in drop, keeping
// their order. Dropping every sample yields counts.ErrEmpty.
func (dr *DepthResult) without(drop []string) (*DepthResult, error) {
	cpm, err := dr.CPM.DropSamples(drop...)
	if err != nil {
		return nil, err
	}
	logExpr, err := dr.LogExpr.DropSamples(drop...)
	if err != nil {
		return nil, err
	}

	gone := make(map[string]struct{}, len(drop))
	for _, s := range drop {
		gone[s] = struct{}{}
	}
	sizes := make([]float64, 0, cpm.NumSamples())
	for j, s := range dr.CPM.Samples() {
		if _, ok := gone[s]; !ok && j < len(dr.LibrarySizes) {
			sizes = append(sizes, dr.LibrarySizes[j])
		}
	}

	return &DepthResult{CPM: cpm, LogExpr: logExpr, LibrarySizes: sizes}, nil
}
