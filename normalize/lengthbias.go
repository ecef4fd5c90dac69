// SPDX-License-Identifier: MIT

package normalize

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/genelength"
	"github.com/katalvlaran/getmm/matrix"
)

// lengthWeights holds the per-gene quantities every sample shares. It is built
// once per gene axis and only read by the sample workers.
type lengthWeights struct {
	centerLength float64   // geometric mean of the gene lengths
	norm         []float64 // lengthRatio[g] / Σ lengthRatio, gene order
}

// prepareWeights resolves gene lengths and turns
// lengthRatio[g] = (length[g]/centerLength)^readLength into normalized weights.
//
// The ratios are kept in log space, readLength·(ln length[g] − mean ln length),
// and normalized with log-sum-exp: (L/Lc)^100 overflows float64 as soon as a
// gene is a few thousand times longer than the center, while the normalized
// weights never do.
func prepareWeights(genes []string, table *genelength.Table, readLength int) (*lengthWeights, error) {
	lengths, missing := table.Resolve(genes)
	if len(missing) > 0 {
		errs := make([]error, len(missing))
		for i, g := range missing {
			errs[i] = &GeneError{Gene: g, Err: ErrMissingGeneLength}
		}
		return nil, errors.Join(errs...)
	}
	if len(lengths) == 0 {
		return nil, ErrZeroWeight
	}

	logL := make([]float64, len(lengths))
	for i, l := range lengths {
		logL[i] = math.Log(l)
	}
	meanLog := stat.Mean(logL, nil)

	logW := make([]float64, len(lengths))
	for i, ll := range logL {
		logW[i] = float64(readLength) * (ll - meanLog)
	}
	lse := floats.LogSumExp(logW)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		return nil, ErrZeroWeight
	}

	norm := make([]float64, len(logW))
	for i, lw := range logW {
		norm[i] = math.Exp(lw - lse)
	}

	return &lengthWeights{
		centerLength: stat.GeometricMean(lengths, nil),
		norm:         norm,
	}, nil
}

// center returns the expression center of one sample under mode.
func center(logExpr []float64, mode CenterMode) float64 {
	if mode == CenterRawValues {
		return stat.Mean(logExpr, nil)
	}
	// Geometric mean of the log2 values themselves; any zero collapses it to 0.
	return stat.GeometricMean(logExpr, nil)
}

// sampleFactor computes the factor of one sample from its log2 expression
// column:
//
//	exprRatio[g] = exp(logExpr[g] − centerExpr)
//	ln factor    = Σ_g w[g]·ln exprRatio[g]  with w = lengthRatio / Σ lengthRatio
//
// which is the log-space form of (Π exprRatio^lengthRatio)^(1/Σ lengthRatio).
func sampleFactor(sample string, logExpr []float64, w *lengthWeights, mode CenterMode) (SampleFactor, error) {
	if len(logExpr) == 0 || len(w.norm) != len(logExpr) {
		return SampleFactor{}, ErrZeroWeight
	}

	c := center(logExpr, mode)
	var logF float64
	for g, le := range logExpr {
		logF += w.norm[g] * (le - c)
	}
	f := math.Exp(logF)
	if !(f > 0) || math.IsInf(f, 0) {
		return SampleFactor{}, fmt.Errorf("%w: ln factor %v", ErrDegenerateFactor, logF)
	}

	return SampleFactor{
		Sample:          sample,
		Factor:          f,
		LogFactor:       logF,
		CenterExpr:      c,
		CenterCollapsed: mode == CenterLogValues && c == 0,
	}, nil
}

// Factors computes one normalization factor per sample of dr.
//
// Implementation:
//   - Stage 1: resolve gene lengths once (ErrMissingGeneLength per missing
//     gene, all joined) and derive the shared weights.
//   - Stage 2: fan out one task per sample over an errgroup bounded by the
//     configured workers. Each task reads only its own column and writes only
//     its own slot, so no locking is needed and output order is input order.
//   - Stage 3: per-sample failures are collected, not short-circuited; they are
//     returned joined, each attributed with a SampleError.
//
// The returned factors cover the samples that succeeded, in dr's sample order,
// even when err is non-nil. A gene-level failure affects every sample, so it
// returns no factors. Cancelling ctx stops scheduling further samples and
// returns ctx.Err() alone.
func Factors(ctx context.Context, dr *DepthResult, table *genelength.Table, opts ...Option) ([]SampleFactor, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	if dr == nil || dr.LogExpr == nil || table == nil {
		return nil, ErrNilInput
	}

	// Stage 1 (Shared weights).
	w, err := prepareWeights(dr.LogExpr.Genes(), table, o.readLength)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("length weights prepared",
		"genes", len(w.norm),
		"center_length", w.centerLength,
		"read_length", o.readLength)

	// Stage 2 (Fan out).
	logExpr := dr.LogExpr.Dense()
	samples := dr.LogExpr.Samples()
	factors := make([]SampleFactor, len(samples))
	errs := make([]error, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for j, s := range samples {
		j, s := j, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			col, err := logExpr.Col(j)
			if err != nil {
				errs[j] = &SampleError{Sample: s, Err: err}
				return nil
			}
			sf, err := sampleFactor(s, col, w, o.center)
			if err != nil {
				errs[j] = &SampleError{Sample: s, Err: err}
				return nil
			}
			if j < len(dr.LibrarySizes) {
				sf.LibrarySize = dr.LibrarySizes[j]
			}
			if sf.CenterCollapsed {
				o.logger.Warn("expression center collapsed to zero",
					"sample", s,
					"reason", "at least one gene has zero expression")
			}
			o.logger.Debug("sample factor", "sample", s, "factor", sf.Factor)
			factors[j] = sf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stage 3 (Report): keep the samples that produced a factor.
	ok := factors[:0]
	for j, sf := range factors {
		if errs[j] == nil {
			ok = append(ok, sf)
		}
	}
	if len(ok) == 0 {
		ok = nil
	}

	return ok, errors.Join(errs...)
}

// Apply divides every CPM column of dr by its sample's factor:
// normalized[g,s] = cpm[g,s] / factor[s]. Factors must be in dr's sample order.
//
// A zero, NaN or infinite factor is reported as a SampleError and its column
// is left out of the returned matrix; the other samples are still divided.
func Apply(dr *DepthResult, factors []SampleFactor) (*counts.Matrix, error) {
	if dr == nil || dr.CPM == nil {
		return nil, ErrNilInput
	}
	samples := dr.CPM.Samples()
	if len(factors) != len(samples) {
		return nil, fmt.Errorf("%w: %d factors for %d samples", ErrFactorCount, len(factors), len(samples))
	}

	div := make([]float64, len(factors))
	var (
		errs   []error
		failed []string
	)
	for j, f := range factors {
		if f.Sample != samples[j] {
			return nil, fmt.Errorf("%w: position %d holds %q, want %q", ErrFactorCount, j, f.Sample, samples[j])
		}
		if !(f.Factor > 0) || math.IsInf(f.Factor, 0) {
			errs = append(errs, &SampleError{Sample: f.Sample, Err: ErrDegenerateFactor})
			failed = append(failed, f.Sample)
			div[j] = math.Inf(1)
			continue
		}
		div[j] = f.Factor
	}
	applyErr := errors.Join(errs...)

	out, err := matrix.DivColumns(dr.CPM.Dense(), div)
	if err != nil {
		return nil, err
	}
	norm, err := dr.CPM.Derive(out)
	if err != nil {
		return nil, err
	}
	if len(failed) == 0 {
		return norm, nil
	}
	kept, err := norm.DropSamples(failed...)
	if err != nil {
		if errors.Is(err, counts.ErrEmpty) {
			return nil, applyErr
		}
		return nil, err
	}

	return kept, applyErr
}
