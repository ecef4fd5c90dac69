// SPDX-License-Identifier: MIT

package normalize

import (
	"context"
	"errors"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/genelength"
)

// Normalize runs the full GeTMM pipeline on raw counts:
// Depth → Factors → Apply.
//
// The returned Result holds the normalized matrix (genes × samples, input
// order) and the per-sample factors.
//
// A failing sample aborts only its own computation. When some samples fail,
// Normalize returns both a Result covering the healthy samples (failed ones
// omitted, order kept) and an error that attributes every failure;
// FailedSamples lists the omitted ids. The Result is nil when nothing
// survives: every sample failed, a gene has no length entry (MissingGenes),
// the options are invalid or ctx was cancelled.
func Normalize(ctx context.Context, m *counts.Matrix, table *genelength.Table, opts ...Option) (*Result, error) {
	if m == nil || table == nil {
		return nil, ErrNilInput
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	o.logger.Info("normalizing",
		"genes", m.NumGenes(),
		"samples", m.NumSamples(),
		"read_length", o.readLength,
		"center_mode", o.center.String(),
		"workers", o.workers)

	dr, depthErr := Depth(m)
	if dr == nil {
		return nil, depthErr
	}

	factors, factorErr := Factors(ctx, dr, table, opts...)
	if len(factors) == 0 {
		return nil, errors.Join(depthErr, factorErr)
	}
	if factorErr != nil {
		if dr, err = dr.without(FailedSamples(factorErr)); err != nil {
			return nil, errors.Join(depthErr, factorErr, err)
		}
	}

	out, applyErr := Apply(dr, factors)
	if out == nil {
		return nil, errors.Join(depthErr, factorErr, applyErr)
	}
	if applyErr != nil {
		factors = keepFactors(factors, out.Samples())
	}
	runErr := errors.Join(depthErr, factorErr, applyErr)
	if runErr != nil {
		o.logger.Warn("samples omitted from result",
			"failed", FailedSamples(runErr),
			"kept", out.NumSamples())
	}

	return &Result{Matrix: out, Factors: factors}, runErr
}

// keepFactors returns the factors whose sample is in samples, preserving order.
func keepFactors(factors []SampleFactor, samples []string) []SampleFactor {
	want := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		want[s] = struct{}{}
	}
	out := make([]SampleFactor, 0, len(samples))
	for _, f := range factors {
		if _, ok := want[f.Sample]; ok {
			out = append(out, f)
		}
	}

	return out
}
