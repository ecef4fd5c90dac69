// SPDX-License-Identifier: MIT

package normalize

import "github.com/katalvlaran/getmm/counts"

// DepthResult is the output of depth normalization.
//
// CPM holds count/librarySize per (gene, sample), a fraction not yet scaled to
// per-million. LogExpr holds log2(CPM·1e6 + 1), always ≥ 0. Both share the
// input's labels and orientation (genes × samples), without degenerate samples.
type DepthResult struct {
	CPM          *counts.Matrix
	LogExpr      *counts.Matrix
	LibrarySizes []float64 // column sums of the raw counts, sample order
}

// SampleFactor is the normalization factor of one sample plus the quantities
// it was derived from.
type SampleFactor struct {
	Sample string

	// Factor is the length-weighted geometric mean of expression ratios;
	// normalized values are CPM / Factor.
	Factor float64

	// LogFactor is ln(Factor), the quantity actually accumulated.
	LogFactor float64

	// CenterExpr is the expression center subtracted before exponentiation.
	CenterExpr float64

	// CenterCollapsed reports that CenterLogValues centering collapsed to 0
	// because at least one gene had zero expression in the sample.
	CenterCollapsed bool

	// LibrarySize is the raw column sum of the sample.
	LibrarySize float64
}

// Result is the output of the full pipeline.
type Result struct {
	// Matrix holds CPM / factor per (gene, sample), same labels and order as
	// the input counts minus any failed samples.
	Matrix *counts.Matrix

	// Factors holds one entry per column of Matrix, in the same order.
	Factors []SampleFactor
}
