// SPDX-License-Identifier: MIT
// Package counts: sentinel error set.
// Constructors and lookups return these sentinels wrapped with the offending
// identifier or coordinate; callers match with errors.Is.

package counts

import "errors"

var (
	// ErrEmpty is returned when a matrix would have no genes or no samples.
	ErrEmpty = errors.New("counts: matrix has no genes or no samples")

	// ErrEmptyID indicates a blank gene or sample identifier.
	ErrEmptyID = errors.New("counts: empty identifier")

	// ErrDuplicateGene indicates the same gene identifier on two rows.
	ErrDuplicateGene = errors.New("counts: duplicate gene identifier")

	// ErrDuplicateSample indicates the same sample identifier on two columns.
	ErrDuplicateSample = errors.New("counts: duplicate sample identifier")

	// ErrShape indicates that labels and values disagree on the matrix shape.
	ErrShape = errors.New("counts: labels do not match value shape")

	// ErrRagged indicates keyed input whose samples do not share one gene set.
	ErrRagged = errors.New("counts: samples carry different gene sets")

	// ErrNegativeCount indicates a count below zero.
	ErrNegativeCount = errors.New("counts: negative count")

	// ErrNonFinite indicates a NaN or ±Inf count.
	ErrNonFinite = errors.New("counts: NaN or Inf count")

	// ErrUnknownGene indicates a lookup for a gene the matrix does not hold.
	ErrUnknownGene = errors.New("counts: unknown gene")

	// ErrUnknownSample indicates a lookup for a sample the matrix does not hold.
	ErrUnknownSample = errors.New("counts: unknown sample")
)
