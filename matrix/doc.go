// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage behind count matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set, column
//     and row copies and deep Clone.
//   - Column kernels (ColSums, DivColumns, Apply) used for
//     library sizes, depth scaling and factor application.
//   - Validators (ValidateNotNil, ValidateSameShape, ValidateFinite,
//     ValidateNonNegative) returning sentinel errors matchable with errors.Is.
//
// Data is stored genes × samples, so a sample is a column and column kernels
// are per-sample operations.
package matrix
