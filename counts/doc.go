// SPDX-License-Identifier: MIT

// Package counts holds labeled RNA-seq count matrices.
//
// A Matrix is a genes × samples table: each row is a unique gene identifier,
// each column a unique sample identifier, each value a finite non-negative
// count (or, after normalization, a non-negative expression value). The same
// type carries raw counts, depth-normalized values and normalized output, so
// every stage of a pipeline preserves the (gene, sample) key set.
//
// Construct a Matrix from rows (FromRows), from a Dense plus labels (New) or
// from the keyed shape sample → gene → count (FromSampleMap, which orders both
// axes lexicographically and rejects ragged input with ErrRagged).
package counts
