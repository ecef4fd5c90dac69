// SPDX-License-Identifier: MIT

// Package genelength provides the gene → representative length table consumed
// by length-bias correction.
//
// Lengths come from annotation features (exons or other spans) grouped by gene:
// Aggregate averages End-Start+1 over every feature of a gene. The resulting
// Table is immutable and shared read-only by concurrent normalization workers.
package genelength
