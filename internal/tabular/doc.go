// SPDX-License-Identifier: MIT

// Package tabular reads and writes the delimited text files that surround a
// normalization run: count matrices, gene annotations (BioMart exports and
// GTF), normalized matrices, factor tables and gene length tables.
//
// Readers accept an io.Reader; the *File helpers open a path and
// transparently decompress it when the name ends in ".gz".
package tabular
