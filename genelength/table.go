// SPDX-License-Identifier: MIT

package genelength

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrEmptyTable is returned when a table would hold no genes.
	ErrEmptyTable = errors.New("genelength: table has no genes")

	// ErrEmptyGene indicates a blank gene identifier.
	ErrEmptyGene = errors.New("genelength: empty gene identifier")

	// ErrNonPositiveLength indicates a length that is ≤ 0, NaN or ±Inf.
	ErrNonPositiveLength = errors.New("genelength: length must be finite and > 0")

	// ErrInvalidFeature indicates an annotation feature whose end precedes its start.
	ErrInvalidFeature = errors.New("genelength: feature end before start")
)

// Feature is one annotation record (an exon or other span) attributed to a gene.
// Coordinates are 1-based and inclusive, as in GTF and BioMart exports.
type Feature struct {
	Gene  string
	Start int64
	End   int64
}

// Length returns the span of the feature in base pairs (End - Start + 1).
func (f Feature) Length() int64 { return f.End - f.Start + 1 }

// Table maps gene identifiers to a representative length in base pairs.
// A Table is read-only after construction and safe for concurrent use.
type Table struct {
	lengths map[string]float64
}

// New builds a Table from a gene → length mapping. The map is copied.
func New(lengths map[string]float64) (*Table, error) {
	if len(lengths) == 0 {
		return nil, ErrEmptyTable
	}
	t := &Table{lengths: make(map[string]float64, len(lengths))}
	for g, l := range lengths {
		if strings.TrimSpace(g) == "" {
			return nil, ErrEmptyGene
		}
		if !(l > 0) || math.IsInf(l, 1) {
			return nil, fmt.Errorf("%w: gene %q has length %v", ErrNonPositiveLength, g, l)
		}
		t.lengths[g] = l
	}

	return t, nil
}

// Aggregate folds annotation features into a Table: the length of a gene is
// the mean span of all features attributed to it. Feature order does not
// matter. Features with a blank gene are skipped, as annotation rows without a
// gene name carry no length for any gene.
func Aggregate(features []Feature) (*Table, error) {
	type acc struct {
		sum float64
		n   int
	}
	byGene := make(map[string]*acc)
	for _, f := range features {
		if strings.TrimSpace(f.Gene) == "" {
			continue
		}
		if f.End < f.Start {
			return nil, fmt.Errorf("%w: gene %q [%d,%d]", ErrInvalidFeature, f.Gene, f.Start, f.End)
		}
		a, ok := byGene[f.Gene]
		if !ok {
			a = &acc{}
			byGene[f.Gene] = a
		}
		a.sum += float64(f.Length())
		a.n++
	}

	lengths := make(map[string]float64, len(byGene))
	for g, a := range byGene {
		lengths[g] = a.sum / float64(a.n)
	}

	return New(lengths)
}

// Len returns the number of genes in the table.
func (t *Table) Len() int { return len(t.lengths) }

// Length returns the length of gene and whether the table holds it.
func (t *Table) Length(gene string) (float64, bool) {
	l, ok := t.lengths[gene]
	return l, ok
}

// Genes returns the gene identifiers in lexicographic order.
func (t *Table) Genes() []string {
	out := make([]string, 0, len(t.lengths))
	for g := range t.lengths {
		out = append(out, g)
	}
	sort.Strings(out)

	return out
}

// Resolve returns the lengths of genes in the given order. Genes without an
// entry are reported in missing (input order) and their slot is left at 0.
func (t *Table) Resolve(genes []string) (lengths []float64, missing []string) {
	lengths = make([]float64, len(genes))
	for i, g := range genes {
		l, ok := t.lengths[g]
		if !ok {
			missing = append(missing, g)
			continue
		}
		lengths[i] = l
	}

	return lengths, missing
}
