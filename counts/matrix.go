// SPDX-License-Identifier: MIT

package counts

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/getmm/matrix"
)

// Matrix is a labeled genes × samples table of non-negative values.
// Rows are genes, columns are samples; both axes carry unique identifiers.
// A Matrix is immutable: every accessor hands out copies and every
// transformation returns a new Matrix.
type Matrix struct {
	genes     []string
	samples   []string
	geneIdx   map[string]int
	sampleIdx map[string]int
	data      *matrix.Dense // genes × samples
}

// New builds a Matrix from gene labels, sample labels and a genes × samples
// Dense. The Dense is copied. Values must be finite and non-negative.
//
// Errors: ErrEmpty, ErrEmptyID, ErrDuplicateGene, ErrDuplicateSample,
// ErrShape, ErrNonFinite, ErrNegativeCount.
func New(genes, samples []string, data *matrix.Dense) (*Matrix, error) {
	if len(genes) == 0 || len(samples) == 0 || data == nil {
		return nil, ErrEmpty
	}
	if data.Rows() != len(genes) || data.Cols() != len(samples) {
		return nil, fmt.Errorf("%w: %d genes × %d samples vs %d×%d values",
			ErrShape, len(genes), len(samples), data.Rows(), data.Cols())
	}
	if err := checkValues(data); err != nil {
		return nil, err
	}

	return build(genes, samples, data.Clone().(*matrix.Dense))
}

// FromRows builds a Matrix from one row of values per gene.
func FromRows(genes, samples []string, rows [][]float64) (*Matrix, error) {
	if len(genes) == 0 || len(samples) == 0 {
		return nil, ErrEmpty
	}
	if len(rows) != len(genes) {
		return nil, fmt.Errorf("%w: %d genes, %d rows", ErrShape, len(genes), len(rows))
	}
	flat := make([]float64, 0, len(genes)*len(samples))
	for i, row := range rows {
		if len(row) != len(samples) {
			return nil, fmt.Errorf("%w: gene %q has %d values for %d samples",
				ErrShape, genes[i], len(row), len(samples))
		}
		flat = append(flat, row...)
	}
	d, err := matrix.NewDenseFrom(len(genes), len(samples), flat)
	if err != nil {
		return nil, err
	}
	if err = checkValues(d); err != nil {
		return nil, err
	}

	return build(genes, samples, d)
}

// FromSampleMap builds a Matrix from the keyed shape sample → gene → count.
// Samples and genes are ordered lexicographically. Every sample must carry the
// same gene set; otherwise ErrRagged names the first offending sample.
func FromSampleMap(m map[string]map[string]float64) (*Matrix, error) {
	if len(m) == 0 {
		return nil, ErrEmpty
	}
	samples := make([]string, 0, len(m))
	for s := range m {
		samples = append(samples, s)
	}
	sort.Strings(samples)

	ref := m[samples[0]]
	genes := make([]string, 0, len(ref))
	for g := range ref {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	if len(genes) == 0 {
		return nil, ErrEmpty
	}

	rows := make([][]float64, len(genes))
	for i := range rows {
		rows[i] = make([]float64, len(samples))
	}
	for j, s := range samples {
		col := m[s]
		if len(col) != len(genes) {
			return nil, fmt.Errorf("%w: sample %q has %d genes, %q has %d",
				ErrRagged, s, len(col), samples[0], len(genes))
		}
		for i, g := range genes {
			v, ok := col[g]
			if !ok {
				return nil, fmt.Errorf("%w: sample %q lacks gene %q", ErrRagged, s, g)
			}
			rows[i][j] = v
		}
	}

	return FromRows(genes, samples, rows)
}

// build indexes the labels and takes ownership of d.
func build(genes, samples []string, d *matrix.Dense) (*Matrix, error) {
	geneIdx, err := index(genes, ErrDuplicateGene)
	if err != nil {
		return nil, err
	}
	sampleIdx, err := index(samples, ErrDuplicateSample)
	if err != nil {
		return nil, err
	}

	return &Matrix{
		genes:     append([]string(nil), genes...),
		samples:   append([]string(nil), samples...),
		geneIdx:   geneIdx,
		sampleIdx: sampleIdx,
		data:      d,
	}, nil
}

// index maps every id to its position, rejecting blanks and duplicates.
func index(ids []string, dup error) (map[string]int, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyID, i)
		}
		if _, seen := idx[id]; seen {
			return nil, fmt.Errorf("%w: %q", dup, id)
		}
		idx[id] = i
	}

	return idx, nil
}

// checkValues translates the matrix value policy into counts sentinels.
func checkValues(d *matrix.Dense) error {
	err := matrix.ValidateNonNegative(d)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrNaNInf):
		return fmt.Errorf("%w: %v", ErrNonFinite, err)
	case errors.Is(err, matrix.ErrNegative):
		return fmt.Errorf("%w: %v", ErrNegativeCount, err)
	default:
		return err
	}
}

// Derive returns a Matrix with the same labels as m holding values d.
// It is the way transforms publish their output in the input's shape; d must
// have m's shape, is copied and must be finite and non-negative.
func (m *Matrix) Derive(d *matrix.Dense) (*Matrix, error) {
	if err := matrix.ValidateNotNil(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	if err := matrix.ValidateSameShape(m.data, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}

	return New(m.genes, m.samples, d)
}

// NumGenes returns the number of rows.
func (m *Matrix) NumGenes() int { return len(m.genes) }

// NumSamples returns the number of columns.
func (m *Matrix) NumSamples() int { return len(m.samples) }

// Genes returns a copy of the gene identifiers in row order.
func (m *Matrix) Genes() []string { return append([]string(nil), m.genes...) }

// Samples returns a copy of the sample identifiers in column order.
func (m *Matrix) Samples() []string { return append([]string(nil), m.samples...) }

// Dense returns a copy of the genes × samples values.
func (m *Matrix) Dense() *matrix.Dense { return m.data.Clone().(*matrix.Dense) }

// At returns the value for (gene, sample).
func (m *Matrix) At(gene, sample string) (float64, error) {
	i, ok := m.geneIdx[gene]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGene, gene)
	}
	j, ok := m.sampleIdx[sample]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSample, sample)
	}

	return m.data.At(i, j)
}

// SampleAt returns column j as a SampleVector.
func (m *Matrix) SampleAt(j int) (SampleVector, error) {
	col, err := m.data.Col(j)
	if err != nil {
		return SampleVector{}, err
	}

	return SampleVector{Sample: m.samples[j], Genes: m.Genes(), Values: col}, nil
}

// Sample returns the column of the named sample.
func (m *Matrix) Sample(id string) (SampleVector, error) {
	j, ok := m.sampleIdx[id]
	if !ok {
		return SampleVector{}, fmt.Errorf("%w: %q", ErrUnknownSample, id)
	}

	return m.SampleAt(j)
}

// DropSamples returns a new Matrix without the named samples, keeping the
// remaining column order. Unknown ids are an error; dropping every sample
// yields ErrEmpty.
func (m *Matrix) DropSamples(ids ...string) (*Matrix, error) {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		j, ok := m.sampleIdx[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSample, id)
		}
		drop[j] = struct{}{}
	}
	keep := make([]int, 0, len(m.samples)-len(drop))
	for j := range m.samples {
		if _, gone := drop[j]; !gone {
			keep = append(keep, j)
		}
	}
	if len(keep) == 0 {
		return nil, ErrEmpty
	}

	samples := make([]string, len(keep))
	d, err := matrix.NewDense(len(m.genes), len(keep))
	if err != nil {
		return nil, err
	}
	for k, j := range keep {
		samples[k] = m.samples[j]
		col, _ := m.data.Col(j) // j comes from m's own index
		if err = d.SetCol(k, col); err != nil {
			return nil, err
		}
	}

	return build(m.genes, samples, d)
}

// ToSampleMap returns the keyed shape sample → gene → value.
func (m *Matrix) ToSampleMap() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(m.samples))
	for j, s := range m.samples {
		col, _ := m.data.Col(j)
		genes := make(map[string]float64, len(m.genes))
		for i, g := range m.genes {
			genes[g] = col[i]
		}
		out[s] = genes
	}

	return out
}
