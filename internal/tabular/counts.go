// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/getmm/counts"
)

// DefaultDelimiter separates count matrix fields unless configured otherwise.
const DefaultDelimiter = ','

// ReadCounts parses a genes × samples count matrix. The first row is the
// header; its first field labels the gene column and is otherwise ignored,
// the remaining fields are sample ids. Every following row holds a gene id
// and one count per sample. Lines starting with '#' are skipped.
func ReadCounts(r io.Reader, delim rune) (*counts.Matrix, error) {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	c := csv.NewReader(r)
	c.Comma = delim
	c.Comment = '#'
	c.TrimLeadingSpace = true

	header, err := c.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty count matrix", ErrHeader)
		}
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: want a gene column and at least one sample, got %d fields", ErrHeader, len(header))
	}
	samples := make([]string, len(header)-1)
	for i, s := range header[1:] {
		samples[i] = strings.TrimSpace(s)
	}

	var (
		genes []string
		rows  [][]float64
	)
	c.ReuseRecord = true
	for {
		rec, err := c.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line, _ := c.FieldPos(0)
		gene := strings.TrimSpace(rec[0])
		row := make([]float64, len(samples))
		for i, f := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, recordErrorf(line, "count for %q in sample %q: %v", gene, samples[i], err)
			}
			row[i] = v
		}
		genes = append(genes, gene)
		rows = append(rows, row)
	}

	return counts.FromRows(genes, samples, rows)
}

// ReadCountsFile is ReadCounts over the file at path.
func ReadCountsFile(path string, delim rune) (*counts.Matrix, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadCounts(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
