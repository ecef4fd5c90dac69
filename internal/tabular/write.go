// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/genelength"
	"github.com/katalvlaran/getmm/normalize"
)

// DefaultPrecision is the number of significant digits written for floats;
// -1 selects the shortest representation that round-trips.
const DefaultPrecision = -1

// WriteMatrix writes m with a header row ("gene", samples...) followed by one
// row per gene, values formatted with prec significant digits.
func WriteMatrix(w io.Writer, m *counts.Matrix, delim rune, prec int) error {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	c := csv.NewWriter(w)
	c.Comma = delim

	samples := m.Samples()
	rec := make([]string, len(samples)+1)
	rec[0] = "gene"
	copy(rec[1:], samples)
	if err := c.Write(rec); err != nil {
		return err
	}

	d := m.Dense()
	for i, g := range m.Genes() {
		row, err := d.Row(i)
		if err != nil {
			return err
		}
		rec[0] = g
		for j, v := range row {
			rec[j+1] = formatFloat(v, prec)
		}
		if err := c.Write(rec); err != nil {
			return err
		}
	}
	c.Flush()

	return c.Error()
}

// WriteMatrixFile is WriteMatrix to path; "-" writes to stdout.
func WriteMatrixFile(path string, m *counts.Matrix, delim rune, prec int) error {
	return withFile(path, func(w io.Writer) error { return WriteMatrix(w, m, delim, prec) })
}

// WriteFactors writes one tab-separated row per sample:
// sample, library_size, center_expr, log_factor, factor, center_collapsed.
func WriteFactors(w io.Writer, factors []normalize.SampleFactor, prec int) error {
	c := csv.NewWriter(w)
	c.Comma = '\t'
	if err := c.Write([]string{"sample", "library_size", "center_expr", "log_factor", "factor", "center_collapsed"}); err != nil {
		return err
	}
	for _, f := range factors {
		if err := c.Write([]string{
			f.Sample,
			formatFloat(f.LibrarySize, prec),
			formatFloat(f.CenterExpr, prec),
			formatFloat(f.LogFactor, prec),
			formatFloat(f.Factor, prec),
			strconv.FormatBool(f.CenterCollapsed),
		}); err != nil {
			return err
		}
	}
	c.Flush()

	return c.Error()
}

// WriteFactorsFile is WriteFactors to path; "-" writes to stdout.
func WriteFactorsFile(path string, factors []normalize.SampleFactor, prec int) error {
	return withFile(path, func(w io.Writer) error { return WriteFactors(w, factors, prec) })
}

// WriteLengths writes a two-column TSV (gene, length) in sorted gene order.
func WriteLengths(w io.Writer, t *genelength.Table, prec int) error {
	c := csv.NewWriter(w)
	c.Comma = '\t'
	if err := c.Write([]string{"gene", "length"}); err != nil {
		return err
	}
	for _, g := range t.Genes() {
		l, _ := t.Length(g)
		if err := c.Write([]string{g, formatFloat(l, prec)}); err != nil {
			return err
		}
	}
	c.Flush()

	return c.Error()
}

// WriteLengthsFile is WriteLengths to path; "-" writes to stdout.
func WriteLengthsFile(path string, t *genelength.Table, prec int) error {
	return withFile(path, func(w io.Writer) error { return WriteLengths(w, t, prec) })
}

func withFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
