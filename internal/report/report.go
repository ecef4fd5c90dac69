// SPDX-License-Identifier: MIT

// Package report renders per-sample normalization factors for terminals.
package report

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/getmm/normalize"
)

var factorHeaders = table.Row{"Sample", "Library size", "Center", "Factor", "Note"}

// FactorTable renders factors as a rounded table. With colorize set, the
// header is bold and collapsed-center rows are highlighted.
func FactorTable(factors []normalize.SampleFactor, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}
	tw.AppendHeader(factorHeaders)

	for _, f := range factors {
		note := ""
		if f.CenterCollapsed {
			note = "center collapsed"
			if colorize {
				note = text.FgYellow.Sprint(note)
			}
		}
		tw.AppendRow(table.Row{
			f.Sample,
			strconv.FormatFloat(f.LibrarySize, 'f', -1, 64),
			strconv.FormatFloat(f.CenterExpr, 'f', 4, 64),
			strconv.FormatFloat(f.Factor, 'g', 6, 64),
			note,
		})
	}

	aligns := []text.Align{text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignLeft}
	configs := make([]table.ColumnConfig, len(aligns))
	for i, a := range aligns {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: a, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
