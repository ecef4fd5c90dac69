// Package getmm normalizes RNA-seq read counts with GeTMM, so that expression
// values can be compared both across samples and across genes.
//
// What it does
//
//	Raw counts carry two biases:
//		• Sequencing depth: a sample sequenced twice as deep has twice the counts.
//		• Gene length: a longer gene collects more reads at equal expression.
//	getmm removes depth with counts-per-million and removes length with one
//	length-weighted factor per sample, then divides the CPM values by it.
//
// Layout
//
//	matrix/     row-major Dense matrix, validators and column kernels (gonum/floats)
//	counts/     labelled genes × samples count matrix, keyed and row input
//	genelength/ gene → length table, annotation feature aggregation
//	normalize/  Depth, Factors, Apply and the Normalize pipeline
//	cmd/getmm/  CLI: normalize, lengths, config init
//	internal/   config (TOML), logging (slog), tabular I/O, report tables
//
// Quick example:
//
//	m, _ := counts.FromSampleMap(map[string]map[string]float64{
//		"S1": {"A": 10, "B": 20},
//		"S2": {"A": 5, "B": 40},
//	})
//	table, _ := genelength.New(map[string]float64{"A": 1000, "B": 2000})
//	res, err := normalize.Normalize(ctx, m, table, normalize.WithReadLength(100))
//	// res.Matrix: CPM / factor per (gene, sample); res.Factors: one per sample
//
// Failures are attributed per sample or gene and joined. A failing sample only
// removes itself: res still covers the healthy samples and
// normalize.FailedSamples(err) names the omitted ones.
//
//	go install github.com/katalvlaran/getmm/cmd/getmm@latest
package getmm
