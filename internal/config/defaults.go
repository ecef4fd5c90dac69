// SPDX-License-Identifier: MIT

package config

const (
	defaultReadLength       = 100
	defaultCenterMode       = "log-values"
	defaultWorkers          = 0
	defaultDelimiter        = ","
	defaultAnnotationFormat = "biomart"
	defaultGeneAttribute    = "gene_name"
	defaultOutputPath       = "-"
	defaultPrecision        = -1
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Normalization: Normalization{
			ReadLength: defaultReadLength,
			CenterMode: defaultCenterMode,
			Workers:    defaultWorkers,
		},
		Input: Input{
			Delimiter:        defaultDelimiter,
			AnnotationFormat: defaultAnnotationFormat,
			GeneAttribute:    defaultGeneAttribute,
		},
		Output: Output{
			Path:      defaultOutputPath,
			Precision: defaultPrecision,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
