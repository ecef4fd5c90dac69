// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/getmm/counts"
	"github.com/katalvlaran/getmm/genelength"
	"github.com/katalvlaran/getmm/internal/config"
	"github.com/katalvlaran/getmm/internal/report"
	"github.com/katalvlaran/getmm/internal/tabular"
	"github.com/katalvlaran/getmm/normalize"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a count matrix for sequencing depth and gene length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := applyInputFlags(cmd, &cfg); err != nil {
				return err
			}
			if err := applyNormalizeFlags(cmd, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Input.Counts == "" {
				return errors.New("no count matrix: set --counts or input.counts")
			}
			if cfg.Input.Annotation == "" {
				return errors.New("no annotation: set --annotation or input.annotation")
			}

			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := runNormalize(cmd.Context(), &cfg, logger)
			if err != nil {
				return err
			}

			if err := writeMatrix(cmd, &cfg, res.Matrix); err != nil {
				return fmt.Errorf("write normalized matrix: %w", err)
			}
			if cfg.Output.FactorsPath != "" {
				if err := tabular.WriteFactorsFile(cfg.Output.FactorsPath, res.Factors, cfg.Output.Precision); err != nil {
					return fmt.Errorf("write factors: %w", err)
				}
			}
			if !quiet {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, report.FactorTable(res.Factors, report.ShouldColorize(errOut)))
			}
			return nil
		},
	}

	addInputFlags(cmd)
	flags := cmd.Flags()
	flags.Int("read-length", 0, "Sequencing read length in bp")
	flags.String("center-mode", "", "Expression center: log-values or raw-values")
	flags.Int("workers", 0, "Samples processed concurrently (0 uses every CPU)")
	flags.Bool("drop-degenerate", false, "Drop failing samples from the output instead of aborting")
	flags.StringP("output", "o", "", `Normalized matrix destination ("-" for stdout)`)
	flags.String("factors", "", "Write per-sample factors to this TSV file")
	flags.Int("precision", 0, "Significant digits for floats (-1 for shortest exact)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not print the factor table")

	return cmd
}

// runNormalize loads the inputs named by cfg and runs the pipeline. With
// drop_degenerate set, a partial result covering the healthy samples is
// accepted and the failed samples are only logged.
func runNormalize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*normalize.Result, error) {
	m, err := tabular.ReadCountsFile(cfg.Input.Counts, cfg.DelimiterRune())
	if err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}
	table, err := loadLengths(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("inputs loaded",
		"counts", cfg.Input.Counts,
		"genes", m.NumGenes(),
		"samples", m.NumSamples(),
		"annotated_genes", table.Len())

	mode, err := normalize.ParseCenterMode(cfg.Normalization.CenterMode)
	if err != nil {
		return nil, err
	}
	opts := []normalize.Option{
		normalize.WithReadLength(cfg.Normalization.ReadLength),
		normalize.WithCenterMode(mode),
		normalize.WithWorkers(cfg.Normalization.Workers),
		normalize.WithLogger(logger),
	}

	res, err := normalize.Normalize(ctx, m, table, opts...)
	if err == nil {
		return res, nil
	}
	if missing := normalize.MissingGenes(err); len(missing) > 0 {
		logger.Error("genes without a length entry",
			"count", len(missing),
			"first", missing[0],
			"gene_attribute", cfg.Input.GeneAttribute)
		return nil, err
	}
	failed := normalize.FailedSamples(err)
	if !cfg.Normalization.DropDegenerate || len(failed) == 0 {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("every sample failed: %w", err)
	}
	logger.Warn("dropping failed samples",
		"samples", failed,
		"remaining", res.Matrix.NumSamples(),
		"error", err)

	return res, nil
}

func loadLengths(cfg *config.Config) (*genelength.Table, error) {
	feats, err := tabular.ReadAnnotationFile(cfg.Input.Annotation, tabular.AnnotationOptions{
		Format:        cfg.Input.AnnotationFormat,
		GeneAttribute: cfg.Input.GeneAttribute,
		FeatureType:   cfg.Input.FeatureType,
	})
	if err != nil {
		return nil, fmt.Errorf("read annotation: %w", err)
	}
	table, err := genelength.Aggregate(feats)
	if err != nil {
		return nil, fmt.Errorf("gene lengths: %w", err)
	}
	return table, nil
}

func writeMatrix(cmd *cobra.Command, cfg *config.Config, m *counts.Matrix) error {
	if cfg.Output.Path == "-" {
		return tabular.WriteMatrix(cmd.OutOrStdout(), m, cfg.DelimiterRune(), cfg.Output.Precision)
	}
	return tabular.WriteMatrixFile(cfg.Output.Path, m, cfg.DelimiterRune(), cfg.Output.Precision)
}

func applyNormalizeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("read-length") {
		if cfg.Normalization.ReadLength, err = flags.GetInt("read-length"); err != nil {
			return err
		}
	}
	if flags.Changed("center-mode") {
		if cfg.Normalization.CenterMode, err = flags.GetString("center-mode"); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if cfg.Normalization.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if flags.Changed("drop-degenerate") {
		if cfg.Normalization.DropDegenerate, err = flags.GetBool("drop-degenerate"); err != nil {
			return err
		}
	}
	if flags.Changed("output") {
		path, err := flags.GetString("output")
		if err != nil {
			return err
		}
		if cfg.Output.Path, err = config.ExpandPath(path); err != nil {
			return err
		}
	}
	if flags.Changed("factors") {
		path, err := flags.GetString("factors")
		if err != nil {
			return err
		}
		if cfg.Output.FactorsPath, err = config.ExpandPath(path); err != nil {
			return err
		}
	}
	if flags.Changed("precision") {
		if cfg.Output.Precision, err = flags.GetInt("precision"); err != nil {
			return err
		}
	}
	return nil
}
