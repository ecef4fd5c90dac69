// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/getmm/internal/config"
	"github.com/katalvlaran/getmm/internal/tabular"
)

func newLengthsCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "lengths",
		Short: "Aggregate an annotation into a per-gene length table",
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
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Input.Annotation == "" {
				return errors.New("no annotation: set --annotation or input.annotation")
			}

			table, err := loadLengths(&cfg)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.Info("gene lengths aggregated", "annotation", cfg.Input.Annotation, "genes", table.Len())

			if output == "" || output == "-" {
				return tabular.WriteLengths(cmd.OutOrStdout(), table, cfg.Output.Precision)
			}
			if output, err = config.ExpandPath(output); err != nil {
				return err
			}
			if err := tabular.WriteLengthsFile(output, table, cfg.Output.Precision); err != nil {
				return fmt.Errorf("write lengths: %w", err)
			}
			return nil
		},
	}

	addInputFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "-", `Length table destination ("-" for stdout)`)
	return cmd
}
