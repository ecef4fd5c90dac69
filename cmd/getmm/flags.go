// SPDX-License-Identifier: MIT

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/getmm/internal/config"
)

// addInputFlags registers the flags that override the [input] section.
func addInputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("counts", "", "Count matrix file (header: gene,<samples...>)")
	flags.String("delimiter", "", `Count matrix delimiter ("," or "tab")`)
	flags.String("annotation", "", "Gene annotation file (BioMart export or GTF)")
	flags.String("format", "", "Annotation format: biomart or gtf")
	flags.String("gene-attribute", "", "GTF attribute holding the gene id")
	flags.String("feature-type", "", "Keep only GTF rows of this feature type")
}

func applyInputFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	for _, f := range []struct {
		name   string
		dst    *string
		isPath bool
	}{
		{"counts", &cfg.Input.Counts, true},
		{"delimiter", &cfg.Input.Delimiter, false},
		{"annotation", &cfg.Input.Annotation, true},
		{"format", &cfg.Input.AnnotationFormat, false},
		{"gene-attribute", &cfg.Input.GeneAttribute, false},
		{"feature-type", &cfg.Input.FeatureType, false},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return err
		}
		if f.isPath {
			if v, err = config.ExpandPath(v); err != nil {
				return err
			}
		}
		*f.dst = v
	}
	cfg.Input.AnnotationFormat = strings.ToLower(strings.TrimSpace(cfg.Input.AnnotationFormat))
	return nil
}
