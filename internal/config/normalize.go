// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeNormalization()
	if err := c.normalizeInput(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeNormalization() {
	c.Normalization.CenterMode = strings.ToLower(strings.TrimSpace(c.Normalization.CenterMode))
	if c.Normalization.CenterMode == "" {
		c.Normalization.CenterMode = defaultCenterMode
	}
}

func (c *Config) normalizeInput() error {
	var err error
	if c.Input.Counts, err = expandPath(strings.TrimSpace(c.Input.Counts)); err != nil {
		return fmt.Errorf("input.counts: %w", err)
	}
	if c.Input.Annotation, err = expandPath(strings.TrimSpace(c.Input.Annotation)); err != nil {
		return fmt.Errorf("input.annotation: %w", err)
	}
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = defaultDelimiter
	}
	c.Input.AnnotationFormat = strings.ToLower(strings.TrimSpace(c.Input.AnnotationFormat))
	if c.Input.AnnotationFormat == "" {
		c.Input.AnnotationFormat = defaultAnnotationFormat
	}
	c.Input.GeneAttribute = strings.TrimSpace(c.Input.GeneAttribute)
	if c.Input.GeneAttribute == "" {
		c.Input.GeneAttribute = defaultGeneAttribute
	}
	c.Input.FeatureType = strings.TrimSpace(c.Input.FeatureType)
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Path) == "" {
		c.Output.Path = defaultOutputPath
	}
	if c.Output.Path, err = expandPath(strings.TrimSpace(c.Output.Path)); err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	if c.Output.FactorsPath, err = expandPath(strings.TrimSpace(c.Output.FactorsPath)); err != nil {
		return fmt.Errorf("output.factors_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
