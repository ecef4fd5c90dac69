// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/katalvlaran/getmm/normalize"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNormalization(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNormalization() error {
	if c.Normalization.ReadLength <= 0 {
		return errors.New("normalization.read_length must be positive")
	}
	if _, err := normalize.ParseCenterMode(c.Normalization.CenterMode); err != nil {
		return fmt.Errorf("normalization.center_mode: %w", err)
	}
	if c.Normalization.Workers < 0 {
		return errors.New("normalization.workers must be >= 0")
	}
	return nil
}

func (c *Config) validateInput() error {
	switch c.Input.Delimiter {
	case "tab", `\t`:
	default:
		if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
			return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
		}
		switch r, _ := utf8.DecodeRuneInString(c.Input.Delimiter); r {
		case '"', '\r', '\n', '#', utf8.RuneError:
			return fmt.Errorf("input.delimiter %q is not allowed", c.Input.Delimiter)
		}
	}
	switch c.Input.AnnotationFormat {
	case "biomart", "gtf":
	default:
		return fmt.Errorf("input.annotation_format must be biomart or gtf, got %q", c.Input.AnnotationFormat)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Precision < -1 {
		return errors.New("output.precision must be -1 (shortest) or >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
