// SPDX-License-Identifier: MIT

// Package normalize: functional configuration.
// This file defines:
//   - documented defaults (single source of truth),
//   - Option / options with unexported state,
//   - WithX constructors,
//   - gatherOptions, which resolves defaults and validates values.
//
// Invalid values are reported as errors by gatherOptions, never panics.

package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
)

// Defaults.
const (
	// DefaultReadLength is the sequencing read length in base pairs.
	DefaultReadLength = 100

	// DefaultCenterMode reproduces the reference centering (geometric mean of
	// the log2 expression values).
	DefaultCenterMode = CenterLogValues
)

// CenterMode selects how the per-sample expression center is computed.
type CenterMode int

const (
	// CenterLogValues takes the geometric mean directly over the log2 values,
	// exp(mean(log(logExpr))). A single zero log2 value collapses the center to
	// 0; this is the reference behavior and is reproduced exactly.
	CenterLogValues CenterMode = iota

	// CenterRawValues takes the log2 of the geometric mean of the raw
	// (cpm·1e6 + 1) values, i.e. the arithmetic mean of the log2 values. This
	// is the textbook formulation and never collapses.
	CenterRawValues
)

// String returns the configuration spelling of c.
func (c CenterMode) String() string {
	switch c {
	case CenterLogValues:
		return "log-values"
	case CenterRawValues:
		return "raw-values"
	default:
		return fmt.Sprintf("CenterMode(%d)", int(c))
	}
}

// ParseCenterMode parses "log-values" or "raw-values" (case-insensitive).
func ParseCenterMode(s string) (CenterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "log-values", "log":
		return CenterLogValues, nil
	case "raw-values", "raw":
		return CenterRawValues, nil
	default:
		return 0, fmt.Errorf("normalize: unknown center mode %q", s)
	}
}

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	readLength int          // DefaultReadLength
	center     CenterMode   // DefaultCenterMode
	workers    int          // 0 ⇒ GOMAXPROCS
	logger     *slog.Logger // nil ⇒ discard
}

// WithReadLength sets the sequencing read length used as the exponent of the
// length ratios. Must be > 0.
func WithReadLength(n int) Option {
	return func(o *options) { o.readLength = n }
}

// WithCenterMode selects the expression centering formulation.
func WithCenterMode(m CenterMode) Option {
	return func(o *options) { o.center = m }
}

// WithWorkers bounds the number of samples processed concurrently.
// 1 runs sequentially; 0 uses runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger routes per-sample diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// gatherOptions applies opts over the defaults and validates the result.
func gatherOptions(opts ...Option) (options, error) {
	o := options{
		readLength: DefaultReadLength,
		center:     DefaultCenterMode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.readLength <= 0 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidReadLength, o.readLength)
	}
	if o.center != CenterLogValues && o.center != CenterRawValues {
		return o, fmt.Errorf("normalize: unknown center mode %d", int(o.center))
	}
	if o.workers < 0 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidWorkers, o.workers)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o, nil
}
