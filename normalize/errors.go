// SPDX-License-Identifier: MIT
// Package normalize: error taxonomy.
//
// Sentinels describe WHAT went wrong; SampleError and GeneError say WHERE.
// Every failure is attributed to the sample or gene it concerns and unwraps
// to its sentinel, so callers use errors.Is for the kind and errors.As (or
// FailedSamples / MissingGenes) for the identifiers. When several samples
// fail, all of them are reported through errors.Join in sample order.

package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateSample indicates a sample whose total read count is zero or
	// overflows float64; its counts-per-million are undefined.
	ErrDegenerateSample = errors.New("normalize: sample library size is zero or infinite")

	// ErrMissingGeneLength indicates a gene in the count matrix with no entry
	// in the gene length table.
	ErrMissingGeneLength = errors.New("normalize: gene has no length entry")

	// ErrZeroWeight indicates that the length-ratio weights of a sample sum to
	// zero, which only happens for an empty gene set.
	ErrZeroWeight = errors.New("normalize: length weights sum to zero")

	// ErrDegenerateFactor indicates a normalization factor that is zero, NaN
	// or infinite and therefore cannot be divided out.
	ErrDegenerateFactor = errors.New("normalize: degenerate normalization factor")

	// ErrInvalidReadLength indicates a read length that is not a positive integer.
	ErrInvalidReadLength = errors.New("normalize: read length must be > 0")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("normalize: workers must be >= 0")

	// ErrNilInput indicates a nil matrix, table or depth result.
	ErrNilInput = errors.New("normalize: nil input")

	// ErrFactorCount indicates a factor vector whose length or sample order does
	// not match the matrix it is applied to.
	ErrFactorCount = errors.New("normalize: factors do not match samples")
)

// SampleError attributes a failure to one sample.
type SampleError struct {
	Sample string
	Err    error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %q: %v", e.Sample, e.Err)
}

func (e *SampleError) Unwrap() error { return e.Err }

// GeneError attributes a failure to one gene.
type GeneError struct {
	Gene string
	Err  error
}

func (e *GeneError) Error() string {
	return fmt.Sprintf("gene %q: %v", e.Gene, e.Err)
}

func (e *GeneError) Unwrap() error { return e.Err }

// FailedSamples returns the ids of every sample attributed in err, in the
// order they were reported. It looks through errors.Join trees and %w chains.
func FailedSamples(err error) []string {
	var out []string
	walk(err, func(e error) {
		if se, ok := e.(*SampleError); ok {
			out = append(out, se.Sample)
		}
	})

	return out
}

// MissingGenes returns the ids of every gene reported with ErrMissingGeneLength in err.
func MissingGenes(err error) []string {
	var out []string
	walk(err, func(e error) {
		if ge, ok := e.(*GeneError); ok && errors.Is(ge.Err, ErrMissingGeneLength) {
			out = append(out, ge.Gene)
		}
	})

	return out
}

// walk visits err and everything it wraps, depth first.
func walk(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}
