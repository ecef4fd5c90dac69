// SPDX-License-Identifier: MIT

// Package normalize implements GeTMM normalization of RNA-seq read counts.
//
// Two stages remove two biases:
//
//   - Depth (sequencing depth): counts are divided by their sample's library
//     size, giving CPM fractions, then log-transformed as log2(cpm·1e6 + 1).
//   - Factors / Apply (gene length): every sample gets one factor, the
//     geometric mean of its expression ratios weighted by
//     (length/centerLength)^readLength, and its CPM column is divided by it.
//
// Normalize chains both stages. Samples are processed concurrently with a
// bounded worker pool (WithWorkers); output is independent of the worker
// count and always in input sample order.
//
// Numerics: the weights are evaluated in log space and normalized with
// log-sum-exp, so extreme length ratios that would overflow the direct power
// still produce finite factors. The default expression center
// (CenterLogValues) is the geometric mean of the log2 values, which collapses
// to 0 whenever a gene has zero expression in the sample; the collapse is
// flagged on SampleFactor and logged at WARN. CenterRawValues selects the
// arithmetic mean of the log2 values instead.
//
// Errors: failures are attributed to samples (SampleError) or genes
// (GeneError) and joined, so one run reports every offender. A failing sample
// is left out of the result while the others are still returned. Use
// errors.Is with the Err* sentinels and FailedSamples / MissingGenes for the ids.
package normalize
