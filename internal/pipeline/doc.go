// Package pipeline bins large variant tables by sharding the filter and
// count passes across goroutines and merging the per-shard histograms by
// element-wise sum. Results are identical to binning.ByChromosome; small
// inputs go straight to it.
package pipeline
