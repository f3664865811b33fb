// Package stats computes and renders per-category summary statistics.
//
// Numbers report count, min, max and an average. By default the average
// keeps the legacy definition used by earlier releases of the tool: the
// last value of the bucket divided by the number of values, in the
// bucket's own type (so integer buckets use integer division). The
// arithmetic mean is available as an opt-in (Summarize's trueMean).
//
// Strings report count and the min/max length in runes.
package stats
