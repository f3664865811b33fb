// Package output writes each category's bucket to its own output file.
//
// One file is written per category on every run, even when the bucket is
// empty, so the set of output files is predictable. A category whose suffix
// is configured as empty is skipped. Files are either truncated or appended
// to, and values are written one per line using the platform line ending.
package output
