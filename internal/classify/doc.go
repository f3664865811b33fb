// Package classify turns input lines into classified values and
// accumulates them across input files.
//
// Classification tries, in fixed order, a 64-bit integer, then a finite
// 64-bit float, and finally accepts the line as text. The first successful
// parse wins; a failed parse is the normal way to fall through to the next
// category and is never an error.
//
// The Aggregator reads input files one at a time, in the order given, and
// appends every line's value to shared Buckets. An unreadable file is
// logged and skipped without affecting the other files.
package classify
