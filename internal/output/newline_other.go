//go:build !windows

package output

// LineEnding terminates every value written to an output file.
const LineEnding = "\n"
