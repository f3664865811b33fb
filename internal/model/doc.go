// Package model defines the domain types and value objects for the
// typefilter CLI.
//
// This package contains pure data structures with no external dependencies.
// A run classifies every input line into one Value (Integer, Float or Text)
// and accumulates the values into Buckets, which live only for the duration
// of a single run — nothing is persisted besides the output files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
