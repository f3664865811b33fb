// Package cli implements the cobra-based command line of typefilter.
//
// typefilter has a single root command. Its option grammar (single-dash
// options whose value is decided by looking at the next token) is not
// POSIX compatible, so cobra's flag parsing is disabled and the raw
// arguments are handed to config.ParseArgs. This file defines the root
// command, help/version handling and the mapping of errors to exit codes;
// run.go contains the processing pipeline.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// usage is appended to the long help text.
const usage = `Usage:
  typefilter [options] file...

Options:
  -o <dir>     base directory for input files and output files (default: current directory)
  -p <prefix>  prefix for output file names
  -a           append to existing output files instead of overwriting them
  -s           print short statistics (element counts)
  -f           print full statistics (min, max, average; min/max length for strings)
  -r <format>  statistics format: text (default), json, yaml
  -m           report the arithmetic mean instead of last/count as the average
  -c <file>    load defaults from a .json/.jsonc, .yaml/.yml or .toml config file
  -v           verbose diagnostics on stderr
  -h           show this help
  --version    show version information

An option takes the next argument as its value unless that argument is itself
an option, so flags such as -a or -s should be followed by another option, not
by an input file. An option may not be the last argument.

Examples:
  typefilter in1.txt in2.txt
  typefilter -s -a -p sample- in1.txt in2.txt
  typefilter -f -r yaml -o /data -p run1- in.txt`

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	r := &runner{newLogger: newLogger}

	rootCmd := &cobra.Command{
		Use:   "typefilter [options] file...",
		Short: "Split text files into integer, float and string files",
		Long: `typefilter reads text files line by line and sorts every line into one of
three categories: integers, floats or strings. Each category is written to its
own output file (integers.txt, floats.txt, strings.txt, optionally prefixed),
and summary statistics can be printed per category.

` + usage,

		// Flags are parsed by config.ParseArgs, not by cobra/pflag.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			if hasAnyToken(args, "-h", "-help", "--help") {
				return cmd.Help()
			}
			if hasAnyToken(args, "-version", "--version") {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "typefilter version %s\n", cmd.Version)
				return err
			}
			return r.run(cmd.OutOrStdout(), args)
		},
	}

	return rootCmd
}

// hasAnyToken reports whether args contains any of tokens.
func hasAnyToken(args []string, tokens ...string) bool {
	for _, a := range args {
		for _, t := range tokens {
			if a == t {
				return true
			}
		}
	}
	return false
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			if cliErr.Code == model.ExitUsageError {
				fmt.Fprintln(os.Stderr, "Run 'typefilter -h' for usage.")
			}
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message on stderr.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}
