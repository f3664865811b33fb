// Package config turns the raw command line (and an optional config file)
// into the settings of a single typefilter run.
//
// Configuration is built in two steps:
//   - ParseArgs splits argv into single-dash options and positional input
//     file names, following the tool's own option grammar (see ParseArgs).
//   - Resolve layers defaults, the config file named by -c, and the
//     command-line options into a typed Settings value.
//
// Config files may be JSON/JSONC, YAML or TOML; the format is chosen by the
// file extension.
package config
