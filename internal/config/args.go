package config

import (
	"fmt"
	"strings"
)

// Marker is the prefix that turns a command-line token into an option name.
const Marker = "-"

// Option names recognized by Resolve. Any other option is stored in Args
// but otherwise ignored.
const (
	OptOutputDir = "o"
	OptPrefix    = "p"
	OptAppend    = "a"
	OptShort     = "s"
	OptFull      = "f"
	OptConfig    = "c"
	OptFormat    = "r"
	OptTrueMean  = "m"
	OptVerbose   = "v"
)

// Args is the raw, untyped result of splitting the command line: a map of
// option name (marker stripped) to value, and the ordered list of input
// file names. It is built once per run and never modified afterwards.
type Args struct {
	// Options maps option names to their values. Options given without a
	// value map to the empty string.
	Options map[string]string

	// Files lists positional input file names in order of appearance.
	Files []string
}

// Has reports whether the named option was given.
func (a *Args) Has(name string) bool {
	_, ok := a.Options[name]
	return ok
}

// Get returns the value of the named option and whether it was given.
func (a *Args) Get(name string) (string, bool) {
	v, ok := a.Options[name]
	return v, ok
}

// hasValue reports whether token is currently the value of any option.
func (a *Args) hasValue(token string) bool {
	for _, v := range a.Options {
		if v == token {
			return true
		}
	}
	return false
}

// ParseArgs splits the command line into options and input file names.
//
// The grammar is:
//   - A token starting with Marker is an option; the marker is stripped to
//     get its name. If the next token does not start with Marker, it is the
//     option's value; otherwise the value is empty.
//   - An option token may not be the last token, because its value (or the
//     absence of one) cannot be decided; this is reported as an *Error.
//   - Every other token is an input file name, unless it equals the value
//     of an option seen so far. This is also how the token consumed as an
//     option value is kept out of the file list.
//   - Repeating an option overwrites its earlier value.
//
// Example:
//
//	-s -o /data -p run1- a.txt b.txt
//	→ Options{s: "", o: "/data", p: "run1-"}, Files{a.txt, b.txt}
//
// An empty argument list is an *Error.
func ParseArgs(args []string) (*Args, error) {
	if len(args) == 0 {
		return nil, &Error{Message: "empty argument list: at least one input file is required"}
	}

	parsed := &Args{
		Options: make(map[string]string),
		Files:   make([]string, 0, len(args)),
	}

	for i, token := range args {
		if strings.HasPrefix(token, Marker) {
			// Bounds-checked look-ahead: the option's value is decided by
			// the following token, so there has to be one.
			if i+1 >= len(args) {
				return nil, &Error{
					Token:   token,
					Message: fmt.Sprintf("option %q is the last argument; it must be followed by a value, another option or an input file", token),
				}
			}

			name := strings.TrimPrefix(token, Marker)
			value := ""
			if next := args[i+1]; !strings.HasPrefix(next, Marker) {
				value = next
			}
			parsed.Options[name] = value
			continue
		}

		if !parsed.hasValue(token) {
			parsed.Files = append(parsed.Files, token)
		}
	}

	return parsed, nil
}
