package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// File is the on-disk config file accepted by the -c option. Every field is
// optional; unset fields leave the built-in default in place, and any
// command-line option overrides the file.
//
// Pointer fields distinguish "not set" from the zero value, e.g. an explicit
// `append: false`.
type File struct {
	// OutputDir is the base directory for input files and output files.
	OutputDir string `json:"outputDir" yaml:"outputDir" toml:"outputDir"`

	// Prefix is prepended to each output file suffix.
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`

	// Append selects append mode for the output files.
	Append *bool `json:"append" yaml:"append" toml:"append"`

	// Stats selects the statistics block: "none", "short" or "full".
	Stats string `json:"stats" yaml:"stats" toml:"stats"`

	// Format selects the statistics rendering: "text", "json" or "yaml".
	Format string `json:"format" yaml:"format" toml:"format"`

	// TrueMean reports the arithmetic mean instead of the legacy average.
	TrueMean *bool `json:"trueMean" yaml:"trueMean" toml:"trueMean"`

	// Verbose enables debug-level diagnostics.
	Verbose *bool `json:"verbose" yaml:"verbose" toml:"verbose"`

	// Suffixes overrides output file suffixes, keyed by category name
	// ("integers", "floats" or "strings"). An explicitly empty suffix
	// disables the output file of that category.
	Suffixes map[string]string `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
}

// fileFormat is the serialization of a config file, derived from its
// extension.
type fileFormat string

const (
	fileFormatJSON fileFormat = "json"
	fileFormatYAML fileFormat = "yaml"
	fileFormatTOML fileFormat = "toml"
)

// detectFileFormat maps a config file extension to its format.
// Returns false for unsupported extensions.
func detectFileFormat(path string) (fileFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return fileFormatJSON, true
	case ".yaml", ".yml":
		return fileFormatYAML, true
	case ".toml":
		return fileFormatTOML, true
	default:
		return "", false
	}
}

// LoadFile reads and parses a config file. The format is chosen by
// extension:
//   - .json, .jsonc: JSON with comments and trailing commas, stripped with
//     github.com/tidwall/jsonc before decoding with encoding/json
//   - .yaml, .yml: gopkg.in/yaml.v3
//   - .toml: github.com/BurntSushi/toml
//
// Every failure is returned as an *Error.
func LoadFile(path string) (*File, error) {
	format, ok := detectFileFormat(path)
	if !ok {
		return nil, &Error{
			Token:   path,
			Message: fmt.Sprintf("unsupported config file extension %q (valid: .json, .jsonc, .yaml, .yml, .toml)", filepath.Ext(path)),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Token: path, Message: "failed to read config file", Err: err}
	}

	var f File
	switch format {
	case fileFormatJSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &f)
	case fileFormatYAML:
		err = yaml.Unmarshal(data, &f)
	case fileFormatTOML:
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, &Error{Token: path, Message: fmt.Sprintf("failed to parse %s config file %s", format, path), Err: err}
	}

	return &f, nil
}
