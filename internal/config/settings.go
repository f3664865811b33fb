package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// DefaultSuffixes returns the built-in output file suffix of each category.
// A fresh map is returned on every call so callers may modify it.
func DefaultSuffixes() map[model.Category]string {
	return map[model.Category]string{
		model.CategoryInteger: "integers.txt",
		model.CategoryFloat:   "floats.txt",
		model.CategoryText:    "strings.txt",
	}
}

// knownOptions lists the option names Resolve consumes.
var knownOptions = map[string]bool{
	OptOutputDir: true,
	OptPrefix:    true,
	OptAppend:    true,
	OptShort:     true,
	OptFull:      true,
	OptConfig:    true,
	OptFormat:    true,
	OptTrueMean:  true,
	OptVerbose:   true,
}

// Settings is the typed, fully resolved configuration of a run.
type Settings struct {
	// BaseDir is the directory relative input file names are resolved
	// against and output files are written to.
	BaseDir string

	// Prefix is prepended to every output file suffix.
	Prefix string

	// Append opens output files in append mode instead of truncating them.
	Append bool

	// Mode selects the statistics block.
	Mode model.StatsMode

	// Format selects the statistics rendering.
	Format model.ReportFormat

	// TrueMean reports sum/count instead of the legacy last/count average.
	TrueMean bool

	// Verbose enables debug-level diagnostics.
	Verbose bool

	// Suffixes maps each category to its output file suffix. An empty
	// suffix disables that category's output file.
	Suffixes map[model.Category]string

	// Files lists the input file names in processing order.
	Files []string

	// Unknown lists option names that were given but are not recognized,
	// sorted by name.
	Unknown []string
}

// Resolve builds Settings from parsed arguments. workDir is the default
// base directory and the directory a relative -c path is resolved against.
//
// Precedence, lowest to highest: built-in defaults, the config file named
// by -c, command-line options. When both -s and -f are given, short mode
// wins.
func Resolve(args *Args, workDir string) (*Settings, error) {
	s := &Settings{
		BaseDir:  workDir,
		Mode:     model.StatsNone,
		Format:   model.FormatText,
		Suffixes: DefaultSuffixes(),
		Files:    append([]string(nil), args.Files...),
	}

	if path, ok := args.Get(OptConfig); ok {
		if path == "" {
			return nil, &Error{Token: Marker + OptConfig, Message: "option -c requires a config file path"}
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := s.applyFile(f); err != nil {
			return nil, err
		}
	}

	if err := s.applyArgs(args); err != nil {
		return nil, err
	}

	for name := range args.Options {
		if !knownOptions[name] {
			s.Unknown = append(s.Unknown, name)
		}
	}
	sort.Strings(s.Unknown)

	return s, nil
}

// applyFile copies every field set in the config file into s.
func (s *Settings) applyFile(f *File) error {
	if f.OutputDir != "" {
		s.BaseDir = f.OutputDir
	}
	if f.Prefix != "" {
		s.Prefix = f.Prefix
	}
	if f.Append != nil {
		s.Append = *f.Append
	}
	if f.Stats != "" {
		mode, err := model.ParseStatsMode(f.Stats)
		if err != nil {
			return &Error{Message: "invalid config file value for stats", Err: err}
		}
		s.Mode = mode
	}
	if f.Format != "" {
		format, err := model.ParseReportFormat(f.Format)
		if err != nil {
			return &Error{Message: "invalid config file value for format", Err: err}
		}
		s.Format = format
	}
	if f.TrueMean != nil {
		s.TrueMean = *f.TrueMean
	}
	if f.Verbose != nil {
		s.Verbose = *f.Verbose
	}
	keys := make([]string, 0, len(f.Suffixes))
	for key := range f.Suffixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		c, err := model.ParseCategory(key)
		if err != nil {
			return &Error{Message: fmt.Sprintf("invalid config file suffixes key %q", key), Err: err}
		}
		s.Suffixes[c] = f.Suffixes[key]
	}
	return nil
}

// applyArgs copies every recognized command-line option into s.
func (s *Settings) applyArgs(args *Args) error {
	// An empty -o value keeps the current base directory rather than
	// resolving paths against the filesystem root.
	if dir, ok := args.Get(OptOutputDir); ok && dir != "" {
		s.BaseDir = dir
	}
	if prefix, ok := args.Get(OptPrefix); ok {
		s.Prefix = prefix
	}
	if args.Has(OptAppend) {
		s.Append = true
	}

	switch {
	case args.Has(OptShort):
		s.Mode = model.StatsShort
	case args.Has(OptFull):
		s.Mode = model.StatsFull
	}

	if value, ok := args.Get(OptFormat); ok {
		format, err := model.ParseReportFormat(value)
		if err != nil {
			return &Error{Token: Marker + OptFormat, Message: "invalid value for -r", Err: err}
		}
		s.Format = format
	}
	if args.Has(OptTrueMean) {
		s.TrueMean = true
	}
	if args.Has(OptVerbose) {
		s.Verbose = true
	}
	return nil
}

// InputPath resolves an input file name against BaseDir. Absolute names
// are returned unchanged.
func (s *Settings) InputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.BaseDir, name)
}

// OutputPath returns the output file path of a category and whether that
// category is written at all (its suffix is non-empty).
func (s *Settings) OutputPath(c model.Category) (string, bool) {
	suffix := s.Suffixes[c]
	if suffix == "" {
		return "", false
	}
	return filepath.Join(s.BaseDir, s.Prefix+suffix), true
}
