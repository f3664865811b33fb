// Package model defines the domain types for the typefilter CLI.
//
// Every input line is turned into exactly one Value. Value is a closed
// (sealed) interface: only Integer, Float and Text implement it, so a type
// switch over the three variants is exhaustive and no runtime class
// comparison is ever needed.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category identifies one of the three classification buckets.
// The order of the constants is the order in which buckets are
// written and reported.
type Category string

const (
	// CategoryInteger holds lines that parse as a 64-bit signed integer.
	CategoryInteger Category = "integers"

	// CategoryFloat holds lines that fail integer parsing but parse as a
	// finite 64-bit floating-point number.
	CategoryFloat Category = "floats"

	// CategoryText holds every other line, verbatim.
	CategoryText Category = "strings"
)

// Categories lists all categories in processing order.
var Categories = []Category{CategoryInteger, CategoryFloat, CategoryText}

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks whether the Category value is one of the predefined
// categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryInteger, CategoryFloat, CategoryText:
		return true
	default:
		return false
	}
}

// ParseCategory converts a string to a Category.
// Returns an error if the string does not match any category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(s))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q (valid: integers, floats, strings)", s)
	}
	return c, nil
}

// Value is a classified input line.
type Value interface {
	// Category reports which bucket the value belongs to.
	Category() Category

	// String returns the value's serialized form as written to the
	// category's output file.
	String() string

	isValue()
}

// Integer is a line that parsed as a base-10 64-bit signed integer.
type Integer int64

// Float is a line that parsed as a 64-bit floating-point number, including
// the non-finite forms NaN and ±Inf.
type Float float64

// Text is a line that matched neither numeric category.
type Text string

func (Integer) Category() Category { return CategoryInteger }
func (Float) Category() Category   { return CategoryFloat }
func (Text) Category() Category    { return CategoryText }

func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string   { return FormatFloat(float64(v)) }
func (v Text) String() string    { return string(v) }

func (Integer) isValue() {}
func (Float) isValue()   {}
func (Text) isValue()    {}

// FormatFloat renders f using the shortest representation that parses back
// to the same float64. The result always carries a decimal point or an
// exponent, so that re-reading it never classifies it as an Integer.
//
// Example:
//
//	3.14 → "3.14"
//	3    → "3.0"
//	1e21 → "1e+21"
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Buckets holds every classified value of a run, one ordered slice per
// category. Order is the order in which lines were read across all input
// files, in file-list order. Values are never deduplicated.
type Buckets struct {
	Integers []int64
	Floats   []float64
	Texts    []string
}

// Add appends v to the bucket matching its variant.
func (b *Buckets) Add(v Value) {
	switch v := v.(type) {
	case Integer:
		b.Integers = append(b.Integers, int64(v))
	case Float:
		b.Floats = append(b.Floats, float64(v))
	case Text:
		b.Texts = append(b.Texts, string(v))
	}
}

// Len returns the number of values held for the given category.
func (b *Buckets) Len(c Category) int {
	switch c {
	case CategoryInteger:
		return len(b.Integers)
	case CategoryFloat:
		return len(b.Floats)
	case CategoryText:
		return len(b.Texts)
	default:
		return 0
	}
}

// Total returns the number of values across all categories.
func (b *Buckets) Total() int {
	return len(b.Integers) + len(b.Floats) + len(b.Texts)
}

// Lines returns the serialized form of every value in the given category,
// one element per output line, in bucket order. An unknown category yields
// nil.
func (b *Buckets) Lines(c Category) []string {
	switch c {
	case CategoryInteger:
		lines := make([]string, 0, len(b.Integers))
		for _, v := range b.Integers {
			lines = append(lines, Integer(v).String())
		}
		return lines
	case CategoryFloat:
		lines := make([]string, 0, len(b.Floats))
		for _, v := range b.Floats {
			lines = append(lines, Float(v).String())
		}
		return lines
	case CategoryText:
		lines := make([]string, len(b.Texts))
		copy(lines, b.Texts)
		return lines
	default:
		return nil
	}
}

// StatsMode selects which statistics block, if any, is printed after the
// output files are written.
type StatsMode string

const (
	// StatsNone prints no statistics at all.
	StatsNone StatsMode = "none"

	// StatsShort prints the element count of each category.
	StatsShort StatsMode = "short"

	// StatsFull prints min/max/average for numbers and min/max length for
	// strings. Counts are not part of the full block.
	StatsFull StatsMode = "full"
)

// String returns the string representation of StatsMode.
func (m StatsMode) String() string {
	return string(m)
}

// IsValid checks whether the StatsMode value is one of the predefined modes.
func (m StatsMode) IsValid() bool {
	switch m {
	case StatsNone, StatsShort, StatsFull:
		return true
	default:
		return false
	}
}

// ParseStatsMode converts a string to a StatsMode. The empty string maps to
// StatsNone.
func ParseStatsMode(s string) (StatsMode, error) {
	if s == "" {
		return StatsNone, nil
	}
	mode := StatsMode(strings.ToLower(s))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid statistics mode: %q (valid: none, short, full)", s)
	}
	return mode, nil
}

// ReportFormat is the rendering used for the statistics block.
type ReportFormat string

const (
	// FormatText renders one human-readable line per value.
	FormatText ReportFormat = "text"

	// FormatJSON renders an indented JSON document.
	FormatJSON ReportFormat = "json"

	// FormatYAML renders a YAML document.
	FormatYAML ReportFormat = "yaml"
)

// String returns the string representation of ReportFormat.
func (f ReportFormat) String() string {
	return string(f)
}

// IsValid checks whether the ReportFormat value is one of the predefined
// formats.
func (f ReportFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseReportFormat converts a string to a ReportFormat. The empty string
// maps to FormatText; "yml" is accepted as an alias for "yaml".
func ParseReportFormat(s string) (ReportFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	f := ReportFormat(strings.ToLower(s))
	if f == "yml" {
		f = FormatYAML
	}
	if !f.IsValid() {
		return "", fmt.Errorf("invalid report format: %q (valid: text, json, yaml)", s)
	}
	return f, nil
}
