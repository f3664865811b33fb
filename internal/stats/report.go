package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// Category labels used in the text report.
const (
	labelIntegers = "Integers"
	labelFloats   = "Floats"
	labelStrings  = "Strings"
)

// missing is printed in place of a statistic of an empty bucket.
const missing = "-"

// Render writes the statistics block for mode in the given format.
// StatsNone writes nothing.
//
// Short mode reports only element counts. Full mode reports average, min
// and max for numbers and min/max length for strings, without counts.
func Render(w io.Writer, s Summary, mode model.StatsMode, format model.ReportFormat) error {
	if mode == model.StatsNone {
		return nil
	}

	switch format {
	case model.FormatJSON:
		return renderJSON(w, buildReport(s, mode))
	case model.FormatYAML:
		return renderYAML(w, buildReport(s, mode))
	default:
		return renderText(w, s, mode)
	}
}

// renderText writes one "<Category>, <statistic>: <value>" line per value.
//
// Short:
//
//	Statistics
//	Integers, count: 3
//	Floats, count: 0
//	Strings, count: 2
//
// Full:
//
//	Statistics
//	Integers, average: 1
//	Integers, min: 1
//	Integers, max: 3
//	Floats, average: -
//	...
//	Strings, min length: 3
//	Strings, max length: 5
func renderText(w io.Writer, s Summary, mode model.StatsMode) error {
	lines := []string{"Statistics"}

	switch mode {
	case model.StatsShort:
		lines = append(lines,
			fmt.Sprintf("%s, count: %d", labelIntegers, s.Integers.Count),
			fmt.Sprintf("%s, count: %d", labelFloats, s.Floats.Count),
			fmt.Sprintf("%s, count: %d", labelStrings, s.Strings.Count),
		)
	case model.StatsFull:
		lines = append(lines, numericLines(labelIntegers, s.Integers, formatInt)...)
		lines = append(lines, numericLines(labelFloats, s.Floats, model.FormatFloat)...)
		minLen, maxLen := missing, missing
		if s.Strings.Count > 0 {
			minLen, maxLen = strconv.Itoa(s.Strings.MinLen), strconv.Itoa(s.Strings.MaxLen)
		}
		lines = append(lines,
			fmt.Sprintf("%s, min length: %s", labelStrings, minLen),
			fmt.Sprintf("%s, max length: %s", labelStrings, maxLen),
		)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func numericLines[T number](label string, n Numeric[T], format func(T) string) []string {
	avg, lo, hi := missing, missing, missing
	if n.Count > 0 {
		avg, lo, hi = format(n.Average), format(n.Min), format(n.Max)
	}
	return []string{
		fmt.Sprintf("%s, average: %s", label, avg),
		fmt.Sprintf("%s, min: %s", label, lo),
		fmt.Sprintf("%s, max: %s", label, hi),
	}
}

// report is the JSON/YAML document structure. Statistics that do not apply
// to the mode, or to an empty bucket, are omitted.
type report struct {
	Mode string `json:"mode" yaml:"mode"`

	// Average names the average definition in full mode:
	// "last/count" (legacy) or "mean".
	Average string `json:"average,omitempty" yaml:"average,omitempty"`

	Integers categoryReport `json:"integers" yaml:"integers"`
	Floats   categoryReport `json:"floats" yaml:"floats"`
	Strings  categoryReport `json:"strings" yaml:"strings"`
}

// categoryReport holds the statistics of one bucket. Numeric values are
// kept as interface values so integers stay integers and floats go
// through reportFloat.
type categoryReport struct {
	Count     *int `json:"count,omitempty" yaml:"count,omitempty"`
	Average   any  `json:"average,omitempty" yaml:"average,omitempty"`
	Min       any  `json:"min,omitempty" yaml:"min,omitempty"`
	Max       any  `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

func buildReport(s Summary, mode model.StatsMode) report {
	r := report{Mode: mode.String()}

	if mode == model.StatsShort {
		r.Integers.Count = intPtr(s.Integers.Count)
		r.Floats.Count = intPtr(s.Floats.Count)
		r.Strings.Count = intPtr(s.Strings.Count)
		return r
	}

	r.Average = "last/count"
	if s.TrueMean {
		r.Average = "mean"
	}
	r.Integers = numericReport(s.Integers, func(v int64) any { return v })
	r.Floats = numericReport(s.Floats, func(v float64) any { return reportFloat(v) })
	if s.Strings.Count > 0 {
		r.Strings.MinLength = intPtr(s.Strings.MinLen)
		r.Strings.MaxLength = intPtr(s.Strings.MaxLen)
	}
	return r
}

func numericReport[T number](n Numeric[T], box func(T) any) categoryReport {
	if n.Count == 0 {
		return categoryReport{}
	}
	return categoryReport{Average: box(n.Average), Min: box(n.Min), Max: box(n.Max)}
}

// reportFloat is a float statistic rendered with model.FormatFloat, so 1.0
// stays 1.0 in every report format. JSON has no literal for NaN or ±Inf;
// those are written as the strings "NaN", "+Inf" and "-Inf".
type reportFloat float64

func (f reportFloat) MarshalJSON() ([]byte, error) {
	s := model.FormatFloat(float64(f))
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return json.Marshal(s)
	}
	return []byte(s), nil
}

func (f reportFloat) MarshalYAML() (any, error) {
	v := float64(f)
	var s string
	switch {
	case math.IsNaN(v):
		s = ".nan"
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	default:
		s = model.FormatFloat(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

func intPtr(v int) *int {
	return &v
}

// renderJSON writes r as indented JSON, matching the CLI's other JSON
// output.
func renderJSON(w io.Writer, r report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics as JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderYAML writes r as a YAML document with 2-space indentation.
func renderYAML(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode statistics as YAML: %w", err)
	}
	return enc.Close()
}
