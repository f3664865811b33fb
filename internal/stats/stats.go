package stats

import (
	"unicode/utf8"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// number is the set of bucket element types with numeric statistics.
type number interface {
	~int64 | ~float64
}

// Numeric summarizes a numeric bucket. Min, Max and Average are zero when
// Count is zero.
type Numeric[T number] struct {
	Count   int
	Min     T
	Max     T
	Average T
}

// Text summarizes the string bucket by element length in runes. MinLen and
// MaxLen are zero when Count is zero.
type Text struct {
	Count  int
	MinLen int
	MaxLen int
}

// Summary holds the statistics of every bucket of a run.
type Summary struct {
	Integers Numeric[int64]
	Floats   Numeric[float64]
	Strings  Text

	// TrueMean records which average definition was used.
	TrueMean bool
}

// Summarize computes statistics over all buckets. When trueMean is false
// the average is last/count (legacy behavior); otherwise it is sum/count.
func Summarize(b *model.Buckets, trueMean bool) Summary {
	return Summary{
		Integers: summarizeNumeric(b.Integers, trueMean),
		Floats:   summarizeNumeric(b.Floats, trueMean),
		Strings:  summarizeText(b.Texts),
		TrueMean: trueMean,
	}
}

// summarizeNumeric scans values once. Min and max use <= and >=, so a later
// value equal to the current extreme replaces it. NaN never takes part in
// min and max unless every value is NaN, in which case both are NaN. It
// still propagates into the average like any other value.
//
// The average is computed in T: for int64 the division truncates toward
// zero, e.g. [1, 2, 3] gives 3/3 = 1 (legacy) or 6/3 = 2 (true mean). The
// int64 sum wraps on overflow.
func summarizeNumeric[T number](values []T, trueMean bool) Numeric[T] {
	s := Numeric[T]{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Min, s.Max = values[0], values[0]
	seeded := false
	var sum T
	for _, v := range values {
		sum += v
		if isNaN(v) {
			continue
		}
		if !seeded {
			s.Min, s.Max = v, v
			seeded = true
		}
		if v <= s.Min {
			s.Min = v
		}
		if v >= s.Max {
			s.Max = v
		}
	}

	n := T(len(values))
	if trueMean {
		s.Average = sum / n
	} else {
		s.Average = values[len(values)-1] / n
	}
	return s
}

// isNaN is false for every integer.
func isNaN[T number](v T) bool {
	return v != v
}

func summarizeText(values []string) Text {
	s := Text{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.MinLen = utf8.RuneCountInString(values[0])
	s.MaxLen = s.MinLen
	for _, v := range values {
		n := utf8.RuneCountInString(v)
		if n <= s.MinLen {
			s.MinLen = n
		}
		if n >= s.MaxLen {
			s.MaxLen = n
		}
	}
	return s
}
