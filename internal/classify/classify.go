package classify

import (
	"errors"
	"strconv"

	"github.com/shinji-kodama/typefilter/internal/model"
)

// Classify returns the value of a single input line.
//
// The whole line must parse; there is no whitespace trimming and no partial
// parse, so "42" is an Integer but " 42" and "42abc" are Text.
//
//	"42"                   → Integer(42)
//	"3.14"                 → Float(3.14)
//	"99999999999999999999" → Float(1e20)   (overflows int64)
//	"1e400"                → Float(+Inf)   (overflows float64)
//	"NaN", "-Infinity"     → Float
//	"abc"                  → Text("abc")
func Classify(line string) model.Value {
	if i, err := strconv.ParseInt(line, 10, 64); err == nil {
		return model.Integer(i)
	}
	// Out of range literals are still well-formed floats; ParseFloat
	// returns ±Inf alongside ErrRange.
	if f, err := strconv.ParseFloat(line, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return model.Float(f)
	}
	return model.Text(line)
}
