package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Value is an optional percentage or percentage-point difference.
// The zero Value is missing.
type Value struct {
	V     float64
	Valid bool
}

// Missing is the undefined value.
var Missing = Value{}

// Some returns a present value. NaN is treated as missing.
func Some(v float64) Value {
	if math.IsNaN(v) {
		return Missing
	}
	return Value{V: v, Valid: true}
}

// Sub returns v - o, missing if either side is missing.
func (v Value) Sub(o Value) Value {
	if !v.Valid || !o.Valid {
		return Missing
	}
	return Some(v.V - o.V)
}

// Neg returns -v.
func (v Value) Neg() Value {
	if !v.Valid {
		return Missing
	}
	return Some(-v.V)
}

// Round rounds a present value to the given number of decimals.
func (v Value) Round(decimals int) Value {
	if !v.Valid {
		return Missing
	}
	p := math.Pow(10, float64(decimals))
	return Some(math.Round(v.V*p) / p)
}

// Format renders v with the given precision, or "" when missing.
func (v Value) Format(decimals int) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.V, 'f', decimals, 64)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// ParseValue parses a numeric cell. Percent signs and surrounding spaces are
// ignored; empty, "nan", "na" and unparsable cells are missing.
func ParseValue(s string) Value {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null", "none":
		return Missing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing
	}
	return Some(f)
}

// Mean returns the mean of the present values, missing if there are none.
func Mean(values []Value) Value {
	var sum float64
	var n int
	for _, v := range values {
		if v.Valid {
			sum += v.V
			n++
		}
	}
	if n == 0 {
		return Missing
	}
	return Some(sum / float64(n))
}
