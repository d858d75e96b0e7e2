package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the type of a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Cell is a single typed value within a row. The zero value is Null.
type Cell struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

func Null() Cell { return Cell{} }
func Number(v float64) Cell { return Cell{kind: KindNumber, num: v} }
func Text(s string) Cell { return Cell{kind: KindText, str: s} }
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }
func (c Cell) Kind() Kind { return c.kind }
func (c Cell) IsNull() bool { return c.kind == KindNull }
func (c Cell) Float() float64 { return c.num }
func (c Cell) Str() string { return c.str }
func (c Cell) Boolean() bool { return c.b }

// IsMissing reports whether the cell is Null or an empty Text value.
func (c Cell) IsMissing() bool {
	return c.kind == KindNull || (c.kind == KindText && c.str == "")
}

// String returns the native string conversion used by filters, case
// transforms and the exporter. Null converts to "".
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return FormatNumber(c.num)
	case KindText:
		return c.str
	case KindBool:
		if c.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// ToNumber coerces the cell to a float64. Null and non-numeric text yield NaN.
func (c Cell) ToNumber() float64 {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindBool:
		if c.b {
			return 1
		}
		return 0
	case KindText:
		if v, ok := ParseNumber(c.str); ok {
			return v
		}
	}
	return math.NaN()
}

// Equal reports whether two cells have the same kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNumber:
		return c.num == o.num || (math.IsNaN(c.num) && math.IsNaN(o.num))
	case KindText:
		return c.str == o.str
	case KindBool:
		return c.b == o.b
	}
	return true
}

// FormatNumber renders v the way a browser's String(number) does: integers
// without a fraction, exponent form only outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses s as a decimal floating-point literal. The whole trimmed
// string must be consumed. Hex literals and NaN are rejected; the only
// accepted infinities are "Infinity", "+Infinity" and "-Infinity".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if strings.ContainsAny(s, "xXnNiI_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports out-of-range values with ±Inf; keep them like a browser would.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}
