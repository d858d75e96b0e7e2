package analysis

import (
	"math"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// ColumnType is the classification assigned by ColumnStats.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
)

// Stats summarizes one column.
//
// Count includes Null and empty cells. For numeric columns Mean, Min and Max
// cover the Number cells only; NumericCount is the size of that subset. Unique
// is filled for categorical columns only.
type Stats struct {
	Column       string
	Type         ColumnType
	Count        int
	NullCount    int
	NumericCount int
	Mean         float64
	Min          float64
	Max          float64
	Unique       int
}

// ColumnStats classifies col as numeric when at least one of its cells is a
// Number, otherwise categorical, and computes the matching summary.
func ColumnStats(d *dataset.Dataset, col string) (Stats, error) {
	if err := d.RequireColumn("stats", col); err != nil {
		return Stats{}, err
	}
	return columnStats(col, d.Values(col)), nil
}

func columnStats(col string, values []dataset.Cell) Stats {
	s := Stats{Column: col, Count: len(values), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range values {
		if v.IsMissing() {
			s.NullCount++
		}
		if v.Kind() != dataset.KindNumber {
			continue
		}
		x := v.Float()
		s.NumericCount++
		sum += x
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	if s.NumericCount > 0 {
		s.Type = TypeNumeric
		s.Mean = sum / float64(s.NumericCount)
		return s
	}
	// No numeric subset: mean/min/max are undefined.
	s.Type = TypeCategorical
	s.Mean, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN()
	s.Unique = len(distinct(values))
	return s
}

type cellKey struct {
	kind dataset.Kind
	s    string
}

// distinct returns the non-missing values of values keyed by kind and string
// form, preserving first-seen order.
func distinct(values []dataset.Cell) []dataset.Cell {
	seen := make(map[cellKey]struct{})
	var out []dataset.Cell
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		k := cellKey{v.Kind(), v.String()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// AllStats computes ColumnStats for every declared column in order.
func AllStats(d *dataset.Dataset) []Stats {
	out := make([]Stats, 0, len(d.Columns))
	for _, c := range d.Columns {
		out = append(out, columnStats(c, d.Values(c)))
	}
	return out
}
