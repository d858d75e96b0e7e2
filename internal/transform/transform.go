package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Kind names a per-column transform.
type Kind string

const (
	Normalize   Kind = "normalize"
	Uppercase   Kind = "uppercase"
	Lowercase   Kind = "lowercase"
	RemoveNulls Kind = "removeNulls"
)

// Kinds lists the supported transforms in display order.
func Kinds() []Kind { return []Kind{Normalize, Uppercase, Lowercase, RemoveNulls} }

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transform %q", s)
}

// Step is a transform bound to a column, as listed in recipes.
type Step struct {
	Column string `yaml:"column" json:"column"`
	Kind   Kind   `yaml:"kind" json:"kind"`
}

// cellFunc rewrites one cell. ok=false leaves the cell untouched.
type cellFunc func(dataset.Cell) (out dataset.Cell, ok bool)

// Apply runs kind over col and returns a new Dataset. Only rows whose cell
// changes are copied; every other row is shared with d unchanged.
func Apply(d *dataset.Dataset, col string, kind Kind) (*dataset.Dataset, error) {
	if err := d.RequireColumn("transform", col); err != nil {
		return nil, err
	}
	fn, err := cellFuncFor(d, col, kind)
	if err != nil {
		return nil, err
	}
	rows := make([]dataset.Row, len(d.Rows))
	for i, r := range d.Rows {
		out, ok := fn(r.Get(col))
		if !ok {
			rows[i] = r
			continue
		}
		nr := r.Clone()
		nr[col] = out
		rows[i] = nr
	}
	return d.WithRows(rows), nil
}

// ApplySteps applies steps in order.
func ApplySteps(d *dataset.Dataset, steps []Step) (*dataset.Dataset, error) {
	for _, s := range steps {
		next, err := Apply(d, s.Column, s.Kind)
		if err != nil {
			return nil, fmt.Errorf("transform %s on %s: %w", s.Kind, s.Column, err)
		}
		d = next
	}
	return d, nil
}

func cellFuncFor(d *dataset.Dataset, col string, kind Kind) (cellFunc, error) {
	switch kind {
	case Normalize:
		return normalizer(d.Values(col)), nil
	case Uppercase:
		return caseFunc(strings.ToUpper), nil
	case Lowercase:
		return caseFunc(strings.ToLower), nil
	case RemoveNulls:
		return func(c dataset.Cell) (dataset.Cell, bool) {
			if c.IsMissing() {
				return dataset.Number(0), true
			}
			return c, false
		}, nil
	}
	return nil, fmt.Errorf("unknown transform %q", kind)
}

// normalizer scales Number cells to [0, 1] using the column's current
// min and max. A constant column maps to 0.
func normalizer(values []dataset.Cell) cellFunc {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v.Kind() != dataset.KindNumber || math.IsNaN(v.Float()) {
			continue
		}
		lo = math.Min(lo, v.Float())
		hi = math.Max(hi, v.Float())
	}
	return func(c dataset.Cell) (dataset.Cell, bool) {
		if c.Kind() != dataset.KindNumber {
			return c, false
		}
		if hi == lo {
			return dataset.Number(0), true
		}
		return dataset.Number((c.Float() - lo) / (hi - lo)), true
	}
}

// caseFunc converts the string form. Number and Bool cells become Text;
// Null stays Null.
func caseFunc(conv func(string) string) cellFunc {
	return func(c dataset.Cell) (dataset.Cell, bool) {
		if c.IsNull() {
			return c, false
		}
		return dataset.Text(conv(c.String())), true
	}
}
