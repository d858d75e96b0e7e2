package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Operator names a filter predicate.
type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
	OpGreater  Operator = "greater"
	OpLess     Operator = "less"
	OpNotNull  Operator = "notNull"
)

// ParseOperator validates s as an Operator.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEquals, OpContains, OpGreater, OpLess, OpNotNull:
		return op, nil
	}
	return "", fmt.Errorf("unknown filter operator %q", s)
}

// Filter is one predicate over a column. A list of filters is a conjunction.
type Filter struct {
	Column   string   `yaml:"column" json:"column"`
	Operator Operator `yaml:"operator" json:"operator"`
	Value    string   `yaml:"value,omitempty" json:"value,omitempty"`
}

func (f Filter) String() string {
	if f.Operator == OpNotNull {
		return fmt.Sprintf("%s:%s", f.Column, f.Operator)
	}
	return fmt.Sprintf("%s:%s:%s", f.Column, f.Operator, f.Value)
}

// ParseFilter reads the "column:operator[:value]" form used on the command
// line. The value may itself contain colons.
func ParseFilter(s string) (Filter, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return Filter{}, fmt.Errorf("invalid filter %q: want column:operator[:value]", s)
	}
	op, err := ParseOperator(strings.TrimSpace(parts[1]))
	if err != nil {
		return Filter{}, err
	}
	f := Filter{Column: strings.TrimSpace(parts[0]), Operator: op}
	if len(parts) == 3 {
		f.Value = parts[2]
	}
	return f, nil
}

// Match reports whether cell satisfies the filter.
func (f Filter) Match(cell dataset.Cell) bool {
	switch f.Operator {
	case OpEquals:
		return cell.String() == f.Value
	case OpContains:
		return strings.Contains(strings.ToLower(cell.String()), strings.ToLower(f.Value))
	case OpGreater:
		a, b := cell.ToNumber(), filterNumber(f.Value)
		return !math.IsNaN(a) && !math.IsNaN(b) && a > b
	case OpLess:
		a, b := cell.ToNumber(), filterNumber(f.Value)
		return !math.IsNaN(a) && !math.IsNaN(b) && a < b
	case OpNotNull:
		return !cell.IsMissing()
	}
	return false
}

func filterNumber(s string) float64 {
	if v, ok := dataset.ParseNumber(strings.TrimSpace(s)); ok {
		return v
	}
	return math.NaN()
}

// ApplyFilters keeps the rows of d that satisfy every filter. Callers pass
// the unfiltered base dataset; the result never depends on filter order.
// Kept rows are shared with d, which is safe because engines never write
// into rows they did not allocate.
func ApplyFilters(d *dataset.Dataset, filters []Filter) (*dataset.Dataset, error) {
	for _, f := range filters {
		if err := d.RequireColumn("filter", f.Column); err != nil {
			return nil, err
		}
		if _, err := ParseOperator(string(f.Operator)); err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Column, err)
		}
	}
	rows := make([]dataset.Row, 0, d.Len())
next:
	for _, r := range d.Rows {
		for _, f := range filters {
			if !f.Match(r.Get(f.Column)) {
				continue next
			}
		}
		rows = append(rows, r)
	}
	return d.WithRows(rows), nil
}
