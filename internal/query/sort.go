package query

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc", "desc" or "" (asc).
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortKey is the single active sort.
type SortKey struct {
	Column    string    `yaml:"column" json:"column"`
	Direction Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// SortState remembers the active key so repeated requests toggle direction.
type SortState struct {
	Key *SortKey
}

// Toggle flips the direction when col is already sorted ascending and
// otherwise resets to ascending on col. It returns the new key.
func (s *SortState) Toggle(col string) SortKey {
	next := SortKey{Column: col, Direction: Asc}
	if s.Key != nil && s.Key.Column == col && s.Key.Direction == Asc {
		next.Direction = Desc
	}
	s.Key = &next
	return next
}

// Comparator orders cells: numerically when both are Number, otherwise by
// locale-aware comparison of their string forms. NaN compares equal to
// everything so it never moves relative to its neighbors.
type Comparator struct {
	col *collate.Collator
}

// NewComparator returns a Comparator collating with the root locale.
func NewComparator() *Comparator {
	return NewComparatorFor(language.Und)
}

// NewComparatorFor collates strings for tag.
func NewComparatorFor(tag language.Tag) *Comparator {
	return &Comparator{col: collate.New(tag)}
}

// Compare returns -1, 0 or 1.
func (c *Comparator) Compare(a, b dataset.Cell) int {
	if a.Kind() == dataset.KindNumber && b.Kind() == dataset.KindNumber {
		x, y := a.Float(), b.Float()
		switch {
		case math.IsNaN(x) || math.IsNaN(y):
			return 0
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return c.col.CompareString(a.String(), b.String())
}

// ApplySort returns d's rows stably ordered by col. Descending order negates
// the comparison, so rows with equal keys keep their input order in both
// directions.
func ApplySort(d *dataset.Dataset, col string, dir Direction) (*dataset.Dataset, error) {
	if err := d.RequireColumn("sort", col); err != nil {
		return nil, err
	}
	if _, err := ParseDirection(string(dir)); err != nil {
		return nil, err
	}
	cmp := NewComparator()
	rows := slices.Clone(d.Rows)
	slices.SortStableFunc(rows, func(a, b dataset.Row) int {
		r := cmp.Compare(a.Get(col), b.Get(col))
		if dir == Desc {
			return -r
		}
		return r
	})
	return d.WithRows(rows), nil
}
