package augment

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cast"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// MaxSyntheticRows caps a single synthetic generation.
const MaxSyntheticRows = 50

// NewRand returns a PCG-backed source. seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1^0x9e3779b97f4a7c15))
}

// SyntheticRows reads the "rows" config value and clamps it to
// [0, MaxSyntheticRows]. Values that do not coerce to an int use
// DefaultSyntheticRows.
func SyntheticRows(cfg map[string]any) int {
	n := DefaultSyntheticRows
	if v, ok := cfg["rows"]; ok {
		if i, err := cast.ToIntE(v); err == nil {
			n = i
		}
	}
	return min(max(n, 0), MaxSyntheticRows)
}

// synthesize appends rows whose cells are drawn independently per column
// from that column's existing values.
func synthesize(in Input) (*dataset.Dataset, error) {
	d, rng := in.Dataset, in.Rand
	n := SyntheticRows(in.Config)
	if d.Len() == 0 || n == 0 {
		return d.WithRows(append([]dataset.Row(nil), d.Rows...)), nil
	}
	rows := make([]dataset.Row, d.Len(), d.Len()+n)
	copy(rows, d.Rows)
	for i := 0; i < n; i++ {
		row := make(dataset.Row, len(d.Columns))
		for _, c := range d.Columns {
			row[c] = d.Rows[rng.IntN(d.Len())].Get(c)
		}
		rows = append(rows, row)
	}
	return d.WithRows(rows), nil
}

// fillMissing replaces Null and empty cells per column in every row,
// including rows added by earlier options. Fill values come from the source
// rows only: when the first non-missing source value is a Number the fill
// is the mean of the source Number cells; otherwise it is that first value.
func fillMissing(in Input) (*dataset.Dataset, error) {
	d, src := in.Dataset, in.Source
	if src == nil {
		src = d
	}
	fills := make(map[string]dataset.Cell, len(d.Columns))
	for _, c := range d.Columns {
		if v, ok := fillValue(src.Values(c)); ok {
			fills[c] = v
		}
	}
	rows := make([]dataset.Row, len(d.Rows))
	for i, r := range d.Rows {
		var nr dataset.Row
		for c, v := range fills {
			if !r.Get(c).IsMissing() {
				continue
			}
			if nr == nil {
				nr = r.Clone()
			}
			nr[c] = v
		}
		if nr == nil {
			nr = r
		}
		rows[i] = nr
	}
	return d.WithRows(rows), nil
}

func fillValue(values []dataset.Cell) (dataset.Cell, bool) {
	var first dataset.Cell
	found := false
	for _, v := range values {
		if !v.IsMissing() {
			first, found = v, true
			break
		}
	}
	if !found {
		return dataset.Cell{}, false
	}
	if first.Kind() != dataset.KindNumber {
		return first, true
	}
	var sum float64
	n := 0
	for _, v := range values {
		if v.Kind() == dataset.KindNumber {
			sum += v.Float()
			n++
		}
	}
	return dataset.Number(sum / float64(n)), true
}
