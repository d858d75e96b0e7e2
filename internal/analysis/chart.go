package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Point is one chart datum derived from a row.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ChartSeries maps the first limit rows to chart points. Name is the x cell's
// string form (or "Row N" when empty); Value and Y are the y cell as a number
// (0 when not numeric); X is the x cell as a number, falling back to the row
// index.
func ChartSeries(d *dataset.Dataset, xCol, yCol string, limit int) ([]Point, error) {
	if err := d.RequireColumn("chart", xCol); err != nil {
		return nil, err
	}
	if err := d.RequireColumn("chart", yCol); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > d.Len() {
		limit = d.Len()
	}
	out := make([]Point, 0, limit)
	for i, row := range d.Rows[:limit] {
		x, y := row.Get(xCol), row.Get(yCol)
		p := Point{Name: x.String(), Value: orZero(y.ToNumber(), 0), X: orZero(x.ToNumber(), float64(i)), Y: orZero(y.ToNumber(), 0)}
		if p.Name == "" {
			p.Name = fmt.Sprintf("Row %d", i+1)
		}
		out = append(out, p)
	}
	return out, nil
}

// orZero mirrors `Number(v) || fallback`: NaN and 0 both take the fallback.
func orZero(v, fallback float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return fallback
	}
	return v
}
