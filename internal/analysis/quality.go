package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Level grades a validation message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Validation is the upload-time data quality check.
type Validation struct {
	Valid          bool      `json:"valid"`
	MissingCells   int       `json:"missing_cells"`
	NumericColumns int       `json:"numeric_columns"`
	TextColumns    int       `json:"text_columns"`
	Format         string    `json:"format"`
	QualityScore   float64   `json:"quality_score"`
	Messages       []Message `json:"messages"`
}

// Validate counts missing cells, splits columns into strictly numeric (every
// cell Number or Null) and text, and scores quality as the percentage of
// non-missing cells. An empty grid scores 100.
func Validate(d *dataset.Dataset) *Validation {
	v := &Validation{Valid: true}
	for _, row := range d.Rows {
		for _, c := range row {
			if c.IsMissing() {
				v.MissingCells++
			}
		}
	}
	v.NumericColumns = len(NumericColumns(d))
	v.TextColumns = len(d.Columns) - v.NumericColumns

	if v.MissingCells > 0 {
		v.Messages = append(v.Messages, Message{LevelWarning, fmt.Sprintf("Found %d missing values across %d rows", v.MissingCells, d.Len())})
	}
	v.Messages = append(v.Messages, Message{LevelSuccess, fmt.Sprintf("Detected %d numeric columns and %d text columns", v.NumericColumns, v.TextColumns)})

	v.Format = "Unknown"
	if strings.HasSuffix(strings.ToLower(d.SourceName), ".csv") {
		v.Format = "CSV"
	}
	v.Messages = append(v.Messages, Message{LevelSuccess, fmt.Sprintf("File format: %s - Valid", v.Format)})

	v.QualityScore = 100
	if cells := d.Len() * len(d.Columns); cells > 0 {
		v.QualityScore = math.Max(0, 100-float64(v.MissingCells)/float64(cells)*100)
	}
	lvl := LevelWarning
	if v.QualityScore > 80 {
		lvl = LevelSuccess
	}
	v.Messages = append(v.Messages, Message{lvl, fmt.Sprintf("Data quality score: %.1f%%", v.QualityScore)})
	return v
}

// NumericColumns returns the declared columns whose every cell is a Number
// or Null.
func NumericColumns(d *dataset.Dataset) []string {
	var out []string
	for _, c := range d.Columns {
		numeric := true
		for _, r := range d.Rows {
			k := r.Get(c).Kind()
			if k != dataset.KindNumber && k != dataset.KindNull {
				numeric = false
				break
			}
		}
		if numeric {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the declared columns not in NumericColumns.
func CategoricalColumns(d *dataset.Dataset) []string {
	num := map[string]struct{}{}
	for _, c := range NumericColumns(d) {
		num[c] = struct{}{}
	}
	var out []string
	for _, c := range d.Columns {
		if _, ok := num[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
