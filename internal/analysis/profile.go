package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Options controls profiling behavior.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues caps the categorical top-value list.
	TopValues int
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		TopValues:        8,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly profile of a Dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Quality  *Validation
}

// ColumnSummary extends Stats with spread, top values and outliers.
type ColumnSummary struct {
	Stats
	Std float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
	// MixedText counts Text cells in a numeric column.
	MixedText int
}

type CategoryCount struct {
	Value string
	Count int
}

// Profile computes a Report for d.
func Profile(d *dataset.Dataset, opt Options) *Report {
	rep := &Report{Name: d.SourceName, Rows: d.Len()}
	sampleRows := opt.SampleRows
	if sampleRows < 0 {
		sampleRows = 0
	}
	topN := opt.TopValues
	if topN <= 0 {
		topN = 8
	}
	for i := 0; i < len(d.Rows) && i < sampleRows; i++ {
		row := make([]string, len(d.Columns))
		for j, c := range d.Columns {
			row[j] = d.Rows[i].Get(c).String()
		}
		rep.Samples = append(rep.Samples, row)
	}

	for _, c := range d.Columns {
		values := d.Values(c)
		s := ColumnSummary{Stats: columnStats(c, values)}
		switch s.Type {
		case TypeNumeric:
			nums := make([]float64, 0, s.NumericCount)
			// Welford update
			var n int
			var mean, m2 float64
			for _, v := range values {
				if v.Kind() == dataset.KindText && v.Str() != "" {
					s.MixedText++
				}
				if v.Kind() != dataset.KindNumber {
					continue
				}
				x := v.Float()
				nums = append(nums, x)
				n++
				delta := x - mean
				mean += delta / float64(n)
				m2 += delta * (x - mean)
			}
			if n > 1 {
				s.Std = math.Sqrt(m2 / float64(n-1))
			}
			if opt.Outliers && len(nums) >= 8 {
				s.OutliersCount, s.OutliersMaxAbsZ, s.OutlierThreshold = countOutliers(nums, opt.OutlierThreshold)
			}
			if s.MixedText > 0 {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %s is numeric but holds %d text values", safeName(c), s.MixedText))
			}
		case TypeCategorical:
			s.TopValues = topValues(values, topN)
		}
		rep.Cols = append(rep.Cols, s)
	}
	rep.Quality = Validate(d)
	return rep
}

// NumericColumnCount returns how many profiled columns are numeric.
func (r *Report) NumericColumnCount() int {
	n := 0
	for _, c := range r.Cols {
		if c.Type == TypeNumeric {
			n++
		}
	}
	return n
}

func topValues(values []dataset.Cell, limit int) []CategoryCount {
	counts := map[string]int{}
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		counts[v.String()]++
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}

func countOutliers(vals []float64, thr float64) (cnt int, maxAbsZ float64, threshold float64) {
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	if mad > 0 {
		for _, v := range vals {
			az := math.Abs(0.6745 * (v - median) / mad)
			if az > thr {
				cnt++
			}
			if az > maxAbsZ {
				maxAbsZ = az
			}
		}
	}
	return cnt, maxAbsZ, thr
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	numeric := r.NumericColumnCount()
	b.WriteString(fmt.Sprintf("Columns: %d (numeric %d, categorical %d)\n\n", len(r.Cols), numeric, len(r.Cols)-numeric))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		missPct := 0.0
		if c.Count > 0 {
			missPct = float64(c.NullCount) * 100.0 / float64(c.Count)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (count %d, missing %.1f%%)", safeName(c.Column), c.Type, c.Count, missPct))
		switch c.Type {
		case TypeNumeric:
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		case TypeCategorical:
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
			}
			b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
		}
		b.WriteString("\n")
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Column))
		}
		b.WriteString(" |\n")
		b.WriteString("| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if runes := []rune(val); len(runes) > 80 {
					val = string(runes[:77]) + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if r.Quality != nil {
		b.WriteString("\n[QUALITY]\n")
		for _, m := range r.Quality.Messages {
			b.WriteString(fmt.Sprintf("- %s: %s\n", m.Level, m.Text))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		d := v - median
		if d < 0 {
			d = -d
		}
		dev[i] = d
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
