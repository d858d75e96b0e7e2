package dataset

import "fmt"

// Project restricts the declared columns to keep, in the caller's order.
// Rows are not stripped: keys outside keep stay on each row, and consumers
// such as the exporter must treat Columns as the authoritative field list.
// Re-projecting to the original column list restores the original
// declaration.
func Project(d *Dataset, keep []string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(keep))
	for _, c := range keep {
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("project: %w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = struct{}{}
		if !rowsCarry(d, c) {
			return nil, &ColumnError{Op: "project", Column: c}
		}
	}
	rows := make([]Row, len(d.Rows))
	copy(rows, d.Rows)
	return &Dataset{
		Columns:    append([]string(nil), keep...),
		Rows:       rows,
		SourceName: d.SourceName,
	}, nil
}

// rowsCarry reports whether c is declared or still present on the rows
// from an earlier projection.
func rowsCarry(d *Dataset, c string) bool {
	if d.HasColumn(c) {
		return true
	}
	for _, r := range d.Rows {
		if _, ok := r[c]; ok {
			return true
		}
	}
	return false
}
