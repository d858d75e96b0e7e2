package dataset

import "fmt"

// Row maps column names to cells. A key absent from the map reads as Null.
type Row map[string]Cell

// Get returns the cell stored under col, or Null when the key is absent.
func (r Row) Get(col string) Cell {
	return r[col]
}

// Clone returns a shallow copy of the row. Cells are values, so the copy is
// independent of the original.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset holds ordered columns and ordered rows. Engines treat a Dataset as
// immutable: every operation returns a new value and never writes into the
// caller's rows.
type Dataset struct {
	Columns    []string
	Rows       []Row
	SourceName string
}

// New builds a Dataset after checking that column names are unique.
func New(columns []string, rows []Row) (*Dataset, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = struct{}{}
	}
	return &Dataset{Columns: append([]string(nil), columns...), Rows: rows}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// ColumnIndex returns the position of col in Columns, or -1.
func (d *Dataset) ColumnIndex(col string) int {
	for i, c := range d.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// HasColumn reports whether col is a declared column.
func (d *Dataset) HasColumn(col string) bool { return d.ColumnIndex(col) >= 0 }

// RequireColumn returns a *ColumnError when col is not declared.
func (d *Dataset) RequireColumn(op, col string) error {
	if !d.HasColumn(col) {
		return &ColumnError{Op: op, Column: col}
	}
	return nil
}

// Values returns every cell of col in row order, Null for absent keys.
func (d *Dataset) Values(col string) []Cell {
	out := make([]Cell, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Get(col)
	}
	return out
}

// WithRows returns a Dataset sharing columns metadata (copied) with new rows.
func (d *Dataset) WithRows(rows []Row) *Dataset {
	return &Dataset{
		Columns:    append([]string(nil), d.Columns...),
		Rows:       rows,
		SourceName: d.SourceName,
	}
}

// Clone deep-copies columns and rows.
func (d *Dataset) Clone() *Dataset {
	rows := make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = r.Clone()
	}
	return d.WithRows(rows)
}
