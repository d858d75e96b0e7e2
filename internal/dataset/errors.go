package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the input had no non-blank lines.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownColumn indicates an operation referenced an undeclared column.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn indicates a column list repeats a name.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// ParseError reports malformed delimited input.
type ParseError struct {
	Line   int // 1-based line in the original text; 0 when not line specific
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ColumnError reports an operation that targeted a column absent from the
// dataset's declared columns.
type ColumnError struct {
	Op     string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Op, ErrUnknownColumn, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrUnknownColumn }
