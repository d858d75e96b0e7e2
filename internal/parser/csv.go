package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

func (csvParser) Parse(content []byte, opt Options) (*dataset.Dataset, error) {
	return ParseWithOptions(string(content), opt)
}

type tsvParser struct{}

func (tsvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".tsv")
}

func (tsvParser) Parse(content []byte, opt Options) (*dataset.Dataset, error) {
	opt.Delimiter = '\t'
	return ParseWithOptions(string(content), opt)
}

// Parse reads comma-separated text in the simple dialect.
func Parse(text string) (*dataset.Dataset, error) {
	return ParseWithOptions(text, DefaultOptions())
}

// ParseWithOptions parses delimited text into a Dataset. Blank and
// whitespace-only lines are dropped everywhere. The first surviving line is
// the header. Fields are trimmed; a field that is a complete float literal
// becomes a Number, an empty field becomes Null, anything else is Text.
// Fields past the header width are discarded and missing trailing fields
// read as Null.
func ParseWithOptions(text string, opt Options) (*dataset.Dataset, error) {
	var (
		records [][]string
		lines   []int
		err     error
	)
	switch opt.Dialect {
	case DialectRFC4180:
		records, lines, err = splitRFC4180(text, opt.delim())
	default:
		records, lines = splitSimple(text, opt.delim())
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &dataset.ParseError{Reason: "no header line", Err: dataset.ErrEmptyInput}
	}

	header := make([]string, len(records[0]))
	seen := make(map[string]struct{}, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if _, dup := seen[h]; dup {
			return nil, &dataset.ParseError{
				Line:   lines[0],
				Reason: fmt.Sprintf("duplicate column %q", h),
				Err:    dataset.ErrDuplicateColumn,
			}
		}
		seen[h] = struct{}{}
		header[i] = h
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(dataset.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = InferCell(rec[i])
			} else {
				row[col] = dataset.Null()
			}
		}
		rows = append(rows, row)
	}
	return &dataset.Dataset{Columns: header, Rows: rows}, nil
}

// InferCell applies the per-field type inference rule.
func InferCell(field string) dataset.Cell {
	s := strings.TrimSpace(field)
	if s == "" {
		return dataset.Null()
	}
	if v, ok := dataset.ParseNumber(s); ok {
		return dataset.Number(v)
	}
	return dataset.Text(s)
}

func splitSimple(text string, delim rune) ([][]string, []int) {
	var (
		records [][]string
		lines   []int
	)
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, strings.Split(line, string(delim)))
		lines = append(lines, i+1)
	}
	return records, lines
}

func splitRFC4180(text string, delim rune) ([][]string, []int, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, nil, &dataset.ParseError{Line: pe.Line, Reason: pe.Err.Error(), Err: err}
			}
			return nil, nil, &dataset.ParseError{Reason: err.Error(), Err: err}
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return records, lines, nil
}
