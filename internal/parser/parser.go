package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Dialect selects the line grammar used to split fields.
type Dialect int

const (
	// DialectSimple splits on the delimiter with no quoting or escaping.
	DialectSimple Dialect = iota
	// DialectRFC4180 honors double-quoted fields with embedded delimiters.
	DialectRFC4180
)

func (d Dialect) String() string {
	if d == DialectRFC4180 {
		return "rfc4180"
	}
	return "simple"
}

// ParseDialect maps a config/flag value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return DialectSimple, nil
	case "rfc4180", "rfc", "quoted":
		return DialectRFC4180, nil
	}
	return DialectSimple, fmt.Errorf("unsupported dialect: %s (use simple|rfc4180)", s)
}

// Options controls how delimited text is read and written.
type Options struct {
	Dialect Dialect
	// Delimiter separates fields. If 0, ',' is used.
	Delimiter rune
}

// DefaultOptions returns the comma-separated simple dialect.
func DefaultOptions() Options {
	return Options{Dialect: DialectSimple, Delimiter: ','}
}

func (o Options) delim() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Parser turns raw file content into a Dataset.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte, opt Options) (*dataset.Dataset, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile reads path and parses it with the first parser that accepts the
// filename. Unknown extensions are read as comma-separated text.
func ParseFile(path string, opt Options) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var p Parser = csvParser{}
	for _, cand := range registry {
		if cand.CanParse(path) {
			p = cand
			break
		}
	}
	d, err := p.Parse(data, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	d.SourceName = filepath.Base(path)
	return d, nil
}

func init() {
	Register(csvParser{})
	Register(tsvParser{})
}
