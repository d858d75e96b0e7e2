package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// ToDelimitedText serializes d in the simple comma dialect: a header line of
// Columns, then one line per row in declared column order. Lines are joined
// with "\n" and there is no trailing newline. Nothing is quoted, mirroring the
// parser, so values containing commas or newlines do not round-trip.
func ToDelimitedText(d *dataset.Dataset) string {
	var b strings.Builder
	writeSimple(&b, d, ',')
	return b.String()
}

// Format serializes d using the dialect and delimiter in opt.
func Format(d *dataset.Dataset, opt Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, d, opt); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams the serialized dataset to w.
func Write(w io.Writer, d *dataset.Dataset, opt Options) error {
	if opt.Dialect != DialectRFC4180 {
		var b strings.Builder
		writeSimple(&b, d, opt.delim())
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		return nil
	}
	cw := csv.NewWriter(w)
	cw.Comma = opt.delim()
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(d.Columns))
	for i, row := range d.Rows {
		for j, c := range d.Columns {
			rec[j] = row.Get(c).String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeSimple(b *strings.Builder, d *dataset.Dataset, delim rune) {
	sep := string(delim)
	b.WriteString(strings.Join(d.Columns, sep))
	for _, row := range d.Rows {
		b.WriteByte('\n')
		for j, c := range d.Columns {
			if j > 0 {
				b.WriteString(sep)
			}
			b.WriteString(row.Get(c).String())
		}
	}
}
