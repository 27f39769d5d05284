package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// DecodeOptions tunes the CSV decoder.
type DecodeOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// LazyQuotes accepts a quote appearing in an unquoted field.
	LazyQuotes bool
}

// Decode reads delimited text with the first row as headers. Rows of any
// width are accepted as-is. Empty input yields an empty dataset.
func Decode(r io.Reader, opts DecodeOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.LazyQuotes

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	columns := normalizeHeader(header)

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, NewRecord(columns, row))
	}

	return New(columns, records), nil
}

// normalizeHeader strips a leading byte-order mark and renames repeated
// header names to name_1, name_2, ... so every column stays addressable.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		name := h
		if n, dup := seen[h]; dup {
			for {
				name = fmt.Sprintf("%s_%d", h, n)
				n++
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = n
		} else {
			seen[h] = 1
		}
		seen[name] = max(seen[name], 1)
		columns[i] = name
	}
	return columns
}
