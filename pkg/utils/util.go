package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"paxfusion-service/internal/domain/entity"
)

// header maps column names to their index in a delimited file
type header map[string]int

func newHeader(columns []string) header {
	h := make(header, len(columns))
	for i, c := range columns {
		// spreadsheets prepend a BOM to the first column
		c = strings.TrimPrefix(strings.TrimSpace(c), "\ufeff")
		if _, dup := h[c]; !dup {
			h[c] = i
		}
	}
	return h
}

// require reports the first missing column
func (h header) require(columns ...string) error {
	for _, c := range columns {
		if _, ok := h[c]; !ok {
			return fmt.Errorf("%w: %q", entity.ErrMissingColumn, c)
		}
	}
	return nil
}

// get returns the trimmed value of a column, or "" if the column or cell is absent
func (h header) get(row []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func newDelimitedReader(r io.Reader, comma rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// readDelimited reads the header and hands every data row to fn
func readDelimited(r io.Reader, comma rune, required []string, fn func(h header, row []string)) error {
	reader := newDelimitedReader(r, comma)
	columns, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: no header", entity.ErrMalformedInput)
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	h := newHeader(columns)
	if err := h.require(required...); err != nil {
		return err
	}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(row) {
			continue
		}
		fn(h, row)
	}
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
