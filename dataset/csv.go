// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads a CSV file with a header row. Columns whose every
// value parses as an integer become []int, those that parse as floats
// become []float64, and the rest stay []string.
func ReadCSV(r io.Reader) (*table.Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// fromRows builds a table from a header row and data rows, padding
// short rows with empty cells.
func fromRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := rows[0]
	seen := make(map[string]bool)
	for i, h := range header {
		if h == "" {
			return nil, fmt.Errorf("column %d has no name", i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = true
	}
	data := rows[1:]
	for i, row := range data {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d cells; header has %d", i+2, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		data[i] = row
	}
	return table.TableFromStrings(header, data, true), nil
}
