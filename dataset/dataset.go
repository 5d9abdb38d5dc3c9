// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads chart data into go-gg tables and prepares it
// for charting.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// Column returns column name of t as float64s. The column must have a
// numeric element type.
func Column(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, fmt.Errorf("no column %q", name)
	}
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("column %q is %T, not numeric", name, col)
	}
	var xs []float64
	slice.Convert(&xs, col)
	return xs, nil
}

// Bounds returns the minimum and maximum of xs, ignoring NaNs. If xs
// has no non-NaN values, it returns NaN, NaN.
func Bounds(xs []float64) (lo, hi float64) {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Sample{Xs: vals}.Bounds()
}

// Join returns the inner join of l and r on l's column lcol equal to
// r's column rcol.
func Join(l *table.Table, lcol string, r *table.Table, rcol string) (*table.Table, error) {
	lc, rc := l.Column(lcol), r.Column(rcol)
	if lc == nil {
		return nil, fmt.Errorf("join: left table has no column %q", lcol)
	}
	if rc == nil {
		return nil, fmt.Errorf("join: right table has no column %q", rcol)
	}
	if lt, rt := reflect.TypeOf(lc), reflect.TypeOf(rc); lt != rt {
		return nil, fmt.Errorf("join: column %q is %v but %q is %v", lcol, lt, rcol, rt)
	}
	for _, col := range r.Columns() {
		if col != rcol && l.Column(col) != nil {
			return nil, fmt.Errorf("join: both tables have column %q", col)
		}
	}
	return table.Flatten(table.Join(l, lcol, r, rcol)), nil
}

// FilterEq returns the rows of t whose column col equals val.
func FilterEq(t *table.Table, col string, val interface{}) (*table.Table, error) {
	c := t.Column(col)
	if c == nil {
		return nil, fmt.Errorf("filter: no column %q", col)
	}
	if et := reflect.TypeOf(c).Elem(); reflect.TypeOf(val) != et {
		return nil, fmt.Errorf("filter: column %q holds %v, not %T", col, et, val)
	}
	return table.Flatten(table.FilterEq(t, col, val)), nil
}

// Rename returns t with column from renamed to to.
func Rename(t *table.Table, from, to string) (*table.Table, error) {
	if t.Column(from) == nil {
		return nil, fmt.Errorf("rename: no column %q", from)
	}
	if from == to {
		return t, nil
	}
	if t.Column(to) != nil {
		return nil, fmt.Errorf("rename: column %q already exists", to)
	}
	return table.Flatten(table.Rename(t, from, to)), nil
}

// Keep returns t restricted to cols, in that order.
func Keep(t *table.Table, cols ...string) (*table.Table, error) {
	b := new(table.Builder)
	for _, col := range cols {
		c := t.Column(col)
		if c == nil {
			return nil, fmt.Errorf("no column %q", col)
		}
		b.Add(col, c)
	}
	return b.Done(), nil
}

// WriteCSV writes t to w as CSV with a header row. Columns appear in
// table order.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	seqs := make([]reflect.Value, len(cols))
	for i, col := range cols {
		seqs[i] = reflect.ValueOf(t.Column(col))
	}
	rec := make([]string, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i := range cols {
			rec[i] = formatCell(seqs[i].Index(row).Interface())
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	}
	return fmt.Sprint(v)
}

// fromColumns builds a table from named columns, adding them in
// sorted name order after the columns named in first.
func fromColumns(first []string, cols map[string]interface{}) *table.Table {
	b := new(table.Builder)
	seen := make(map[string]bool)
	for _, name := range first {
		if c, ok := cols[name]; ok {
			b.Add(name, c)
			seen[name] = true
		}
	}
	var rest []string
	for name := range cols {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		b.Add(name, cols[name])
	}
	return b.Done()
}
