// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vl

// Transform is one Vega-Lite data transform. Exactly one of
// Calculate, Filter and JoinAggregate is set.
type Transform struct {
	As            string        `json:"as,omitempty"`
	Calculate     string        `json:"calculate,omitempty"`
	Filter        string        `json:"filter,omitempty"`
	Groupby       []string      `json:"groupby,omitempty"`
	JoinAggregate []AggregateOp `json:"joinaggregate,omitempty"`
}

// AggregateOp is one aggregate in a joinaggregate transform.
type AggregateOp struct {
	As    string `json:"as"`
	Field string `json:"field,omitempty"`
	Op    string `json:"op"`
}

// Count returns the aggregate that counts rows into as.
func Count(as string) AggregateOp {
	return AggregateOp{As: as, Op: "count"}
}

func (t *Transform) clone() *Transform {
	n := *t
	n.Groupby = append([]string(nil), t.Groupby...)
	n.JoinAggregate = append([]AggregateOp(nil), t.JoinAggregate...)
	return &n
}
