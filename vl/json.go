// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vl

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
	"golang.org/x/crypto/blake2b"
)

// SchemaURL is the Vega-Lite schema charts declare.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v4.17.0.json"

// Data is the data source of a chart: either an inline go-gg table or
// a URL.
type Data struct {
	Table *table.Table

	URL string
	// Format is the format of the data at URL, such as "csv" or
	// "json". It may be empty to let Vega-Lite infer it.
	Format string
}

// NewData returns inline data backed by t.
func NewData(t *table.Table) *Data {
	return &Data{Table: t}
}

// DataURL returns data loaded by the renderer from url.
func DataURL(url, format string) *Data {
	return &Data{URL: url, Format: format}
}

// Rows returns the rows of d's table as JSON-ready records. NaN and
// infinite floats become nulls.
func (d *Data) Rows() []map[string]interface{} {
	if d == nil || d.Table == nil {
		return nil
	}
	t := d.Table
	rows := make([]map[string]interface{}, t.Len())
	for i := range rows {
		rows[i] = make(map[string]interface{}, len(t.Columns()))
	}
	for _, col := range t.Columns() {
		seq := reflect.ValueOf(t.Column(col))
		for i := range rows {
			rows[i][col] = jsonValue(seq.Index(i).Interface())
		}
	}
	return rows
}

func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	case float32:
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case json.RawMessage:
		if len(v) == 0 {
			return nil
		}
	}
	return v
}

type dataFormat struct {
	Type string `json:"type"`
}

type dataRef struct {
	Format *dataFormat `json:"format,omitempty"`
	Name   string      `json:"name,omitempty"`
	URL    string      `json:"url,omitempty"`
}

// specJSON is the serialized form of a Chart. Fields are in
// alphabetical order so output matches Altair's sorted keys.
type specJSON struct {
	Schema     string                     `json:"$schema,omitempty"`
	Config     *Config                    `json:"config,omitempty"`
	Data       *dataRef                   `json:"data,omitempty"`
	Datasets   map[string]json.RawMessage `json:"datasets,omitempty"`
	Encoding   *Encoding                  `json:"encoding,omitempty"`
	HConcat    []*specJSON                `json:"hconcat,omitempty"`
	Height     int                        `json:"height,omitempty"`
	Mark       *Mark                      `json:"mark,omitempty"`
	Projection *Projection                `json:"projection,omitempty"`
	Resolve    *Resolve                   `json:"resolve,omitempty"`
	Spacing    *int                       `json:"spacing,omitempty"`
	Title      string                     `json:"title,omitempty"`
	Transform  []*Transform               `json:"transform,omitempty"`
	Width      int                        `json:"width,omitempty"`
}

// MarshalJSON encodes c as a complete top-level Vega-Lite document.
func (c *Chart) MarshalJSON() ([]byte, error) {
	s, err := c.spec()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// JSON encodes c as an indented top-level Vega-Lite document. The
// encoding is deterministic: equal charts produce identical bytes.
func (c *Chart) JSON() ([]byte, error) {
	s, err := c.spec()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

func (c *Chart) spec() (*specJSON, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	datasets := make(map[string]json.RawMessage)
	s, err := c.toSpec(datasets)
	if err != nil {
		return nil, err
	}
	s.Schema = SchemaURL
	s.Config = c.Config.clone()
	if s.Config == nil {
		s.Config = &Config{}
	}
	if s.Config.View == nil {
		s.Config.View = &ViewConfig{}
	}
	if s.Config.View.ContinuousWidth == 0 {
		s.Config.View.ContinuousWidth = DefaultWidth
	}
	if s.Config.View.ContinuousHeight == 0 {
		s.Config.View.ContinuousHeight = DefaultHeight
	}
	if len(datasets) > 0 {
		s.Datasets = datasets
	}
	return s, nil
}

func (c *Chart) toSpec(datasets map[string]json.RawMessage) (*specJSON, error) {
	s := &specJSON{
		Encoding:   c.Encoding,
		Height:     c.Height,
		Mark:       c.Mark,
		Projection: c.Projection,
		Resolve:    c.Resolve,
		Spacing:    c.Spacing,
		Title:      c.Title,
		Transform:  c.Transform,
		Width:      c.Width,
	}
	if c.Data != nil {
		ref, err := c.Data.ref(datasets)
		if err != nil {
			return nil, err
		}
		s.Data = ref
	}
	for _, sub := range c.HConcat {
		ss, err := sub.toSpec(datasets)
		if err != nil {
			return nil, err
		}
		s.HConcat = append(s.HConcat, ss)
	}
	return s, nil
}

// ref returns a reference to d, registering inline data in datasets
// under a name derived from its content.
func (d *Data) ref(datasets map[string]json.RawMessage) (*dataRef, error) {
	if d.Table == nil {
		r := &dataRef{URL: d.URL}
		if d.Format != "" {
			r.Format = &dataFormat{d.Format}
		}
		return r, nil
	}
	rows, err := json.Marshal(d.Rows())
	if err != nil {
		return nil, fmt.Errorf("encoding data: %w", err)
	}
	name := DatasetName(rows)
	datasets[name] = rows
	return &dataRef{Name: name}, nil
}

// DatasetName returns the dataset name for the JSON encoding of a
// table's rows.
func DatasetName(rows []byte) string {
	sum := blake2b.Sum256(rows)
	return "data-" + hex.EncodeToString(sum[:16])
}

func (m *Mark) MarshalJSON() ([]byte, error) {
	if m.Opacity == nil && m.Stroke == "" && m.StrokeWidth == nil {
		return json.Marshal(m.Type)
	}
	type mark Mark
	return json.Marshal((*mark)(m))
}

type fieldDefJSON struct {
	Aggregate string          `json:"aggregate,omitempty"`
	Axis      *Axis           `json:"axis,omitempty"`
	Bin       *Bin            `json:"bin,omitempty"`
	Field     string          `json:"field,omitempty"`
	Legend    json.RawMessage `json:"legend,omitempty"`
	Scale     *Scale          `json:"scale,omitempty"`
	Stack     *bool           `json:"stack,omitempty"`
	Title     string          `json:"title,omitempty"`
	Type      string          `json:"type,omitempty"`
}

func (d *FieldDef) MarshalJSON() ([]byte, error) {
	j := fieldDefJSON{
		Aggregate: d.Aggregate,
		Axis:      d.Axis,
		Bin:       d.Bin,
		Field:     d.Field,
		Scale:     d.Scale,
		Stack:     d.Stack,
		Title:     d.Title,
		Type:      d.Type,
	}
	if j.Field == "" && j.Aggregate == "" && d.Shorthand != "" {
		// Unresolved definition, e.g. one built outside Encode.
		if s, err := ParseShorthand(d.Shorthand); err == nil {
			j.Field, j.Aggregate = s.Field, s.Aggregate
			if j.Type == "" {
				j.Type = s.Type
			}
		}
	}
	switch {
	case d.NoLegend:
		j.Legend = json.RawMessage("null")
	case d.Legend != nil:
		l, err := json.Marshal(d.Legend)
		if err != nil {
			return nil, err
		}
		j.Legend = l
	}
	return json.Marshal(j)
}
