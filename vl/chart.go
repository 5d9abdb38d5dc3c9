// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vl models the subset of the Vega-Lite declarative chart
// grammar that WAYS reads and produces.
//
// Charts are built the way Altair builds them:
//
//	c := vl.NewChart(vl.NewData(tab)).
//		MarkCircle().
//		Encode(vl.X("IMDB_Rating"), vl.Y("Rotten_Tomatoes_Rating"),
//			vl.Color("Production_Budget", vl.WithBin(vl.NewBin(20))))
//
// A Chart serializes to a complete Vega-Lite document with JSON.
// Inline data is hoisted into a top-level "datasets" map so that
// composite charts sharing a table carry it only once.
package vl

import (
	"errors"
	"fmt"
)

// Default view dimensions used by Vega-Lite when a chart does not set
// its own width or height.
const (
	DefaultWidth  = 400
	DefaultHeight = 300
)

// Chart is a single-view or horizontally concatenated Vega-Lite
// specification.
//
// A Chart is a plain value tree. Callers that want to derive a chart
// from another must Clone it first; the builder methods modify the
// receiver in place and return it for chaining.
type Chart struct {
	Data       *Data
	Mark       *Mark
	Encoding   *Encoding
	Transform  []*Transform
	Width      int
	Height     int
	Title      string
	Projection *Projection

	// HConcat, if non-empty, makes this a composite chart. The
	// fields above are then normally unset.
	HConcat []*Chart
	Spacing *int
	Resolve *Resolve

	// Config is only meaningful on the top-level chart.
	Config *Config

	errs []error
}

// NewChart returns an empty single-view chart over data. data may be
// nil for charts that inherit data from a parent.
func NewChart(data *Data) *Chart {
	return &Chart{Data: data}
}

// HConcat returns a composite chart that lays out charts from left to
// right.
func HConcat(charts ...*Chart) *Chart {
	return &Chart{HConcat: charts}
}

// Err returns the errors recorded while building c and its
// sub-charts, or nil.
func (c *Chart) Err() error {
	var errs []error
	var walk func(c *Chart)
	walk = func(c *Chart) {
		errs = append(errs, c.errs...)
		for _, sub := range c.HConcat {
			walk(sub)
		}
	}
	walk(c)
	return errors.Join(errs...)
}

// SetMark sets the mark type of c.
func (c *Chart) SetMark(typ string) *Chart {
	c.Mark = &Mark{Type: typ}
	return c
}

func (c *Chart) MarkBar() *Chart      { return c.SetMark("bar") }
func (c *Chart) MarkRect() *Chart     { return c.SetMark("rect") }
func (c *Chart) MarkCircle() *Chart   { return c.SetMark("circle") }
func (c *Chart) MarkPoint() *Chart    { return c.SetMark("point") }
func (c *Chart) MarkGeoshape() *Chart { return c.SetMark("geoshape") }

// Encode binds channels to c's encoding. Shorthands are resolved
// against c's data, so field types are inferred from table column
// types where the shorthand does not give one. A later binding of the
// same channel replaces an earlier one, except for tooltips, which
// accumulate.
func (c *Chart) Encode(channels ...Channel) *Chart {
	if c.Encoding == nil {
		c.Encoding = &Encoding{}
	}
	for _, ch := range channels {
		def := ch.Def
		if err := def.resolve(c.Data); err != nil {
			c.errs = append(c.errs, fmt.Errorf("encoding %s: %w", ch.Name, err))
			continue
		}
		if err := c.Encoding.set(ch.Name, def); err != nil {
			c.errs = append(c.errs, err)
		}
	}
	return c
}

// Size sets the width and height of c in pixels.
func (c *Chart) Size(width, height int) *Chart {
	c.Width, c.Height = width, height
	return c
}

// SetTitle sets the title of c.
func (c *Chart) SetTitle(title string) *Chart {
	c.Title = title
	return c
}

// Project sets the geographic projection of c.
func (c *Chart) Project(typ string) *Chart {
	c.Projection = &Projection{Type: typ}
	return c
}

// JoinAggregate appends a joinaggregate transform to c.
func (c *Chart) JoinAggregate(ops ...AggregateOp) *Chart {
	c.Transform = append(c.Transform, &Transform{JoinAggregate: ops})
	return c
}

// Calculate appends a calculate transform to c binding expr to the
// field as.
func (c *Chart) Calculate(as, expr string) *Chart {
	c.Transform = append(c.Transform, &Transform{As: as, Calculate: expr})
	return c
}

// SetSpacing sets the spacing between the sub-charts of a composite.
func (c *Chart) SetSpacing(px int) *Chart {
	c.Spacing = &px
	return c
}

// ResolveScale sets how the scale of channel is shared between
// sub-charts: "shared" or "independent".
func (c *Chart) ResolveScale(channel, mode string) *Chart {
	if c.Resolve == nil {
		c.Resolve = &Resolve{Scale: map[string]string{}}
	}
	c.Resolve.Scale[channel] = mode
	return c
}

// ConfigureView sets the stroke width of view borders.
func (c *Chart) ConfigureView(strokeWidth float64) *Chart {
	if c.Config == nil {
		c.Config = &Config{}
	}
	if c.Config.View == nil {
		c.Config.View = &ViewConfig{}
	}
	c.Config.View.StrokeWidth = &strokeWidth
	return c
}

// Panels returns the number of top-level views of c: the length of
// HConcat for a composite chart and 1 otherwise.
func (c *Chart) Panels() int {
	if len(c.HConcat) > 0 {
		return len(c.HConcat)
	}
	return 1
}

// Clone returns a deep copy of c. Data tables are shared, since
// go-gg tables are immutable.
func (c *Chart) Clone() *Chart {
	if c == nil {
		return nil
	}
	n := *c
	if c.Data != nil {
		d := *c.Data
		n.Data = &d
	}
	if c.Mark != nil {
		m := *c.Mark
		n.Mark = &m
	}
	n.Encoding = c.Encoding.Clone()
	n.Transform = nil
	for _, t := range c.Transform {
		n.Transform = append(n.Transform, t.clone())
	}
	if c.Projection != nil {
		p := *c.Projection
		n.Projection = &p
	}
	n.HConcat = nil
	for _, sub := range c.HConcat {
		n.HConcat = append(n.HConcat, sub.Clone())
	}
	if c.Spacing != nil {
		s := *c.Spacing
		n.Spacing = &s
	}
	if c.Resolve != nil {
		r := &Resolve{Scale: map[string]string{}}
		for k, v := range c.Resolve.Scale {
			r.Scale[k] = v
		}
		n.Resolve = r
	}
	n.Config = c.Config.clone()
	n.errs = append([]error(nil), c.errs...)
	return &n
}

// Mark is a Vega-Lite mark definition. A mark with only a Type
// serializes as a bare string.
type Mark struct {
	Type        string   `json:"type"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

// Projection is a geographic projection.
type Projection struct {
	Type string `json:"type"`
}

// Resolve controls sharing of scales in composite charts.
type Resolve struct {
	Scale map[string]string `json:"scale,omitempty"`
}

// Config is top-level chart configuration.
type Config struct {
	View *ViewConfig `json:"view,omitempty"`
}

func (c *Config) clone() *Config {
	if c == nil {
		return nil
	}
	n := *c
	if c.View != nil {
		v := *c.View
		if v.StrokeWidth != nil {
			w := *v.StrokeWidth
			v.StrokeWidth = &w
		}
		n.View = &v
	}
	return &n
}

// ViewConfig configures single views.
type ViewConfig struct {
	ContinuousHeight int      `json:"continuousHeight,omitempty"`
	ContinuousWidth  int      `json:"continuousWidth,omitempty"`
	StrokeWidth      *float64 `json:"strokeWidth,omitempty"`
}
