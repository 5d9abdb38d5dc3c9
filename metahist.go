// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ways

import (
	"fmt"

	"github.com/aclements/ways/binning"
	"github.com/aclements/ways/vl"
	"go.uber.org/zap"
)

// Field names the derived panels compute.
const (
	countField      = "__count"
	proportionField = "__proportion"
)

type options struct {
	colorsUsed   bool
	densityWidth int
	stripWidth   int
	spacing      int
}

// An Option configures MetaHist.
type Option func(*options)

// WithoutColorsUsed omits the colors-used strip, giving
// density | chart.
func WithoutColorsUsed() Option {
	return func(o *options) { o.colorsUsed = false }
}

// DensityWidth sets the width of the density panel.
func DensityWidth(px int) Option {
	return func(o *options) { o.densityWidth = px }
}

// StripWidth sets the width of the colors-used panel.
func StripWidth(px int) Option {
	return func(o *options) { o.stripWidth = px }
}

// Spacing sets the space between panels.
func Spacing(px int) Option {
	return func(o *options) { o.spacing = px }
}

func newOptions(opts []Option) options {
	o := options{
		colorsUsed:   true,
		densityWidth: 150,
		stripWidth:   20,
		spacing:      10,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MetaHist returns src preceded by a density histogram of its color
// field and a strip of the colors used for each bin. src must have a
// color encoding with a bin definition; otherwise MetaHist returns
// ErrBinUndefined. src is not modified.
//
// If the bin definition has an explicit extent, both derived panels
// fix their vertical domain to it, so their bins line up with each
// other.
//
// If the bin definition is false the color scale is continuous and
// there are no bins to draw: the density panel shows the distribution
// of raw values and the colors-used strip has no meaningful bin
// boundaries.
func MetaHist(src *vl.Chart, opts ...Option) (*vl.Chart, error) {
	if src == nil || src.Encoding == nil || src.Encoding.Color == nil || src.Encoding.Color.Bin == nil {
		return nil, ErrBinUndefined
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	if src.Data == nil {
		return nil, fmt.Errorf("chart has no data")
	}
	color := src.Encoding.Color
	if err := color.Bin.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	field := color.FieldName()
	height := src.Height
	if height == 0 {
		height = vl.DefaultHeight
	}

	panelColor := color.Clone()
	panelColor.NoLegend, panelColor.Legend = true, nil

	// Vega-Lite's default maxbins differs between the color and
	// position channels, so the derived y bins carry the color
	// default explicitly.
	yBin := color.Bin.Clone()
	if yBin.Enabled() && yBin.Maxbins() == 0 {
		if yBin.Params == nil {
			yBin.Params = &vl.BinParams{}
		}
		yBin.Params.Maxbins = binning.ColorMaxbins
	}

	binnedY := func() *vl.FieldDef {
		y := &vl.FieldDef{
			Field: field,
			Type:  vl.Quantitative,
			Bin:   yBin.Clone(),
			Title: field,
		}
		if lo, hi, ok := color.Bin.Extent(); ok {
			y.Scale = &vl.Scale{Domain: []float64{lo, hi}}
		}
		return y
	}

	density := derived(src).MarkBar().
		JoinAggregate(vl.Count(countField)).
		Calculate(proportionField, "1/datum."+countField).
		Size(o.densityWidth, height)
	density.Encoding = &vl.Encoding{
		Color: panelColor,
		X: &vl.FieldDef{
			Field:     proportionField,
			Aggregate: "sum",
			Type:      vl.Quantitative,
			Title:     "proportion",
		},
		Y: binnedY(),
	}
	panels := []*vl.Chart{density}

	if o.colorsUsed {
		strip := derived(src).MarkRect().
			Size(o.stripWidth, height).
			SetTitle("colors used")
		y := binnedY()
		no := false
		y.Title = ""
		y.Axis = &vl.Axis{Labels: &no, Ticks: &no}
		strip.Encoding = &vl.Encoding{Color: panelColor.Clone(), Y: y}
		panels = append(panels, strip)
	}

	orig := src.Clone()
	config := orig.Config
	orig.Config = nil
	panels = append(panels, orig)

	out := vl.HConcat(panels...).
		SetSpacing(o.spacing).
		ResolveScale("color", "shared")
	out.Config = config
	out.ConfigureView(0)

	Log.Debug("meta-histogram",
		zap.String("field", field),
		zap.Bool("binned", color.Bin.Enabled()),
		zap.Int("panels", len(panels)))
	return out, nil
}

// derived returns a new chart over src's data and transforms.
func derived(src *vl.Chart) *vl.Chart {
	c := src.Clone()
	return &vl.Chart{Data: c.Data, Transform: c.Transform}
}

// ChartFunc builds a chart from a color encoding.
type ChartFunc func(color *vl.FieldDef) (*vl.Chart, error)

// Wrap returns a ChartFunc that applies MetaHist to every chart f
// builds.
func Wrap(f ChartFunc, opts ...Option) ChartFunc {
	return WrapFunc(f, opts...)
}

// WrapFunc is like Wrap for chart-building functions of any argument
// type.
func WrapFunc[A any](f func(A) (*vl.Chart, error), opts ...Option) func(A) (*vl.Chart, error) {
	return func(a A) (*vl.Chart, error) {
		c, err := f(a)
		if err != nil {
			return nil, err
		}
		return MetaHist(c, opts...)
	}
}
