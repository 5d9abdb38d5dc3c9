// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws previews of the density and colors-used panels
// of a meta-histogram.
//
// The preview is drawn with go-gg, not Vega, so it approximates the
// panels a Vega-Lite renderer would draw: bins are computed the way
// Vega computes them and colors come from colorscale's approximations
// of the Vega schemes.
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways"
	"github.com/aclements/ways/binning"
	"github.com/aclements/ways/colorscale"
	"github.com/aclements/ways/dataset"
	"github.com/aclements/ways/vl"
)

// Panel numbers in the table Table returns.
const (
	PanelDensity = iota
	PanelColors
)

var panelNames = []string{"density", "colors used"}

// Table returns the polygons of the preview of src as a table with
// one row per polygon corner. Its columns are "panel" (PanelDensity or
// PanelColors), "bin" (the bin index), "x", "y" and "fill".
//
// src must have a color encoding with a bin definition. If that
// definition is false, the preview shows binning.DefaultMaxbins bins
// colored continuously by their midpoints.
func Table(src *vl.Chart) (*table.Table, error) {
	if src == nil || src.Encoding == nil || src.Encoding.Color == nil || src.Encoding.Color.Bin == nil {
		return nil, ways.ErrBinUndefined
	}
	def := src.Encoding.Color
	if src.Data == nil || src.Data.Table == nil {
		return nil, fmt.Errorf("preview needs inline data")
	}
	xs, err := dataset.Column(src.Data.Table, def.FieldName())
	if err != nil {
		return nil, err
	}

	binned := def.Bin.Enabled()
	var bins binning.Bins
	if binned {
		bins, err = ways.BinBoundaries(src)
	} else {
		lo, hi := dataset.Bounds(xs)
		bins, err = binning.Compute(lo, hi, binning.Options{})
	}
	if err != nil {
		return nil, err
	}
	h := binning.NewHistogram(bins, xs)
	props := h.Proportions()

	m, err := colorscale.NewMapper(def.Scale, bins.Start, bins.Stop)
	if err != nil {
		return nil, err
	}

	var (
		panels, binIdx []int
		px, py         []float64
		fills          []color.Color
	)
	rect := func(panel, bin int, x0, x1, y0, y1 float64, fill color.Color) {
		for _, pt := range [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
			panels = append(panels, panel)
			binIdx = append(binIdx, bin)
			px = append(px, pt[0])
			py = append(py, pt[1])
			fills = append(fills, fill)
		}
	}
	n := bins.N()
	for i := 0; i < n; i++ {
		var fill color.Color
		if binned {
			fill = m.Level(i, n)
		} else {
			fill = m.Map((bins.Edge(i) + bins.Edge(i+1)) / 2)
		}
		y0, y1 := bins.Edge(i), bins.Edge(i+1)
		if props[i] > 0 {
			rect(PanelDensity, i, 0, props[i], y0, y1, fill)
		}
		rect(PanelColors, i, 0, 1, y0, y1, fill)
	}

	return new(table.Builder).
		Add("panel", panels).
		Add("bin", binIdx).
		Add("x", px).
		Add("y", py).
		Add("fill", fills).
		Done(), nil
}

// WriteSVG writes an SVG preview of the density and colors-used panels
// of src to w. The panels share a vertical scale spanning the bins.
func WriteSVG(w io.Writer, src *vl.Chart, width, height int) error {
	tab, err := Table(src)
	if err != nil {
		return err
	}
	ys := tab.MustColumn("y").([]float64)
	lo, hi := dataset.Bounds(ys)
	field := src.Encoding.Color.FieldName()

	plot := gg.NewPlot(tab)
	plot.GroupBy("bin")
	plot.Add(gg.FacetX{
		Col:          "panel",
		SplitXScales: true,
		Labeler:      func(v interface{}) string { return panelNames[v.(int)] },
	})
	plot.SetScale("y", gg.NewLinearScaler().SetMin(lo).SetMax(hi))
	plot.Add(gg.LayerPaths{X: "x", Y: "y", Fill: "fill"})
	plot.Add(gg.AxisLabel("x", "proportion"))
	plot.Add(gg.AxisLabel("y", field))
	if src.Title != "" {
		plot.Add(gg.Title(src.Title))
	}
	return plot.WriteSVG(w, width, height)
}
