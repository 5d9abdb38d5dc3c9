// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panel implements an interactive panel of color encoding
// parameters that rebuilds a chart whenever a parameter changes.
//
// A Panel is owned by a single goroutine. Control observers, and the
// chart factory they trigger, run synchronously on that goroutine.
package panel

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways"
	"github.com/aclements/ways/colorscale"
	"github.com/aclements/ways/dataset"
	"github.com/aclements/ways/vl"
	"go.uber.org/zap"
)

// Values of the bin control.
const (
	Binned     = "Binned"
	Continuous = "Continuous"
)

// Defaults of the panel's controls.
const (
	DefaultMaxbins = 100
	DefaultScale   = "linear"
	DefaultScheme  = colorscale.DefaultScheme
)

// DefaultColors are the initial colors of a Range color method.
var DefaultColors = [3]string{"red", "purple", "blue"}

// Panel holds the controls for building a color encoding of one
// column.
type Panel struct {
	Bin     *Radio
	Maxbins *IntSlider
	Extent  *IntRangeSlider
	Scale   *Dropdown
	Method  *Radio
	Scheme  *Dropdown
	Colors  [3]*ColorPicker

	column  string
	values  []float64
	factory ways.ChartFunc

	// extentSet records that the extent has been populated from
	// the data.
	extentSet bool

	// depth and dirty coalesce the renders triggered by a batch of
	// changes into one.
	depth int
	dirty bool

	renderers []func(*vl.Chart, error)
	chart     *vl.Chart
	err       error
}

// New returns a panel for coloring by column of data. Every change to
// a control calls factory with a fresh color encoding and passes the
// result to the panel's render observers.
//
// The panel starts binned, with the extent set from the range of the
// column's values.
func New(data *table.Table, column string, factory ways.ChartFunc) (*Panel, error) {
	values, err := dataset.Column(data, column)
	if err != nil {
		return nil, err
	}
	p := &Panel{
		Bin:     NewRadio("bin", "Bin", []string{Binned, Continuous}, Binned),
		Maxbins: NewIntSlider("maxbins", "Max Bins", 2, 100, DefaultMaxbins),
		Extent:  NewIntRangeSlider("extent", "Extent", 0, 100, [2]int{0, 100}),
		Scale:   NewDropdown("scale", "Scales", colorscale.ScaleTypes, DefaultScale),
		Method:  NewRadio("method", "Color Method", []string{ways.MethodScheme, ways.MethodRange}, ways.MethodScheme),
		Scheme:  NewDropdown("scheme", "Scheme", colorscale.Schemes, DefaultScheme),
		column:  column,
		values:  values,
		factory: factory,
	}
	for i, c := range DefaultColors {
		desc := ""
		if i == 0 {
			desc = "Range"
		}
		p.Colors[i] = NewColorPicker(fmt.Sprintf("color%d", i+1), desc, c)
	}

	p.Bin.Observe(p.observer(p.binChanged))
	p.Method.Observe(p.observer(p.methodChanged))
	for _, c := range []Control{p.Maxbins, p.Extent, p.Scale, p.Scheme, p.Colors[0], p.Colors[1], p.Colors[2]} {
		c.Observe(p.observer(nil))
	}

	// Establish the initial control states without rendering.
	p.depth++
	p.binChanged(Change{})
	p.methodChanged(Change{})
	p.depth--
	p.dirty = false
	return p, nil
}

// observer returns a control observer that applies transition and
// then rebuilds the chart.
func (p *Panel) observer(transition func(Change)) func(Change) {
	return func(ch Change) {
		ways.Log.Debug("panel control changed",
			zap.String("control", ch.Control),
			zap.Any("old", ch.Old), zap.Any("new", ch.New))
		p.batch(func() {
			if transition != nil {
				transition(ch)
			}
			p.dirty = true
		})
	}
}

// batch runs fn and then renders once if anything fn did asked for a
// render.
func (p *Panel) batch(fn func()) {
	p.depth++
	fn()
	p.depth--
	if p.depth == 0 && p.dirty {
		p.dirty = false
		p.Render()
	}
}

func (p *Panel) binChanged(Change) {
	binned := p.Bin.Value() == Binned
	p.Maxbins.SetDisabled(!binned)
	p.Extent.SetDisabled(!binned)
	if binned {
		// A binned scale with a custom range is not supported.
		p.Method.Set(ways.MethodScheme)
		p.Method.SetDisabled(true)
		p.populateExtent()
	} else {
		p.Method.SetDisabled(false)
	}
}

func (p *Panel) methodChanged(Change) {
	scheme := p.Method.Value() == ways.MethodScheme
	p.Scheme.SetDisabled(!scheme)
	for _, c := range p.Colors {
		c.SetDisabled(scheme)
	}
}

// populateExtent sets the extent and its bounds to the range of the
// data, rounded outward to integers. It does so only once.
func (p *Panel) populateExtent() {
	if p.extentSet {
		return
	}
	lo, hi := dataset.Bounds(p.values)
	if math.IsNaN(lo) {
		return
	}
	p.extentSet = true
	ilo, ihi := int(math.Floor(lo)), int(math.Ceil(hi))
	if ilo == ihi {
		ihi++
	}
	p.Extent.SetBounds(ilo, ihi)
	p.Extent.Set(ilo, ihi)
}

// Controls returns the panel's controls in display order.
func (p *Panel) Controls() []Control {
	return []Control{
		p.Bin, p.Maxbins, p.Extent, p.Scale, p.Method, p.Scheme,
		p.Colors[0], p.Colors[1], p.Colors[2],
	}
}

// Control returns the control named name, or nil.
func (p *Panel) Control(name string) Control {
	for _, c := range p.Controls() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Apply sets the control named name from text, as a user edit. It
// fails if the control is disabled.
func (p *Panel) Apply(name, text string) error {
	c := p.Control(name)
	if c == nil {
		return fmt.Errorf("no control %q", name)
	}
	if c.Disabled() {
		return fmt.Errorf("control %s is disabled", name)
	}
	return c.Parse(text)
}

// Selection returns the panel's current color encoding parameters.
func (p *Panel) Selection() ways.Selection {
	s := ways.Selection{
		Column:  p.column,
		Binned:  p.Bin.Value() == Binned,
		Maxbins: p.Maxbins.Value(),
		Extent:  p.Extent.Value(),
		Scale:   p.Scale.Value(),
		Method:  p.Method.Value(),
		Scheme:  p.Scheme.Value(),
	}
	for i, c := range p.Colors {
		s.Colors[i] = c.Value()
	}
	return s
}

// OnRender registers fn to receive every chart the panel builds, or
// the error building it.
func (p *Panel) OnRender(fn func(*vl.Chart, error)) {
	p.renderers = append(p.renderers, fn)
}

// Render builds the chart for the current selection and passes it to
// the render observers. Control changes call Render automatically.
func (p *Panel) Render() {
	sel := p.Selection()
	p.chart, p.err = p.factory(ways.ColorEncoding(sel))
	if p.err != nil {
		ways.Log.Warn("chart factory failed", zap.Error(p.err))
	} else {
		ways.Log.Debug("panel rendered",
			zap.Bool("binned", sel.Binned),
			zap.Int("maxbins", sel.Maxbins),
			zap.Ints("extent", sel.Extent[:]))
	}
	for _, fn := range p.renderers {
		fn(p.chart, p.err)
	}
}

// Chart returns the most recently built chart and its error.
func (p *Panel) Chart() (*vl.Chart, error) {
	return p.chart, p.err
}
