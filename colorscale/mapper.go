// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorscale

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/ways/vl"
)

// DefaultScheme is the scheme Vega-Lite uses for quantitative color
// when a scale names neither a scheme nor a range.
const DefaultScheme = "blues"

// Mapper maps data values over a domain to colors.
type Mapper struct {
	pal  palette.Continuous
	norm func(x float64) float64
}

// NewMapper returns a Mapper for the color scale s over the domain
// [lo, hi]. s may be nil for the default scale. A scale with a range
// interpolates between the range colors; otherwise its scheme is used.
func NewMapper(s *vl.Scale, lo, hi float64) (*Mapper, error) {
	var (
		pal palette.Continuous
		err error
	)
	typ := "linear"
	switch {
	case s == nil:
		pal, err = Scheme(DefaultScheme)
	case len(s.Range) > 0:
		pal, err = Gradient(s.Range...)
	case s.Scheme != "":
		pal, err = Scheme(s.Scheme)
	default:
		pal, err = Scheme(DefaultScheme)
	}
	if err != nil {
		return nil, err
	}
	if s != nil && s.Type != "" {
		if !IsScaleType(s.Type) {
			return nil, fmt.Errorf("unknown scale type %q", s.Type)
		}
		typ = s.Type
	}
	if s != nil && len(s.Domain) == 2 {
		lo, hi = s.Domain[0], s.Domain[1]
	}
	return &Mapper{pal, normalizer(typ, lo, hi)}, nil
}

// normalizer returns a function mapping [lo, hi] onto [0, 1] the way
// a continuous scale of type typ spaces values. Discrete scale types
// are previewed as linear.
func normalizer(typ string, lo, hi float64) func(float64) float64 {
	if !(lo < hi) {
		return func(float64) float64 { return 0.5 }
	}
	warp := func(x float64) float64 { return x }
	switch typ {
	case "log":
		if lo > 0 {
			if ls, err := scale.NewLog(lo, hi, 10); err == nil {
				return func(x float64) float64 {
					if x <= 0 {
						return 0
					}
					return clamp(ls.Map(x))
				}
			}
		}
	case "sqrt":
		warp = func(x float64) float64 {
			return math.Copysign(math.Sqrt(math.Abs(x)), x)
		}
	case "symlog":
		warp = func(x float64) float64 {
			return math.Copysign(math.Log1p(math.Abs(x)), x)
		}
	}
	ls := scale.Linear{Min: warp(lo), Max: warp(hi)}
	return func(x float64) float64 {
		return clamp(ls.Map(warp(x)))
	}
}

func clamp(t float64) float64 {
	switch {
	case math.IsNaN(t):
		return 0
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Map returns the color of x.
func (m *Mapper) Map(x float64) color.Color {
	return m.pal.Map(m.norm(x))
}

// Level returns the color of discrete level i of n, spacing the
// levels evenly across the palette. This is how a binned color
// encoding colors its bins.
func (m *Mapper) Level(i, n int) color.Color {
	if n <= 1 {
		return m.pal.Map(0.5)
	}
	return m.pal.Map(float64(i) / float64(n-1))
}
