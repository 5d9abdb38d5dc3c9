// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ways

import "github.com/aclements/ways/vl"

// Color methods: how a Selection picks its colors.
const (
	MethodScheme = "Scheme"
	MethodRange  = "Range"
)

// Selection is a choice of color encoding parameters, as made in a
// parameter panel.
type Selection struct {
	// Column is the data field to color by.
	Column string

	// Binned selects a binned color scale. Maxbins and Extent apply
	// only to binned scales.
	Binned  bool
	Maxbins int
	Extent  [2]int

	// Scale is the scale type, such as "linear" or "log".
	Scale string

	// Method is MethodScheme to color with the named Scheme or
	// MethodRange to interpolate between Colors.
	Method string
	Scheme string
	Colors [3]string
}

// ColorEncoding returns the quantitative color encoding of s, with the
// legend disabled. An unbinned selection gets the bin definition
// false, so the result can always be decorated by MetaHist.
func ColorEncoding(s Selection) *vl.FieldDef {
	def := &vl.FieldDef{
		Shorthand: s.Column,
		Field:     s.Column,
		Type:      vl.Quantitative,
		NoLegend:  true,
	}
	if s.Binned {
		def.Bin = vl.NewBin(s.Maxbins, float64(s.Extent[0]), float64(s.Extent[1]))
	} else {
		def.Bin = vl.BinOff()
	}
	switch s.Method {
	case MethodRange:
		def.Scale = &vl.Scale{Type: s.Scale, Range: append([]string(nil), s.Colors[:]...)}
	default:
		def.Scale = &vl.Scale{Type: s.Scale, Scheme: s.Scheme}
	}
	return def
}
