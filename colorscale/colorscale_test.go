// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorscale

import (
	"image/color"
	"testing"

	"github.com/aclements/ways/vl"
)

func TestCatalog(t *testing.T) {
	if len(ScaleTypes) != 16 {
		t.Errorf("len(ScaleTypes) = %d; want 16", len(ScaleTypes))
	}
	if len(Schemes) != 53 {
		t.Errorf("len(Schemes) = %d; want 53", len(Schemes))
	}
	for _, s := range Schemes {
		if !IsScheme(s) {
			t.Errorf("scheme %q has no gradient", s)
		}
		if _, err := Scheme(s); err != nil {
			t.Errorf("Scheme(%q): %v", s, err)
		}
	}
	if len(schemeStops) != len(Schemes) {
		t.Errorf("%d gradients for %d schemes", len(schemeStops), len(Schemes))
	}
	if IsScaleType("bogus") || !IsScaleType("bin-ordinal") {
		t.Errorf("IsScaleType misclassifies")
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{0xff, 0, 0, 0xff}},
		{"Purple", color.RGBA{0x80, 0, 0x80, 0xff}},
		{"#0000ff", color.RGBA{0, 0, 0xff, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	} {
		got, err := ParseColor(test.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseColor(%q) = %v; want %v", test.in, got, test.want)
		}
	}
	for _, bad := range []string{"", "notacolor", "#12", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded; want error", bad)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0x12, 0x34, 0x56, 0xff}); got != "#123456" {
		t.Errorf("Hex = %s; want #123456", got)
	}
}

func TestMapperRange(t *testing.T) {
	m, err := NewMapper(&vl.Scale{Range: []string{"red", "purple", "blue"}}, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		x    float64
		want string
	}{
		{0, "#ff0000"}, {100, "#0000ff"}, {-5, "#ff0000"}, {500, "#0000ff"},
	} {
		if got := Hex(m.Map(test.x)); got != test.want {
			t.Errorf("Map(%v) = %s; want %s", test.x, got, test.want)
		}
	}
	if got := Hex(m.Level(0, 5)); got != "#ff0000" {
		t.Errorf("Level(0, 5) = %s; want #ff0000", got)
	}
	if got := Hex(m.Level(4, 5)); got != "#0000ff" {
		t.Errorf("Level(4, 5) = %s; want #0000ff", got)
	}
}

func TestMapperScheme(t *testing.T) {
	m, err := NewMapper(&vl.Scale{Scheme: "viridis", Type: "log"}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got := Hex(m.Map(1)); got != "#440154" {
		t.Errorf("Map(1) = %s; want #440154", got)
	}
	if got := Hex(m.Map(1000)); got != "#fde725" {
		t.Errorf("Map(1000) = %s; want #fde725", got)
	}

	// The default scale is blues.
	m, err = NewMapper(nil, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := Hex(m.Map(0)); got != "#cfe1f2" {
		t.Errorf("default Map(0) = %s; want #cfe1f2", got)
	}
}

func TestMapperErrors(t *testing.T) {
	for _, s := range []*vl.Scale{
		{Scheme: "nope"},
		{Type: "nope"},
		{Range: []string{"red", "nope"}},
	} {
		if _, err := NewMapper(s, 0, 1); err == nil {
			t.Errorf("NewMapper(%+v) succeeded; want error", s)
		}
	}
}
