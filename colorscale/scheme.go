// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorscale knows the Vega scale types and color schemes and
// resolves a color scale definition to concrete colors.
//
// The scheme gradients here are close approximations of Vega's, good
// enough for previews. The Vega-Lite documents WAYS produces only name
// schemes; the renderer that displays them supplies the exact colors.
package colorscale

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ScaleTypes lists the Vega-Lite scale types, in the order a user
// interface should offer them.
var ScaleTypes = []string{
	"linear", "log", "pow", "sqrt", "symlog", "identity", "sequential",
	"time", "utc", "quantile", "quantize", "threshold", "bin-ordinal",
	"ordinal", "point", "band",
}

// Schemes lists the Vega color scheme names, in the order a user
// interface should offer them.
var Schemes = []string{
	"blues", "tealblues", "teals", "greens", "browns", "oranges", "reds",
	"purples", "warmgreys", "greys", "viridis", "magma", "inferno",
	"plasma", "cividis", "turbo", "bluegreen", "bluepurple", "goldgreen",
	"goldorange", "goldred", "greenblue", "orangered", "purplebluegreen",
	"purpleblue", "purplered", "redpurple", "yellowgreenblue",
	"yellowgreen", "yelloworangebrown", "yelloworangered", "darkblue",
	"darkgold", "darkgreen", "darkmulti", "darkred", "lightgreyred",
	"lightgreyteal", "lightmulti", "lightorange", "lighttealblue",
	"blueorange", "brownbluegreen", "purplegreen", "pinkyellowgreen",
	"purpleorange", "redblue", "redgrey", "redyellowblue",
	"redyellowgreen", "spectral", "rainbow", "sinebow",
}

// schemeStops gives evenly spaced gradient stops for each scheme.
var schemeStops = map[string][]string{
	"blues":             {"#cfe1f2", "#93c3df", "#4b97c9", "#1864aa", "#0a3a70"},
	"tealblues":         {"#bce4d8", "#81c3cb", "#45a2b9", "#2f7ca8", "#2c5985"},
	"teals":             {"#bbdfdf", "#84c2c3", "#51a3a7", "#2c8289", "#1d5e66"},
	"greens":            {"#d3eecd", "#98d594", "#4bb062", "#1d8641", "#0b5d2d"},
	"browns":            {"#eedbbd", "#d9af82", "#c0804c", "#975c2f", "#6a3d17"},
	"oranges":           {"#fdd8b3", "#fdae6b", "#f67f2f", "#d84b0b", "#993404"},
	"reds":              {"#fdc9b4", "#fb8a6c", "#ec4c3a", "#c1231d", "#8a0c13"},
	"purples":           {"#e2e1ef", "#bcbddc", "#9894c6", "#7760ab", "#541b8e"},
	"warmgreys":         {"#dcd4d0", "#bfb4ae", "#9d918c", "#7e7370", "#5b5250"},
	"greys":             {"#e2e2e2", "#bdbdbd", "#939393", "#676767", "#3a3a3a"},
	"viridis":           {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	"magma":             {"#000004", "#51127c", "#b73779", "#fc8961", "#fcfdbf"},
	"inferno":           {"#000004", "#56106e", "#bb3754", "#f98e09", "#fcffa4"},
	"plasma":            {"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
	"cividis":           {"#00204c", "#414d6b", "#7c7b78", "#bcaf6f", "#ffe945"},
	"turbo":             {"#23171b", "#2f9df5", "#4df884", "#dedd32", "#f65f18", "#900c00"},
	"bluegreen":         {"#d5efed", "#9cd7d1", "#5cb7a8", "#2a9165", "#0d6932"},
	"bluepurple":        {"#ccddec", "#9fbadb", "#8c8fc3", "#8862ac", "#7a2a8b"},
	"goldgreen":         {"#f4d166", "#b6c55a", "#78ae50", "#3e8c4d", "#146c36"},
	"goldorange":        {"#f4d166", "#f6b546", "#f59231", "#ef6a1e", "#b83f12"},
	"goldred":           {"#f4d166", "#f3a94e", "#e8793b", "#d24a32", "#9e1f25"},
	"greenblue":         {"#d3eecd", "#a2d9bd", "#69bec6", "#3691c0", "#0d5c9c"},
	"orangered":         {"#fddcaf", "#fdb27e", "#f67e5b", "#de4a33", "#a70b05"},
	"purplebluegreen":   {"#dbd8ea", "#a6bddb", "#67a9cf", "#1c8b8a", "#0a6a4c"},
	"purpleblue":        {"#dbdaeb", "#a6bddb", "#6ba3cd", "#2d7fb8", "#0b5592"},
	"purplered":         {"#dcc9e2", "#d29acb", "#e0609a", "#c91a61", "#8a0a3c"},
	"redpurple":         {"#fccfcc", "#fa9fb5", "#f164a1", "#c0147f", "#7b0277"},
	"yellowgreenblue":   {"#eff9bd", "#a5dbb7", "#4bb4c2", "#2079b4", "#1c3a8f"},
	"yellowgreen":       {"#e4f4ac", "#a5d96a", "#5ab55f", "#228544", "#0b5a2f"},
	"yelloworangebrown": {"#feeaa1", "#fec44f", "#f58822", "#cc5409", "#8c3304"},
	"yelloworangered":   {"#fee087", "#fdaa49", "#f8622d", "#d01b1f", "#8e0026"},
	"darkblue":          {"#323232", "#2d4668", "#1a5c93", "#0074af", "#3fa1d8"},
	"darkgold":          {"#3c3c3c", "#584b37", "#725e34", "#957530", "#c7a12d"},
	"darkgreen":         {"#3a3a3a", "#215748", "#006f4d", "#048942", "#4dba2f"},
	"darkmulti":         {"#373737", "#1f5287", "#197d8c", "#29a869", "#95ce3f"},
	"darkred":           {"#343434", "#703633", "#9e3c38", "#cc4037", "#fa5b42"},
	"lightgreyred":      {"#efe9e6", "#e1dad7", "#ec9989", "#e2603e", "#c4281c"},
	"lightgreyteal":     {"#e4eaea", "#bed0d2", "#79a7ac", "#3d818f", "#1a5e6a"},
	"lightmulti":        {"#e0f1f2", "#c4e9d0", "#b0de9f", "#d0e181", "#f6e072"},
	"lightorange":       {"#f2e7da", "#f7d5ba", "#f9c499", "#f5a06d", "#e77133"},
	"lighttealblue":     {"#e3e9e0", "#c0dccf", "#9aceca", "#7abfc8", "#4f93c7"},
	"blueorange":        {"#134b85", "#5c9bc7", "#f2f0eb", "#f5a560", "#9e3a0b"},
	"brownbluegreen":    {"#704108", "#d4b06b", "#f4f1ea", "#6dc0b3", "#014840"},
	"purplegreen":       {"#5b1667", "#b28ac0", "#f1f1f0", "#7fc17d", "#0e5528"},
	"pinkyellowgreen":   {"#8e0152", "#e38cbe", "#f8f5f5", "#98cc59", "#276419"},
	"purpleorange":      {"#4b1c62", "#a39ac8", "#f3eeea", "#f5a952", "#7f3b08"},
	"redblue":           {"#8c0d25", "#e48066", "#f2efee", "#6fa8cf", "#0f437b"},
	"redgrey":           {"#8c0d25", "#e48066", "#f4f1ef", "#a5a5a5", "#404040"},
	"redyellowblue":     {"#a50026", "#f88d52", "#fbf8c4", "#87bdda", "#313695"},
	"redyellowgreen":    {"#a50026", "#f88d52", "#f7f7b3", "#84ca66", "#006837"},
	"spectral":          {"#9e0142", "#f88d52", "#fbf8b0", "#88d0a4", "#5e4fa2"},
	"rainbow":           {"#6e40aa", "#ff5e63", "#aff05b", "#1ac7c2", "#6e40aa"},
	"sinebow":           {"#ff4040", "#b9cb04", "#20d08b", "#2a64e8", "#ff4040"},
}

// IsScaleType reports whether name is a known scale type.
func IsScaleType(name string) bool {
	for _, t := range ScaleTypes {
		if t == name {
			return true
		}
	}
	return false
}

// IsScheme reports whether name is a known color scheme.
func IsScheme(name string) bool {
	_, ok := schemeStops[name]
	return ok
}

// Scheme returns the continuous palette for the named scheme.
func Scheme(name string) (palette.Continuous, error) {
	stops, ok := schemeStops[name]
	if !ok {
		return nil, fmt.Errorf("unknown color scheme %q", name)
	}
	return Gradient(stops...)
}

// Gradient returns a palette interpolating evenly between colors,
// which may be CSS color names or hex triplets.
func Gradient(colors ...string) (palette.Continuous, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("empty color range")
	}
	g := palette.RGBGradient{}
	for _, c := range colors {
		rgba, err := ParseColor(c)
		if err != nil {
			return nil, err
		}
		g.Colors = append(g.Colors, rgba)
	}
	if len(g.Colors) == 1 {
		g.Colors = append(g.Colors, g.Colors[0])
	}
	return g, nil
}

// ParseColor parses a CSS color name ("purple") or a hex triplet
// ("#800080" or "#808").
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}

// Hex formats c as a hex triplet.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
