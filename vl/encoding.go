// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vl

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/aclements/go-gg/table"
)

// Field types.
const (
	Quantitative = "quantitative"
	Ordinal      = "ordinal"
	Nominal      = "nominal"
	Temporal     = "temporal"
	GeoJSON      = "geojson"
)

var typeCodes = map[string]string{
	"Q": Quantitative,
	"O": Ordinal,
	"N": Nominal,
	"T": Temporal,
	"G": GeoJSON,
}

// Encoding maps encoding channels to field definitions.
type Encoding struct {
	Color   *FieldDef   `json:"color,omitempty"`
	Tooltip []*FieldDef `json:"tooltip,omitempty"`
	X       *FieldDef   `json:"x,omitempty"`
	X2      *FieldDef   `json:"x2,omitempty"`
	Y       *FieldDef   `json:"y,omitempty"`
	Y2      *FieldDef   `json:"y2,omitempty"`
}

func (e *Encoding) set(name string, def *FieldDef) error {
	switch name {
	case "color":
		e.Color = def
	case "tooltip":
		e.Tooltip = append(e.Tooltip, def)
	case "x":
		e.X = def
	case "x2":
		e.X2 = def
	case "y":
		e.Y = def
	case "y2":
		e.Y2 = def
	default:
		return fmt.Errorf("unknown encoding channel %q", name)
	}
	return nil
}

// Clone returns a deep copy of e.
func (e *Encoding) Clone() *Encoding {
	if e == nil {
		return nil
	}
	n := &Encoding{
		Color: e.Color.Clone(),
		X:     e.X.Clone(),
		X2:    e.X2.Clone(),
		Y:     e.Y.Clone(),
		Y2:    e.Y2.Clone(),
	}
	for _, t := range e.Tooltip {
		n.Tooltip = append(n.Tooltip, t.Clone())
	}
	return n
}

// Channel is a field definition bound to a named encoding channel.
type Channel struct {
	Name string
	Def  *FieldDef
}

// A FieldOption modifies a FieldDef as it is constructed.
type FieldOption func(*FieldDef)

func newChannel(name, shorthand string, opts []FieldOption) Channel {
	def := &FieldDef{Shorthand: shorthand}
	for _, o := range opts {
		o(def)
	}
	return Channel{name, def}
}

func X(shorthand string, opts ...FieldOption) Channel {
	return newChannel("x", shorthand, opts)
}

func X2(shorthand string, opts ...FieldOption) Channel {
	return newChannel("x2", shorthand, opts)
}

func Y(shorthand string, opts ...FieldOption) Channel {
	return newChannel("y", shorthand, opts)
}

func Y2(shorthand string, opts ...FieldOption) Channel {
	return newChannel("y2", shorthand, opts)
}

// Color binds shorthand to the color channel.
func Color(shorthand string, opts ...FieldOption) Channel {
	return newChannel("color", shorthand, opts)
}

// Tooltip binds one tooltip field per shorthand.
func Tooltip(shorthands ...string) []Channel {
	chs := make([]Channel, len(shorthands))
	for i, s := range shorthands {
		chs[i] = newChannel("tooltip", s, nil)
	}
	return chs
}

// ColorDef binds an already-constructed field definition to the color
// channel.
func ColorDef(def *FieldDef) Channel {
	return Channel{"color", def}
}

func WithBin(b *Bin) FieldOption     { return func(d *FieldDef) { d.Bin = b } }
func WithScale(s *Scale) FieldOption { return func(d *FieldDef) { d.Scale = s } }
func WithType(t string) FieldOption  { return func(d *FieldDef) { d.Type = t } }
func WithTitle(t string) FieldOption { return func(d *FieldDef) { d.Title = t } }
func WithAxis(a *Axis) FieldOption   { return func(d *FieldDef) { d.Axis = a } }
func WithAggregate(op string) FieldOption {
	return func(d *FieldDef) { d.Aggregate = op }
}

// NoLegend suppresses the legend of a channel. It serializes as
// "legend": null.
func NoLegend() FieldOption { return func(d *FieldDef) { d.NoLegend = true } }

// FieldDef is the definition of one encoding channel.
type FieldDef struct {
	// Shorthand is the Altair-style field shorthand this
	// definition was built from, such as "pct_estimate",
	// "sum(x):Q" or "count()". It is not serialized; Field, Type
	// and Aggregate are derived from it.
	Shorthand string

	Field     string
	Type      string
	Aggregate string
	Bin       *Bin
	Scale     *Scale
	Axis      *Axis
	Legend    *Legend
	NoLegend  bool
	Title     string
	Stack     *bool
}

// FieldName returns the name of the data field d refers to, parsing
// the shorthand if d has not been resolved.
func (d *FieldDef) FieldName() string {
	if d.Field != "" {
		return d.Field
	}
	if s, err := ParseShorthand(d.Shorthand); err == nil {
		return s.Field
	}
	return d.Shorthand
}

// Clone returns a deep copy of d.
func (d *FieldDef) Clone() *FieldDef {
	if d == nil {
		return nil
	}
	n := *d
	n.Bin = d.Bin.Clone()
	n.Scale = d.Scale.Clone()
	if d.Axis != nil {
		a := *d.Axis
		n.Axis = &a
	}
	if d.Legend != nil {
		l := *d.Legend
		n.Legend = &l
	}
	if d.Stack != nil {
		s := *d.Stack
		n.Stack = &s
	}
	return &n
}

// resolve fills in Field, Type and Aggregate from the shorthand,
// inferring the type from data when the shorthand has none.
func (d *FieldDef) resolve(data *Data) error {
	if d.Shorthand == "" {
		return nil
	}
	s, err := ParseShorthand(d.Shorthand)
	if err != nil {
		return err
	}
	if d.Field == "" {
		d.Field = s.Field
	}
	if d.Aggregate == "" {
		d.Aggregate = s.Aggregate
	}
	if d.Type == "" {
		d.Type = s.Type
	}
	if d.Type == "" {
		switch {
		case s.Aggregate == "count":
			d.Type = Quantitative
		case d.Bin.Enabled():
			d.Type = Quantitative
		case data != nil && data.Table != nil:
			d.Type = inferType(data.Table, d.Field)
		default:
			return fmt.Errorf("cannot infer type of %q without data; use %q", d.Shorthand, d.Shorthand+":Q")
		}
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// inferType infers a Vega-Lite field type from the Go type of a table
// column: numbers are quantitative, times temporal, everything else
// nominal.
func inferType(t *table.Table, field string) string {
	col := t.Column(field)
	if col == nil {
		return Nominal
	}
	et := reflect.TypeOf(col).Elem()
	switch et.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Quantitative
	}
	if et == timeType {
		return Temporal
	}
	return Nominal
}

// Shorthand is a decoded Altair field shorthand.
type Shorthand struct {
	Field     string
	Aggregate string
	Type      string
}

var shorthandRe = regexp.MustCompile(`^(?:([A-Za-z]+)\((.*)\)|(.+?))(?::([QONTG]))?$`)

// ParseShorthand decodes an Altair shorthand: "field", "field:Q",
// "op(field)", "op(field):T" or "count()".
func ParseShorthand(s string) (Shorthand, error) {
	m := shorthandRe.FindStringSubmatch(s)
	if m == nil {
		return Shorthand{}, fmt.Errorf("bad shorthand %q", s)
	}
	sh := Shorthand{Aggregate: m[1], Field: m[2], Type: typeCodes[m[4]]}
	if sh.Aggregate == "" {
		sh.Field = m[3]
	}
	if sh.Aggregate != "" && sh.Aggregate != "count" && sh.Field == "" {
		return Shorthand{}, fmt.Errorf("bad shorthand %q: aggregate %s needs a field", s, sh.Aggregate)
	}
	return sh, nil
}

// Scale is a Vega-Lite scale definition.
type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Range  []string  `json:"range,omitempty"`
	Scheme string    `json:"scheme,omitempty"`
	Type   string    `json:"type,omitempty"`
	Zero   *bool     `json:"zero,omitempty"`
}

// Clone returns a deep copy of s.
func (s *Scale) Clone() *Scale {
	if s == nil {
		return nil
	}
	n := *s
	n.Domain = append([]float64(nil), s.Domain...)
	n.Range = append([]string(nil), s.Range...)
	if s.Zero != nil {
		z := *s.Zero
		n.Zero = &z
	}
	return &n
}

// Axis is a Vega-Lite axis definition.
type Axis struct {
	Labels *bool  `json:"labels,omitempty"`
	Orient string `json:"orient,omitempty"`
	Ticks  *bool  `json:"ticks,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Legend is a Vega-Lite legend definition.
type Legend struct {
	Orient string `json:"orient,omitempty"`
	Title  string `json:"title,omitempty"`
}
