// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the YAML files that describe a chart to
// decorate: where its data comes from, how it is encoded and the
// initial settings of its parameter panel.
//
// A typical file:
//
//	data:
//	  path: presidential_poll_averages_2020.csv
//	  filter:
//	    - {column: candidate_name, value: Donald Trump}
//	  rename:
//	    - {from: state, to: NAME}
//	  join:
//	    path: gz_2010_us_040_00_500k.json
//	    on: NAME
//	mark: geoshape
//	projection: albersUsa
//	color:
//	  field: pct_estimate
//	  bin: {maxbins: 20, extent: [0, 100]}
//	  scale: {type: linear, scheme: blues}
//	metahist:
//	  density_width: 150
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways"
	"github.com/aclements/ways/dataset"
	"github.com/aclements/ways/panel"
	"github.com/aclements/ways/vl"
	"gopkg.in/yaml.v3"
)

// File is a chart configuration file.
type File struct {
	Data       Source   `yaml:"data"`
	Mark       string   `yaml:"mark"`
	X          string   `yaml:"x"`
	Y          string   `yaml:"y"`
	Tooltip    []string `yaml:"tooltip,flow"`
	Color      Color    `yaml:"color"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Title      string   `yaml:"title"`
	Projection string   `yaml:"projection"`

	MetaHist MetaHist `yaml:"metahist"`

	// Params are the initial settings of the parameter panel.
	Params panel.Params `yaml:"params"`

	// dir is the directory relative data paths are resolved in.
	dir string
}

// Source describes how to load and prepare a chart's data table.
// Filters apply first, then renames, then the join. Finally, if Keep
// is non-empty, the table is cut down to those columns in that order.
type Source struct {
	Path string `yaml:"path"`
	// Format is csv, geojson or xlsx. If empty, it is inferred
	// from Path's extension.
	Format string `yaml:"format"`
	// Sheet selects an xlsx worksheet. The default is the first.
	Sheet string `yaml:"sheet"`

	Filter []Filter `yaml:"filter"`
	Rename []Rename `yaml:"rename"`
	Join   *Join    `yaml:"join"`
	Keep   []string `yaml:"keep,flow"`
}

// Filter keeps the rows whose Column equals Value. Value is converted
// to the column's type.
type Filter struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Join joins another table onto the prepared table. The other table
// is the left side of the join, so a GeoJSON table joined onto poll
// rows keeps its geometry column first.
type Join struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Sheet  string `yaml:"sheet"`
	// On is the key column of the other table. With is the key
	// column of the prepared table; it defaults to On.
	On   string `yaml:"on"`
	With string `yaml:"with"`
}

// Color is the color encoding of the chart.
type Color struct {
	// Field is a field shorthand, such as "pct_estimate" or
	// "pct_estimate:Q".
	Field string `yaml:"field"`
	// Bin is the bin definition. If it is absent, the chart cannot
	// be decorated.
	Bin   *Bin   `yaml:"bin"`
	Scale *Scale `yaml:"scale"`
	// Legend shows the color legend, which is hidden by default.
	Legend bool `yaml:"legend"`
}

// Bin is a bin definition: either a boolean or a parameter mapping.
type Bin struct {
	Def *vl.Bin
}

type binParams struct {
	Maxbins int       `yaml:"maxbins"`
	Extent  []float64 `yaml:"extent,flow"`
	Step    float64   `yaml:"step"`
	Nice    *bool     `yaml:"nice"`
}

func (b *Bin) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("line %d: bin must be a boolean or a mapping", n.Line)
		}
		b.Def = &vl.Bin{On: on}
	case yaml.MappingNode:
		var p binParams
		if err := n.Decode(&p); err != nil {
			return err
		}
		b.Def = &vl.Bin{Params: &vl.BinParams{
			Maxbins: p.Maxbins,
			Extent:  p.Extent,
			Step:    p.Step,
			Nice:    p.Nice,
		}}
	default:
		return fmt.Errorf("line %d: bin must be a boolean or a mapping", n.Line)
	}
	return nil
}

type Scale struct {
	Type   string    `yaml:"type"`
	Scheme string    `yaml:"scheme"`
	Range  []string  `yaml:"range,flow"`
	Domain []float64 `yaml:"domain,flow"`
}

// MetaHist holds the meta-histogram options. Zero values leave the
// defaults.
type MetaHist struct {
	ColorsUsed   *bool `yaml:"colors_used"`
	DensityWidth int   `yaml:"density_width"`
	StripWidth   int   `yaml:"strip_width"`
	Spacing      *int  `yaml:"spacing"`
}

// Options returns m as ways.MetaHist options.
func (m MetaHist) Options() []ways.Option {
	var opts []ways.Option
	if m.ColorsUsed != nil && !*m.ColorsUsed {
		opts = append(opts, ways.WithoutColorsUsed())
	}
	if m.DensityWidth != 0 {
		opts = append(opts, ways.DensityWidth(m.DensityWidth))
	}
	if m.StripWidth != 0 {
		opts = append(opts, ways.StripWidth(m.StripWidth))
	}
	if m.Spacing != nil {
		opts = append(opts, ways.Spacing(*m.Spacing))
	}
	return opts
}

// Load reads the configuration file at path. Relative data paths in
// the file are relative to the file's directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse reads a configuration from r. Unknown keys are errors.
// Relative data paths are relative to the current directory.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := new(File)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty configuration")
		}
		return nil, err
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) check() error {
	if f.Data.Path == "" {
		return fmt.Errorf("data: no path")
	}
	if f.Data.Join != nil && f.Data.Join.On == "" {
		return fmt.Errorf("data: join: no key column")
	}
	if f.Color.Field == "" {
		return fmt.Errorf("color: no field")
	}
	if _, err := vl.ParseShorthand(f.Color.Field); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if f.Color.Bin != nil {
		if err := f.Color.Bin.Def.Validate(); err != nil {
			return fmt.Errorf("color: %w", err)
		}
	}
	if err := f.Params.Check(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

// ColorColumn returns the name of the data column the chart is
// colored by.
func (f *File) ColorColumn() string {
	s, err := vl.ParseShorthand(f.Color.Field)
	if err != nil {
		return f.Color.Field
	}
	return s.Field
}

// ColorDef returns the configured color encoding.
func (f *File) ColorDef() *vl.FieldDef {
	c := f.Color
	def := &vl.FieldDef{Shorthand: c.Field, NoLegend: !c.Legend}
	if c.Bin != nil {
		def.Bin = c.Bin.Def.Clone()
	}
	if s := c.Scale; s != nil {
		def.Scale = &vl.Scale{
			Type:   s.Type,
			Scheme: s.Scheme,
			Range:  append([]string(nil), s.Range...),
			Domain: append([]float64(nil), s.Domain...),
		}
	}
	return def
}

// Table loads and prepares the chart's data.
func (f *File) Table() (*table.Table, error) {
	src := f.Data
	t, err := f.read(src.Path, src.Format, src.Sheet)
	if err != nil {
		return nil, err
	}
	for _, flt := range src.Filter {
		val, err := columnValue(t, flt.Column, flt.Value)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		if t, err = dataset.FilterEq(t, flt.Column, val); err != nil {
			return nil, err
		}
	}
	for _, rn := range src.Rename {
		if t, err = dataset.Rename(t, rn.From, rn.To); err != nil {
			return nil, err
		}
	}
	if j := src.Join; j != nil {
		other, err := f.read(j.Path, j.Format, j.Sheet)
		if err != nil {
			return nil, err
		}
		with := j.With
		if with == "" {
			with = j.On
		}
		if t, err = dataset.Join(other, j.On, t, with); err != nil {
			return nil, err
		}
	}
	if len(src.Keep) > 0 {
		if t, err = dataset.Keep(t, src.Keep...); err != nil {
			return nil, fmt.Errorf("keep: %w", err)
		}
	}
	return t, nil
}

func (f *File) read(path, format, sheet string) (*table.Table, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.dir, path)
	}
	if format == "" {
		format = formatOf(path)
	}
	if format == "xlsx" {
		return dataset.ReadXLSX(path, sheet)
	}

	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var t *table.Table
	switch format {
	case "csv":
		t, err = dataset.ReadCSV(r)
	case "geojson":
		t, err = dataset.ReadGeoJSON(r)
	default:
		return nil, fmt.Errorf("%s: unknown data format %q", path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".json", ".geojson":
		return "geojson"
	case ".xlsx":
		return "xlsx"
	}
	return ""
}

// columnValue converts s to the element type of column col of t.
func columnValue(t *table.Table, col, s string) (interface{}, error) {
	switch c := t.Column(col).(type) {
	case nil:
		return nil, fmt.Errorf("no column %q", col)
	case []string:
		return s, nil
	case []int:
		return strconv.Atoi(s)
	case []float64:
		return strconv.ParseFloat(s, 64)
	default:
		return nil, fmt.Errorf("cannot filter column %q of type %T", col, c)
	}
}

// Factory returns a chart factory over t that builds the configured
// chart with the color encoding it is given.
func (f *File) Factory(t *table.Table) ways.ChartFunc {
	return func(color *vl.FieldDef) (*vl.Chart, error) {
		mark := f.Mark
		if mark == "" {
			mark = "point"
		}
		c := vl.NewChart(vl.NewData(t)).SetMark(mark)
		var chans []vl.Channel
		if f.X != "" {
			chans = append(chans, vl.X(f.X))
		}
		if f.Y != "" {
			chans = append(chans, vl.Y(f.Y))
		}
		if color != nil {
			chans = append(chans, vl.ColorDef(color))
		}
		chans = append(chans, vl.Tooltip(f.Tooltip...)...)
		c.Encode(chans...)
		if f.Width != 0 || f.Height != 0 {
			c.Size(f.Width, f.Height)
		}
		if f.Title != "" {
			c.SetTitle(f.Title)
		}
		if f.Projection != "" {
			c.Project(f.Projection)
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Chart loads the data and builds the configured chart, undecorated.
func (f *File) Chart() (*vl.Chart, error) {
	t, err := f.Table()
	if err != nil {
		return nil, err
	}
	return f.Factory(t)(f.ColorDef())
}
