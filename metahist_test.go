// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ways

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways/binning"
	"github.com/aclements/ways/vl"
	"github.com/google/go-cmp/cmp"
)

func testData() *vl.Data {
	tab := new(table.Builder).
		Add("state", []string{"Iowa", "Ohio", "Utah", "Maine", "Texas", "Idaho"}).
		Add("lon", []float64{-93.5, -82.8, -111.7, -69.2, -99.3, -114.6}).
		Add("lat", []float64{42, 40.3, 39.3, 45.4, 31.5, 44.4}).
		Add("pct", []float64{47.5, 48.3, 55.1, 40.2, 49.9, 60.4}).
		Done()
	return vl.NewData(tab)
}

func testChart(bin *vl.Bin) *vl.Chart {
	return vl.NewChart(testData()).
		MarkCircle().
		Encode(vl.X("lon"), vl.Y("lat"), vl.Color("pct", vl.WithBin(bin))).
		SetTitle("Polls")
}

func TestMetaHistPanels(t *testing.T) {
	for _, test := range []struct {
		opts []Option
		want int
	}{
		{nil, 3},
		{[]Option{WithoutColorsUsed()}, 2},
	} {
		c, err := MetaHist(testChart(vl.NewBin(20)), test.opts...)
		if err != nil {
			t.Fatalf("MetaHist: %v", err)
		}
		if got := c.Panels(); got != test.want {
			t.Errorf("MetaHist(%d opts) has %d panels; want %d", len(test.opts), got, test.want)
		}
	}
}

func TestMetaHistLayout(t *testing.T) {
	c, err := MetaHist(testChart(vl.NewBin(20)).Size(300, 200))
	if err != nil {
		t.Fatal(err)
	}
	density, strip, orig := c.HConcat[0], c.HConcat[1], c.HConcat[2]

	if density.Mark.Type != "bar" || density.Width != 150 || density.Height != 200 {
		t.Errorf("density panel is %s %dx%d; want bar 150x200", density.Mark.Type, density.Width, density.Height)
	}
	wantTransform := []*vl.Transform{
		{JoinAggregate: []vl.AggregateOp{{Op: "count", As: "__count"}}},
		{Calculate: "1/datum.__count", As: "__proportion"},
	}
	if diff := cmp.Diff(wantTransform, density.Transform); diff != "" {
		t.Errorf("density transforms (-want +got):\n%s", diff)
	}
	if x := density.Encoding.X; x.Field != "__proportion" || x.Aggregate != "sum" || x.Title != "proportion" {
		t.Errorf("density x = %+v; want sum(__proportion) titled proportion", x)
	}
	if y := density.Encoding.Y; y.Field != "pct" || y.Bin.Maxbins() != 20 {
		t.Errorf("density y = %+v; want pct binned with maxbins 20", y)
	}
	if !density.Encoding.Color.NoLegend {
		t.Errorf("density color has a legend")
	}

	if strip.Mark.Type != "rect" || strip.Width != 20 || strip.Title != "colors used" {
		t.Errorf("strip panel is %s %dpx %q; want rect 20px \"colors used\"", strip.Mark.Type, strip.Width, strip.Title)
	}
	if strip.Encoding.X != nil {
		t.Errorf("strip has an x encoding")
	}
	if orig.Title != "Polls" || orig.Mark.Type != "circle" {
		t.Errorf("last panel is not the source chart")
	}

	if *c.Spacing != 10 || *c.Config.View.StrokeWidth != 0 {
		t.Errorf("spacing %d, stroke width %v; want 10, 0", *c.Spacing, *c.Config.View.StrokeWidth)
	}

	c, err = MetaHist(testChart(vl.NewBin(20)), DensityWidth(90), StripWidth(30), Spacing(4))
	if err != nil {
		t.Fatal(err)
	}
	if c.HConcat[0].Width != 90 || c.HConcat[1].Width != 30 || *c.Spacing != 4 {
		t.Errorf("options not applied: widths %d, %d, spacing %d", c.HConcat[0].Width, c.HConcat[1].Width, *c.Spacing)
	}
	if c.HConcat[0].Height != vl.DefaultHeight {
		t.Errorf("density height = %d; want default %d", c.HConcat[0].Height, vl.DefaultHeight)
	}
}

func TestMetaHistJSON(t *testing.T) {
	c, err := MetaHist(testChart(vl.NewBin(20, 0, 100)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Config struct {
			View struct {
				StrokeWidth *float64 `json:"strokeWidth"`
			} `json:"view"`
		} `json:"config"`
		Datasets map[string]json.RawMessage `json:"datasets"`
		HConcat  []struct {
			Data struct {
				Name string `json:"name"`
			} `json:"data"`
			Encoding map[string]json.RawMessage `json:"encoding"`
			Mark     string                     `json:"mark"`
		} `json:"hconcat"`
		Spacing int `json:"spacing"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Datasets) != 1 {
		t.Errorf("%d datasets; want 1 shared by all panels", len(doc.Datasets))
	}
	var marks []string
	for _, p := range doc.HConcat {
		marks = append(marks, p.Mark)
		if _, ok := doc.Datasets[p.Data.Name]; !ok {
			t.Errorf("panel %s refers to unknown dataset %q", p.Mark, p.Data.Name)
		}
	}
	if diff := cmp.Diff([]string{"bar", "rect", "circle"}, marks); diff != "" {
		t.Errorf("marks (-want +got):\n%s", diff)
	}
	if w := doc.Config.View.StrokeWidth; w == nil || *w != 0 {
		t.Errorf("config.view.strokeWidth = %v; want 0", w)
	}
	if doc.Spacing != 10 {
		t.Errorf("spacing = %d; want 10", doc.Spacing)
	}
	var color map[string]json.RawMessage
	if err := json.Unmarshal(doc.HConcat[0].Encoding["color"], &color); err != nil {
		t.Fatal(err)
	}
	if got := string(color["legend"]); got != "null" {
		t.Errorf("density color legend = %s; want null", got)
	}
	var y struct {
		Bin   vl.BinParams `json:"bin"`
		Scale vl.Scale     `json:"scale"`
	}
	if err := json.Unmarshal(doc.HConcat[1].Encoding["y"], &y); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 100}, y.Scale.Domain); diff != "" {
		t.Errorf("colors used y domain (-want +got):\n%s", diff)
	}
	if y.Bin.Maxbins != 20 {
		t.Errorf("colors used y maxbins = %d; want 20", y.Bin.Maxbins)
	}
}

func TestMetaHistBinUndefined(t *testing.T) {
	const msg = "Can only apply decorator to chart with color.bin defined."
	noBin := vl.NewChart(testData()).MarkCircle().Encode(vl.X("lon"), vl.Y("lat"), vl.Color("pct"))
	noColor := vl.NewChart(testData()).MarkCircle().Encode(vl.X("lon"), vl.Y("lat"))
	for _, c := range []*vl.Chart{noBin, noColor, nil} {
		_, err := MetaHist(c)
		if !errors.Is(err, ErrBinUndefined) {
			t.Errorf("MetaHist = %v; want ErrBinUndefined", err)
			continue
		}
		if err.Error() != msg {
			t.Errorf("error message %q; want %q", err.Error(), msg)
		}
	}
}

func TestMetaHistBinFalse(t *testing.T) {
	c, err := MetaHist(testChart(vl.BinOff()))
	if err != nil {
		t.Fatalf("MetaHist with bin false: %v", err)
	}
	if c.Panels() != 3 {
		t.Errorf("%d panels; want 3", c.Panels())
	}
	if _, err := c.JSON(); err != nil {
		t.Errorf("JSON: %v", err)
	}
}

func TestMetaHistInvalidBin(t *testing.T) {
	if _, err := MetaHist(testChart(vl.NewBin(1))); err == nil {
		t.Errorf("MetaHist with maxbins 1 succeeded; want error")
	}
	if _, err := MetaHist(testChart(vl.NewBin(10, 50, 50))); err == nil {
		t.Errorf("MetaHist with empty extent succeeded; want error")
	}
}

func TestMetaHistDeterministic(t *testing.T) {
	var prev []byte
	for i := 0; i < 3; i++ {
		c, err := MetaHist(testChart(vl.NewBin(20, 0, 100)))
		if err != nil {
			t.Fatal(err)
		}
		b, err := c.JSON()
		if err != nil {
			t.Fatal(err)
		}
		if prev != nil && !bytes.Equal(prev, b) {
			t.Fatalf("decoration %d serialized differently:\n%s", i, cmp.Diff(string(prev), string(b)))
		}
		prev = b
	}
}

func TestMetaHistDoesNotModifySource(t *testing.T) {
	src := testChart(vl.NewBin(20, 0, 100))
	before, err := src.JSON()
	if err != nil {
		t.Fatal(err)
	}
	c, err := MetaHist(src)
	if err != nil {
		t.Fatal(err)
	}
	// Changing the result must not reach back into src.
	c.HConcat[2].Encoding.Color.Bin.Params.Maxbins = 3
	c.HConcat[0].Encoding.Color.Scale = &vl.Scale{Scheme: "reds"}
	after, err := src.JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("source chart changed:\n%s", cmp.Diff(string(before), string(after)))
	}
	if src.Config != nil {
		t.Errorf("source chart gained a config")
	}
}

func TestMetaHistAlignment(t *testing.T) {
	for _, test := range []struct {
		name string
		bin  *vl.Bin
	}{
		{"maxbins 20", vl.NewBin(20, 0, 100)},
		{"extent only", &vl.Bin{Params: &vl.BinParams{Extent: []float64{0, 100}}}},
		{"true", vl.BinOn()},
	} {
		src := testChart(test.bin)
		want, err := BinBoundaries(src)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		c, err := MetaHist(src)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		for i, p := range c.HConcat[:2] {
			// A renderer bins y with the position channel default.
			got, err := FieldBins(p.Data, p.Encoding.Y, binning.DefaultMaxbins)
			if err != nil {
				t.Fatalf("%s: panel %d: %v", test.name, i, err)
			}
			if got != want {
				t.Errorf("%s: panel %d bins = %v; want %v", test.name, i, got, want)
			}
			if lo, hi, ok := test.bin.Extent(); ok {
				if diff := cmp.Diff([]float64{lo, hi}, p.Encoding.Y.Scale.Domain); diff != "" {
					t.Errorf("%s: panel %d y domain (-want +got):\n%s", test.name, i, diff)
				}
			}
		}
	}

	want, err := BinBoundaries(testChart(vl.NewBin(20, 0, 100)))
	if err != nil {
		t.Fatal(err)
	}
	if want != (binning.Bins{Start: 0, Stop: 100, Step: 5}) {
		t.Errorf("BinBoundaries = %v; want [0, 100) by 5", want)
	}
}

func TestMetaHistKeepsColorBin(t *testing.T) {
	src := testChart(vl.BinOn())
	c, err := MetaHist(src)
	if err != nil {
		t.Fatal(err)
	}
	if b := src.Encoding.Color.Bin; b.Params != nil || !b.On {
		t.Errorf("source color bin changed to %+v", b)
	}
	if b := c.HConcat[0].Encoding.Color.Bin; b.Params != nil || !b.On {
		t.Errorf("density color bin = %+v; want true", b)
	}
	if got := c.HConcat[0].Encoding.Y.Bin.Maxbins(); got != binning.ColorMaxbins {
		t.Errorf("density y maxbins = %d; want %d", got, binning.ColorMaxbins)
	}
}

func TestMetaHistMaxbins(t *testing.T) {
	for _, maxbins := range []int{2, 6, 20, 37, 100} {
		src := testChart(vl.NewBin(maxbins))
		h, err := Summary(src)
		if err != nil {
			t.Fatalf("Summary(maxbins %d): %v", maxbins, err)
		}
		if n := len(h.Counts); n > maxbins {
			t.Errorf("maxbins %d: %d bins", maxbins, n)
		}
		if h.Total() != 6 || h.Under+h.Over+h.Missing != 0 {
			t.Errorf("maxbins %d: histogram %+v does not hold all 6 rows in bins", maxbins, h)
		}
	}
}

func TestBinBoundariesErrors(t *testing.T) {
	if _, err := BinBoundaries(testChart(vl.BinOff())); err == nil {
		t.Errorf("BinBoundaries of a continuous encoding succeeded; want error")
	}
	url := vl.NewChart(vl.DataURL("polls.csv", "csv")).MarkCircle().
		Encode(vl.Color("pct:Q", vl.WithBin(vl.NewBin(10))))
	if _, err := BinBoundaries(url); err == nil {
		t.Errorf("BinBoundaries without inline data or extent succeeded; want error")
	}
	url.Encoding.Color.Bin.SetExtent(0, 100)
	if _, err := BinBoundaries(url); err != nil {
		t.Errorf("BinBoundaries with explicit extent: %v", err)
	}
}

func TestWrap(t *testing.T) {
	calls := 0
	f := Wrap(func(color *vl.FieldDef) (*vl.Chart, error) {
		calls++
		return vl.NewChart(testData()).MarkCircle().
			Encode(vl.X("lon"), vl.Y("lat"), vl.ColorDef(color)), nil
	})
	c, err := f(ColorEncoding(Selection{
		Column:  "pct",
		Binned:  true,
		Maxbins: 20,
		Extent:  [2]int{40, 61},
		Scale:   "linear",
		Method:  MethodScheme,
		Scheme:  "reds",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 || c.Panels() != 3 {
		t.Errorf("calls = %d, panels = %d; want 1, 3", calls, c.Panels())
	}

	// A factory that fails passes its error through.
	boom := errors.New("boom")
	g := WrapFunc(func(string) (*vl.Chart, error) { return nil, boom }, WithoutColorsUsed())
	if _, err := g("x"); err != boom {
		t.Errorf("wrapped factory error = %v; want boom", err)
	}

	// A factory without a binned color fails decoration.
	h := WrapFunc(func(col string) (*vl.Chart, error) {
		return vl.NewChart(testData()).MarkCircle().Encode(vl.Color(col)), nil
	})
	if _, err := h("pct"); err != ErrBinUndefined {
		t.Errorf("wrapped factory error = %v; want ErrBinUndefined", err)
	}
}

func TestColorEncoding(t *testing.T) {
	sel := Selection{
		Column:  "pct",
		Binned:  true,
		Maxbins: 20,
		Extent:  [2]int{40, 61},
		Scale:   "log",
		Method:  MethodScheme,
		Scheme:  "viridis",
		Colors:  [3]string{"red", "purple", "blue"},
	}
	def := ColorEncoding(sel)
	if def.Bin.Maxbins() != 20 {
		t.Errorf("maxbins = %d; want 20", def.Bin.Maxbins())
	}
	if lo, hi, ok := def.Bin.Extent(); !ok || lo != 40 || hi != 61 {
		t.Errorf("extent = %v, %v, %v; want 40, 61, true", lo, hi, ok)
	}
	if diff := cmp.Diff(&vl.Scale{Type: "log", Scheme: "viridis"}, def.Scale); diff != "" {
		t.Errorf("scheme scale (-want +got):\n%s", diff)
	}
	if !def.NoLegend || def.Type != vl.Quantitative {
		t.Errorf("def = %+v; want quantitative without legend", def)
	}

	sel.Binned = false
	sel.Method = MethodRange
	def = ColorEncoding(sel)
	if def.Bin == nil || def.Bin.Enabled() {
		t.Errorf("continuous selection bin = %+v; want false", def.Bin)
	}
	want := &vl.Scale{Type: "log", Range: []string{"red", "purple", "blue"}}
	if diff := cmp.Diff(want, def.Scale); diff != "" {
		t.Errorf("range scale (-want +got):\n%s", diff)
	}
	b, err := json.Marshal(def)
	if err != nil {
		t.Fatal(err)
	}
	const wantJSON = `{"bin":false,"field":"pct","legend":null,"scale":{"range":["red","purple","blue"],"type":"log"},"type":"quantitative"}`
	if string(b) != wantJSON {
		t.Errorf("JSON = %s; want %s", b, wantJSON)
	}
}
