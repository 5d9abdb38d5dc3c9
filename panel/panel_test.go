// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ways"
	"github.com/aclements/ways/vl"
	"github.com/google/go-cmp/cmp"
)

func testTable() *table.Table {
	return new(table.Builder).
		Add("state", []string{"Iowa", "Ohio", "Utah", "Maine"}).
		Add("pct", []float64{47.5, 40.2, 55.1, 60.4}).
		Done()
}

type recorder struct {
	charts []*vl.Chart
	errs   []error
	colors []*vl.FieldDef
}

func (r *recorder) factory() ways.ChartFunc {
	tab := testTable()
	return ways.Wrap(func(color *vl.FieldDef) (*vl.Chart, error) {
		r.colors = append(r.colors, color)
		return vl.NewChart(vl.NewData(tab)).MarkBar().
			Encode(vl.X("state"), vl.ColorDef(color)), nil
	})
}

func newTestPanel(t *testing.T) (*Panel, *recorder) {
	t.Helper()
	r := new(recorder)
	p, err := New(testTable(), "pct", r.factory())
	if err != nil {
		t.Fatal(err)
	}
	p.OnRender(func(c *vl.Chart, err error) {
		r.charts = append(r.charts, c)
		r.errs = append(r.errs, err)
	})
	return p, r
}

func disabled(p *Panel) map[string]bool {
	m := make(map[string]bool)
	for _, c := range p.Controls() {
		m[c.Name()] = c.Disabled()
	}
	return m
}

func TestNew(t *testing.T) {
	p, r := newTestPanel(t)
	if len(r.charts) != 0 {
		t.Errorf("New rendered %d times; want 0", len(r.charts))
	}
	want := ways.Selection{
		Column:  "pct",
		Binned:  true,
		Maxbins: 100,
		Extent:  [2]int{40, 61},
		Scale:   "linear",
		Method:  ways.MethodScheme,
		Scheme:  "blues",
		Colors:  [3]string{"red", "purple", "blue"},
	}
	if diff := cmp.Diff(want, p.Selection()); diff != "" {
		t.Errorf("initial selection (-want +got):\n%s", diff)
	}
	if lo, hi := p.Extent.Bounds(); lo != 40 || hi != 61 {
		t.Errorf("extent bounds = %d, %d; want 40, 61", lo, hi)
	}
	wantDisabled := map[string]bool{
		"bin": false, "maxbins": false, "extent": false, "scale": false,
		"method": true, "scheme": false,
		"color1": true, "color2": true, "color3": true,
	}
	if diff := cmp.Diff(wantDisabled, disabled(p)); diff != "" {
		t.Errorf("initial disabled states (-want +got):\n%s", diff)
	}

	if _, err := New(testTable(), "state", r.factory()); err == nil {
		t.Errorf("New on a string column succeeded; want error")
	}
	if _, err := New(testTable(), "nope", r.factory()); err == nil {
		t.Errorf("New on a missing column succeeded; want error")
	}
}

func TestTransitions(t *testing.T) {
	p, r := newTestPanel(t)

	apply := func(name, value string) {
		t.Helper()
		if err := p.Apply(name, value); err != nil {
			t.Fatalf("Apply(%s, %s): %v", name, value, err)
		}
	}

	apply("bin", Continuous)
	if len(r.charts) != 1 {
		t.Fatalf("%d renders after bin change; want 1", len(r.charts))
	}
	d := disabled(p)
	if !d["maxbins"] || !d["extent"] || d["method"] {
		t.Errorf("continuous disabled states: %v", d)
	}
	if c := r.colors[0]; c.Bin == nil || c.Bin.Enabled() {
		t.Errorf("continuous color bin = %+v; want false", c.Bin)
	}
	if r.charts[0].Panels() != 3 {
		t.Errorf("rendered chart has %d panels; want 3", r.charts[0].Panels())
	}

	apply("method", ways.MethodRange)
	d = disabled(p)
	if !d["scheme"] || d["color1"] || d["color2"] || d["color3"] {
		t.Errorf("range disabled states: %v", d)
	}
	if err := p.Apply("scheme", "reds"); err == nil {
		t.Errorf("Apply to disabled scheme succeeded; want error")
	}
	apply("color2", "#00ff00")
	last := r.colors[len(r.colors)-1]
	if diff := cmp.Diff([]string{"red", "#00ff00", "blue"}, last.Scale.Range); diff != "" {
		t.Errorf("range colors (-want +got):\n%s", diff)
	}

	n := len(r.charts)
	apply("bin", Binned)
	if len(r.charts) != n+1 {
		t.Errorf("binning rendered %d times; want 1", len(r.charts)-n)
	}
	if p.Method.Value() != ways.MethodScheme || !p.Method.Disabled() {
		t.Errorf("binning left method %s (disabled %v); want forced Scheme", p.Method.Value(), p.Method.Disabled())
	}
	if p.Scheme.Disabled() || !p.Colors[0].Disabled() {
		t.Errorf("binning did not switch to scheme controls")
	}
	last = r.colors[len(r.colors)-1]
	if last.Scale.Scheme != "blues" || last.Scale.Range != nil {
		t.Errorf("binned scale = %+v; want scheme blues", last.Scale)
	}
}

func TestExtentPopulatedOnce(t *testing.T) {
	p, _ := newTestPanel(t)
	if err := p.Apply("extent", "45..50"); err != nil {
		t.Fatal(err)
	}
	p.Apply("bin", Continuous)
	p.Apply("bin", Binned)
	if got := p.Extent.Value(); got != [2]int{45, 50} {
		t.Errorf("extent = %v after rebinning; want [45 50]", got)
	}
}

func TestExtentPopulatedOnFirstBinning(t *testing.T) {
	r := new(recorder)
	p, err := New(testTable(), "pct", r.factory())
	if err != nil {
		t.Fatal(err)
	}
	// The initial binned state already populated the extent.
	if got := p.Extent.Value(); got != [2]int{40, 61} {
		t.Errorf("extent = %v; want [40 61]", got)
	}

	empty := new(table.Builder).Add("pct", []float64{}).Done()
	p, err = New(empty, "pct", r.factory())
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Extent.Value(); got != [2]int{0, 100} {
		t.Errorf("extent with no data = %v; want default [0 100]", got)
	}
}

func TestSetExtentBeyondData(t *testing.T) {
	p, r := newTestPanel(t)
	if err := p.Set(Params{Extent: []int{0, 100}}); err != nil {
		t.Fatal(err)
	}
	if got := p.Selection().Extent; got != [2]int{0, 100} {
		t.Errorf("extent = %v; want [0 100]", got)
	}
	if lo, hi := p.Extent.Bounds(); lo != 0 || hi != 100 {
		t.Errorf("extent bounds = %d, %d; want 0, 100", lo, hi)
	}
	if len(r.colors) != 1 {
		t.Fatalf("Set built %d charts; want 1", len(r.colors))
	}
	if lo, hi, ok := r.colors[0].Bin.Extent(); !ok || lo != 0 || hi != 100 {
		t.Errorf("rendered bin extent = %v, %v, %v; want 0, 100, true", lo, hi, ok)
	}

	// Once widened, the bounds admit edits over the whole range.
	if err := p.Apply("extent", "10,90"); err != nil {
		t.Errorf("Apply(extent, 10,90): %v", err)
	}
}

func TestApplyExtentOutOfBounds(t *testing.T) {
	p, r := newTestPanel(t)
	for _, text := range []string{"0,100", "45,62", "39..50"} {
		if err := p.Apply("extent", text); err == nil {
			t.Errorf("Apply(extent, %s) succeeded; want error", text)
		}
	}
	if got := p.Extent.Value(); got != [2]int{40, 61} {
		t.Errorf("extent = %v after rejected edits; want [40 61]", got)
	}
	if len(r.charts) != 0 {
		t.Errorf("rejected edits rendered %d times", len(r.charts))
	}
}

func TestRenderOnChange(t *testing.T) {
	p, r := newTestPanel(t)
	for _, test := range []struct {
		name, value string
		renders     int
	}{
		{"scale", "linear", 0},
		{"scale", "log", 1},
		{"maxbins", "20", 1},
		{"maxbins", "500", 1},
		{"maxbins", "100", 0},
		{"extent", "50,45", 1},
		{"scheme", "viridis", 1},
	} {
		n := len(r.charts)
		if err := p.Apply(test.name, test.value); err != nil {
			t.Errorf("Apply(%s, %s): %v", test.name, test.value, err)
			continue
		}
		if got := len(r.charts) - n; got != test.renders {
			t.Errorf("Apply(%s, %s) rendered %d times; want %d", test.name, test.value, got, test.renders)
		}
	}
	if got := p.Extent.Value(); got != [2]int{45, 50} {
		t.Errorf("extent = %v; want [45 50]", got)
	}
	for _, test := range []struct{ name, value string }{
		{"nope", "1"},
		{"scale", "bogus"},
		{"maxbins", "many"},
		{"extent", "1"},
		{"bin", "maybe"},
	} {
		if err := p.Apply(test.name, test.value); err == nil {
			t.Errorf("Apply(%s, %s) succeeded; want error", test.name, test.value)
		}
	}
}

func TestFactoryError(t *testing.T) {
	boom := errors.New("boom")
	p, err := New(testTable(), "pct", func(*vl.FieldDef) (*vl.Chart, error) { return nil, boom })
	if err != nil {
		t.Fatal(err)
	}
	var got error
	p.OnRender(func(_ *vl.Chart, err error) { got = err })
	p.Render()
	if got != boom {
		t.Errorf("render error = %v; want boom", got)
	}
	if _, err := p.Chart(); err != boom {
		t.Errorf("Chart() error = %v; want boom", err)
	}
}

func TestSetParams(t *testing.T) {
	p, r := newTestPanel(t)
	off, maxbins, scale, method := false, 12, "sqrt", ways.MethodRange
	err := p.Set(Params{
		Binned:  &off,
		Maxbins: &maxbins,
		Scale:   &scale,
		Method:  &method,
		Colors:  []string{"white", "#000"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.charts) != 1 {
		t.Errorf("Set rendered %d times; want 1", len(r.charts))
	}
	sel := p.Selection()
	if sel.Binned || sel.Maxbins != 12 || sel.Scale != "sqrt" || sel.Method != ways.MethodRange {
		t.Errorf("selection after Set = %+v", sel)
	}
	if sel.Colors != [3]string{"white", "#000", "blue"} {
		t.Errorf("colors after Set = %v", sel.Colors)
	}

	// Invalid batches change nothing.
	on, bogus := true, "bogus"
	for _, ps := range []Params{
		{Binned: &on, Method: &method},
		{Scheme: &bogus},
		{Scale: &bogus},
		{Extent: []int{1}},
		{Colors: []string{"red", "nope"}},
	} {
		before := p.Params()
		n := len(r.charts)
		if err := p.Set(ps); err == nil {
			t.Errorf("Set(%+v) succeeded; want error", ps)
		}
		if diff := cmp.Diff(before, p.Params()); diff != "" {
			t.Errorf("failed Set changed params (-before +after):\n%s", diff)
		}
		if len(r.charts) != n {
			t.Errorf("failed Set rendered")
		}
	}

	// Binning while in Range mode without naming a method forces
	// Scheme.
	if err := p.Set(Params{Binned: &on}); err != nil {
		t.Fatal(err)
	}
	if p.Method.Value() != ways.MethodScheme {
		t.Errorf("method = %s; want Scheme", p.Method.Value())
	}
}

func TestControls(t *testing.T) {
	var log []Change
	s := NewIntRangeSlider("extent", "Extent", 0, 10, [2]int{8, 2})
	if s.Value() != [2]int{2, 8} {
		t.Errorf("initial value %v; want [2 8]", s.Value())
	}
	s.Observe(func(ch Change) { log = append(log, ch) })
	s.Observe(func(ch Change) { log = append(log, Change{Control: "second"}) })
	s.Set(12, -3)
	s.Set(0, 10)
	want := []Change{
		{Control: "extent", Old: [2]int{2, 8}, New: [2]int{0, 10}},
		{Control: "second"},
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}
	for _, text := range []string{"3,4", "3 4", "3..4"} {
		if err := s.Parse(text); err != nil || s.Value() != [2]int{3, 4} {
			t.Errorf("Parse(%q) = %v, value %v; want [3 4]", text, err, s.Value())
		}
		s.Set(0, 10)
	}
	s.SetBounds(5, 7)
	if s.Value() != [2]int{5, 7} {
		t.Errorf("after SetBounds value = %v; want [5 7]", s.Value())
	}
	s.Include(9, 3)
	if lo, hi := s.Bounds(); lo != 3 || hi != 9 {
		t.Errorf("after Include bounds = %d, %d; want 3, 9", lo, hi)
	}
	if s.Value() != [2]int{5, 7} {
		t.Errorf("Include changed value to %v", s.Value())
	}
	s.Include(4, 8)
	if lo, hi := s.Bounds(); lo != 3 || hi != 9 {
		t.Errorf("Include(4, 8) narrowed bounds to %d, %d", lo, hi)
	}

	cb := NewCheckbox("bin", "Bin", true)
	changes := 0
	cb.Observe(func(Change) { changes++ })
	cb.Set(true)
	if err := cb.Parse("false"); err != nil {
		t.Fatal(err)
	}
	if cb.Value() || changes != 1 {
		t.Errorf("checkbox = %v after %d changes; want false after 1", cb.Value(), changes)
	}
	if err := cb.Parse("perhaps"); err == nil {
		t.Errorf("Checkbox.Parse(perhaps) succeeded; want error")
	}

	cp := NewColorPicker("color1", "Range", "red")
	if err := cp.Set("#12"); err == nil {
		t.Errorf("ColorPicker.Set(#12) succeeded; want error")
	}
	if cp.Value() != "red" {
		t.Errorf("failed Set changed color to %s", cp.Value())
	}

	dd := NewDropdown("scheme", "Scheme", []string{"blues", "reds"}, "blues")
	var c Control = dd
	if err := c.Parse("greens"); err == nil {
		t.Errorf("Dropdown.Parse(greens) succeeded; want error")
	}
	if err := c.Parse("reds"); err != nil || c.String() != "reds" {
		t.Errorf("Dropdown.Parse(reds) = %v, value %s", err, c.String())
	}
}
