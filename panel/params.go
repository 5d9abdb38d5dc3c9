// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"

	"github.com/aclements/ways"
	"github.com/aclements/ways/colorscale"
)

// Params is a batch of control settings. Nil fields leave their
// control unchanged.
type Params struct {
	Binned  *bool    `yaml:"binned"`
	Maxbins *int     `yaml:"maxbins"`
	Extent  []int    `yaml:"extent,flow"`
	Scale   *string  `yaml:"scale"`
	Method  *string  `yaml:"method"`
	Scheme  *string  `yaml:"scheme"`
	Colors  []string `yaml:"colors,flow"`
}

// Check reports whether ps could be applied to a panel.
func (ps *Params) Check() error {
	if ps.Extent != nil && len(ps.Extent) != 2 {
		return fmt.Errorf("extent %v is not a [min, max] pair", ps.Extent)
	}
	if ps.Scale != nil && !colorscale.IsScaleType(*ps.Scale) {
		return fmt.Errorf("unknown scale type %q", *ps.Scale)
	}
	if ps.Method != nil && *ps.Method != ways.MethodScheme && *ps.Method != ways.MethodRange {
		return fmt.Errorf("unknown color method %q", *ps.Method)
	}
	if ps.Binned != nil && *ps.Binned && ps.Method != nil && *ps.Method == ways.MethodRange {
		return fmt.Errorf("a binned color scale cannot use a color range")
	}
	if ps.Scheme != nil && !colorscale.IsScheme(*ps.Scheme) {
		return fmt.Errorf("unknown color scheme %q", *ps.Scheme)
	}
	if len(ps.Colors) > 3 {
		return fmt.Errorf("%d colors; at most 3 allowed", len(ps.Colors))
	}
	for _, c := range ps.Colors {
		if _, err := colorscale.ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Set applies ps to p's controls and renders once. It applies nothing
// if any setting is invalid. The bin setting is applied first, so its
// transitions happen before the other settings apply; a Range method
// on a panel that is binned after the bin setting is an error. An
// extent beyond the extent control's bounds widens them.
func (p *Panel) Set(ps Params) error {
	if err := ps.Check(); err != nil {
		return err
	}
	binned := p.Bin.Value() == Binned
	if ps.Binned != nil {
		binned = *ps.Binned
	}
	if binned && ps.Method != nil && *ps.Method == ways.MethodRange {
		return fmt.Errorf("a binned color scale cannot use a color range")
	}

	var err error
	p.batch(func() {
		if ps.Binned != nil {
			v := Continuous
			if *ps.Binned {
				v = Binned
			}
			if err = p.Bin.Set(v); err != nil {
				return
			}
		}
		if ps.Maxbins != nil {
			p.Maxbins.Set(*ps.Maxbins)
		}
		if ps.Extent != nil {
			p.Extent.Include(ps.Extent[0], ps.Extent[1])
			p.Extent.Set(ps.Extent[0], ps.Extent[1])
		}
		if ps.Scale != nil {
			if err = p.Scale.Set(*ps.Scale); err != nil {
				return
			}
		}
		if ps.Method != nil {
			if err = p.Method.Set(*ps.Method); err != nil {
				return
			}
		}
		if ps.Scheme != nil {
			if err = p.Scheme.Set(*ps.Scheme); err != nil {
				return
			}
		}
		for i, c := range ps.Colors {
			if err = p.Colors[i].Set(c); err != nil {
				return
			}
		}
	})
	return err
}

// Params returns the current settings of p.
func (p *Panel) Params() Params {
	sel := p.Selection()
	ps := Params{
		Binned:  &sel.Binned,
		Maxbins: &sel.Maxbins,
		Extent:  []int{sel.Extent[0], sel.Extent[1]},
		Scale:   &sel.Scale,
		Method:  &sel.Method,
		Scheme:  &sel.Scheme,
		Colors:  append([]string(nil), sel.Colors[:]...),
	}
	return ps
}
