// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vl

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Bin is a Vega-Lite bin definition. It has three defined forms: the
// booleans false and true, and a parameter object. A nil *Bin means
// the channel has no bin definition at all, which is distinct from
// false.
type Bin struct {
	// Params, if non-nil, holds explicit bin parameters and On is
	// ignored.
	Params *BinParams

	// On is the value of a boolean bin definition.
	On bool
}

// BinParams are explicit bin parameters.
type BinParams struct {
	// Binned indicates the data is already binned.
	Binned bool `json:"binned,omitempty"`

	// Extent, if non-empty, is the [min, max] range to bin over
	// instead of the data's extent.
	Extent []float64 `json:"extent,omitempty"`

	// Maxbins is the maximum number of bins. If zero, Vega-Lite's
	// per-channel default applies.
	Maxbins int `json:"maxbins,omitempty"`

	Nice *bool `json:"nice,omitempty"`

	// Step, if non-zero, is the exact bin width.
	Step float64 `json:"step,omitempty"`
}

// BinOff returns the bin definition false: the channel is explicitly
// continuous.
func BinOff() *Bin { return &Bin{} }

// BinOn returns the bin definition true: bin with default parameters.
func BinOn() *Bin { return &Bin{On: true} }

// NewBin returns a bin definition with at most maxbins bins. If extent
// is given it must be a [min, max] pair.
func NewBin(maxbins int, extent ...float64) *Bin {
	p := &BinParams{Maxbins: maxbins}
	if len(extent) > 0 {
		p.Extent = append([]float64(nil), extent...)
	}
	return &Bin{Params: p}
}

// Enabled reports whether b requests binning. It is false for both an
// undefined (nil) bin and the bin definition false.
func (b *Bin) Enabled() bool {
	return b != nil && (b.Params != nil || b.On)
}

// Extent returns b's explicit extent, if it has one.
func (b *Bin) Extent() (lo, hi float64, ok bool) {
	if b == nil || b.Params == nil || len(b.Params.Extent) != 2 {
		return 0, 0, false
	}
	return b.Params.Extent[0], b.Params.Extent[1], true
}

// Maxbins returns b's maxbins parameter, or 0 if it has none.
func (b *Bin) Maxbins() int {
	if b == nil || b.Params == nil {
		return 0
	}
	return b.Params.Maxbins
}

// SetExtent sets b's extent, converting a boolean bin definition to
// a parameter object.
func (b *Bin) SetExtent(lo, hi float64) {
	if b.Params == nil {
		b.Params = &BinParams{}
	}
	b.Params.Extent = []float64{lo, hi}
}

var errNilBin = errors.New("bin undefined")

// Validate checks b's parameters: maxbins, if given, must be at least
// 2, and an extent must be an increasing pair.
func (b *Bin) Validate() error {
	if b == nil {
		return errNilBin
	}
	if b.Params == nil {
		return nil
	}
	if m := b.Params.Maxbins; m != 0 && m < 2 {
		return fmt.Errorf("bin maxbins %d < 2", m)
	}
	if b.Params.Step < 0 {
		return fmt.Errorf("bin step %g < 0", b.Params.Step)
	}
	if e := b.Params.Extent; len(e) != 0 {
		if len(e) != 2 {
			return fmt.Errorf("bin extent %v is not a [min, max] pair", e)
		}
		if !(e[0] < e[1]) {
			return fmt.Errorf("bin extent [%g, %g] is not increasing", e[0], e[1])
		}
	}
	return nil
}

// Clone returns a deep copy of b.
func (b *Bin) Clone() *Bin {
	if b == nil {
		return nil
	}
	n := *b
	if b.Params != nil {
		p := *b.Params
		p.Extent = append([]float64(nil), b.Params.Extent...)
		if b.Params.Nice != nil {
			v := *b.Params.Nice
			p.Nice = &v
		}
		n.Params = &p
	}
	return &n
}

func (b *Bin) MarshalJSON() ([]byte, error) {
	if b.Params != nil {
		return json.Marshal(b.Params)
	}
	return json.Marshal(b.On)
}

func (b *Bin) UnmarshalJSON(data []byte) error {
	var on bool
	if err := json.Unmarshal(data, &on); err == nil {
		*b = Bin{On: on}
		return nil
	}
	var p BinParams
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("bin must be a boolean or an object: %w", err)
	}
	*b = Bin{Params: &p}
	return nil
}
