// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ways

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/ways/binning"
	"github.com/aclements/ways/dataset"
	"github.com/aclements/ways/vl"
)

// errNotBinned is returned when bin boundaries are requested for a
// continuous color encoding.
var errNotBinned = errors.New("color encoding is not binned")

// BinBoundaries returns the bins src's color encoding divides its
// field into, computed the way Vega computes them. src must carry its
// data inline.
func BinBoundaries(src *vl.Chart) (binning.Bins, error) {
	if src == nil || src.Encoding == nil || src.Encoding.Color == nil || src.Encoding.Color.Bin == nil {
		return binning.Bins{}, ErrBinUndefined
	}
	return FieldBins(src.Data, src.Encoding.Color, binning.ColorMaxbins)
}

// FieldBins returns the bins def divides its field of data into.
// defaultMaxbins applies when def's bin gives no maxbins; Vega-Lite
// uses binning.ColorMaxbins for color and binning.DefaultMaxbins for
// position channels.
func FieldBins(data *vl.Data, def *vl.FieldDef, defaultMaxbins int) (binning.Bins, error) {
	b := def.Bin
	if !b.Enabled() {
		return binning.Bins{}, errNotBinned
	}
	if err := b.Validate(); err != nil {
		return binning.Bins{}, err
	}
	o := binning.Options{Maxbins: defaultMaxbins}
	if p := b.Params; p != nil {
		if p.Maxbins != 0 {
			o.Maxbins = p.Maxbins
		}
		o.Step = p.Step
		o.NoNice = p.Nice != nil && !*p.Nice
	}
	lo, hi, ok := b.Extent()
	if !ok {
		xs, err := fieldValues(data, def)
		if err != nil {
			return binning.Bins{}, err
		}
		lo, hi = dataset.Bounds(xs)
		if math.IsNaN(lo) {
			return binning.Bins{}, fmt.Errorf("field %q has no values to bin", def.FieldName())
		}
	}
	return binning.Compute(lo, hi, o)
}

func fieldValues(data *vl.Data, def *vl.FieldDef) ([]float64, error) {
	if data == nil || data.Table == nil {
		return nil, fmt.Errorf("field %q: chart data is not inline", def.FieldName())
	}
	return dataset.Column(data.Table, def.FieldName())
}

// Summary returns the histogram of src's color field over the bins
// BinBoundaries computes. This is what the density panel of the
// meta-histogram plots.
func Summary(src *vl.Chart) (*binning.Histogram, error) {
	bins, err := BinBoundaries(src)
	if err != nil {
		return nil, err
	}
	xs, err := fieldValues(src.Data, src.Encoding.Color)
	if err != nil {
		return nil, err
	}
	return binning.NewHistogram(bins, xs), nil
}
