// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binning computes the bin boundaries Vega chooses for a bin
// definition and histograms data over them.
//
// Boundaries are "nice": the bin width is 1, 2 or 5 times a power of
// ten, and the first and last boundaries are multiples of the width.
package binning

import (
	"errors"
	"fmt"
	"math"
)

// Default maximum bin counts used by Vega-Lite when a bin definition
// does not set maxbins.
const (
	DefaultMaxbins = 10
	ColorMaxbins   = 6
)

const (
	base = 10

	// epsilon absorbs floating-point error when locating a value's
	// bin, as in Vega.
	epsilon = 1e-14
)

var (
	logb   = math.Log(base)
	divide = []float64{5, 2}
)

// Options control Compute.
type Options struct {
	// Maxbins is the maximum number of bins. If 0, DefaultMaxbins
	// is used. It must otherwise be at least 2.
	Maxbins int

	// Step, if positive, fixes the bin width. Maxbins is then
	// ignored.
	Step float64

	// MinStep is the smallest bin width Compute may choose.
	MinStep float64

	// NoNice disables rounding the first and last boundaries to
	// multiples of the bin width.
	NoNice bool
}

// Bins is a sequence of equal-width bins starting at Start. Each bin
// is half-open, [Start+i*Step, Start+(i+1)*Step), except the last,
// which also includes Stop.
type Bins struct {
	Start, Stop, Step float64
}

// Compute returns the bins covering [lo, hi] under o. It follows
// Vega's bin parameter selection, except that it never returns more
// than o.Maxbins bins: where rounding the boundaries outward would add
// a bin past the limit, the next larger nice width is used instead.
func Compute(lo, hi float64, o Options) (Bins, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Bins{}, fmt.Errorf("bin extent [%g, %g] is not finite", lo, hi)
	}
	if lo > hi {
		return Bins{}, fmt.Errorf("bin extent [%g, %g] is decreasing", lo, hi)
	}
	maxb := o.Maxbins
	if maxb == 0 {
		maxb = DefaultMaxbins
	}
	if maxb < 2 {
		return Bins{}, fmt.Errorf("maxbins %d < 2", maxb)
	}
	if o.Step < 0 || o.MinStep < 0 {
		return Bins{}, errors.New("negative bin step")
	}

	span := hi - lo
	if span == 0 {
		span = math.Abs(lo)
	}
	if span == 0 {
		span = 1
	}

	var step float64
	if o.Step > 0 {
		step = o.Step
	} else {
		step = chooseStep(span, float64(maxb), o.MinStep)
	}

	start, stop := lo, hi
	if !o.NoNice {
		for {
			start, stop = nice(lo, hi, step)
			if o.Step > 0 || count(start, stop, step) <= maxb {
				break
			}
			step = nextStep(step)
		}
	}
	if stop == start {
		stop = start + step
	}
	return Bins{start, stop, step}, nil
}

func chooseStep(span, maxb, minstep float64) float64 {
	level := math.Ceil(math.Log(maxb) / logb)
	step := math.Max(minstep, math.Pow(base, math.Round(math.Log(span)/logb)-level))
	for math.Ceil(span/step) > maxb {
		step *= base
	}
	for _, d := range divide {
		v := step / d
		if v >= minstep && span/v <= maxb {
			step = v
		}
	}
	return step
}

func nice(lo, hi, step float64) (start, stop float64) {
	precision := 0
	if v := math.Log(step); v < 0 {
		precision = int(-v/logb) + 1
	}
	eps := math.Pow(base, float64(-precision-1))
	v := math.Floor(lo/step+eps) * step
	if lo < v {
		start = v - step
	} else {
		start = v
	}
	return start, math.Ceil(hi/step) * step
}

// nextStep returns the next nice bin width after step in the sequence
// 1, 2, 5, 10, 20, ...
func nextStep(step float64) float64 {
	p := math.Pow(base, math.Floor(math.Log10(step)))
	switch m := step / p; {
	case m < 1.5:
		return 2 * p
	case m < 3.5:
		return 5 * p
	default:
		return 10 * p
	}
}

func count(start, stop, step float64) int {
	return int(math.Round((stop - start) / step))
}

// N returns the number of bins.
func (b Bins) N() int {
	n := count(b.Start, b.Stop, b.Step)
	if n < 1 {
		n = 1
	}
	return n
}

// Boundaries returns the N()+1 bin boundaries in increasing order.
func (b Bins) Boundaries() []float64 {
	n := b.N()
	bs := make([]float64, n+1)
	for i := range bs {
		bs[i] = b.Edge(i)
	}
	return bs
}

// Edge returns boundary i. Edge(N()) is Stop.
func (b Bins) Edge(i int) float64 {
	if i == b.N() {
		return b.Stop
	}
	return b.Start + float64(i)*b.Step
}

// Index returns the bin containing x, or -1 if x is outside
// [Start, Stop] or NaN.
func (b Bins) Index(x float64) int {
	if math.IsNaN(x) || x < b.Start || x > b.Stop {
		return -1
	}
	n := b.N()
	i := int(math.Floor(epsilon + (x-b.Start)/b.Step))
	if i >= n {
		i = n - 1
	}
	return i
}

func (b Bins) String() string {
	return fmt.Sprintf("[%g, %g) step %g (%d bins)", b.Start, b.Stop, b.Step, b.N())
}
