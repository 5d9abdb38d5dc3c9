// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binning

import "math"

// Histogram counts values into Bins.
type Histogram struct {
	Bins

	// Counts[i] is the number of values in bin i.
	Counts []int

	// Under and Over count finite values below Start and above
	// Stop. Missing counts NaNs.
	Under, Over, Missing int
}

// NewHistogram returns the histogram of xs over b.
func NewHistogram(b Bins, xs []float64) *Histogram {
	h := &Histogram{Bins: b, Counts: make([]int, b.N())}
	for _, x := range xs {
		h.Add(x)
	}
	return h
}

// Add counts x.
func (h *Histogram) Add(x float64) {
	switch {
	case math.IsNaN(x):
		h.Missing++
	case x < h.Start:
		h.Under++
	case x > h.Stop:
		h.Over++
	default:
		h.Counts[h.Index(x)]++
	}
}

// Total returns the number of values added, including values outside
// the bins and missing values.
func (h *Histogram) Total() int {
	n := h.Under + h.Over + h.Missing
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Proportions returns the fraction of all values, as counted by Total,
// in each bin. This is what a count joinaggregate followed by a sum of
// 1/count computes per bin.
func (h *Histogram) Proportions() []float64 {
	ps := make([]float64, len(h.Counts))
	total := h.Total()
	if total == 0 {
		return ps
	}
	for i, c := range h.Counts {
		ps[i] = float64(c) / float64(total)
	}
	return ps
}
