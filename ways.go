// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ways augments color-encoded charts with a meta-histogram: a
// view of how the color field was binned and which colors the bins
// were given.
//
// MetaHist takes a chart whose color channel has a bin definition and
// returns the horizontal concatenation
//
//	density | colors used | chart
//
// where "density" is a bar chart of the proportion of rows in each
// color bin and "colors used" is a strip of one rectangle per bin,
// filled with that bin's color. Wrap applies MetaHist to every chart
// a chart-building function returns.
package ways

import (
	"errors"

	"go.uber.org/zap"
)

// ErrBinUndefined is returned when a chart's color channel has no bin
// definition. A bin definition of false is defined; it is only the
// absence of one that is rejected.
var ErrBinUndefined = errors.New("Can only apply decorator to chart with color.bin defined.")

// Log receives diagnostics from this module. It discards everything
// unless replaced.
var Log = zap.NewNop()
