// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package golden compares chart output against baseline files.
//
// A baseline is a pair of files sharing a base path: base.json holds
// the expected Vega-Lite document and base.svg the expected image.
// When output differs from its baseline, Check leaves the new output
// in base.new.json and base.new.svg for review; Promote accepts it.
package golden

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/go-cmp/cmp"
)

const (
	extJSON  = ".json"
	extImage = ".svg"
	extNew   = ".new"
)

// A MismatchError reports output that differs from its baseline.
type MismatchError struct {
	Base string
	// Diff describes the difference in the Vega-Lite documents,
	// or is empty if there is no baseline.
	Diff string
}

func (e *MismatchError) Error() string {
	if e.Diff == "" {
		return fmt.Sprintf("%s: no baseline; wrote %s", e.Base, e.Base+extNew+extJSON)
	}
	return fmt.Sprintf("%s: differs from baseline (-want +got):\n%s", e.Base, e.Diff)
}

// Check compares vlJSON against the baseline document base.json.
//
// If the documents are identical, the output matches. Otherwise the
// output still matches if image is identical to base.svg, since
// documents that differ only in ways that do not affect rendering are
// acceptable. On a match, Check removes any base.new.* files left by
// earlier mismatches and returns nil.
//
// On a mismatch, Check writes vlJSON to base.new.json and image to
// base.new.svg and returns a *MismatchError.
func Check(base string, vlJSON, image []byte) error {
	newJSON, newImage := base+extNew+extJSON, base+extNew+extImage

	// Garbage-collect the output of earlier mismatches.
	for _, path := range []string{newJSON, newImage} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	want, err := os.ReadFile(base + extJSON)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	var diff string
	switch {
	case err != nil:
		// No baseline.
	case bytes.Equal(want, vlJSON):
		return nil
	default:
		wantImage, err := os.ReadFile(base + extImage)
		if err == nil && bytes.Equal(wantImage, image) {
			return nil
		}
		diff = cmp.Diff(string(want), string(vlJSON))
	}

	if err := os.WriteFile(newJSON, vlJSON, 0666); err != nil {
		return err
	}
	if image != nil {
		if err := os.WriteFile(newImage, image, 0666); err != nil {
			return err
		}
	}
	return &MismatchError{Base: base, Diff: diff}
}

// Promote replaces the baseline at base with the output a failed Check
// left in base.new.json and base.new.svg. It is an error if there is
// no new document.
func Promote(base string) error {
	if err := os.Rename(base+extNew+extJSON, base+extJSON); err != nil {
		return err
	}
	err := os.Rename(base+extNew+extImage, base+extImage)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
