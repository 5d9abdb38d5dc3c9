// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-gg/table"
)

// GeometryColumn is the column holding each feature's raw GeoJSON
// geometry.
const GeometryColumn = "geometry"

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Type       string                 `json:"type"`
		Properties map[string]interface{} `json:"properties"`
		Geometry   json.RawMessage        `json:"geometry"`
	} `json:"features"`
}

// ReadGeoJSON reads a GeoJSON FeatureCollection into a table with one
// row per feature. Each row has a "type" column of "Feature", a
// geometry column of raw JSON, and one column per property.
// Properties whose values are all numbers become []float64 columns,
// with NaN where a feature lacks the property; others become []string
// columns.
//
// Rows in this form are themselves GeoJSON features, so a geoshape
// mark can draw them directly.
func ReadGeoJSON(r io.Reader) (*table.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var fc featureCollection
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("GeoJSON type is %q, not FeatureCollection", fc.Type)
	}

	n := len(fc.Features)
	types := make([]string, n)
	geoms := make([]json.RawMessage, n)
	props := make(map[string][]interface{})
	for i, f := range fc.Features {
		types[i] = "Feature"
		geoms[i] = f.Geometry
		for k, v := range f.Properties {
			if k == "type" || k == GeometryColumn {
				return nil, fmt.Errorf("feature %d: property %q collides with a reserved column", i, k)
			}
			vals, ok := props[k]
			if !ok {
				vals = make([]interface{}, n)
				props[k] = vals
			}
			vals[i] = v
		}
	}

	cols := map[string]interface{}{
		"type":         types,
		GeometryColumn: geoms,
	}
	for k, vals := range props {
		cols[k] = propertyColumn(vals)
	}
	return fromColumns([]string{"type", GeometryColumn}, cols), nil
}

// propertyColumn returns vals as a []float64 if every present value
// is a number, and as a []string otherwise.
func propertyColumn(vals []interface{}) interface{} {
	numeric := true
	for _, v := range vals {
		if v == nil {
			continue
		}
		if _, ok := v.(json.Number); !ok {
			numeric = false
			break
		}
	}
	if numeric {
		xs := make([]float64, len(vals))
		for i, v := range vals {
			xs[i] = math.NaN()
			if n, ok := v.(json.Number); ok {
				if f, err := n.Float64(); err == nil {
					xs[i] = f
				}
			}
		}
		return xs
	}
	ss := make([]string, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case nil:
		case string:
			ss[i] = v
		case json.Number:
			ss[i] = v.String()
		default:
			b, _ := json.Marshal(v)
			ss[i] = string(b)
		}
	}
	return ss
}
