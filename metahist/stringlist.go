// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "strings"

// stringList is a flag.Value that accumulates every use of a flag.
type stringList []string

func (x *stringList) String() string {
	return strings.Join(*x, ",")
}

func (x *stringList) Set(s string) error {
	*x = append(*x, s)
	return nil
}
