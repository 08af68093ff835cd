// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package badtag carries malformed shader annotations.
package badtag

import "github.com/gogpu/shadergen/sl"

type Out struct {
	Color sl.Vec4 `shader:"location=red"`
}

//shader:storage group=0
var Data Out

type Baz struct{}

//shader:geometry
func (Baz) GS() {}
