// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package b declares a second Light.
package b

import "github.com/gogpu/shadergen/sl"

type Light struct {
	Dir sl.Vec3
}

type Only struct {
	X float32
}
