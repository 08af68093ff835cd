// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package a declares a Light that b declares too.
package a

import "github.com/gogpu/shadergen/sl"

type Light struct {
	Color sl.Vec4
}
