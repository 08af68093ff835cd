// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package unsupported reaches host-only code from an entry point.
package unsupported

type Bar struct{}

//shader:compute
func (Bar) CS() {
	_ = weight()
}

func weight() float32 {
	var total float32
	for _, w := range []float32{1, 2} {
		total += w
	}
	return total
}
