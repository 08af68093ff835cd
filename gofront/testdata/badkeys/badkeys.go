// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package badkeys has directives with several unknown keys.
package badkeys

//shader:uniform zeta=1 mid=2 alpha=3
var Level float32

type Qux struct{}

//shader:compute workgroup=1 zz=position mm=position aa=position
func (Qux) CS() {}
