// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sl

import "github.com/chewxy/math32"

// Sampler selects how a texture is filtered and addressed. On the GPU its
// state comes from the bound sampler object; the fields only drive the CPU
// implementation.
type Sampler struct {
	Linear bool // Bilinear filtering instead of nearest
	Repeat bool // Wrap coordinates instead of clamping
}

// Texture2D is a two dimensional float texture. Texels are stored row by
// row, starting at the top left.
type Texture2D struct {
	Width, Height int
	Texels        []Vec4
}

// NewTexture2D returns a texture of the given size with zero texels.
func NewTexture2D(width, height int) *Texture2D {
	return &Texture2D{Width: width, Height: height, Texels: make([]Vec4, width*height)}
}

// At returns the texel at (x, y) after addressing with s.
func (t *Texture2D) At(s Sampler, x, y int) Vec4 {
	return t.Texels[address(y, t.Height, s.Repeat)*t.Width+address(x, t.Width, s.Repeat)]
}

// Sample reads the texture at normalized coordinates uv.
func (t *Texture2D) Sample(s Sampler, uv Vec2) Vec4 {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return Vec4{}
	}
	x := uv.X*float32(t.Width) - 0.5
	y := uv.Y*float32(t.Height) - 0.5
	if !s.Linear {
		return t.At(s, int(math32.Floor(x+0.5)), int(math32.Floor(y+0.5)))
	}
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := Splat4(x-x0), Splat4(y-y0)
	ix, iy := int(x0), int(y0)
	top := Mix(t.At(s, ix, iy), t.At(s, ix+1, iy), fx)
	bottom := Mix(t.At(s, ix, iy+1), t.At(s, ix+1, iy+1), fx)
	return Mix(top, bottom, fy)
}

func address(i, n int, repeat bool) int {
	if repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}
