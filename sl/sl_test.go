// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorMethods(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.Equal(t, Vec2{1, 2}, a.XY())
	assert.InDelta(t, 1.0, Vec4{3, 0, 4, 0}.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec4{1, 2, 3, 1}, Extend4(a, 1))
}

func TestIntrinsics(t *testing.T) {
	assert.Equal(t, float32(2), Max(float32(-1), 2))
	assert.Equal(t, Vec2{0, 1}, Clamp(Vec2{-2, 3}, Vec2{0, 0}, Vec2{1, 1}))
	assert.Equal(t, Vec4{2, 3, 4, 5}, Mix(Vec4{0, 2, 4, 6}, Vec4{4, 4, 4, 4}, Splat4(0.5)))
	assert.Equal(t, Vec3{0, 1, 1}, Step(Vec3{1, 1, 1}, Vec3{0, 1, 2}))
	assert.InDelta(t, 0.25, Fract(float32(3.25)), 1e-6)
	assert.Equal(t, float32(5), Distance(Vec2{0, 0}, Vec2{3, 4}))
	assert.Equal(t, float32(0.5), Smoothstep(float32(0), 1, 0.5))
}

func TestMatrix(t *testing.T) {
	m := Identity4()
	m[3] = Vec4{1, 2, 3, 1} // translation
	assert.Equal(t, Vec4{2, 3, 4, 1}, m.MulVec(Vec4{1, 1, 1, 1}))
	assert.Equal(t, m, m.Mul(Identity4()))
	assert.Equal(t, Vec4{1, 0, 0, 1}, m.Transpose()[0])
	assert.Equal(t, Vec3{1, 2, 3}, Identity3().MulVec(Vec3{1, 2, 3}))
}

func TestTextureSample(t *testing.T) {
	tex := NewTexture2D(2, 1)
	tex.Texels[0] = Vec4{0, 0, 0, 1}
	tex.Texels[1] = Vec4{1, 1, 1, 1}

	nearest := Sampler{}
	assert.Equal(t, tex.Texels[0], tex.Sample(nearest, Vec2{0.1, 0.5}))
	assert.Equal(t, tex.Texels[1], tex.Sample(nearest, Vec2{0.9, 0.5}))

	linear := Sampler{Linear: true}
	mid := tex.Sample(linear, Vec2{0.5, 0.5})
	assert.InDelta(t, 0.5, mid.X, 1e-6)

	repeat := Sampler{Repeat: true}
	assert.Equal(t, tex.Texels[1], tex.At(repeat, -1, 0))
	assert.Equal(t, tex.Texels[0], tex.At(nearest, -1, 0))
	assert.Equal(t, Vec4{}, (*Texture2D)(nil).Sample(linear, Vec2{}))
}

func TestRunFragment(t *testing.T) {
	c, kept := RunFragment(func() Vec4 { return Vec4{1, 0, 0, 1} })
	assert.True(t, kept)
	assert.Equal(t, Vec4{1, 0, 0, 1}, c)

	_, kept = RunFragment(func() Vec4 {
		Discard()
		return Vec4{}
	})
	assert.False(t, kept)

	assert.Panics(t, func() {
		RunFragment(func() int { panic("other") })
	})
}
