// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package sl is the host runtime of shader code.
//
// Shader functions import sl for vectors, matrices, textures and the
// shading language intrinsics. Every symbol has a CPU implementation, so
// shader code compiles and runs as ordinary Go; the gofront package maps
// the same symbols onto the target language builtins instead of
// translating their bodies.
package sl

import "github.com/chewxy/math32"

// Vec2 is a two component float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four component float vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// IVec2 is a two component signed integer vector.
type IVec2 struct {
	X, Y int32
}

// IVec3 is a three component signed integer vector.
type IVec3 struct {
	X, Y, Z int32
}

// IVec4 is a four component signed integer vector.
type IVec4 struct {
	X, Y, Z, W int32
}

// UVec2 is a two component unsigned integer vector.
type UVec2 struct {
	X, Y uint32
}

// UVec3 is a three component unsigned integer vector.
type UVec3 struct {
	X, Y, Z uint32
}

// UVec4 is a four component unsigned integer vector.
type UVec4 struct {
	X, Y, Z, W uint32
}

// Extend3 returns the Vec3 (v.X, v.Y, z).
func Extend3(v Vec2, z float32) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// Extend4 returns the Vec4 (v.X, v.Y, v.Z, w).
func Extend4(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Splat4 returns a Vec4 with every component set to s.
func Splat4(s float32) Vec4 {
	return Vec4{s, s, s, s}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2      { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(o Vec2) Vec2      { return Vec2{v.X / o.X, v.Y / o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float32   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float32      { return math32.Sqrt(v.Dot(v)) }
func (v Vec2) Normalize() Vec2      { return v.Scale(1 / v.Length()) }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Div(o Vec3) Vec3      { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Dot(o Vec3) float32   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float32      { return math32.Sqrt(v.Dot(v)) }
func (v Vec3) Normalize() Vec3      { return v.Scale(1 / v.Length()) }
func (v Vec3) XY() Vec2             { return Vec2{v.X, v.Y} }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec4) Add(o Vec4) Vec4      { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4      { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Mul(o Vec4) Vec4      { return Vec4{v.X * o.X, v.Y * o.Y, v.Z * o.Z, v.W * o.W} }
func (v Vec4) Div(o Vec4) Vec4      { return Vec4{v.X / o.X, v.Y / o.Y, v.Z / o.Z, v.W / o.W} }
func (v Vec4) Scale(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) Neg() Vec4            { return Vec4{-v.X, -v.Y, -v.Z, -v.W} }
func (v Vec4) Dot(o Vec4) float32   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W }
func (v Vec4) Length() float32      { return math32.Sqrt(v.Dot(v)) }
func (v Vec4) Normalize() Vec4      { return v.Scale(1 / v.Length()) }
func (v Vec4) XY() Vec2             { return Vec2{v.X, v.Y} }
func (v Vec4) XYZ() Vec3            { return Vec3{v.X, v.Y, v.Z} }
