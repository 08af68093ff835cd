// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sl

// Mat3 is a column-major 3x3 float matrix.
type Mat3 [3]Vec3

// Mat4 is a column-major 4x4 float matrix.
type Mat4 [4]Vec4

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return m[0].Scale(v.X).Add(m[1].Scale(v.Y)).Add(m[2].Scale(v.Z))
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{m.MulVec(o[0]), m.MulVec(o[1]), m.MulVec(o[2])}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0].X, m[1].X, m[2].X},
		{m[0].Y, m[1].Y, m[2].Y},
		{m[0].Z, m[1].Z, m[2].Z},
	}
}

// MulVec returns m * v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	return m[0].Scale(v.X).Add(m[1].Scale(v.Y)).Add(m[2].Scale(v.Z)).Add(m[3].Scale(v.W))
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	return Mat4{m.MulVec(o[0]), m.MulVec(o[1]), m.MulVec(o[2]), m.MulVec(o[3])}
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0].X, m[1].X, m[2].X, m[3].X},
		{m[0].Y, m[1].Y, m[2].Y, m[3].Y},
		{m[0].Z, m[1].Z, m[2].Z, m[3].Z},
		{m[0].W, m[1].W, m[2].W, m[3].W},
	}
}
