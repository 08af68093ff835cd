// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sl

import "github.com/chewxy/math32"

// Float is a float scalar or vector. The component-wise intrinsics accept
// any of them.
type Float interface {
	float32 | Vec2 | Vec3 | Vec4
}

// lanes returns the components of x.
func lanes[T Float](x T) []float32 {
	switch v := any(x).(type) {
	case float32:
		return []float32{v}
	case Vec2:
		return []float32{v.X, v.Y}
	case Vec3:
		return []float32{v.X, v.Y, v.Z}
	case Vec4:
		return []float32{v.X, v.Y, v.Z, v.W}
	}
	panic("unreachable")
}

// pack is the inverse of lanes.
func pack[T Float](c []float32) T {
	var zero T
	var out any
	switch any(zero).(type) {
	case float32:
		out = c[0]
	case Vec2:
		out = Vec2{c[0], c[1]}
	case Vec3:
		out = Vec3{c[0], c[1], c[2]}
	case Vec4:
		out = Vec4{c[0], c[1], c[2], c[3]}
	}
	return out.(T)
}

func map1[T Float](x T, f func(float32) float32) T {
	c := lanes(x)
	for i := range c {
		c[i] = f(c[i])
	}
	return pack[T](c)
}

func map2[T Float](x, y T, f func(a, b float32) float32) T {
	c, d := lanes(x), lanes(y)
	for i := range c {
		c[i] = f(c[i], d[i])
	}
	return pack[T](c)
}

func map3[T Float](x, y, z T, f func(a, b, c float32) float32) T {
	c, d, e := lanes(x), lanes(y), lanes(z)
	for i := range c {
		c[i] = f(c[i], d[i], e[i])
	}
	return pack[T](c)
}

// Dot returns the dot product of x and y.
func Dot[T Float](x, y T) float32 {
	var s float32
	c, d := lanes(x), lanes(y)
	for i := range c {
		s += c[i] * d[i]
	}
	return s
}

// Cross returns the cross product of x and y.
func Cross(x, y Vec3) Vec3 { return x.Cross(y) }

// Length returns the Euclidean length of x.
func Length[T Float](x T) float32 { return math32.Sqrt(Dot(x, x)) }

// Distance returns the length of x - y.
func Distance[T Float](x, y T) float32 {
	return Length(map2(x, y, func(a, b float32) float32 { return a - b }))
}

// Normalize returns x scaled to unit length.
func Normalize[T Float](x T) T {
	l := Length(x)
	return map1(x, func(a float32) float32 { return a / l })
}

func Abs[T Float](x T) T   { return map1(x, math32.Abs) }
func Floor[T Float](x T) T { return map1(x, math32.Floor) }
func Ceil[T Float](x T) T  { return map1(x, math32.Ceil) }
func Sqrt[T Float](x T) T  { return map1(x, math32.Sqrt) }
func Exp[T Float](x T) T   { return map1(x, math32.Exp) }
func Log[T Float](x T) T   { return map1(x, math32.Log) }
func Sin[T Float](x T) T   { return map1(x, math32.Sin) }
func Cos[T Float](x T) T   { return map1(x, math32.Cos) }
func Tan[T Float](x T) T   { return map1(x, math32.Tan) }

// Fract returns x - floor(x).
func Fract[T Float](x T) T {
	return map1(x, func(a float32) float32 { return a - math32.Floor(a) })
}

func Min[T Float](x, y T) T   { return map2(x, y, math32.Min) }
func Max[T Float](x, y T) T   { return map2(x, y, math32.Max) }
func Pow[T Float](x, y T) T   { return map2(x, y, math32.Pow) }
func Atan2[T Float](y, x T) T { return map2(y, x, math32.Atan2) }

// Step returns 0 where x < edge and 1 elsewhere.
func Step[T Float](edge, x T) T {
	return map2(edge, x, func(e, a float32) float32 {
		if a < e {
			return 0
		}
		return 1
	})
}

// Clamp limits x to [lo, hi].
func Clamp[T Float](x, lo, hi T) T {
	return map3(x, lo, hi, func(a, l, h float32) float32 { return math32.Min(math32.Max(a, l), h) })
}

// Mix interpolates linearly between x and y.
func Mix[T Float](x, y, t T) T {
	return map3(x, y, t, func(a, b, s float32) float32 { return a + (b-a)*s })
}

// Smoothstep interpolates smoothly between 0 and 1 as x goes from e0 to e1.
func Smoothstep[T Float](e0, e1, x T) T {
	return map3(e0, e1, x, func(a, b, v float32) float32 {
		t := math32.Min(math32.Max((v-a)/(b-a), 0), 1)
		return t * t * (3 - 2*t)
	})
}
