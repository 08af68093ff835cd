// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lighting is a forward lighting snapshot fixture.
package lighting

import "github.com/gogpu/shadergen/sl"

type Light struct {
	Dir       sl.Vec4
	Color     sl.Vec4
	Intensity float32
}

type Lights struct {
	Items [4]Light
	Count int32
}

type In struct {
	Pos    sl.Vec3 `shader:"location=0"`
	Normal sl.Vec3 `shader:"location=1"`
}

type Out struct {
	Clip   sl.Vec4 `shader:"position"`
	Normal sl.Vec3 `shader:"location=0"`
	Band   int32   `shader:"location=1"`
}

//shader:uniform group=0 binding=0
var Scene Lights

//shader:uniform
var Ambient float32

type Forward struct{}

//shader:vertex fragment=Shade
func (Forward) Project(in In) Out {
	m := sl.Identity3()
	n := m.Transpose().MulVec(in.Normal)
	band := int32(0)
	if n.Y > 0.5 {
		band = 2
	} else if n.Y > 0 {
		band = 1
	}
	return Out{Clip: sl.Extend4(in.Pos, 1), Normal: n, Band: band}
}

//shader:fragment
func (Forward) Shade(v Out) sl.Vec4 {
	total := sl.Vec3{}
	for i := int32(0); i < Scene.Count; i++ {
		if i >= 4 {
			break
		}
		l := Scene.Items[i]
		d := sl.Dot(sl.Normalize(v.Normal), l.Dir.XYZ().Neg())
		if d <= 0 {
			continue
		}
		total = total.Add(l.Color.XYZ().Scale(d * l.Intensity))
	}
	t := sl.Smoothstep(0, 1, float32(v.Band%3)/2)
	c := total.Scale(sl.Mix(float32(0.25), 1, sl.Clamp(t, 0, 1)))
	return sl.Extend4(c.Add(sl.Vec3{X: Ambient, Y: Ambient, Z: Ambient}), min(1, Ambient+1))
}
