// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package scene is a shader fixture for the front end tests.
package scene

import (
	"fmt"

	"github.com/gogpu/shadergen/sl"
)

type Camera struct {
	ViewProj sl.Mat4
	Eye      sl.Vec3
	Exposure float32
}

type VertexIn struct {
	Pos    sl.Vec3 `shader:"location=0"`
	Normal sl.Vec3 `shader:"location=1"`
	UV     sl.Vec2 `shader:"location=2"`
}

type Varyings struct {
	Clip   sl.Vec4 `shader:"position"`
	Normal sl.Vec3 `shader:"location=0"`
	UV     sl.Vec2 `shader:"location=1"`
	ID     uint32  `shader:"location=2,flat"`
}

type Particle struct {
	Pos sl.Vec4
	Vel sl.Vec4
}

type Particles struct {
	Items []Particle
}

//shader:uniform group=0 binding=0
var Cam Camera

//shader:texture group=0 binding=1
var Albedo *sl.Texture2D

//shader:sampler group=0 binding=2
var Linear sl.Sampler

//shader:uniform
var Tint sl.Vec4

//shader:uniform
var Time float32

//shader:storage group=1 binding=0
var Store Particles

var names = map[string]int{}

const lightBias = 0.1

type Foo struct{}

//shader:vertex fragment=FS id=instance_index
func (Foo) VS(in VertexIn, id uint32) Varyings {
	clip := Cam.ViewProj.MulVec(sl.Extend4(in.Pos, 1))
	return Varyings{Clip: clip, Normal: in.Normal, UV: in.UV, ID: id}
}

//shader:fragment
func (Foo) FS(v Varyings) sl.Vec4 {
	if v.UV.X < 0 {
		sl.Discard()
	}
	c := Albedo.Sample(Linear, v.UV)
	return c.Mul(Tint).Scale(shade(v.Normal))
}

//shader:compute workgroup=64 id=global_invocation_id
func (Foo) CS(id sl.UVec3) {
	i := id.X
	p := Store.Items[i]
	p.Pos = p.Pos.Add(p.Vel.Scale(Time))
	for k := range 3 {
		p.Vel.Y -= float32(k) * 0.5
	}
	Store.Items[i] = p
}

func shade(n sl.Vec3) float32 {
	light := sl.Normalize(sl.Vec3{X: 1, Y: 1})
	return sl.Max(sl.Dot(n, light), lightBias)
}

// Describe only runs on the host.
func Describe() string {
	names["scene"]++
	return fmt.Sprint(len(names))
}
