// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package particles is a compute snapshot fixture.
package particles

import "github.com/gogpu/shadergen/sl"

type Particle struct {
	Pos  sl.Vec3
	Life float32
	Vel  sl.Vec3
	Seed uint32
}

type Buffer struct {
	Items []Particle
}

type Params struct {
	Gravity sl.Vec3
	Dt      float32
}

//shader:uniform group=0 binding=0
var Sim Params

//shader:storage group=0 binding=1
var Particles Buffer

type Step struct{}

//shader:compute workgroup=8,8 gid=global_invocation_id
func (Step) Update(gid sl.UVec3) {
	i := gid.X + gid.Y*64
	p := Particles.Items[i]
	if p.Life <= 0 {
		p.Seed = hash(p.Seed)
		p.Life = 1
		p.Pos = sl.Vec3{}
	} else {
		p.Vel = p.Vel.Add(Sim.Gravity.Scale(Sim.Dt))
		p.Pos = p.Pos.Add(p.Vel.Scale(Sim.Dt))
		p.Life -= Sim.Dt
	}
	Particles.Items[i] = p
}

func hash(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	return x
}
