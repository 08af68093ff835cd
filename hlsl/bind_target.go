// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/shadergen/semantic"
)

// BindTarget specifies the HLSL register binding for a resource.
// HLSL uses register(x#, space#) syntax for resource binding.
type BindTarget struct {
	// Space is the register space (0-based).
	// Spaces allow multiple resources to use the same register index.
	Space uint8

	// Register is the register index within the space.
	Register uint32
}

// DefaultBindTarget maps a resource binding onto its register: the group
// is the space and the binding the register.
func DefaultBindTarget(b semantic.ResourceBinding) BindTarget {
	return BindTarget{Space: uint8(b.Group), Register: b.Binding}
}

// RegisterType represents the HLSL register type.
type RegisterType uint8

const (
	// RegisterTypeB is for constant buffers (cbuffer).
	RegisterTypeB RegisterType = iota

	// RegisterTypeT is for textures and shader resource views.
	RegisterTypeT

	// RegisterTypeS is for samplers.
	RegisterTypeS

	// RegisterTypeU is for unordered access views (UAV).
	RegisterTypeU
)

// String returns the single-character register prefix.
func (rt RegisterType) String() string {
	switch rt {
	case RegisterTypeB:
		return "b"
	case RegisterTypeT:
		return "t"
	case RegisterTypeS:
		return "s"
	case RegisterTypeU:
		return "u"
	default:
		return "b"
	}
}

// registerType returns the register class of a resource.
func registerType(g *semantic.Global) RegisterType {
	switch g.Space {
	case semantic.SpaceTexture:
		return RegisterTypeT
	case semantic.SpaceSampler:
		return RegisterTypeS
	case semantic.SpaceStorage:
		if g.ReadOnly {
			return RegisterTypeT
		}
		return RegisterTypeU
	default:
		return RegisterTypeB
	}
}

// register formats the register clause, e.g. "register(b0, space1)".
// Without spaces the clause has only the register.
func register(rt RegisterType, bt BindTarget, spaces bool) string {
	if !spaces {
		return fmt.Sprintf("register(%s%d)", rt, bt.Register)
	}
	return fmt.Sprintf("register(%s%d, space%d)", rt, bt.Register, bt.Space)
}
