// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

import "fmt"

// Binding attaches a stage input or output to a pipeline slot.
type Binding interface {
	fmt.Stringer
	binding()
}

// BuiltinValue is a pipeline-provided value.
type BuiltinValue uint8

const (
	BuiltinPosition BuiltinValue = iota
	BuiltinVertexIndex
	BuiltinInstanceIndex
	BuiltinFrontFacing
	BuiltinFragDepth
	BuiltinGlobalInvocationID
	BuiltinLocalInvocationID
	BuiltinLocalInvocationIndex
	BuiltinWorkGroupID
)

var builtinNames = [...]string{
	BuiltinPosition:             "position",
	BuiltinVertexIndex:          "vertex_index",
	BuiltinInstanceIndex:        "instance_index",
	BuiltinFrontFacing:          "front_facing",
	BuiltinFragDepth:            "frag_depth",
	BuiltinGlobalInvocationID:   "global_invocation_id",
	BuiltinLocalInvocationID:    "local_invocation_id",
	BuiltinLocalInvocationIndex: "local_invocation_index",
	BuiltinWorkGroupID:          "workgroup_id",
}

func (b BuiltinValue) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return fmt.Sprintf("builtin(%d)", uint8(b))
}

// ParseBuiltin returns the builtin with the given name.
func ParseBuiltin(name string) (BuiltinValue, bool) {
	for i, n := range builtinNames {
		if n == name {
			return BuiltinValue(i), true
		}
	}
	return 0, false
}

// BuiltinBinding binds a value to a builtin.
type BuiltinBinding struct {
	Builtin BuiltinValue
}

func (BuiltinBinding) binding() {}

func (b BuiltinBinding) String() string {
	return "builtin(" + b.Builtin.String() + ")"
}

// LocationBinding binds a value to a numbered user location.
type LocationBinding struct {
	Location uint32
	Flat     bool
}

func (LocationBinding) binding() {}

func (l LocationBinding) String() string {
	if l.Flat {
		return fmt.Sprintf("location(%d, flat)", l.Location)
	}
	return fmt.Sprintf("location(%d)", l.Location)
}

// IsBuiltin reports whether b binds the given builtin.
func IsBuiltin(b Binding, v BuiltinValue) bool {
	bb, ok := b.(BuiltinBinding)
	return ok && bb.Builtin == v
}

// Space is the address space of a global resource.
type Space uint8

const (
	SpaceUniform Space = iota
	SpaceStorage
	SpaceTexture
	SpaceSampler
	SpacePrivate
)

func (s Space) String() string {
	switch s {
	case SpaceUniform:
		return "uniform"
	case SpaceStorage:
		return "storage"
	case SpaceTexture:
		return "texture"
	case SpaceSampler:
		return "sampler"
	case SpacePrivate:
		return "private"
	default:
		return "invalid"
	}
}

// ResourceBinding is a (group, binding) resource slot.
type ResourceBinding struct {
	Group   uint32
	Binding uint32
}

func (r ResourceBinding) String() string {
	return fmt.Sprintf("group(%d) binding(%d)", r.Group, r.Binding)
}

// Global is a module-scope variable, usually a resource.
type Global struct {
	Name     string
	Type     Type
	Space    Space
	Binding  *ResourceBinding // nil for private globals and loose uniforms
	ReadOnly bool
}

// IsLooseUniform reports whether g is a uniform of non-struct type.
// Loose uniforms are gathered into a single synthesized block.
func (g *Global) IsLooseUniform() bool {
	if g.Space != SpaceUniform {
		return false
	}
	_, isStruct := g.Type.(*StructType)
	return !isStruct
}
