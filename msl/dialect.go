// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// globalsParam is the parameter holding the loose uniform block.
const globalsParam = "_globals"

type dialect struct {
	clike.Base
	loose *backend.LooseUniforms
	// resources are the trailing arguments of every function call.
	resources []string
}

func newDialect(loose *backend.LooseUniforms) *dialect {
	return &dialect{Base: clike.Base{Keywords: keywords}, loose: loose}
}

func (*dialect) Kind() backend.Kind { return backend.KindMetal }

func (*dialect) Scalar(s semantic.ScalarType) (string, error) {
	return scalarTypeName(s)
}

// scalarTypeName returns the MSL name for a scalar type.
func scalarTypeName(s semantic.ScalarType) (string, error) {
	switch s.Kind {
	case semantic.ScalarBool:
		return "bool", nil
	case semantic.ScalarFloat:
		if s.Width == 8 {
			return "", backend.Errorf(backend.ErrUnsupportedType, "Metal has no double precision floating point type")
		}
		return "float", nil
	case semantic.ScalarSint:
		if s.Width == 8 {
			return "long", nil
		}
		return "int", nil
	case semantic.ScalarUint:
		if s.Width == 8 {
			return "ulong", nil
		}
		return "uint", nil
	}
	return "", backend.Errorf(backend.ErrInternal, "scalar %s", s)
}

func (*dialect) Vector(v semantic.VectorType) (string, error) {
	scalar, err := scalarTypeName(v.Scalar)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%d", Namespace, scalar, v.Size), nil
}

func (*dialect) Matrix(m semantic.MatrixType) (string, error) {
	if m.Scalar.Kind != semantic.ScalarFloat {
		return "", backend.Errorf(backend.ErrUnsupportedType, "%s: matrices must be floating point", m)
	}
	scalar, err := scalarTypeName(m.Scalar)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%dx%d", Namespace, scalar, m.Columns, m.Rows), nil
}

func (*dialect) Texture(t semantic.TextureType) (string, error) {
	var dim string
	switch t.Dim {
	case semantic.Texture1D:
		dim = "texture1d"
	case semantic.Texture2D:
		dim = "texture2d"
	case semantic.Texture3D:
		dim = "texture3d"
	case semantic.TextureCube:
		dim = "texturecube"
	default:
		return "", backend.Errorf(backend.ErrUnsupportedType, "texture dimension %s", t.Dim)
	}
	sampled, err := scalarTypeName(semantic.ScalarType{Kind: t.Sampled, Width: 4})
	if err != nil {
		return "", err
	}
	return Namespace + dim + "<" + sampled + ">", nil
}

func (*dialect) Sampler(semantic.SamplerType) (string, error) {
	return Namespace + "sampler", nil
}

func (*dialect) Array(elem string, n uint32) (string, bool) {
	return fmt.Sprintf("%sarray<%s, %d>", Namespace, elem, n), true
}

// RuntimeArraySuffix declares a one element array that the buffer may
// extend past.
func (*dialect) RuntimeArraySuffix() string {
	return "[1]"
}

func (*dialect) Intrinsic(fun semantic.Intrinsic, args []string, _ []semantic.Type) (string, error) {
	if fun == semantic.IntrinsicSample {
		return args[0] + ".sample(" + args[1] + ", " + args[2] + ")", nil
	}
	return Namespace + fun.String() + "(" + clike.Join(args) + ")", nil
}

func (*dialect) VectorCompare(op semantic.BinaryOp, x, y string) string {
	if op == semantic.BinaryNe {
		return Namespace + "any(" + x + " != " + y + ")"
	}
	return Namespace + "all(" + x + " == " + y + ")"
}

func (*dialect) ArrayConstruct(typ string, elems []string) string {
	return typ + "{" + strings.Join(elems, ", ") + "}"
}

func (*dialect) ZeroValue(typ string, _ semantic.Type) (string, bool) {
	return typ + " {}", true
}

func (*dialect) Discard() string {
	return Namespace + "discard_fragment();"
}

func (d *dialect) Global(g *semantic.Global) string {
	if d.loose.Has(g) {
		return globalsParam + "." + d.Escape(g.Name)
	}
	return d.Escape(g.Name)
}

func (d *dialect) CallArgs(semantic.FunctionRef) []string {
	return d.resources
}

// StructMember pads booleans: a Metal bool is one byte where the buffer
// layout reserves a 32-bit lane.
func (d *dialect) StructMember(p layout.Placement, decl string) []string {
	s, ok := semantic.ScalarOf(p.Type)
	if !ok || s.Kind != semantic.ScalarBool || p.Padding {
		return []string{decl}
	}
	size := uint32(1)
	if v, ok := p.Type.(semantic.VectorType); ok {
		size = uint32(v.Size)
		if size == 3 {
			size = 4
		}
	}
	if p.Size <= size {
		return []string{decl}
	}
	return []string{decl, fmt.Sprintf("char _%s_tail[%d]", d.Escape(p.Name), p.Size-size)}
}
