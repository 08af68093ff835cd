// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/semantic"
)

type dialect struct {
	clike.Base
	kind    backend.Kind
	version Version
	// wrapped holds storage globals of non-struct type, declared as the
	// single member "value" of their block.
	wrapped map[string]bool
}

func newDialect(kind backend.Kind, v Version) *dialect {
	return &dialect{
		Base:    clike.Base{Keywords: keywords},
		kind:    kind,
		version: v,
		wrapped: make(map[string]bool),
	}
}

func (d *dialect) Kind() backend.Kind { return d.kind }

func (*dialect) Escape(name string) string { return escape(name) }

// escape renames reserved words and identifiers in the gl_ namespace.
func escape(name string) string {
	if strings.HasPrefix(name, "gl_") {
		return "_" + name
	}
	return keywords.Escape(name)
}

func (d *dialect) Scalar(s semantic.ScalarType) (string, error) {
	if s.Width == 8 {
		if s.Kind == semantic.ScalarFloat && d.version.SupportsDouble() {
			return "double", nil
		}
		return "", backend.Errorf(backend.ErrCapability, "%s is not available in GLSL %s", s, d.version)
	}
	switch s.Kind {
	case semantic.ScalarBool:
		return "bool", nil
	case semantic.ScalarSint:
		return "int", nil
	case semantic.ScalarUint:
		return "uint", nil
	default:
		return "float", nil
	}
}

func vectorPrefix(s semantic.ScalarType) string {
	switch s.Kind {
	case semantic.ScalarBool:
		return "b"
	case semantic.ScalarSint:
		return "i"
	case semantic.ScalarUint:
		return "u"
	}
	if s.Width == 8 {
		return "d"
	}
	return ""
}

func (d *dialect) Vector(v semantic.VectorType) (string, error) {
	if _, err := d.Scalar(v.Scalar); err != nil {
		return "", err
	}
	return fmt.Sprintf("%svec%d", vectorPrefix(v.Scalar), v.Size), nil
}

func (d *dialect) Matrix(m semantic.MatrixType) (string, error) {
	if m.Scalar.Kind != semantic.ScalarFloat {
		return "", backend.Errorf(backend.ErrUnsupportedType, "%s: matrices must be floating point", m)
	}
	if _, err := d.Scalar(m.Scalar); err != nil {
		return "", err
	}
	prefix := vectorPrefix(m.Scalar)
	if m.Columns == m.Rows {
		return fmt.Sprintf("%smat%d", prefix, m.Columns), nil
	}
	return fmt.Sprintf("%smat%dx%d", prefix, m.Columns, m.Rows), nil
}

func (d *dialect) Texture(t semantic.TextureType) (string, error) {
	var dim string
	switch t.Dim {
	case semantic.Texture1D:
		if d.version.ES {
			return "", backend.Errorf(backend.ErrCapability, "1D textures are not available in GLSL ES")
		}
		dim = "1D"
	case semantic.Texture2D:
		dim = "2D"
	case semantic.Texture3D:
		dim = "3D"
	case semantic.TextureCube:
		dim = "Cube"
	default:
		return "", backend.Errorf(backend.ErrUnsupportedType, "texture dimension %s", t.Dim)
	}
	return vectorPrefix(semantic.ScalarType{Kind: t.Sampled, Width: 4}) + "sampler" + dim, nil
}

// Sampler globals are never declared: sampling state belongs to the
// combined texture.
func (*dialect) Sampler(semantic.SamplerType) (string, error) {
	return "", backend.Errorf(backend.ErrUnsupportedType, "separate samplers have no GLSL type")
}

func (d *dialect) Literal(l *semantic.Literal) (string, error) {
	if l.Scalar.Width == 8 && l.Scalar.Kind == semantic.ScalarFloat && d.version.SupportsDouble() {
		return clike.FormatFloat64(l.Float) + "LF", nil
	}
	return d.Base.Literal(l)
}

var intrinsics = map[semantic.Intrinsic]string{
	semantic.IntrinsicAtan2: "atan",
}

func (*dialect) Intrinsic(fun semantic.Intrinsic, args []string, _ []semantic.Type) (string, error) {
	if fun == semantic.IntrinsicSample {
		return "texture(" + args[0] + ", " + args[2] + ")", nil
	}
	name, ok := intrinsics[fun]
	if !ok {
		name = fun.String()
	}
	return name + "(" + clike.Join(args) + ")", nil
}

// ArrayConstruct uses the array constructor syntax, T[N](...).
func (*dialect) ArrayConstruct(typ string, elems []string) string {
	return typ + "(" + strings.Join(elems, ", ") + ")"
}

func (d *dialect) Global(g *semantic.Global) string {
	if d.wrapped[g.Name] {
		return escape(g.Name) + ".value"
	}
	return escape(g.Name)
}

func (*dialect) Member(_ semantic.Expr, xs, field string) string {
	return xs + "." + escape(field)
}
