// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// storageForm is how a storage buffer global is declared.
type storageForm uint8

const (
	// storageArray: the struct is one runtime-sized array, declared as a
	// structured buffer of its elements.
	storageArray storageForm = iota + 1
	// storageStruct: a fixed-size struct, declared as a one element
	// structured buffer.
	storageStruct
)

type dialect struct {
	clike.Base
	sm      ShaderModel
	storage map[string]storageForm
}

func newDialect(sm ShaderModel) *dialect {
	return &dialect{
		Base:    clike.Base{Keywords: keywords},
		sm:      sm,
		storage: make(map[string]storageForm),
	}
}

func (*dialect) Kind() backend.Kind { return backend.KindHLSL }

func (*dialect) Escape(name string) string { return escape(name) }

func (d *dialect) Scalar(s semantic.ScalarType) (string, error) {
	if s.Width == 8 && s.Kind != semantic.ScalarFloat && !d.sm.SupportsInt64() {
		return "", backend.Errorf(backend.ErrCapability, "%s requires Shader Model 6.0, targeting %s", s, d.sm)
	}
	return ScalarToHLSL(s), nil
}

func (d *dialect) Vector(v semantic.VectorType) (string, error) {
	if _, err := d.Scalar(v.Scalar); err != nil {
		return "", err
	}
	return VectorToHLSL(v), nil
}

func (d *dialect) Matrix(m semantic.MatrixType) (string, error) {
	if m.Scalar.Kind != semantic.ScalarFloat {
		return "", backend.Errorf(backend.ErrUnsupportedType, "%s: matrices must be floating point", m)
	}
	return MatrixToHLSL(m), nil
}

func (*dialect) Texture(t semantic.TextureType) (string, error) {
	return TextureToHLSL(t)
}

func (*dialect) Sampler(t semantic.SamplerType) (string, error) {
	return SamplerToHLSL(t.Comparison), nil
}

func (d *dialect) Literal(l *semantic.Literal) (string, error) {
	if l.Scalar.Width != 8 {
		return d.Base.Literal(l)
	}
	if _, err := d.Scalar(l.Scalar); err != nil {
		return "", err
	}
	switch l.Scalar.Kind {
	case semantic.ScalarSint:
		return strconv.FormatInt(l.Int, 10) + "L", nil
	case semantic.ScalarUint:
		return strconv.FormatUint(l.Uint, 10) + "uL", nil
	default:
		return clike.FormatFloat64(l.Float) + "L", nil
	}
}

var intrinsics = map[semantic.Intrinsic]string{
	semantic.IntrinsicMix:   "lerp",
	semantic.IntrinsicFract: "frac",
}

func (*dialect) Intrinsic(fun semantic.Intrinsic, args []string, _ []semantic.Type) (string, error) {
	if fun == semantic.IntrinsicSample {
		return args[0] + ".Sample(" + args[1] + ", " + args[2] + ")", nil
	}
	name, ok := intrinsics[fun]
	if !ok {
		name = fun.String()
	}
	return name + "(" + clike.Join(args) + ")", nil
}

// MatrixMul swaps the operands: HLSL matrices hold host columns in rows.
func (*dialect) MatrixMul(x, y string) string {
	return "mul(" + y + ", " + x + ")"
}

func (*dialect) VectorCompare(op semantic.BinaryOp, x, y string) string {
	if op == semantic.BinaryNe {
		return "any(" + x + " != " + y + ")"
	}
	return "all(" + x + " == " + y + ")"
}

func (*dialect) ZeroValue(typ string, t semantic.Type) (string, bool) {
	if _, ok := t.(semantic.ArrayType); ok {
		return "", false
	}
	return "(" + typ + ")0", true
}

func (d *dialect) Global(g *semantic.Global) string {
	if d.storage[g.Name] == storageStruct {
		return escape(g.Name) + "[0]"
	}
	return escape(g.Name)
}

func (d *dialect) Member(x semantic.Expr, xs, field string) string {
	if id, ok := x.(*semantic.Ident); ok && id.Kind == semantic.IdentGlobal && d.storage[id.Name] == storageArray {
		return xs
	}
	return xs + "." + escape(field)
}

func (*dialect) StructMember(p layout.Placement, decl string) []string {
	if hasMatrix(p.Type) {
		return []string{"row_major " + decl}
	}
	return []string{decl}
}

func hasMatrix(t semantic.Type) bool {
	switch t := t.(type) {
	case semantic.MatrixType:
		return true
	case semantic.ArrayType:
		return hasMatrix(t.Elem)
	}
	return false
}
