// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"go/types"
	"reflect"

	"github.com/gogpu/shadergen/semantic"
)

// SLPath is the import path of the shading language support package.
const SLPath = "github.com/gogpu/shadergen/sl"

var slTypes = map[string]semantic.Type{
	"Vec2":      semantic.Vec(2),
	"Vec3":      semantic.Vec(3),
	"Vec4":      semantic.Vec(4),
	"IVec2":     semantic.VectorType{Scalar: semantic.Int32, Size: 2},
	"IVec3":     semantic.VectorType{Scalar: semantic.Int32, Size: 3},
	"IVec4":     semantic.VectorType{Scalar: semantic.Int32, Size: 4},
	"UVec2":     semantic.VectorType{Scalar: semantic.Uint32, Size: 2},
	"UVec3":     semantic.VectorType{Scalar: semantic.Uint32, Size: 3},
	"UVec4":     semantic.VectorType{Scalar: semantic.Uint32, Size: 4},
	"Mat3":      semantic.MatrixType{Scalar: semantic.Float32, Columns: 3, Rows: 3},
	"Mat4":      semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 4},
	"Sampler":   semantic.SamplerType{},
	"Texture2D": semantic.TextureType{Dim: semantic.Texture2D, Sampled: semantic.ScalarFloat},
}

func isSL(obj types.Object) bool {
	return obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == SLPath
}

// goType maps a Go type to its shader type. Types without a GPU
// representation map to semantic.HostType so that errors can name them
// when they reach shader code. An empty tuple maps to nil.
func (l *lowerer) goType(t types.Type) semantic.Type {
	switch t := t.(type) {
	case *types.Alias:
		return l.goType(types.Unalias(t))
	case *types.Basic:
		return basicType(t)
	case *types.Named:
		obj := t.Obj()
		if isSL(obj) {
			if st, ok := slTypes[obj.Name()]; ok {
				return st
			}
		}
		if st, ok := l.structs[obj]; ok {
			return st
		}
		if t.TypeArgs().Len() > 0 {
			break
		}
		if _, isStruct := t.Underlying().(*types.Struct); isStruct {
			break
		}
		return l.goType(t.Underlying())
	case *types.Pointer:
		if n, ok := t.Elem().(*types.Named); ok && isSL(n.Obj()) && n.Obj().Name() == "Texture2D" {
			return slTypes["Texture2D"]
		}
	case *types.Array:
		if t.Len() > 0 && t.Len() <= 1<<32-1 {
			return semantic.ArrayType{Elem: l.goType(t.Elem()), Len: uint32(t.Len())}
		}
	case *types.Slice:
		return semantic.ArrayType{Elem: l.goType(t.Elem())}
	case *types.Tuple:
		switch t.Len() {
		case 0:
			return nil
		case 1:
			return l.goType(t.At(0).Type())
		}
	}
	return semantic.HostType{Name: t.String()}
}

func basicType(t *types.Basic) semantic.Type {
	switch t.Kind() {
	case types.Bool, types.UntypedBool:
		return semantic.Bool
	case types.Int, types.Int32, types.UntypedInt, types.UntypedRune:
		return semantic.Int32
	case types.Uint, types.Uint32:
		return semantic.Uint32
	case types.Int64:
		return semantic.Int64
	case types.Uint64:
		return semantic.Uint64
	case types.Float32, types.UntypedFloat:
		return semantic.Float32
	case types.Float64:
		return semantic.Float64
	}
	return semantic.HostType{Name: t.Name()}
}

func isHost(t semantic.Type) bool {
	switch t := t.(type) {
	case semantic.HostType:
		return true
	case semantic.ArrayType:
		return isHost(t.Elem)
	}
	return false
}

// fields fills in the members of a struct type. Stage IO bindings come
// from `shader:"..."` tags.
func (l *lowerer) fields(st *semantic.StructType, gs *types.Struct) {
	st.Fields = make([]semantic.Field, 0, gs.NumFields())
	for i := range gs.NumFields() {
		f := gs.Field(i)
		field := semantic.Field{Name: f.Name(), Type: l.goType(f.Type())}
		if tag, ok := reflect.StructTag(gs.Tag(i)).Lookup(Tool); ok {
			b, err := ParseBinding(tag)
			if err != nil {
				l.errorf(f.Pos(), "", "field %s.%s: %v", st.Name, f.Name(), err)
			} else {
				field.Binding = b
			}
		}
		st.Fields = append(st.Fields, field)
	}
}
