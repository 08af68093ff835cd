// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

import (
	"fmt"
	"strings"
)

// Type is a data shape of the host program.
// The variant set is closed; String returns a canonical spelling that
// doubles as the type's identity.
type Type interface {
	String() string
	isType()
}

// ScalarKind is the kind of a scalar value.
type ScalarKind uint8

const (
	ScalarSint  ScalarKind = iota // Signed integer
	ScalarUint                    // Unsigned integer
	ScalarFloat                   // Floating point
	ScalarBool                    // Boolean
)

// ScalarType is a single numeric or boolean value.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // Bytes: 4 or 8. Booleans are 4.
}

func (ScalarType) isType() {}

// String returns the canonical scalar spelling, e.g. "f32" or "u64".
func (s ScalarType) String() string {
	switch s.Kind {
	case ScalarBool:
		return "bool"
	case ScalarSint:
		return fmt.Sprintf("i%d", int(s.Width)*8)
	case ScalarUint:
		return fmt.Sprintf("u%d", int(s.Width)*8)
	case ScalarFloat:
		return fmt.Sprintf("f%d", int(s.Width)*8)
	default:
		return "invalid"
	}
}

// Common scalar types.
var (
	Bool    = ScalarType{Kind: ScalarBool, Width: 4}
	Int32   = ScalarType{Kind: ScalarSint, Width: 4}
	Uint32  = ScalarType{Kind: ScalarUint, Width: 4}
	Float32 = ScalarType{Kind: ScalarFloat, Width: 4}
	Int64   = ScalarType{Kind: ScalarSint, Width: 8}
	Uint64  = ScalarType{Kind: ScalarUint, Width: 8}
	Float64 = ScalarType{Kind: ScalarFloat, Width: 8}
)

// VectorType is a vector of 2 to 4 scalar lanes.
type VectorType struct {
	Scalar ScalarType
	Size   uint8
}

func (VectorType) isType() {}

func (v VectorType) String() string {
	return fmt.Sprintf("vec%d<%s>", v.Size, v.Scalar)
}

// Vec returns a float32 vector type with n lanes.
func Vec(n uint8) VectorType {
	return VectorType{Scalar: Float32, Size: n}
}

// MatrixType is a column-major matrix of floating point values.
type MatrixType struct {
	Scalar  ScalarType
	Columns uint8
	Rows    uint8
}

func (MatrixType) isType() {}

func (m MatrixType) String() string {
	return fmt.Sprintf("mat%dx%d<%s>", m.Columns, m.Rows, m.Scalar)
}

// Column returns the vector type of one matrix column.
func (m MatrixType) Column() VectorType {
	return VectorType{Scalar: m.Scalar, Size: m.Rows}
}

// ArrayType is a fixed-size array, or a runtime-sized array when Len is 0.
type ArrayType struct {
	Elem Type
	Len  uint32
}

func (ArrayType) isType() {}

func (a ArrayType) String() string {
	if a.Len == 0 {
		return fmt.Sprintf("array<%s>", a.Elem)
	}
	return fmt.Sprintf("array<%s,%d>", a.Elem, a.Len)
}

// IsRuntimeSized reports whether the array length is only known at run time.
func (a ArrayType) IsRuntimeSized() bool {
	return a.Len == 0
}

// Usage records how a struct type is used by the program.
type Usage uint8

const (
	// UsageData is a struct only used as plain data.
	UsageData Usage = 0

	// UsageUniform marks structs backing a uniform buffer.
	UsageUniform Usage = 1 << iota

	// UsageStorage marks structs backing a storage buffer.
	UsageStorage

	// UsageStageIO marks structs passed into or out of an entry point.
	UsageStageIO
)

// Has reports whether u contains any of the flags in f.
func (u Usage) Has(f Usage) bool {
	return u&f != 0
}

// IsBuffer reports whether the struct lives in GPU visible buffer memory
// and therefore needs explicit layout.
func (u Usage) IsBuffer() bool {
	return u.Has(UsageUniform | UsageStorage)
}

func (u Usage) String() string {
	if u == UsageData {
		return "data"
	}
	var parts []string
	if u.Has(UsageUniform) {
		parts = append(parts, "uniform")
	}
	if u.Has(UsageStorage) {
		parts = append(parts, "storage")
	}
	if u.Has(UsageStageIO) {
		parts = append(parts, "io")
	}
	return strings.Join(parts, "|")
}

// StructType is a named composite type with ordered fields.
type StructType struct {
	Name   string
	Fields []Field
	Usage  Usage
}

func (*StructType) isType() {}

func (s *StructType) String() string {
	return s.Name
}

// Field returns the field with the given name.
func (s *StructType) Field(name string) (Field, int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// Field is a struct member. Fields keep their declaration order.
type Field struct {
	Name    string
	Type    Type
	Binding Binding // Stage IO binding, nil for plain fields.
}

// SamplerType is a texture sampler handle.
type SamplerType struct {
	Comparison bool
}

func (SamplerType) isType() {}

func (s SamplerType) String() string {
	if s.Comparison {
		return "sampler_comparison"
	}
	return "sampler"
}

// TextureDim is the dimensionality of a texture.
type TextureDim uint8

const (
	Texture1D TextureDim = iota
	Texture2D
	Texture3D
	TextureCube
)

func (d TextureDim) String() string {
	switch d {
	case Texture1D:
		return "1d"
	case Texture2D:
		return "2d"
	case Texture3D:
		return "3d"
	case TextureCube:
		return "cube"
	default:
		return "invalid"
	}
}

// TextureType is a sampled texture handle.
type TextureType struct {
	Dim     TextureDim
	Sampled ScalarKind
}

func (TextureType) isType() {}

func (t TextureType) String() string {
	return fmt.Sprintf("texture_%s<%s>", t.Dim, ScalarType{Kind: t.Sampled, Width: 4})
}

// HostType is a host-only type with no GPU representation, such as a
// string, map, pointer or interface. It is kept in the graph so that
// errors can name it precisely when it reaches shader code.
type HostType struct {
	Name string
}

func (HostType) isType() {}

func (h HostType) String() string {
	return "host:" + h.Name
}

// ScalarOf returns the scalar type underlying scalars, vectors and matrices.
func ScalarOf(t Type) (ScalarType, bool) {
	switch t := t.(type) {
	case ScalarType:
		return t, true
	case VectorType:
		return t.Scalar, true
	case MatrixType:
		return t.Scalar, true
	default:
		return ScalarType{}, false
	}
}

// IsResource reports whether t is an opaque resource handle.
func IsResource(t Type) bool {
	switch t.(type) {
	case SamplerType, TextureType:
		return true
	default:
		return false
	}
}

// Equal reports whether two types are identical.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
