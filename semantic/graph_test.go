// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Duplicates(t *testing.T) {
	p := NewProgram()
	require.NoError(t, p.AddType(&StructType{Name: "Light"}))
	assert.Error(t, p.AddType(&StructType{Name: "Light"}))
	assert.Error(t, p.AddType(&StructType{}))

	require.NoError(t, p.AddGlobal(&Global{Name: "Time", Type: Float32, Space: SpaceUniform}))
	assert.Error(t, p.AddGlobal(&Global{Name: "Time", Type: Float32, Space: SpaceUniform}))

	require.NoError(t, p.AddFunction(&Function{DeclaringType: "Foo", Name: "VS"}))
	assert.Error(t, p.AddFunction(&Function{DeclaringType: "Foo", Name: "VS"}))
	assert.NoError(t, p.AddFunction(&Function{DeclaringType: "Bar", Name: "VS"}))
}

func TestProgram_UsageMarking(t *testing.T) {
	inner := &StructType{Name: "Material", Fields: []Field{{Name: "Color", Type: Vec(4)}}}
	outer := &StructType{Name: "Scene", Fields: []Field{
		{Name: "Materials", Type: ArrayType{Elem: inner, Len: 4}},
	}}
	io := &StructType{Name: "VSOut", Fields: []Field{
		{Name: "Pos", Type: Vec(4), Binding: BuiltinBinding{Builtin: BuiltinPosition}},
	}}

	p := NewProgram()
	require.NoError(t, p.AddGlobal(&Global{Name: "scene", Type: outer, Space: SpaceUniform,
		Binding: &ResourceBinding{Binding: 0}}))
	require.NoError(t, p.AddFunction(&Function{DeclaringType: "Foo", Name: "VS", Stage: StageVertex, Result: io}))

	assert.True(t, outer.Usage.Has(UsageUniform))
	assert.True(t, inner.Usage.Has(UsageUniform), "nested structs inherit buffer usage")
	assert.True(t, inner.Usage.IsBuffer())
	assert.True(t, io.Usage.Has(UsageStageIO))
	assert.False(t, io.Usage.IsBuffer())
	assert.Equal(t, "uniform", outer.Usage.String())
}

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Float32, "f32"},
		{Int64, "i64"},
		{Bool, "bool"},
		{Vec(3), "vec3<f32>"},
		{MatrixType{Scalar: Float32, Columns: 4, Rows: 4}, "mat4x4<f32>"},
		{ArrayType{Elem: Uint32, Len: 8}, "array<u32,8>"},
		{ArrayType{Elem: Uint32}, "array<u32>"},
		{TextureType{Dim: Texture2D, Sampled: ScalarFloat}, "texture_2d<f32>"},
		{SamplerType{}, "sampler"},
		{HostType{Name: "string"}, "host:string"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestZero(t *testing.T) {
	st := &StructType{Name: "P", Fields: []Field{
		{Name: "A", Type: Vec(2)},
		{Name: "B", Type: ArrayType{Elem: Int32, Len: 2}},
	}}
	e, err := Zero(st)
	require.NoError(t, err)
	c, ok := e.(*Construct)
	require.True(t, ok)
	require.Len(t, c.Args, 2)
	assert.Len(t, c.Args[0].(*Construct).Args, 2)

	_, err = Zero(ArrayType{Elem: Float32})
	assert.Error(t, err)
	_, err = Zero(SamplerType{})
	assert.Error(t, err)
}

func TestInspect_VisitsCalls(t *testing.T) {
	call := &Call{Target: FunctionRef{DeclaringType: "Foo", Name: "helper"}, Ty: Float32}
	body := Block{
		&VarDecl{Name: "x", Ty: Float32, Init: &Binary{Op: BinaryAdd, X: call, Y: FloatLit(1), Ty: Float32}},
		&If{Cond: BoolLit(true), Then: Block{&Return{Value: &Ident{Name: "x", Ty: Float32}}}},
	}
	var calls []string
	Inspect(body, func(n any) bool {
		if c, ok := n.(*Call); ok {
			calls = append(calls, c.Target.String())
		}
		return true
	})
	assert.Equal(t, []string{"Foo.helper"}, calls)
}

func TestParseBuiltin(t *testing.T) {
	b, ok := ParseBuiltin("vertex_index")
	require.True(t, ok)
	assert.Equal(t, BuiltinVertexIndex, b)
	_, ok = ParseBuiltin("nope")
	assert.False(t, ok)
}
