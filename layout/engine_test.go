// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen/semantic"
)

func TestInfoPrimitives(t *testing.T) {
	vec3 := semantic.Vec(3)
	tests := []struct {
		name   string
		typ    semantic.Type
		family Family
		want   AlignmentInfo
	}{
		{"f32", semantic.Float32, FamilyHLSL, AlignmentInfo{Size: 4, Alignment: 4}},
		{"bool is 4 bytes", semantic.Bool, FamilyMetal, AlignmentInfo{Size: 4, Alignment: 4}},
		{"f64 std430", semantic.Float64, FamilyStd430, AlignmentInfo{Size: 8, Alignment: 8}},
		{"vec2", semantic.Vec(2), FamilyStd140, AlignmentInfo{Size: 8, Alignment: 8}},
		{"vec3 hlsl", vec3, FamilyHLSL, AlignmentInfo{Size: 12, Alignment: 16}},
		{"vec3 std430", vec3, FamilyStd430, AlignmentInfo{Size: 12, Alignment: 16}},
		{"vec3 metal", vec3, FamilyMetal, AlignmentInfo{Size: 16, Alignment: 16}},
		{"vec4", semantic.Vec(4), FamilyMetal, AlignmentInfo{Size: 16, Alignment: 16}},
		{"mat4 hlsl", semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 4}, FamilyHLSL,
			AlignmentInfo{Size: 64, Alignment: 16, Stride: 16}},
		{"mat3 std430", semantic.MatrixType{Scalar: semantic.Float32, Columns: 3, Rows: 3}, FamilyStd430,
			AlignmentInfo{Size: 48, Alignment: 16, Stride: 16}},
		{"mat2 std140", semantic.MatrixType{Scalar: semantic.Float32, Columns: 2, Rows: 2}, FamilyStd140,
			AlignmentInfo{Size: 32, Alignment: 16, Stride: 16}},
		{"mat2 std430", semantic.MatrixType{Scalar: semantic.Float32, Columns: 2, Rows: 2}, FamilyStd430,
			AlignmentInfo{Size: 16, Alignment: 8, Stride: 8}},
		{"f32 array hlsl", semantic.ArrayType{Elem: semantic.Float32, Len: 4}, FamilyHLSL,
			AlignmentInfo{Size: 52, Alignment: 16, Stride: 16}},
		{"f32 array std140", semantic.ArrayType{Elem: semantic.Float32, Len: 4}, FamilyStd140,
			AlignmentInfo{Size: 64, Alignment: 16, Stride: 16}},
		{"mat3 hlsl", semantic.MatrixType{Scalar: semantic.Float32, Columns: 3, Rows: 3}, FamilyHLSL,
			AlignmentInfo{Size: 44, Alignment: 16, Stride: 16}},
		{"f32 array std430", semantic.ArrayType{Elem: semantic.Float32, Len: 4}, FamilyStd430,
			AlignmentInfo{Size: 16, Alignment: 4, Stride: 4}},
		{"vec3 array metal", semantic.ArrayType{Elem: vec3, Len: 2}, FamilyMetal,
			AlignmentInfo{Size: 32, Alignment: 16, Stride: 16}},
		{"runtime array", semantic.ArrayType{Elem: semantic.Vec(4)}, FamilyStd430,
			AlignmentInfo{Size: 16, Alignment: 16, Stride: 16, RuntimeSized: true}},
	}
	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Info(tt.typ, tt.family)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got.Alignment%4)
		})
	}
}

func TestInfoErrors(t *testing.T) {
	tests := []struct {
		name   string
		typ    semantic.Type
		family Family
		kind   ErrorKind
	}{
		{"f64 in metal", semantic.Float64, FamilyMetal, ErrUnsupportedScalar},
		{"i64 in std140", semantic.Int64, FamilyStd140, ErrUnsupportedScalar},
		{"u64 vector in std430", semantic.VectorType{Scalar: semantic.Uint64, Size: 2}, FamilyStd430, ErrUnsupportedScalar},
		{"host type", semantic.HostType{Name: "string"}, FamilyHLSL, ErrUnrepresentable},
		{"texture", semantic.TextureType{Dim: semantic.Texture2D, Sampled: semantic.ScalarFloat}, FamilyHLSL, ErrResourceInBuffer},
		{"sampler", semantic.SamplerType{}, FamilyMetal, ErrResourceInBuffer},
		{"five lanes", semantic.VectorType{Scalar: semantic.Float32, Size: 5}, FamilyHLSL, ErrInvalidType},
		{"nested runtime array", semantic.ArrayType{Elem: semantic.ArrayType{Elem: semantic.Float32}, Len: 2}, FamilyStd430, ErrRuntimeArray},
	}
	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Info(tt.typ, tt.family)
			var lerr *Error
			require.True(t, errors.As(err, &lerr), "want *layout.Error, got %v", err)
			assert.Equal(t, tt.kind, lerr.Kind)
			assert.Equal(t, tt.family, lerr.Family)
		})
	}
}

func TestHostTypeInBufferStruct(t *testing.T) {
	s := &semantic.StructType{
		Name:  "Params",
		Usage: semantic.UsageUniform,
		Fields: []semantic.Field{
			{Name: "Scale", Type: semantic.Float32},
			{Name: "Label", Type: semantic.HostType{Name: "string"}},
		},
	}
	_, err := NewEngine().Layout(s, FamilyHLSL)
	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, ErrUnrepresentable, lerr.Kind)
	assert.Contains(t, err.Error(), "Params.Label")
}

func TestLayoutDeclarationOrder(t *testing.T) {
	s := &semantic.StructType{
		Name: "Light",
		Fields: []semantic.Field{
			{Name: "Intensity", Type: semantic.Float32},
			{Name: "Color", Type: semantic.Vec(3)},
			{Name: "Range", Type: semantic.Float32},
		},
	}
	tests := []struct {
		family  Family
		offsets map[string]uint32
		size    uint32
	}{
		{FamilyHLSL, map[string]uint32{"Intensity": 0, "Color": 16, "Range": 28}, 32},
		{FamilyStd430, map[string]uint32{"Intensity": 0, "Color": 16, "Range": 28}, 32},
		{FamilyMetal, map[string]uint32{"Intensity": 0, "Color": 16, "Range": 32}, 48},
	}
	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			sl, err := e.Layout(s, tt.family)
			require.NoError(t, err)
			require.NoError(t, sl.Validate())
			assert.Equal(t, tt.size, sl.Size)
			assert.Equal(t, uint32(16), sl.Alignment)
			for name, off := range tt.offsets {
				p, ok := sl.Field(name)
				require.True(t, ok, name)
				assert.Equal(t, off, p.Offset, name)
			}
			fields := sl.Fields()
			require.Len(t, fields, 3)
			assert.Equal(t, []string{"Intensity", "Color", "Range"},
				[]string{fields[0].Name, fields[1].Name, fields[2].Name})
		})
	}
}

func TestLayoutPaddingNames(t *testing.T) {
	s := &semantic.StructType{
		Name: "P",
		Fields: []semantic.Field{
			{Name: "A", Type: semantic.Float32},
			{Name: "B", Type: semantic.Vec(4)},
		},
	}
	sl, err := NewEngine().Layout(s, FamilyStd140)
	require.NoError(t, err)
	var pads []string
	for _, p := range sl.Placements {
		if p.Padding {
			pads = append(pads, p.Name)
			assert.Equal(t, semantic.Uint32, p.Type)
		}
	}
	assert.Equal(t, []string{"_pad0", "_pad1", "_pad2"}, pads)
	assert.Equal(t, uint32(32), sl.Size)
}

func TestLayoutRuntimeArray(t *testing.T) {
	particles := &semantic.StructType{
		Name:  "Particles",
		Usage: semantic.UsageStorage,
		Fields: []semantic.Field{
			{Name: "Count", Type: semantic.Uint32},
			{Name: "Data", Type: semantic.ArrayType{Elem: semantic.Vec(4)}},
		},
	}
	e := NewEngine()
	sl, err := e.Layout(particles, FamilyStd430)
	require.NoError(t, err)
	assert.True(t, sl.RuntimeArray)
	p, _ := sl.Field("Data")
	assert.Equal(t, uint32(16), p.Offset)
	require.NoError(t, sl.Validate())

	t.Run("not last", func(t *testing.T) {
		s := &semantic.StructType{
			Name:  "Bad",
			Usage: semantic.UsageStorage,
			Fields: []semantic.Field{
				{Name: "Data", Type: semantic.ArrayType{Elem: semantic.Float32}},
				{Name: "Count", Type: semantic.Uint32},
			},
		}
		_, err := e.Layout(s, FamilyStd430)
		var lerr *Error
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, ErrRuntimeArray, lerr.Kind)
	})

	t.Run("uniform", func(t *testing.T) {
		s := &semantic.StructType{
			Name:   "UniformTail",
			Usage:  semantic.UsageUniform,
			Fields: particles.Fields,
		}
		_, err := e.Layout(s, FamilyStd140)
		var lerr *Error
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, ErrRuntimeArray, lerr.Kind)
	})
}

func TestLayoutNestedStruct(t *testing.T) {
	inner := &semantic.StructType{
		Name:   "Inner",
		Fields: []semantic.Field{{Name: "V", Type: semantic.Vec(2)}},
	}
	outer := &semantic.StructType{
		Name: "Outer",
		Fields: []semantic.Field{
			{Name: "A", Type: semantic.Float32},
			{Name: "In", Type: inner},
		},
	}
	e := NewEngine()

	sl, err := e.Layout(outer, FamilyHLSL)
	require.NoError(t, err)
	p, _ := sl.Field("In")
	assert.Equal(t, uint32(16), p.Offset, "HLSL structs start on a register")

	sl, err = e.Layout(outer, FamilyStd430)
	require.NoError(t, err)
	p, _ = sl.Field("In")
	assert.Equal(t, uint32(8), p.Offset)
	assert.Equal(t, uint32(16), sl.Size)
}

func TestInfoConcurrent(t *testing.T) {
	e := NewEngine()
	types := []semantic.Type{
		semantic.Vec(3),
		semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 4},
		semantic.ArrayType{Elem: semantic.Vec(2), Len: 8},
	}
	want := make([]AlignmentInfo, len(types))
	for i, typ := range types {
		info, err := NewEngine().Info(typ, FamilyHLSL)
		require.NoError(t, err)
		want[i] = info
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, typ := range types {
				info, err := e.Info(typ, FamilyHLSL)
				assert.NoError(t, err)
				assert.Equal(t, want[i], info)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, e.Keys(FamilyHLSL), len(types)+1) // vec4 column type is not cached, vec2 element is
}

func TestFamiliesDoNotShareEntries(t *testing.T) {
	e := NewEngine()
	_, err := e.Info(semantic.Vec(3), FamilyMetal)
	require.NoError(t, err)
	before := e.Entries(FamilyHLSL)

	_, err = e.Info(semantic.Vec(3), FamilyStd430)
	require.NoError(t, err)
	assert.Equal(t, before, e.Entries(FamilyHLSL))
	assert.Equal(t, uint32(16), e.Entries(FamilyMetal)["vec3<f32>"].Size)
	assert.Equal(t, uint32(12), e.Entries(FamilyStd430)["vec3<f32>"].Size)
}
