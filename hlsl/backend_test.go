// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/internal/shadertest"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

func fooSets(t *testing.T) (*shadertest.Fixture, *discover.Set, *discover.Set) {
	t.Helper()
	fx := shadertest.Foo()
	sets, err := discover.Discover(fx.Program)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	return fx, sets[0], sets[1]
}

// assertContains checks every expected fragment against the output.
func assertContains(t *testing.T, code string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		assert.Contains(t, code, e)
	}
}

func TestTranslatePair(t *testing.T) {
	_, pair, _ := fooSets(t)
	src, err := New(layout.NewEngine(), nil).Translate(pair)
	require.NoError(t, err)

	assert.Equal(t, "Foo.VS+Foo.FS", src.Name)
	assert.Equal(t, backend.KindHLSL, src.Backend)
	assert.Empty(t, src.ComputeSource)
	assert.Equal(t, []semantic.Stage{semantic.StageVertex, semantic.StageFragment}, src.Stages())

	assertContains(t, src.VertexSource,
		"row_major float4x4 ViewProj;",
		"cbuffer Cam_block : register(b0, space0) {",
		"float Foo_shade(float3 n) {",
		"return max(dot(n, float3(0.0, 0.0, 1.0)), 0.0);",
		"VertexOut Foo_VS(VertexIn in_) {",
		"VertexOut out_ = (VertexOut)0;",
		"out_.Position = mul(float4(in_.Position, 1.0), Cam.ViewProj);",
		"float3 Position : TEXCOORD0;",
		"float4 Position : SV_Position;",
		"float Shade : TEXCOORD1;",
		"VertexOutput vs_main(VertexInput input) {",
		"VertexOut _r = Foo_VS(_arg0);",
		"output.Position = _r.Position;",
	)
	assert.NotContains(t, src.VertexSource, "_Globals")

	assertContains(t, src.FragmentSource,
		"Texture2D<float4> Albedo : register(t0, space1);",
		"SamplerState Linear : register(s1, space1);",
		"cbuffer _Globals : register(b12, space0) {",
		"float4 Tint;",
		"float Exposure;",
		"float4 c = Albedo.Sample(Linear, in_.UV);",
		"if ((in_.Shade < 0.01)) {",
		"discard;",
		"return ((c * Tint) * (in_.Shade * Exposure));",
		"float4 value : SV_Target0;",
		"FragmentOutput fs_main(FragmentInput input) {",
	)
	assert.NotContains(t, src.FragmentSource, "Cam_block")

	assert.Equal(t, "register(b0, space0)", src.Bindings["Cam"])
	assert.Equal(t, "register(t0, space1)", src.Bindings["Albedo"])
	assert.Equal(t, "register(b12, space0)", src.Bindings[backend.GlobalsBlock])

	ep, ok := src.EntryPoint(semantic.StageFragment)
	require.True(t, ok)
	assert.Equal(t, "fs_main", ep.Name)
	assert.Equal(t, "Foo.FS", ep.Function.String())
}

func TestTranslateCompute(t *testing.T) {
	_, _, compute := fooSets(t)
	src, err := New(layout.NewEngine(), nil).Translate(compute)
	require.NoError(t, err)

	assert.Empty(t, src.VertexSource)
	assertContains(t, src.ComputeSource,
		"RWStructuredBuffer<Particle> Store : register(u1, space0);",
		"float4 Foo_damp(float4 v) {",
		"for (int i = 0; (i < 4); i++) {",
		"v *= 0.5;",
		"uint idx = id.x;",
		"Store[idx].Vel = Foo_damp(Store[idx].Vel);",
		"Store[idx].Pos += (Store[idx].Vel * Cam.Time);",
		"uint3 id : SV_DispatchThreadID;",
		"[numthreads(64, 1, 1)]",
		"void cs_main(ComputeInput input) {",
		"Foo_CS(_arg0);",
	)
	assert.NotContains(t, src.ComputeSource, "struct Particles")
}

func TestShaderModel50RejectsSpaces(t *testing.T) {
	_, pair, _ := fooSets(t)
	opts := DefaultOptions()
	opts.ShaderModel = ShaderModel5_0
	_, err := New(layout.NewEngine(), opts).Translate(pair)
	require.Error(t, err)

	var berr *backend.Error
	require.True(t, errors.As(err, &berr))
	assert.True(t, berr.IsCapability())
	assert.Equal(t, backend.KindHLSL, berr.Backend)
	assert.Equal(t, "Foo.VS+Foo.FS", berr.Set)
}

func TestBindingMapOverride(t *testing.T) {
	_, pair, _ := fooSets(t)
	opts := DefaultOptions()
	opts.ShaderModel = ShaderModel5_0
	opts.BindingMap[semantic.ResourceBinding{Group: 1, Binding: 0}] = BindTarget{Register: 3}
	opts.BindingMap[semantic.ResourceBinding{Group: 1, Binding: 1}] = BindTarget{Register: 2}
	src, err := New(layout.NewEngine(), opts).Translate(pair)
	require.NoError(t, err)
	assertContains(t, src.FragmentSource,
		"Texture2D<float4> Albedo : register(t3);",
		"SamplerState Linear : register(s2);",
		"cbuffer _Globals : register(b12) {",
	)
}

func TestStorageStructWithHeader(t *testing.T) {
	p := semantic.NewProgram()
	list := &semantic.StructType{Name: "List", Fields: []semantic.Field{
		{Name: "Count", Type: semantic.Uint32},
		{Name: "Items", Type: semantic.ArrayType{Elem: shadertest.Vec4}},
	}}
	shadertest.Must(p.AddType(list))
	g := &semantic.Global{Name: "Data", Type: list, Space: semantic.SpaceStorage,
		Binding: &semantic.ResourceBinding{}}
	shadertest.Must(p.AddGlobal(g))
	shadertest.Must(p.AddFunction(&semantic.Function{
		DeclaringType: "K", Name: "Main", Stage: semantic.StageCompute, Workgroup: [3]uint32{1, 1, 1},
		Body: semantic.Block{
			&semantic.Assign{Target: shadertest.Field(shadertest.Global(g), "Count"), Value: semantic.UintLit(0)},
		},
	}))
	sets, err := discover.Discover(p)
	require.NoError(t, err)
	_, err = New(layout.NewEngine(), nil).Translate(sets[0])

	var berr *backend.Error
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, backend.ErrCapability, berr.Kind)
	assert.Equal(t, "List", berr.Type)
}

func TestInt64NeedsSM6(t *testing.T) {
	d := newDialect(ShaderModel5_1)
	_, err := d.Scalar(semantic.ScalarType{Kind: semantic.ScalarSint, Width: 8})
	require.Error(t, err)

	d = newDialect(ShaderModel6_0)
	s, err := d.Scalar(semantic.ScalarType{Kind: semantic.ScalarSint, Width: 8})
	require.NoError(t, err)
	assert.Equal(t, "int64_t", s)

	lit, err := d.Literal(&semantic.Literal{Scalar: semantic.ScalarType{Kind: semantic.ScalarFloat, Width: 8}, Float: 2})
	require.NoError(t, err)
	assert.Equal(t, "2.0L", lit)
}

func TestDialectSpelling(t *testing.T) {
	d := newDialect(ShaderModel5_1)
	assert.Equal(t, "mul(v, m)", d.MatrixMul("m", "v"))
	assert.Equal(t, "all(a == b)", d.VectorCompare(semantic.BinaryEq, "a", "b"))
	assert.Equal(t, "any(a != b)", d.VectorCompare(semantic.BinaryNe, "a", "b"))

	mix, err := d.Intrinsic(semantic.IntrinsicMix, []string{"a", "b", "t"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lerp(a, b, t)", mix)

	m, err := d.Matrix(semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 3})
	require.NoError(t, err)
	assert.Equal(t, "float4x3", m)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"color", "color"},
		{"in", "in_"},
		{"float4", "float4_"},
		{"SamplerState", "SamplerState_"},
		{"Texture2D", "Texture2D_"},
		{"PASS", "PASS_"},
		{"vs_main", "vs_main_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escape(tt.name), tt.name)
	}
}
