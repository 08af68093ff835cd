// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

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

func fooSets(t *testing.T) (*discover.Set, *discover.Set) {
	t.Helper()
	sets, err := discover.Discover(shadertest.Foo().Program)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	return sets[0], sets[1]
}

func assertContains(t *testing.T, code string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		assert.Contains(t, code, e)
	}
}

func TestTranslatePair(t *testing.T) {
	pair, _ := fooSets(t)
	src, err := New(layout.NewEngine(), nil).Translate(pair)
	require.NoError(t, err)
	assert.Equal(t, backend.KindMetal, src.Backend)

	assertContains(t, src.VertexSource,
		"// language: metal2.1",
		"#include <metal_stdlib>",
		"metal::float4x4 ViewProj;",
		"float Foo_shade(metal::float3 n, constant Camera& Cam) {",
		"return metal::max(metal::dot(n, metal::float3(0.0, 0.0, 1.0)), 0.0);",
		"VertexOut out = VertexOut {};",
		"out.Shade = Foo_shade(in.Position, Cam);",
		"struct vs_mainInput {",
		"metal::float3 Position [[attribute(0)]];",
		"metal::float2 UV [[attribute(1)]];",
		"metal::float4 Position [[position]];",
		"float Shade [[user(loc1)]];",
		"vertex vs_mainOutput vs_main(vs_mainInput input [[stage_in]], constant Camera& Cam [[buffer(0)]]) {",
		"VertexOut _r = Foo_VS(_arg0, Cam);",
	)
	assert.NotContains(t, src.VertexSource, "_Globals")

	assertContains(t, src.FragmentSource,
		"struct _Globals {",
		"metal::float4 Tint;",
		"metal::float4 c = Albedo.sample(Linear, in.UV);",
		"metal::discard_fragment();",
		"return ((c * _globals.Tint) * (in.Shade * _globals.Exposure));",
		"metal::float4 value [[color(0)]];",
		"metal::float4 Position [[position]]",
		"metal::texture2d<float> Albedo [[texture(0)]]",
		"metal::sampler Linear [[sampler(0)]]",
		"constant _Globals& _globals [[buffer(1)]]",
		"fragment fs_mainOutput fs_main(",
	)

	assert.Equal(t, "buffer(0)", src.Bindings["Cam"])
	assert.Equal(t, "texture(0)", src.Bindings["Albedo"])
	assert.Equal(t, "sampler(0)", src.Bindings["Linear"])
}

func TestTranslateCompute(t *testing.T) {
	_, compute := fooSets(t)
	src, err := New(layout.NewEngine(), nil).Translate(compute)
	require.NoError(t, err)

	assertContains(t, src.ComputeSource,
		"Particle Items[1];",
		"metal::float4 Foo_damp(metal::float4 v, constant Camera& Cam, device Particles& Store) {",
		"Store.Items[idx].Vel = Foo_damp(Store.Items[idx].Vel, Cam, Store);",
		"metal::uint3 id [[thread_position_in_grid]]",
		"kernel void cs_main(",
		"device Particles& Store [[buffer(1)]]",
		"Foo_CS(_arg0, Cam, Store);",
	)
	assert.NotContains(t, src.ComputeSource, "_globals")
}

func TestDoubleUnsupported(t *testing.T) {
	p := semantic.NewProgram()
	g := &semantic.Global{Name: "Scale", Type: semantic.ScalarType{Kind: semantic.ScalarFloat, Width: 8}, Space: semantic.SpaceUniform}
	shadertest.Must(p.AddGlobal(g))
	shadertest.Must(p.AddFunction(&semantic.Function{
		DeclaringType: "K", Name: "Main", Stage: semantic.StageCompute, Workgroup: [3]uint32{1, 1, 1},
		Body: semantic.Block{
			&semantic.VarDecl{Name: "s", Ty: g.Type, Init: shadertest.Global(g)},
		},
	}))
	sets, err := discover.Discover(p)
	require.NoError(t, err)
	_, err = New(layout.NewEngine(), nil).Translate(sets[0])

	var berr *backend.Error
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, backend.ErrUnsupportedType, berr.Kind)
	assert.Equal(t, backend.KindMetal, berr.Backend)
}

func TestBoolMemberTail(t *testing.T) {
	d := newDialect(nil)
	lines := d.StructMember(layout.Placement{Name: "On", Type: semantic.Bool, Size: 4}, "bool On")
	assert.Equal(t, []string{"bool On", "char _On_tail[3]"}, lines)

	lines = d.StructMember(layout.Placement{Name: "V", Type: shadertest.Vec4, Size: 16}, "metal::float4 V")
	assert.Equal(t, []string{"metal::float4 V"}, lines)
}

func TestVersion(t *testing.T) {
	var v Version
	require.NoError(t, v.UnmarshalText([]byte("2.3")))
	assert.Equal(t, Version2_3, v)
	assert.True(t, v.AtLeast(Version2_1))
	assert.False(t, v.AtLeast(Version3_0))

	text, err := Version3_0.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "3.0", string(text))

	assert.Error(t, v.UnmarshalText([]byte("three")))
}

func TestEscape(t *testing.T) {
	d := newDialect(nil)
	assert.Equal(t, "color", d.Escape("color"))
	assert.Equal(t, "kernel_", d.Escape("kernel"))
	assert.Equal(t, "float4_", d.Escape("float4"))
	assert.Equal(t, "input_", d.Escape("input"))
	assert.Equal(t, "in", d.Escape("in"))
}
