// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/gofront"
	"github.com/gogpu/shadergen/semantic"
)

func load(t *testing.T, pkg string) (*semantic.Program, error) {
	t.Helper()
	return gofront.Load(gofront.Config{Dir: "testdata"}, "./"+pkg)
}

func lookup(t *testing.T, p *semantic.Program, typ, name string) *semantic.Function {
	t.Helper()
	f, ok := p.LookupFunction(semantic.FunctionRef{DeclaringType: typ, Name: name})
	require.True(t, ok, "%s.%s", typ, name)
	return f
}

func TestLoadScene(t *testing.T) {
	p, err := load(t, "scene")
	require.NoError(t, err)

	var types []string
	for _, st := range p.Types() {
		types = append(types, st.Name)
	}
	assert.Equal(t, []string{"Camera", "VertexIn", "Varyings", "Particle", "Particles"}, types)

	var globals []string
	for _, g := range p.Globals() {
		globals = append(globals, g.Name)
	}
	assert.Equal(t, []string{"Cam", "Albedo", "Linear", "Tint", "Time", "Store"}, globals)

	cam, _ := p.LookupGlobal("Cam")
	assert.Equal(t, semantic.SpaceUniform, cam.Space)
	assert.Equal(t, &semantic.ResourceBinding{Group: 0, Binding: 0}, cam.Binding)
	tint, _ := p.LookupGlobal("Tint")
	assert.True(t, tint.IsLooseUniform())
	assert.Nil(t, tint.Binding)
	albedo, _ := p.LookupGlobal("Albedo")
	assert.Equal(t, semantic.TextureType{Dim: semantic.Texture2D, Sampled: semantic.ScalarFloat}, albedo.Type)
	store, _ := p.LookupGlobal("Store")
	assert.Equal(t, semantic.SpaceStorage, store.Space)
	assert.False(t, store.ReadOnly)

	particles, _ := p.LookupType("Particles")
	assert.Equal(t, semantic.ArrayType{Elem: mustType(t, p, "Particle")}, particles.Fields[0].Type)
	assert.True(t, particles.Usage.Has(semantic.UsageStorage))

	varyings, _ := p.LookupType("Varyings")
	id, _, ok := varyings.Field("ID")
	require.True(t, ok)
	assert.Equal(t, semantic.LocationBinding{Location: 2, Flat: true}, id.Binding)
	clip, _, _ := varyings.Field("Clip")
	assert.Equal(t, semantic.BuiltinBinding{Builtin: semantic.BuiltinPosition}, clip.Binding)

	vs := lookup(t, p, "Foo", "VS")
	assert.Equal(t, semantic.StageVertex, vs.Stage)
	assert.Equal(t, &semantic.FunctionRef{DeclaringType: "Foo", Name: "FS"}, vs.Pair)
	require.Len(t, vs.Params, 2)
	assert.Equal(t, semantic.BuiltinBinding{Builtin: semantic.BuiltinInstanceIndex}, vs.Params[1].Binding)
	assert.Same(t, varyings, vs.Result)
	assert.NoError(t, vs.Unsupported)

	fs := lookup(t, p, "Foo", "FS")
	assert.Equal(t, semantic.StageFragment, fs.Stage)
	assert.Equal(t, semantic.LocationBinding{Location: 0}, fs.ResultBinding)
	require.NotEmpty(t, fs.Body)
	ifs, ok := fs.Body[0].(*semantic.If)
	require.True(t, ok)
	assert.Equal(t, semantic.Block{&semantic.Discard{}}, ifs.Then)

	cs := lookup(t, p, "Foo", "CS")
	assert.Equal(t, semantic.StageCompute, cs.Stage)
	assert.Equal(t, [3]uint32{64, 1, 1}, cs.Workgroup)
	assert.NoError(t, cs.Unsupported)
	var loops int
	semantic.Inspect(cs.Body, func(n any) bool {
		if _, ok := n.(*semantic.For); ok {
			loops++
		}
		return true
	})
	assert.Equal(t, 1, loops)

	shade := lookup(t, p, "scene", "shade")
	assert.Equal(t, semantic.StageNone, shade.Stage)
	require.NoError(t, shade.Unsupported)
	ret, ok := shade.Body[len(shade.Body)-1].(*semantic.Return)
	require.True(t, ok)
	call, ok := ret.Value.(*semantic.IntrinsicCall)
	require.True(t, ok)
	assert.Equal(t, semantic.IntrinsicMax, call.Fun)
	bias, ok := call.Args[1].(*semantic.Literal)
	require.True(t, ok)
	assert.Equal(t, semantic.Float32, bias.Scalar)
	assert.InDelta(t, 0.1, bias.Float, 1e-9)

	describe := lookup(t, p, "scene", "Describe")
	require.Error(t, describe.Unsupported)
	var ferr *gofront.Error
	require.ErrorAs(t, describe.Unsupported, &ferr)
	assert.Equal(t, "scene.Describe", ferr.Func)
	assert.True(t, strings.HasSuffix(ferr.Pos.Filename, "scene.go"))
}

func mustType(t *testing.T, p *semantic.Program, name string) *semantic.StructType {
	t.Helper()
	st, ok := p.LookupType(name)
	require.True(t, ok, name)
	return st
}

func TestSceneGenerates(t *testing.T) {
	p, err := load(t, "scene")
	require.NoError(t, err)

	opts := shadergen.DefaultOptions()
	opts.Backends = []backend.Kind{backend.KindHLSL, backend.KindGLSL450}
	res, err := shadergen.Generate(p, opts)
	require.NoError(t, err)

	sets, err := res.GetOutput(backend.KindGLSL450)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "Foo.VS+Foo.FS", sets[0].Name)
	assert.Equal(t, "Foo.CS", sets[1].Name)
	assert.Contains(t, sets[0].FragmentSource, "discard;")
	assert.Contains(t, sets[0].FragmentSource, "scene_shade(")
	assert.Contains(t, sets[1].ComputeSource, "local_size_x = 64")
}

func TestUnsupportedReached(t *testing.T) {
	p, err := load(t, "unsupported")
	require.NoError(t, err)

	weight := lookup(t, p, "unsupported", "weight")
	require.Error(t, weight.Unsupported)
	assert.Contains(t, weight.Unsupported.Error(), "range over []float32 is not supported")

	_, err = discover.Discover(p)
	assert.ErrorIs(t, err, discover.ErrUnsupported)
}

func TestMalformedAnnotations(t *testing.T) {
	_, err := load(t, "badtag")
	require.Error(t, err)

	var el gofront.Errors
	require.True(t, errors.As(err, &el))
	require.Len(t, el, 3)
	assert.Contains(t, el[0].Message, `location "red"`)
	assert.Contains(t, el[1].Message, "needs both group= and binding=")
	assert.Contains(t, el[2].Message, "unknown directive //shader:geometry")
	assert.Equal(t, "Baz.GS", el[2].Func)
}

func TestLoadMissingPackage(t *testing.T) {
	_, err := load(t, "nosuchpkg")
	assert.Error(t, err)
}

func TestUnknownKeysReportedInOrder(t *testing.T) {
	for range 5 {
		_, err := load(t, "badkeys")
		var el gofront.Errors
		require.True(t, errors.As(err, &el))
		require.Len(t, el, 2)
		assert.Contains(t, el[0].Message, `unknown key "alpha"`)
		assert.Contains(t, el[1].Message, `"aa" is not a parameter`)
		assert.Equal(t, "Qux.CS", el[1].Func)
	}
}

func TestConstantRange(t *testing.T) {
	p, err := load(t, "overflow")
	require.NoError(t, err)

	for _, name := range []string{"big", "small", "wide"} {
		f := lookup(t, p, "overflow", name)
		require.Error(t, f.Unsupported, name)
		assert.Contains(t, f.Unsupported.Error(), "overflows", name)
	}

	fits := lookup(t, p, "overflow", "fits")
	require.NoError(t, fits.Unsupported)
	ret := fits.Body[0].(*semantic.Return)
	assert.Equal(t, int64(2147483647), ret.Value.(*semantic.Literal).Int)
}

func TestSharedTypeNamesQualified(t *testing.T) {
	p, err := gofront.Load(gofront.Config{Dir: "testdata"}, "./multi/a", "./multi/b")
	require.NoError(t, err)

	_, ok := p.LookupType("Light")
	assert.False(t, ok)
	a, ok := p.LookupType("a_Light")
	require.True(t, ok)
	assert.Equal(t, "Color", a.Fields[0].Name)
	b, ok := p.LookupType("b_Light")
	require.True(t, ok)
	assert.Equal(t, "Dir", b.Fields[0].Name)
	_, ok = p.LookupType("Only")
	assert.True(t, ok)
}
