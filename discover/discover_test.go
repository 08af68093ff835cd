// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package discover

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen/internal/shadertest"
	"github.com/gogpu/shadergen/semantic"
)

func names(sets []*Set) []string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = s.Name()
	}
	return out
}

func refs(fs []*semantic.Function) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Ref().String()
	}
	return out
}

func TestDiscoverFoo(t *testing.T) {
	fx := shadertest.Foo()
	sets, err := Discover(fx.Program)
	require.NoError(t, err)
	require.Equal(t, []string{"Foo.VS+Foo.FS", "Foo.CS"}, names(sets))

	pair := sets[0]
	require.NotNil(t, pair.Vertex)
	require.NotNil(t, pair.Fragment)
	assert.Nil(t, pair.Compute)
	assert.Equal(t, []string{"Foo.shade"}, refs(pair.Vertex.Functions))
	assert.Empty(t, pair.Fragment.Functions)
	assert.Equal(t, []*semantic.Global{fx.Cam}, pair.Vertex.Globals)
	assert.Equal(t, []*semantic.Global{fx.Albedo, fx.Linear, fx.Tint, fx.Exposure}, pair.Fragment.Globals)
	assert.Equal(t, []*semantic.StructType{fx.Camera, fx.VertexIn, fx.VertexOut}, pair.Vertex.Types)
	assert.Equal(t, []semantic.FunctionRef{fx.VS.Ref(), fx.FS.Ref()}, pair.EntryPoints())
	assert.Len(t, pair.Globals(), 5)

	cs := sets[1]
	require.NotNil(t, cs.Compute)
	assert.Equal(t, semantic.StageCompute, cs.Compute.Kind())
	assert.Equal(t, []string{"Foo.damp"}, refs(cs.Compute.Functions))
	assert.Equal(t, []*semantic.Global{fx.Cam, fx.Store}, cs.Compute.Globals)
	assert.Equal(t, []*semantic.StructType{fx.Camera, fx.Particle, fx.Particles}, cs.Compute.Types)
}

func TestNamingRoundTrip(t *testing.T) {
	p := semantic.NewProgram()
	vs := vertex("A", "VS", semantic.FunctionRef{DeclaringType: "B", Name: "FS"})
	fs := fragment("B", "FS")
	require.NoError(t, p.AddFunction(fs))
	require.NoError(t, p.AddFunction(vs))

	sets, err := Discover(p)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "A.VS+B.FS", sets[0].Name())
}

func TestDiscoverDeterministic(t *testing.T) {
	first, err := Discover(shadertest.Foo().Program)
	require.NoError(t, err)
	for range 10 {
		again, err := Discover(shadertest.Foo().Program)
		require.NoError(t, err)
		require.Equal(t, names(first), names(again))
		for i := range first {
			for j, st := range first[i].Stages() {
				other := again[i].Stages()[j]
				assert.Equal(t, refs(st.Functions), refs(other.Functions))
				assert.Equal(t, len(st.Types), len(other.Types))
				for k := range st.Types {
					assert.Equal(t, st.Types[k].Name, other.Types[k].Name)
				}
			}
		}
	}
}

func TestPairingErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *semantic.Program)
	}{
		{"no pair", func(p *semantic.Program) {
			vs := vertex("A", "VS", semantic.FunctionRef{})
			vs.Pair = nil
			shadertest.Must(p.AddFunction(vs))
		}},
		{"missing target", func(p *semantic.Program) {
			shadertest.Must(p.AddFunction(vertex("A", "VS", semantic.FunctionRef{DeclaringType: "A", Name: "Nope"})))
		}},
		{"target is not a fragment", func(p *semantic.Program) {
			helper := &semantic.Function{DeclaringType: "A", Name: "helper"}
			shadertest.Must(p.AddFunction(helper))
			shadertest.Must(p.AddFunction(vertex("A", "VS", helper.Ref())))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := semantic.NewProgram()
			tt.build(p)
			sets, err := Discover(p)
			assert.Empty(t, sets)
			require.ErrorIs(t, err, ErrPairing)
			var derr *Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, "A.VS", derr.Function.String())
		})
	}
}

func TestOrphanFragmentWarns(t *testing.T) {
	p := semantic.NewProgram()
	require.NoError(t, p.AddFunction(fragment("B", "FS")))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sets, err := Discover(p, WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, sets)
	assert.Contains(t, buf.String(), "B.FS")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestStageSignatureErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry func() []*semantic.Function
	}{
		{"vertex without position", func() []*semantic.Function {
			vs := vertex("A", "VS", semantic.FunctionRef{DeclaringType: "A", Name: "FS"})
			vs.ResultBinding = shadertest.Loc(0)
			return []*semantic.Function{vs, fragment("A", "FS")}
		}},
		{"fragment without location", func() []*semantic.Function {
			fs := fragment("A", "FS")
			fs.ResultBinding = shadertest.Builtin(semantic.BuiltinFragDepth)
			fs.Result = semantic.Float32
			return []*semantic.Function{vertex("A", "VS", fs.Ref()), fs}
		}},
		{"unbound input", func() []*semantic.Function {
			vs := vertex("A", "VS", semantic.FunctionRef{DeclaringType: "A", Name: "FS"})
			vs.Params = []semantic.Param{{Name: "p", Type: shadertest.Vec3}}
			return []*semantic.Function{vs, fragment("A", "FS")}
		}},
		{"fragment reads unwritten location", func() []*semantic.Function {
			fs := fragment("A", "FS")
			fs.Params = []semantic.Param{{Name: "uv", Type: shadertest.Vec2, Binding: shadertest.Loc(3)}}
			return []*semantic.Function{vertex("A", "VS", fs.Ref()), fs}
		}},
		{"compute with result", func() []*semantic.Function {
			cs := compute("A", "CS")
			cs.Result = semantic.Float32
			return []*semantic.Function{cs}
		}},
		{"compute without workgroup", func() []*semantic.Function {
			cs := compute("A", "CS")
			cs.Workgroup = [3]uint32{8, 0, 1}
			return []*semantic.Function{cs}
		}},
		{"compute location input", func() []*semantic.Function {
			cs := compute("A", "CS")
			cs.Params = []semantic.Param{{Name: "x", Type: semantic.Uint32, Binding: shadertest.Loc(0)}}
			return []*semantic.Function{cs}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := semantic.NewProgram()
			for _, f := range tt.entry() {
				require.NoError(t, p.AddFunction(f))
			}
			_, err := Discover(p)
			require.ErrorIs(t, err, ErrStageSignature)
			assert.Contains(t, err.Error(), "A.")
		})
	}
}

func TestClosureErrors(t *testing.T) {
	call := func(target string) semantic.Stmt {
		return &semantic.ExprStmt{X: &semantic.Call{Target: semantic.FunctionRef{DeclaringType: "A", Name: target}}}
	}

	t.Run("recursion", func(t *testing.T) {
		p := semantic.NewProgram()
		cs := compute("A", "CS")
		cs.Body = semantic.Block{call("ping")}
		require.NoError(t, p.AddFunction(&semantic.Function{DeclaringType: "A", Name: "ping", Body: semantic.Block{call("pong")}}))
		require.NoError(t, p.AddFunction(&semantic.Function{DeclaringType: "A", Name: "pong", Body: semantic.Block{call("ping")}}))
		require.NoError(t, p.AddFunction(cs))
		_, err := Discover(p)
		require.ErrorIs(t, err, ErrRecursion)
		assert.Contains(t, err.Error(), "A.ping -> A.pong -> A.ping")
	})

	t.Run("unresolved call", func(t *testing.T) {
		p := semantic.NewProgram()
		cs := compute("A", "CS")
		cs.Body = semantic.Block{call("missing")}
		require.NoError(t, p.AddFunction(cs))
		_, err := Discover(p)
		require.ErrorIs(t, err, ErrUnresolved)
	})

	t.Run("unresolved global", func(t *testing.T) {
		p := semantic.NewProgram()
		cs := compute("A", "CS")
		cs.Body = semantic.Block{&semantic.ExprStmt{X: &semantic.Ident{Name: "G", Kind: semantic.IdentGlobal, Ty: semantic.Float32}}}
		require.NoError(t, p.AddFunction(cs))
		_, err := Discover(p)
		require.ErrorIs(t, err, ErrUnresolved)
	})

	t.Run("unsupported helper", func(t *testing.T) {
		p := semantic.NewProgram()
		cs := compute("A", "CS")
		cs.Body = semantic.Block{call("bad")}
		require.NoError(t, p.AddFunction(&semantic.Function{DeclaringType: "A", Name: "bad", Unsupported: errors.New("goroutines are not supported")}))
		require.NoError(t, p.AddFunction(cs))
		_, err := Discover(p)
		require.ErrorIs(t, err, ErrUnsupported)
		assert.Contains(t, err.Error(), "goroutines")
	})

	t.Run("unreached unsupported function is ignored", func(t *testing.T) {
		p := semantic.NewProgram()
		require.NoError(t, p.AddFunction(&semantic.Function{DeclaringType: "A", Name: "bad", Unsupported: errors.New("maps")}))
		require.NoError(t, p.AddFunction(compute("A", "CS")))
		sets, err := Discover(p)
		require.NoError(t, err)
		assert.Len(t, sets, 1)
	})
}

func TestValidSetsSurviveErrors(t *testing.T) {
	fx := shadertest.Foo()
	bad := compute("Bar", "CS")
	bad.Workgroup = [3]uint32{}
	require.NoError(t, fx.Program.AddFunction(bad))

	sets, err := Discover(fx.Program)
	require.ErrorIs(t, err, ErrStageSignature)
	assert.Equal(t, []string{"Foo.VS+Foo.FS", "Foo.CS"}, names(sets))
}

func vertex(typ, name string, pair semantic.FunctionRef) *semantic.Function {
	return &semantic.Function{
		DeclaringType: typ,
		Name:          name,
		Result:        shadertest.Vec4,
		ResultBinding: shadertest.Builtin(semantic.BuiltinPosition),
		Stage:         semantic.StageVertex,
		Pair:          &pair,
	}
}

func fragment(typ, name string) *semantic.Function {
	return &semantic.Function{
		DeclaringType: typ,
		Name:          name,
		Result:        shadertest.Vec4,
		ResultBinding: shadertest.Loc(0),
		Stage:         semantic.StageFragment,
	}
}

func compute(typ, name string) *semantic.Function {
	return &semantic.Function{
		DeclaringType: typ,
		Name:          name,
		Stage:         semantic.StageCompute,
		Workgroup:     [3]uint32{1, 1, 1},
	}
}
