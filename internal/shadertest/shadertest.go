// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadertest builds semantic programs for tests.
package shadertest

import (
	"github.com/gogpu/shadergen/semantic"
)

// Frequently used types.
var (
	Vec2  = semantic.Vec(2)
	Vec3  = semantic.Vec(3)
	Vec4  = semantic.Vec(4)
	UVec3 = semantic.VectorType{Scalar: semantic.Uint32, Size: 3}
	Mat4  = semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 4}
)

// Must panics on err. Fixture construction errors are programming errors.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Global returns an identifier referring to g.
func Global(g *semantic.Global) *semantic.Ident {
	return &semantic.Ident{Name: g.Name, Kind: semantic.IdentGlobal, Ty: g.Type}
}

// Param returns an identifier referring to a parameter.
func Param(name string, t semantic.Type) *semantic.Ident {
	return &semantic.Ident{Name: name, Kind: semantic.IdentParam, Ty: t}
}

// Local returns an identifier referring to a local variable.
func Local(name string, t semantic.Type) *semantic.Ident {
	return &semantic.Ident{Name: name, Kind: semantic.IdentLocal, Ty: t}
}

// Field selects a struct field, resolving its type.
func Field(x semantic.Expr, name string) *semantic.Member {
	st := x.Type().(*semantic.StructType)
	f, _, ok := st.Field(name)
	if !ok {
		panic("shadertest: " + st.Name + " has no field " + name)
	}
	return &semantic.Member{X: x, Field: name, Ty: f.Type}
}

// Loc is a location binding.
func Loc(n uint32) semantic.Binding {
	return semantic.LocationBinding{Location: n}
}

// Builtin is a builtin binding.
func Builtin(b semantic.BuiltinValue) semantic.Binding {
	return semantic.BuiltinBinding{Builtin: b}
}

// Fixture is the program returned by Foo with handles to its parts.
type Fixture struct {
	Program *semantic.Program

	Camera    *semantic.StructType
	VertexIn  *semantic.StructType
	VertexOut *semantic.StructType
	Particle  *semantic.StructType
	Particles *semantic.StructType

	Cam      *semantic.Global
	Store    *semantic.Global
	Albedo   *semantic.Global
	Linear   *semantic.Global
	Tint     *semantic.Global
	Exposure *semantic.Global

	Shade *semantic.Function
	Damp  *semantic.Function
	VS    *semantic.Function
	FS    *semantic.Function
	CS    *semantic.Function
}

// Foo builds a program with the vertex entry point Foo.VS explicitly
// paired with Foo.FS, and the compute entry point Foo.CS. The stages use
// a uniform buffer, a storage buffer, a texture with a sampler, two loose
// uniforms and two helper functions.
func Foo() *Fixture {
	fx := &Fixture{Program: semantic.NewProgram()}
	p := fx.Program

	fx.Camera = &semantic.StructType{Name: "Camera", Fields: []semantic.Field{
		{Name: "ViewProj", Type: Mat4},
		{Name: "Eye", Type: Vec3},
		{Name: "Time", Type: semantic.Float32},
	}}
	fx.VertexIn = &semantic.StructType{Name: "VertexIn", Fields: []semantic.Field{
		{Name: "Position", Type: Vec3, Binding: Loc(0)},
		{Name: "UV", Type: Vec2, Binding: Loc(1)},
	}}
	fx.VertexOut = &semantic.StructType{Name: "VertexOut", Fields: []semantic.Field{
		{Name: "Position", Type: Vec4, Binding: Builtin(semantic.BuiltinPosition)},
		{Name: "UV", Type: Vec2, Binding: Loc(0)},
		{Name: "Shade", Type: semantic.Float32, Binding: Loc(1)},
	}}
	fx.Particle = &semantic.StructType{Name: "Particle", Fields: []semantic.Field{
		{Name: "Pos", Type: Vec4},
		{Name: "Vel", Type: Vec4},
	}}
	fx.Particles = &semantic.StructType{Name: "Particles", Fields: []semantic.Field{
		{Name: "Items", Type: semantic.ArrayType{Elem: fx.Particle}},
	}}
	for _, t := range []*semantic.StructType{fx.Camera, fx.VertexIn, fx.VertexOut, fx.Particle, fx.Particles} {
		Must(p.AddType(t))
	}

	fx.Cam = &semantic.Global{Name: "Cam", Type: fx.Camera, Space: semantic.SpaceUniform,
		Binding: &semantic.ResourceBinding{Group: 0, Binding: 0}}
	fx.Store = &semantic.Global{Name: "Store", Type: fx.Particles, Space: semantic.SpaceStorage,
		Binding: &semantic.ResourceBinding{Group: 0, Binding: 1}}
	fx.Albedo = &semantic.Global{Name: "Albedo", Type: semantic.TextureType{Dim: semantic.Texture2D, Sampled: semantic.ScalarFloat},
		Space: semantic.SpaceTexture, Binding: &semantic.ResourceBinding{Group: 1, Binding: 0}}
	fx.Linear = &semantic.Global{Name: "Linear", Type: semantic.SamplerType{},
		Space: semantic.SpaceSampler, Binding: &semantic.ResourceBinding{Group: 1, Binding: 1}}
	fx.Tint = &semantic.Global{Name: "Tint", Type: Vec4, Space: semantic.SpaceUniform}
	fx.Exposure = &semantic.Global{Name: "Exposure", Type: semantic.Float32, Space: semantic.SpaceUniform}
	for _, g := range []*semantic.Global{fx.Cam, fx.Store, fx.Albedo, fx.Linear, fx.Tint, fx.Exposure} {
		Must(p.AddGlobal(g))
	}

	// func (Foo) shade(n sl.Vec3) float32 { return max(dot(n, Vec3{0,0,1}), 0) }
	n := Param("n", Vec3)
	up := &semantic.Construct{Ty: Vec3, Args: []semantic.Expr{
		semantic.FloatLit(0), semantic.FloatLit(0), semantic.FloatLit(1),
	}}
	fx.Shade = &semantic.Function{
		DeclaringType: "Foo", Name: "shade",
		Params: []semantic.Param{{Name: "n", Type: Vec3}},
		Result: semantic.Float32,
		Body: semantic.Block{
			&semantic.Return{Value: &semantic.IntrinsicCall{Fun: semantic.IntrinsicMax, Ty: semantic.Float32, Args: []semantic.Expr{
				&semantic.IntrinsicCall{Fun: semantic.IntrinsicDot, Args: []semantic.Expr{n, up}, Ty: semantic.Float32},
				semantic.FloatLit(0),
			}}},
		},
	}

	// func (Foo) damp(v sl.Vec4) sl.Vec4 { for i := 0; i < 4; i++ { v = v.Scale(0.5) }; return v }
	v := Param("v", Vec4)
	i := Local("i", semantic.Int32)
	fx.Damp = &semantic.Function{
		DeclaringType: "Foo", Name: "damp",
		Params: []semantic.Param{{Name: "v", Type: Vec4}},
		Result: Vec4,
		Body: semantic.Block{
			&semantic.For{
				Init: &semantic.VarDecl{Name: "i", Ty: semantic.Int32, Init: semantic.IntLit(0)},
				Cond: &semantic.Binary{Op: semantic.BinaryLt, X: i, Y: semantic.IntLit(4), Ty: semantic.Bool},
				Post: &semantic.IncDec{Target: i, Inc: true},
				Body: semantic.Block{
					&semantic.Assign{Target: v, Op: semantic.BinaryMul, Compound: true, Value: semantic.FloatLit(0.5)},
				},
			},
			&semantic.Return{Value: v},
		},
	}

	// func (Foo) VS(in VertexIn) VertexOut
	in := Param("in", fx.VertexIn)
	out := Local("out", fx.VertexOut)
	fx.VS = &semantic.Function{
		DeclaringType: "Foo", Name: "VS",
		Params: []semantic.Param{{Name: "in", Type: fx.VertexIn}},
		Result: fx.VertexOut,
		Stage:  semantic.StageVertex,
		Pair:   &semantic.FunctionRef{DeclaringType: "Foo", Name: "FS"},
		Body: semantic.Block{
			&semantic.VarDecl{Name: "out", Ty: fx.VertexOut},
			&semantic.Assign{Target: Field(out, "Position"), Value: &semantic.Binary{
				Op: semantic.BinaryMul, Ty: Vec4,
				X: Field(Global(fx.Cam), "ViewProj"),
				Y: &semantic.Construct{Ty: Vec4, Args: []semantic.Expr{Field(in, "Position"), semantic.FloatLit(1)}},
			}},
			&semantic.Assign{Target: Field(out, "UV"), Value: Field(in, "UV")},
			&semantic.Assign{Target: Field(out, "Shade"), Value: &semantic.Call{
				Target: fx.Shade.Ref(), Args: []semantic.Expr{Field(in, "Position")}, Ty: semantic.Float32,
			}},
			&semantic.Return{Value: out},
		},
	}

	// func (Foo) FS(in VertexOut) sl.Vec4
	fin := Param("in", fx.VertexOut)
	c := Local("c", Vec4)
	fx.FS = &semantic.Function{
		DeclaringType: "Foo", Name: "FS",
		Params:        []semantic.Param{{Name: "in", Type: fx.VertexOut}},
		Result:        Vec4,
		ResultBinding: Loc(0),
		Stage:         semantic.StageFragment,
		Body: semantic.Block{
			&semantic.VarDecl{Name: "c", Ty: Vec4, Init: &semantic.IntrinsicCall{
				Fun: semantic.IntrinsicSample, Ty: Vec4,
				Args: []semantic.Expr{Global(fx.Albedo), Global(fx.Linear), Field(fin, "UV")},
			}},
			&semantic.If{
				Cond: &semantic.Binary{Op: semantic.BinaryLt, X: Field(fin, "Shade"), Y: semantic.FloatLit(0.01), Ty: semantic.Bool},
				Then: semantic.Block{&semantic.Discard{}},
			},
			&semantic.Return{Value: &semantic.Binary{
				Op: semantic.BinaryMul, Ty: Vec4,
				X: &semantic.Binary{Op: semantic.BinaryMul, X: c, Y: Global(fx.Tint), Ty: Vec4},
				Y: &semantic.Binary{Op: semantic.BinaryMul, X: Field(fin, "Shade"), Y: Global(fx.Exposure), Ty: semantic.Float32},
			}},
		},
	}

	// func (Foo) CS(id sl.UVec3)
	id := Param("id", UVec3)
	idx := Local("idx", semantic.Uint32)
	item := &semantic.Index{X: Field(Global(fx.Store), "Items"), Index: idx, Ty: fx.Particle}
	fx.CS = &semantic.Function{
		DeclaringType: "Foo", Name: "CS",
		Params:    []semantic.Param{{Name: "id", Type: UVec3, Binding: Builtin(semantic.BuiltinGlobalInvocationID)}},
		Stage:     semantic.StageCompute,
		Workgroup: [3]uint32{64, 1, 1},
		Body: semantic.Block{
			&semantic.VarDecl{Name: "idx", Ty: semantic.Uint32, Init: &semantic.Swizzle{X: id, Components: "x", Ty: semantic.Uint32}},
			&semantic.Assign{Target: Field(item, "Vel"), Value: &semantic.Call{
				Target: fx.Damp.Ref(), Args: []semantic.Expr{Field(item, "Vel")}, Ty: Vec4,
			}},
			&semantic.Assign{Target: Field(item, "Pos"), Op: semantic.BinaryAdd, Compound: true, Value: &semantic.Binary{
				Op: semantic.BinaryMul, Ty: Vec4,
				X: Field(item, "Vel"),
				Y: Field(Global(fx.Cam), "Time"),
			}},
		},
	}

	for _, f := range []*semantic.Function{fx.Shade, fx.Damp, fx.VS, fx.FS, fx.CS} {
		Must(p.AddFunction(f))
	}
	return fx
}
