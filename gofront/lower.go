// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/gogpu/shadergen/semantic"
)

// lowerer converts Go declarations into a semantic program.
type lowerer struct {
	fset   *token.FileSet
	logger *slog.Logger
	prog   *semantic.Program

	// Loaded packages, excluding sl.
	pkgs map[*types.Package]bool

	structs map[types.Object]*semantic.StructType
	// Struct names declared by more than one loaded package.
	shared  map[string]bool
	globals map[types.Object]*semantic.Global

	errs Errors
}

func newLowerer(fset *token.FileSet, logger *slog.Logger) *lowerer {
	return &lowerer{
		fset:    fset,
		logger:  logger,
		prog:    semantic.NewProgram(),
		pkgs:    make(map[*types.Package]bool),
		structs: make(map[types.Object]*semantic.StructType),
		shared:  make(map[string]bool),
		globals: make(map[types.Object]*semantic.Global),
	}
}

// lower runs the declaration passes. Types come first so that globals and
// functions of any package can refer to them.
func (l *lowerer) lower(pkgs []*packages.Package) {
	pkgs = slices.DeleteFunc(slices.Clone(pkgs), func(p *packages.Package) bool {
		return p.PkgPath == SLPath
	})
	for _, p := range pkgs {
		l.pkgs[p.Types] = true
	}
	owner := make(map[string]*types.Package)
	for _, p := range pkgs {
		typeSpecs(p, func(_ *ast.TypeSpec, obj *types.TypeName) {
			if !isStruct(obj) {
				return
			}
			if pkg, ok := owner[obj.Name()]; ok && pkg != obj.Pkg() {
				l.shared[obj.Name()] = true
			}
			owner[obj.Name()] = obj.Pkg()
		})
	}
	for _, p := range pkgs {
		l.declareTypes(p)
	}
	for _, p := range pkgs {
		l.fillTypes(p)
	}
	for _, p := range pkgs {
		l.declareGlobals(p)
	}
	for _, p := range pkgs {
		for _, file := range p.Syntax {
			for _, decl := range file.Decls {
				if fd, ok := decl.(*ast.FuncDecl); ok {
					l.function(p, fd)
				}
			}
		}
	}
}

func typeSpecs(p *packages.Package, fn func(spec *ast.TypeSpec, obj *types.TypeName)) {
	for _, file := range p.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				obj, ok := p.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || ts.TypeParams != nil || obj.IsAlias() {
					continue
				}
				fn(ts, obj)
			}
		}
	}
}

func isStruct(obj *types.TypeName) bool {
	gs, ok := obj.Type().Underlying().(*types.Struct)
	return ok && gs.NumFields() > 0
}

// declareTypes registers every non-empty package-level struct type. A
// name declared in several loaded packages is qualified as pkg_Name in
// all of them.
func (l *lowerer) declareTypes(p *packages.Package) {
	typeSpecs(p, func(ts *ast.TypeSpec, obj *types.TypeName) {
		if !isStruct(obj) {
			return
		}
		name := obj.Name()
		if l.shared[name] {
			name = obj.Pkg().Name() + "_" + name
		}
		st := &semantic.StructType{Name: name}
		if err := l.prog.AddType(st); err != nil {
			l.errorf(ts.Pos(), "", "%v", err)
			return
		}
		l.structs[obj] = st
	})
}

func (l *lowerer) fillTypes(p *packages.Package) {
	typeSpecs(p, func(_ *ast.TypeSpec, obj *types.TypeName) {
		if st, ok := l.structs[obj]; ok {
			l.fields(st, obj.Type().Underlying().(*types.Struct))
		}
	})
}

// declareGlobals registers package-level variables. Variables with a
// resource directive become resources; the others become private globals
// when their type has a GPU representation.
func (l *lowerer) declareGlobals(p *packages.Package) {
	for _, file := range p.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.VAR {
				continue
			}
			for _, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				groups := []*ast.CommentGroup{vs.Doc}
				if !gd.Lparen.IsValid() {
					groups = append(groups, gd.Doc)
				}
				d, err := single(groups...)
				if err != nil {
					l.errorf(vs.Pos(), "", "%v", err)
					continue
				}
				if d != nil && len(vs.Names) != 1 {
					l.errorf(vs.Pos(), "", "//%s:%s must declare exactly one variable", Tool, d.Kind)
					continue
				}
				for _, name := range vs.Names {
					obj, ok := p.TypesInfo.Defs[name].(*types.Var)
					if !ok || name.Name == "_" {
						continue
					}
					g, err := l.global(obj, d)
					if err != nil {
						l.errorf(name.Pos(), "", "variable %s: %v", name.Name, err)
						continue
					}
					if g == nil {
						continue
					}
					if err := l.prog.AddGlobal(g); err != nil {
						l.errorf(name.Pos(), "", "%v", err)
						continue
					}
					l.globals[obj] = g
				}
			}
		}
	}
}

func (l *lowerer) global(obj *types.Var, d *Directive) (*semantic.Global, error) {
	ty := l.goType(obj.Type())
	g := &semantic.Global{Name: obj.Name(), Type: ty}
	if d == nil {
		if isHost(ty) || semantic.IsResource(ty) {
			return nil, nil
		}
		g.Space = semantic.SpacePrivate
		return g, nil
	}

	allowed := map[string]bool{}
	switch d.Kind {
	case "uniform":
		g.Space = semantic.SpaceUniform
	case "storage":
		g.Space = semantic.SpaceStorage
		g.ReadOnly = d.Has("readonly")
		allowed["readonly"] = true
	case "texture":
		g.Space = semantic.SpaceTexture
		if _, ok := ty.(semantic.TextureType); !ok {
			return nil, fmt.Errorf("//%s:texture needs an sl.Texture2D, not %s", Tool, obj.Type())
		}
	case "sampler":
		g.Space = semantic.SpaceSampler
		if _, ok := ty.(semantic.SamplerType); !ok {
			return nil, fmt.Errorf("//%s:sampler needs an sl.Sampler, not %s", Tool, obj.Type())
		}
	default:
		return nil, fmt.Errorf("unknown directive //%s:%s on a variable", Tool, d.Kind)
	}
	for _, f := range d.Flags {
		if !allowed[f] {
			return nil, fmt.Errorf("//%s:%s: unknown flag %q", Tool, d.Kind, f)
		}
	}
	for _, k := range d.KeyNames() {
		if k != "group" && k != "binding" {
			return nil, fmt.Errorf("//%s:%s: unknown key %q", Tool, d.Kind, k)
		}
	}
	if g.Space == semantic.SpaceUniform || g.Space == semantic.SpaceStorage {
		if isHost(ty) || semantic.IsResource(ty) {
			return nil, fmt.Errorf("%s has no buffer representation", obj.Type())
		}
	}

	group, hasGroup, err := d.Uint("group")
	if err != nil {
		return nil, err
	}
	binding, hasBinding, err := d.Uint("binding")
	if err != nil {
		return nil, err
	}
	switch {
	case hasGroup && hasBinding:
		g.Binding = &semantic.ResourceBinding{Group: group, Binding: binding}
	case hasGroup || hasBinding:
		return nil, fmt.Errorf("//%s:%s needs both group= and binding=", Tool, d.Kind)
	case !g.IsLooseUniform():
		return nil, fmt.Errorf("//%s:%s needs group= and binding=", Tool, d.Kind)
	}
	return g, nil
}

// declaringType returns the receiver type name of a method or the package
// name of a function.
func declaringType(fn *types.Func) (string, bool) {
	sig := fn.Type().(*types.Signature)
	recv := sig.Recv()
	if recv == nil {
		return fn.Pkg().Name(), true
	}
	t := recv.Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	n, ok := types.Unalias(t).(*types.Named)
	if !ok || n.TypeArgs().Len() > 0 || n.TypeParams().Len() > 0 {
		return "", false
	}
	if _, isIface := n.Underlying().(*types.Interface); isIface {
		return "", false
	}
	return n.Obj().Name(), true
}

func (l *lowerer) function(p *packages.Package, fd *ast.FuncDecl) {
	if fd.Body == nil || fd.Type.TypeParams != nil || fd.Name.Name == "init" || fd.Name.Name == "_" {
		return
	}
	obj, ok := p.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		return
	}
	owner, ok := declaringType(obj)
	if !ok {
		return
	}
	sig := obj.Type().(*types.Signature)
	f := &semantic.Function{
		DeclaringType: owner,
		Name:          obj.Name(),
		Pos:           l.fset.Position(fd.Pos()).String(),
	}
	fl := newFuncLowerer(l, p.TypesInfo, f, sig)

	d, err := single(fd.Doc)
	if err != nil {
		l.errorf(fd.Pos(), f.Ref().String(), "%v", err)
		return
	}
	if d != nil {
		if err := fl.entryPoint(d); err != nil {
			l.errorf(fd.Pos(), f.Ref().String(), "%v", err)
			return
		}
	}
	if sig.Results().Len() > 1 {
		f.Unsupported = fl.errorf(fd.Type.Results, "multiple results are not supported")
	} else if sig.Variadic() {
		f.Unsupported = fl.errorf(fd.Type.Params, "variadic functions are not supported")
	} else {
		body, err := fl.block(fd.Body.List)
		if err != nil {
			f.Unsupported = err
		} else {
			f.Body = body
		}
	}
	if f.Unsupported != nil {
		l.logger.Debug("function not lowered", "func", f.Ref().String(), "err", f.Unsupported)
	}
	if err := l.prog.AddFunction(f); err != nil {
		l.errorf(fd.Pos(), "", "%v", err)
	}
}

// entryPoint applies a stage directive to f.
func (fl *funcLowerer) entryPoint(d *Directive) error {
	f := fl.fn
	reserved := map[string]bool{"return": true}
	switch d.Kind {
	case "vertex":
		f.Stage = semantic.StageVertex
		reserved["fragment"] = true
		if v, ok := d.Lookup("fragment"); ok {
			ref, err := parseRef(v, f.DeclaringType)
			if err != nil {
				return err
			}
			f.Pair = &ref
		}
	case "fragment":
		f.Stage = semantic.StageFragment
	case "compute":
		f.Stage = semantic.StageCompute
		reserved["workgroup"] = true
		f.Workgroup = [3]uint32{1, 1, 1}
		if v, ok := d.Lookup("workgroup"); ok {
			wg, err := parseWorkgroup(v)
			if err != nil {
				return err
			}
			f.Workgroup = wg
		}
	default:
		return fmt.Errorf("unknown directive //%s:%s on a function", Tool, d.Kind)
	}
	if len(d.Flags) > 0 {
		return fmt.Errorf("//%s:%s: unknown flag %q", Tool, d.Kind, d.Flags[0])
	}

	params := make(map[string]int, len(f.Params))
	for i, p := range f.Params {
		params[p.Name] = i
	}
	for _, k := range d.KeyNames() {
		v := d.Keys[k]
		if reserved[k] && k != "return" {
			continue
		}
		b, err := ParseBinding(v)
		if err != nil {
			return fmt.Errorf("%s=%s: %w", k, v, err)
		}
		if k == "return" {
			f.ResultBinding = b
			continue
		}
		i, ok := params[k]
		if !ok {
			return fmt.Errorf("//%s:%s: %q is not a parameter", Tool, d.Kind, k)
		}
		f.Params[i].Binding = b
	}
	if f.ResultBinding == nil && f.Result != nil {
		if _, isStruct := f.Result.(*semantic.StructType); !isStruct {
			switch f.Stage {
			case semantic.StageVertex:
				f.ResultBinding = semantic.BuiltinBinding{Builtin: semantic.BuiltinPosition}
			case semantic.StageFragment:
				f.ResultBinding = semantic.LocationBinding{Location: 0}
			}
		}
	}
	return nil
}
