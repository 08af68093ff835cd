// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// writer generates the source of one stage.
type writer struct {
	*clike.Writer
	d     *dialect
	opts  *Options
	plan  *backend.Plan
	stage *discover.Stage
	src   *backend.ShaderSetSource
}

func newWriter(opts *Options, plan *backend.Plan, st *discover.Stage, src *backend.ShaderSetSource) *writer {
	d := newDialect(opts.ShaderModel)
	return &writer{
		Writer: clike.NewWriter(d, st.Globals),
		d:      d,
		opts:   opts,
		plan:   plan,
		stage:  st,
		src:    src,
	}
}

func (w *writer) write() (string, error) {
	// Storage forms are needed before any expression is lowered.
	for _, g := range w.plan.StageResources(w.stage) {
		if g.Space == semantic.SpaceStorage {
			if err := w.classifyStorage(g); err != nil {
				return "", err
			}
		}
	}
	for _, t := range w.stage.Types {
		if clike.HasRuntimeArray(t) {
			// Only reachable through a structured buffer of its elements.
			continue
		}
		if err := w.Struct(t, w.plan.Layouts[t.Name]); err != nil {
			return "", err
		}
	}
	if err := w.resources(); err != nil {
		return "", err
	}
	funcs := append(append([]*semantic.Function(nil), w.stage.Functions...), w.stage.Entry)
	for _, st := range w.Constructors(funcs) {
		if err := w.Constructor(st); err != nil {
			return "", err
		}
	}
	for _, f := range funcs {
		if err := w.Function(f, nil); err != nil {
			return "", err
		}
	}
	if err := w.entryPoint(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// classifyStorage decides how a storage global is declared. Structured
// buffers have a fixed element type, so a struct may either be a single
// runtime-sized array or have no runtime-sized member at all.
func (w *writer) classifyStorage(g *semantic.Global) error {
	var elem semantic.Type
	switch t := g.Type.(type) {
	case *semantic.StructType:
		n := len(t.Fields)
		arr, ok := t.Fields[n-1].Type.(semantic.ArrayType)
		switch {
		case !ok || !arr.IsRuntimeSized():
			w.d.storage[g.Name] = storageStruct
			return nil
		case n > 1:
			return &backend.Error{Kind: backend.ErrCapability, Type: t.Name,
				Message: "storage struct with fields before its runtime-sized array cannot be a structured buffer"}
		}
		elem = arr.Elem
	case semantic.ArrayType:
		elem = t.Elem
	default:
		w.d.storage[g.Name] = storageStruct
		return nil
	}
	if strideMismatch(elem) {
		return &backend.Error{Kind: backend.ErrCapability, Type: g.Name,
			Message: fmt.Sprintf("structured buffer of %s has a tighter stride than the std430 layout", elem)}
	}
	w.d.storage[g.Name] = storageArray
	return nil
}

// strideMismatch reports element types whose structured buffer stride
// differs from their std430 array stride.
func strideMismatch(t semantic.Type) bool {
	switch t := t.(type) {
	case semantic.VectorType:
		return t.Size == 3
	case semantic.MatrixType:
		return t.Rows == 3
	}
	return false
}

func (w *writer) target(g *semantic.Global, rt RegisterType, b semantic.ResourceBinding) (string, error) {
	bt := w.opts.bindTarget(b)
	spaces := w.opts.ShaderModel.SupportsSpaces()
	if !spaces && bt.Space != 0 {
		return "", &backend.Error{Kind: backend.ErrCapability, Type: g.Name,
			Message: fmt.Sprintf("register space %d requires Shader Model 5.1, targeting %s", bt.Space, w.opts.ShaderModel)}
	}
	reg := register(rt, bt, spaces)
	w.src.Bindings[g.Name] = reg
	return reg, nil
}

func (w *writer) resources() error {
	for _, g := range w.plan.StageResources(w.stage) {
		reg, err := w.target(g, registerType(g), *g.Binding)
		if err != nil {
			return err
		}
		name := escape(g.Name)
		switch g.Space {
		case semantic.SpaceUniform:
			decl, err := w.Decl(g.Type, name)
			if err != nil {
				return err
			}
			w.Line("cbuffer %s_block : %s {", g.Name, reg)
			w.Push()
			for _, line := range w.d.StructMember(layout.Placement{Type: g.Type}, decl) {
				w.Line("%s;", line)
			}
			w.Pop()
			w.Line("}")
		case semantic.SpaceStorage:
			kind := "RWStructuredBuffer"
			if g.ReadOnly {
				kind = "StructuredBuffer"
			}
			elem := g.Type
			if w.d.storage[g.Name] == storageArray {
				elem = runtimeElem(g.Type)
			}
			typ, err := w.TypeName(elem)
			if err != nil {
				return err
			}
			w.Line("%s<%s> %s : %s;", kind, typ, name, reg)
		default:
			typ, err := w.TypeName(g.Type)
			if err != nil {
				return err
			}
			w.Line("%s %s : %s;", typ, name, reg)
		}
	}
	if w.plan.UsesLoose(w.stage) {
		loose := w.plan.Loose
		reg, err := w.target(&semantic.Global{Name: backend.GlobalsBlock}, RegisterTypeB, loose.Binding)
		if err != nil {
			return err
		}
		w.Line("cbuffer %s : %s {", backend.GlobalsBlock, reg)
		w.Push()
		for _, p := range loose.Layout.Placements {
			name := p.Name
			if !p.Padding {
				name = escape(name)
			}
			decl, err := w.Decl(p.Type, name)
			if err != nil {
				return err
			}
			for _, line := range w.d.StructMember(p, decl) {
				w.Line("%s;", line)
			}
		}
		w.Pop()
		w.Line("}")
	}
	w.Blank()
	return nil
}

func runtimeElem(t semantic.Type) semantic.Type {
	if st, ok := t.(*semantic.StructType); ok {
		t = st.Fields[len(st.Fields)-1].Type
	}
	return t.(semantic.ArrayType).Elem
}

var ioStructs = map[semantic.Stage][2]string{
	semantic.StageVertex:   {"VertexInput", "VertexOutput"},
	semantic.StageFragment: {"FragmentInput", "FragmentOutput"},
	semantic.StageCompute:  {"ComputeInput", ""},
}

// entryPoint writes the IO structs and the stage main function, which
// calls the lowered entry function.
func (w *writer) entryPoint() error {
	f := w.stage.Entry
	stage := f.Stage
	names := ioStructs[stage]

	inputs := clike.EntryInputs(f)
	inNames := clike.IONames(f, inputs)
	if err := w.ioStruct(names[0], inputs, inNames, false); err != nil {
		return err
	}
	outputs := clike.EntryOutputs(f)
	outNames := clike.IONames(f, outputs)
	if err := w.ioStruct(names[1], outputs, outNames, true); err != nil {
		return err
	}

	ret := "void"
	if len(outputs) > 0 {
		ret = names[1]
	}
	param := ""
	if len(inputs) > 0 {
		param = names[0] + " input"
	}
	if stage == semantic.StageCompute {
		w.Line("[numthreads(%d, %d, %d)]", f.Workgroup[0], f.Workgroup[1], f.Workgroup[2])
	}
	w.Line("%s %s(%s) {", ret, EntryPointName(stage), param)
	w.Push()
	if len(outputs) > 0 {
		w.Line("%s output = (%s)0;", names[1], names[1])
	}
	err := w.CallEntry(f, nil,
		func(i int) string { return "input." + escape(inNames[i]) },
		func(i int, value string) { w.Line("output.%s = %s;", escape(outNames[i]), value) },
	)
	if err != nil {
		return err
	}
	if len(outputs) > 0 {
		w.Line("return output;")
	}
	w.Pop()
	w.Line("}")
	return nil
}

func (w *writer) ioStruct(name string, vars []clike.IOVar, names []string, output bool) error {
	if len(vars) == 0 {
		return nil
	}
	stage := w.stage.Entry.Stage
	w.Line("struct %s {", name)
	w.Push()
	for i, v := range vars {
		decl, err := w.Decl(v.Type, escape(names[i]))
		if err != nil {
			return err
		}
		var sem string
		if b, ok := v.Builtin(); ok {
			sem = BuiltInToSemantic(b)
		} else if l, ok := v.Location(); ok {
			sem = LocationToSemantic(l.Location, output && stage == semantic.StageFragment)
		} else {
			return backend.Errorf(backend.ErrInternal, "stage variable %s has no binding", names[i])
		}
		varying := (output && stage == semantic.StageVertex) || (!output && stage == semantic.StageFragment)
		if varying && clike.IsFlat(v) {
			if _, builtin := v.Builtin(); !builtin {
				decl = "nointerpolation " + decl
			}
		}
		w.Line("%s : %s;", decl, sem)
	}
	w.Pop()
	w.Line("};")
	w.Blank()
	return nil
}
