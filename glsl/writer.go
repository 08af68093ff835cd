// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/semantic"
)

// writer generates the source of one stage.
type writer struct {
	*clike.Writer
	d     *dialect
	b     *Backend
	plan  *backend.Plan
	stage *discover.Stage
	src   *backend.ShaderSetSource
}

func newWriter(b *Backend, plan *backend.Plan, st *discover.Stage, src *backend.ShaderSetSource) *writer {
	d := newDialect(b.kind, b.version)
	return &writer{
		Writer: clike.NewWriter(d, st.Globals),
		d:      d,
		b:      b,
		plan:   plan,
		stage:  st,
		src:    src,
	}
}

func (w *writer) write() (string, error) {
	v := w.b.version
	w.Line("#version %s", v)
	if v.ES {
		precision := "mediump"
		if w.b.opts.ForceHighPrecision {
			precision = "highp"
		}
		w.Blank()
		w.Line("precision %s float;", precision)
		w.Line("precision %s int;", precision)
	}
	w.Blank()
	if w.stage.Entry.Stage == semantic.StageCompute {
		wg := w.stage.Entry.Workgroup
		w.Line("layout(local_size_x = %d, local_size_y = %d, local_size_z = %d) in;", wg[0], wg[1], wg[2])
		w.Blank()
	}
	for _, t := range w.stage.Types {
		if clike.HasRuntimeArray(t) {
			// Declared inline in its buffer block.
			continue
		}
		if err := w.Struct(t, w.plan.Layouts[t.Name]); err != nil {
			return "", err
		}
	}
	if err := w.resources(); err != nil {
		return "", err
	}
	if err := w.stageIO(); err != nil {
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
	if err := w.main(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// layout formats a layout qualifier with an optional binding.
func (w *writer) layout(packing string, b semantic.ResourceBinding, name string) string {
	slot := w.b.opts.binding(b)
	w.src.Bindings[name] = fmt.Sprintf("binding=%d", slot)
	var quals []string
	if packing != "" {
		quals = append(quals, packing)
	}
	if w.b.version.SupportsBindings() {
		quals = append(quals, fmt.Sprintf("binding = %d", slot))
	}
	if len(quals) == 0 {
		return ""
	}
	return "layout(" + clike.Join(quals) + ") "
}

func (w *writer) resources() error {
	for _, g := range w.plan.StageResources(w.stage) {
		name := escape(g.Name)
		switch g.Space {
		case semantic.SpaceUniform:
			decl, err := w.Decl(g.Type, name)
			if err != nil {
				return err
			}
			w.Line("%suniform %s_block {", w.layout("std140", *g.Binding, g.Name), g.Name)
			w.Push()
			w.Line("%s;", decl)
			w.Pop()
			w.Line("};")
		case semantic.SpaceStorage:
			if !w.b.version.SupportsStorageBuffers() {
				return &backend.Error{Kind: backend.ErrCapability, Type: g.Name,
					Message: "storage buffers require GLSL 4.30 or GLSL ES 3.10, targeting " + w.b.version.String()}
			}
			if err := w.storageBlock(g, name); err != nil {
				return err
			}
		case semantic.SpaceTexture:
			typ, err := w.TypeName(g.Type)
			if err != nil {
				return err
			}
			w.Line("%suniform %s %s;", w.layout("", *g.Binding, g.Name), typ, name)
		case semantic.SpaceSampler:
			// Combined into the texture.
		}
	}
	if w.plan.UsesLoose(w.stage) {
		loose := w.plan.Loose
		w.Line("%suniform %s {", w.layout("std140", loose.Binding, backend.GlobalsBlock), backend.GlobalsBlock)
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
			w.Line("%s;", decl)
		}
		w.Pop()
		w.Line("};")
	}
	w.Blank()
	return nil
}

// storageBlock declares a std430 buffer block whose members are the
// fields of the global's struct, so that runtime-sized arrays are legal.
func (w *writer) storageBlock(g *semantic.Global, name string) error {
	qual := ""
	if g.ReadOnly {
		qual = "readonly "
	}
	w.Line("%s%sbuffer %s_block {", w.layout("std430", *g.Binding, g.Name), qual, g.Name)
	w.Push()
	st, ok := g.Type.(*semantic.StructType)
	if !ok {
		w.d.wrapped[g.Name] = true
		decl, err := w.Decl(g.Type, "value")
		if err != nil {
			return err
		}
		w.Line("%s;", decl)
	} else {
		sl := w.plan.Layouts[st.Name]
		for _, p := range sl.Placements {
			pname := p.Name
			if !p.Padding {
				pname = escape(pname)
			}
			decl, err := w.Decl(p.Type, pname)
			if err != nil {
				return err
			}
			w.Line("%s;", decl)
		}
	}
	w.Pop()
	w.Line("} %s;", name)
	return nil
}

// builtinName returns the GLSL variable of a builtin and the conversion
// applied when reading it.
func builtinName(b semantic.BuiltinValue, stage semantic.Stage, output bool) (name, conv string) {
	switch b {
	case semantic.BuiltinPosition:
		if stage == semantic.StageFragment && !output {
			return "gl_FragCoord", ""
		}
		return "gl_Position", ""
	case semantic.BuiltinVertexIndex:
		return "gl_VertexID", "uint"
	case semantic.BuiltinInstanceIndex:
		return "gl_InstanceID", "uint"
	case semantic.BuiltinFrontFacing:
		return "gl_FrontFacing", ""
	case semantic.BuiltinFragDepth:
		return "gl_FragDepth", ""
	case semantic.BuiltinGlobalInvocationID:
		return "gl_GlobalInvocationID", ""
	case semantic.BuiltinLocalInvocationID:
		return "gl_LocalInvocationID", ""
	case semantic.BuiltinLocalInvocationIndex:
		return "gl_LocalInvocationIndex", ""
	case semantic.BuiltinWorkGroupID:
		return "gl_WorkGroupID", ""
	}
	return "gl_Position", ""
}

// ioName returns the global variable of a location. Varyings are named by
// location so that stages link without layout qualifiers.
func ioName(stage semantic.Stage, loc uint32, output bool) string {
	switch {
	case stage == semantic.StageVertex && !output:
		return fmt.Sprintf("_attr_%d", loc)
	case stage == semantic.StageFragment && output:
		return fmt.Sprintf("_target_%d", loc)
	default:
		return fmt.Sprintf("_varying_%d", loc)
	}
}

func (w *writer) stageIO() error {
	f := w.stage.Entry
	if err := w.ioVars(f, clike.EntryInputs(f), false); err != nil {
		return err
	}
	if err := w.ioVars(f, clike.EntryOutputs(f), true); err != nil {
		return err
	}
	return nil
}

func (w *writer) ioVars(f *semantic.Function, vars []clike.IOVar, output bool) error {
	n := 0
	for _, v := range vars {
		l, ok := v.Location()
		if !ok {
			continue
		}
		name := ioName(f.Stage, l.Location, output)
		decl, err := w.Decl(v.Type, name)
		if err != nil {
			return err
		}
		dir := "in"
		if output {
			dir = "out"
		}
		varying := (output && f.Stage == semantic.StageVertex) || (!output && f.Stage == semantic.StageFragment)
		if varying && clike.IsFlat(v) {
			dir = "flat " + dir
		}
		if !varying || w.b.version.SupportsVaryingLocations() {
			dir = fmt.Sprintf("layout(location = %d) %s", l.Location, dir)
		}
		w.Line("%s %s;", dir, decl)
		n++
	}
	if n > 0 {
		w.Blank()
	}
	return nil
}

func (w *writer) main() error {
	f := w.stage.Entry
	inputs := clike.EntryInputs(f)
	outputs := clike.EntryOutputs(f)
	w.Line("void main() {")
	w.Push()
	err := w.CallEntry(f, nil,
		func(i int) string {
			v := inputs[i]
			if l, ok := v.Location(); ok {
				return ioName(f.Stage, l.Location, false)
			}
			b, _ := v.Builtin()
			name, conv := builtinName(b, f.Stage, false)
			if conv != "" {
				return conv + "(" + name + ")"
			}
			return name
		},
		func(i int, value string) {
			v := outputs[i]
			if l, ok := v.Location(); ok {
				w.Line("%s = %s;", ioName(f.Stage, l.Location, true), value)
				return
			}
			b, _ := v.Builtin()
			name, _ := builtinName(b, f.Stage, true)
			w.Line("%s = %s;", name, value)
		},
	)
	if err != nil {
		return err
	}
	w.Pop()
	w.Line("}")
	return nil
}
