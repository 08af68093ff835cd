// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/backend/clike"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/semantic"
)

// writer generates the source of one stage.
type writer struct {
	*clike.Writer
	d     *dialect
	opts  *Options
	plan  *backend.Plan
	slots map[string]Slot
	stage *discover.Stage

	// params declares the stage resources as function parameters, without
	// and with their slot attributes.
	params, entryParams []string
}

func newWriter(opts *Options, plan *backend.Plan, slots map[string]Slot, st *discover.Stage) *writer {
	d := newDialect(plan.Loose)
	return &writer{
		Writer: clike.NewWriter(d, st.Globals),
		d:      d,
		opts:   opts,
		plan:   plan,
		slots:  slots,
		stage:  st,
	}
}

func (w *writer) write() (string, error) {
	w.Line("// language: metal%s", w.opts.LangVersion)
	w.Line("#include <metal_stdlib>")
	w.Line("#include <simd/simd.h>")
	w.Blank()
	w.Line("using metal::uint;")
	w.Blank()

	for _, t := range w.stage.Types {
		if err := w.Struct(t, w.plan.Layouts[t.Name]); err != nil {
			return "", err
		}
	}
	if w.plan.UsesLoose(w.stage) {
		w.Line("struct %s {", backend.GlobalsBlock)
		w.Push()
		for _, p := range w.plan.Loose.Layout.Placements {
			name := p.Name
			if !p.Padding {
				name = w.d.Escape(name)
			}
			decl, err := w.Decl(p.Type, name)
			if err != nil {
				return "", err
			}
			for _, line := range w.d.StructMember(p, decl) {
				w.Line("%s;", line)
			}
		}
		w.Pop()
		w.Line("};")
		w.Blank()
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
		if err := w.Function(f, w.params); err != nil {
			return "", err
		}
	}
	if err := w.entryPoint(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// resources builds the parameter lists that carry the stage's resources.
func (w *writer) resources() error {
	for _, g := range w.plan.StageResources(w.stage) {
		name := w.d.Escape(g.Name)
		var decl string
		switch g.Space {
		case semantic.SpaceUniform, semantic.SpaceStorage:
			typ, err := w.TypeName(g.Type)
			if err != nil {
				return err
			}
			space := "constant"
			if g.Space == semantic.SpaceStorage {
				space = "device"
				if g.ReadOnly {
					space = "const device"
				}
			}
			decl = fmt.Sprintf("%s %s& %s", space, typ, name)
		default:
			typ, err := w.TypeName(g.Type)
			if err != nil {
				return err
			}
			decl = typ + " " + name
		}
		w.params = append(w.params, decl)
		w.entryParams = append(w.entryParams, fmt.Sprintf("%s [[%s]]", decl, w.slots[g.Name]))
		w.d.resources = append(w.d.resources, name)
	}
	if w.plan.UsesLoose(w.stage) {
		decl := fmt.Sprintf("constant %s& %s", backend.GlobalsBlock, globalsParam)
		w.params = append(w.params, decl)
		w.entryParams = append(w.entryParams, fmt.Sprintf("%s [[%s]]", decl, w.slots[backend.GlobalsBlock]))
		w.d.resources = append(w.d.resources, globalsParam)
	}
	return nil
}

// builtinAttribute returns the attribute of a builtin stage variable.
func builtinAttribute(b semantic.BuiltinValue) string {
	switch b {
	case semantic.BuiltinPosition:
		return "position"
	case semantic.BuiltinVertexIndex:
		return "vertex_id"
	case semantic.BuiltinInstanceIndex:
		return "instance_id"
	case semantic.BuiltinFrontFacing:
		return "front_facing"
	case semantic.BuiltinFragDepth:
		return "depth(any)"
	case semantic.BuiltinGlobalInvocationID:
		return "thread_position_in_grid"
	case semantic.BuiltinLocalInvocationID:
		return "thread_position_in_threadgroup"
	case semantic.BuiltinLocalInvocationIndex:
		return "thread_index_in_threadgroup"
	case semantic.BuiltinWorkGroupID:
		return "threadgroup_position_in_grid"
	}
	return "position"
}

// locationAttribute returns the attribute of a user location.
func locationAttribute(stage semantic.Stage, l semantic.LocationBinding, output bool) string {
	switch {
	case stage == semantic.StageVertex && !output:
		return fmt.Sprintf("attribute(%d)", l.Location)
	case stage == semantic.StageFragment && output:
		return fmt.Sprintf("color(%d)", l.Location)
	}
	return fmt.Sprintf("user(loc%d)", l.Location)
}

func stageKeyword(stage semantic.Stage) string {
	switch stage {
	case semantic.StageVertex:
		return "vertex"
	case semantic.StageFragment:
		return "fragment"
	}
	return "kernel"
}

// entryPoint writes the stage_in and output structs and the Metal entry
// function, which calls the lowered entry function.
func (w *writer) entryPoint() error {
	f := w.stage.Entry
	name := EntryPointName(f.Stage)
	varying := func(output bool) bool {
		return (output && f.Stage == semantic.StageVertex) || (!output && f.Stage == semantic.StageFragment)
	}

	inputs := clike.EntryInputs(f)
	inNames := clike.IONames(f, inputs)
	var params []string
	var stageIn []string
	load := make([]string, len(inputs))
	for i, v := range inputs {
		decl, err := w.Decl(v.Type, w.d.Escape(inNames[i]))
		if err != nil {
			return err
		}
		if b, ok := v.Builtin(); ok {
			params = append(params, fmt.Sprintf("%s [[%s]]", decl, builtinAttribute(b)))
			load[i] = w.d.Escape(inNames[i])
			continue
		}
		l, _ := v.Location()
		attr := locationAttribute(f.Stage, l, false)
		if varying(false) && clike.IsFlat(v) {
			attr += ", flat"
		}
		stageIn = append(stageIn, fmt.Sprintf("%s [[%s]]", decl, attr))
		load[i] = "input." + w.d.Escape(inNames[i])
	}
	if len(stageIn) > 0 {
		w.Line("struct %sInput {", name)
		w.Push()
		for _, m := range stageIn {
			w.Line("%s;", m)
		}
		w.Pop()
		w.Line("};")
		w.Blank()
		params = append([]string{fmt.Sprintf("%sInput input [[stage_in]]", name)}, params...)
	}

	outputs := clike.EntryOutputs(f)
	outNames := clike.IONames(f, outputs)
	ret := "void"
	if len(outputs) > 0 {
		ret = name + "Output"
		w.Line("struct %s {", ret)
		w.Push()
		for i, v := range outputs {
			decl, err := w.Decl(v.Type, w.d.Escape(outNames[i]))
			if err != nil {
				return err
			}
			var attr string
			if b, ok := v.Builtin(); ok {
				attr = builtinAttribute(b)
			} else {
				l, _ := v.Location()
				attr = locationAttribute(f.Stage, l, true)
				if varying(true) && clike.IsFlat(v) {
					attr += ", flat"
				}
			}
			w.Line("%s [[%s]];", decl, attr)
		}
		w.Pop()
		w.Line("};")
		w.Blank()
	}

	params = append(params, w.entryParams...)
	w.Line("%s %s %s(%s) {", stageKeyword(f.Stage), ret, name, strings.Join(params, ", "))
	w.Push()
	if len(outputs) > 0 {
		w.Line("%s output = {};", ret)
	}
	err := w.CallEntry(f, w.d.resources,
		func(i int) string { return load[i] },
		func(i int, value string) { w.Line("output.%s = %s;", w.d.Escape(outNames[i]), value) },
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
