// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package clike

import (
	"strconv"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// IOVar is one flattened stage input or output.
type IOVar struct {
	// Param is the parameter index, or -1 for the result.
	Param int
	// Field is the struct field, empty when the parameter or result is
	// not a struct.
	Field   string
	Type    semantic.Type
	Binding semantic.Binding
}

// Location returns the IO location, or false for builtins.
func (v IOVar) Location() (semantic.LocationBinding, bool) {
	l, ok := v.Binding.(semantic.LocationBinding)
	return l, ok
}

// Builtin returns the builtin, or false for locations.
func (v IOVar) Builtin() (semantic.BuiltinValue, bool) {
	b, ok := v.Binding.(semantic.BuiltinBinding)
	return b.Builtin, ok
}

func flatten(param int, t semantic.Type, b semantic.Binding) []IOVar {
	st, ok := t.(*semantic.StructType)
	if !ok {
		if t == nil {
			return nil
		}
		return []IOVar{{Param: param, Type: t, Binding: b}}
	}
	out := make([]IOVar, 0, len(st.Fields))
	for _, f := range st.Fields {
		out = append(out, IOVar{Param: param, Field: f.Name, Type: f.Type, Binding: f.Binding})
	}
	return out
}

// EntryInputs flattens the parameters of an entry point.
func EntryInputs(f *semantic.Function) []IOVar {
	var out []IOVar
	for i, p := range f.Params {
		out = append(out, flatten(i, p.Type, p.Binding)...)
	}
	return out
}

// EntryOutputs flattens the result of an entry point.
func EntryOutputs(f *semantic.Function) []IOVar {
	return flatten(-1, f.Result, f.ResultBinding)
}

// CallEntry writes the body of a stage main function: it rebuilds the
// parameters of f from stage inputs, calls the lowered f and stores its
// outputs. load returns the expression that reads the i-th entry of
// EntryInputs; store writes the i-th entry of EntryOutputs given the
// expression holding its value.
func (w *Writer) CallEntry(f *semantic.Function, extra []string, load func(i int) string, store func(i int, value string)) error {
	w.fn = f
	defer func() { w.fn = nil }()

	inputs := EntryInputs(f)
	args := make([]string, len(f.Params))
	for i, p := range f.Params {
		name := "_arg" + strconv.Itoa(i)
		args[i] = name
		st, isStruct := p.Type.(*semantic.StructType)
		if !isStruct {
			decl, err := w.Decl(p.Type, name)
			if err != nil {
				return w.attribute(err)
			}
			for j, v := range inputs {
				if v.Param == i {
					w.Line("%s = %s;", decl, load(j))
				}
			}
			continue
		}
		typ := w.d.Escape(st.Name)
		if zero, ok := w.d.ZeroValue(typ, st); ok {
			w.Line("%s %s = %s;", typ, name, zero)
		} else {
			w.Line("%s %s;", typ, name)
		}
		for j, v := range inputs {
			if v.Param == i {
				w.Line("%s.%s = %s;", name, w.d.Escape(v.Field), load(j))
			}
		}
	}

	call := FunctionName(w.d, f.Ref()) + "(" + Join(args, extra) + ")"
	if f.Result == nil {
		w.Line("%s;", call)
		return nil
	}
	ret, err := w.TypeName(f.Result)
	if err != nil {
		return w.attribute(err)
	}
	outputs := EntryOutputs(f)
	if len(outputs) == 0 {
		return w.attribute(backend.Errorf(backend.ErrInternal, "entry result has no outputs"))
	}
	w.Line("%s _r = %s;", ret, call)
	for i, v := range outputs {
		value := "_r"
		if v.Field != "" {
			value += "." + w.d.Escape(v.Field)
		}
		store(i, value)
	}
	return nil
}

// IONames returns a unique member name for each variable: the field name
// for struct members, otherwise the parameter name, or "value" for a
// result.
func IONames(f *semantic.Function, vars []IOVar) []string {
	names := make([]string, len(vars))
	used := make(map[string]bool, len(vars))
	for i, v := range vars {
		base := v.Field
		if base == "" {
			if v.Param >= 0 {
				base = f.Params[v.Param].Name
			} else {
				base = "value"
			}
		}
		name := base
		for n := 1; used[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// IsFlat reports whether a stage variable must not be interpolated.
// Integer varyings are always flat.
func IsFlat(v IOVar) bool {
	if l, ok := v.Location(); ok && l.Flat {
		return true
	}
	s, ok := semantic.ScalarOf(v.Type)
	return ok && (s.Kind == semantic.ScalarSint || s.Kind == semantic.ScalarUint)
}
