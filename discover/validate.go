// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package discover

import (
	"github.com/gogpu/shadergen/semantic"
)

// ioBinding is one flattened stage input or output.
type ioBinding struct {
	name    string
	binding semantic.Binding
}

// flatten lists the bindings of a value of type t bound by b. Struct
// values contribute one binding per field.
func flatten(name string, t semantic.Type, b semantic.Binding) []ioBinding {
	if st, ok := t.(*semantic.StructType); ok {
		out := make([]ioBinding, 0, len(st.Fields))
		for _, f := range st.Fields {
			out = append(out, ioBinding{name: name + "." + f.Name, binding: f.Binding})
		}
		return out
	}
	return []ioBinding{{name: name, binding: b}}
}

func inputs(f *semantic.Function) []ioBinding {
	var out []ioBinding
	for _, p := range f.Params {
		out = append(out, flatten(p.Name, p.Type, p.Binding)...)
	}
	return out
}

func outputs(f *semantic.Function) []ioBinding {
	if f.Result == nil {
		return nil
	}
	return flatten("result", f.Result, f.ResultBinding)
}

func locations(bs []ioBinding) map[uint32]string {
	out := make(map[uint32]string)
	for _, b := range bs {
		if l, ok := b.binding.(semantic.LocationBinding); ok {
			out[l.Location] = b.name
		}
	}
	return out
}

func checkBound(f *semantic.Function, bs []ioBinding, what string) error {
	seen := make(map[string]string)
	for _, b := range bs {
		if b.binding == nil {
			return newError(ErrStageSignature, f, "%s %s has no binding", what, b.name)
		}
		key := b.binding.String()
		if l, ok := b.binding.(semantic.LocationBinding); ok {
			key = semantic.LocationBinding{Location: l.Location}.String()
		}
		if prev, dup := seen[key]; dup {
			return newError(ErrStageSignature, f, "%s %s and %s share %s", what, prev, b.name, key)
		}
		seen[key] = b.name
	}
	return nil
}

// validateEntry checks the structural requirements of an entry point's
// stage.
func validateEntry(f *semantic.Function) error {
	in := inputs(f)
	if err := checkBound(f, in, "input"); err != nil {
		return err
	}
	out := outputs(f)

	switch f.Stage {
	case semantic.StageVertex:
		if err := checkBound(f, out, "output"); err != nil {
			return err
		}
		for _, b := range out {
			if semantic.IsBuiltin(b.binding, semantic.BuiltinPosition) {
				return nil
			}
		}
		return newError(ErrStageSignature, f, "vertex entry point must output a position builtin")

	case semantic.StageFragment:
		if err := checkBound(f, out, "output"); err != nil {
			return err
		}
		if len(locations(out)) == 0 {
			return newError(ErrStageSignature, f, "fragment entry point must output at least one location")
		}
		return nil

	case semantic.StageCompute:
		if f.Result != nil {
			return newError(ErrStageSignature, f, "compute entry point must not return a value")
		}
		for _, b := range in {
			if _, ok := b.binding.(semantic.BuiltinBinding); !ok {
				return newError(ErrStageSignature, f, "compute input %s must be a builtin", b.name)
			}
		}
		for i, n := range f.Workgroup {
			if n == 0 {
				return newError(ErrStageSignature, f, "workgroup size component %d must be positive", i)
			}
		}
		return nil
	}
	return newError(ErrStageSignature, f, "function is not an entry point")
}

// validateInterface checks that every fragment input location is written
// by the vertex stage.
func validateInterface(vs, fs *semantic.Function) error {
	written := locations(outputs(vs))
	for _, b := range inputs(fs) {
		l, ok := b.binding.(semantic.LocationBinding)
		if !ok {
			continue
		}
		if _, ok := written[l.Location]; !ok {
			return newError(ErrStageSignature, fs, "input %s reads location %d which %s does not write",
				b.name, l.Location, vs.Ref())
		}
	}
	return nil
}
