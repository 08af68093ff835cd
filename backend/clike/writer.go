// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package clike

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// Writer accumulates the text of one shader stage.
type Writer struct {
	d   Dialect
	out strings.Builder

	indent int

	globals map[string]*semantic.Global

	// fn is the function being lowered, for error attribution.
	fn *semantic.Function
}

// NewWriter creates a writer that resolves global identifiers in globals.
func NewWriter(d Dialect, globals []*semantic.Global) *Writer {
	w := &Writer{d: d, globals: make(map[string]*semantic.Global, len(globals))}
	for _, g := range globals {
		w.globals[g.Name] = g
	}
	return w
}

// Dialect returns the writer's dialect.
func (w *Writer) Dialect() Dialect {
	return w.d
}

// String returns the text written so far.
func (w *Writer) String() string {
	return w.out.String()
}

// Line writes one indented line.
func (w *Writer) Line(format string, args ...any) {
	for range w.indent {
		w.out.WriteString("    ")
	}
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.out.WriteByte('\n')
}

// Push increases the indentation.
func (w *Writer) Push() {
	w.indent++
}

// Pop decreases the indentation.
func (w *Writer) Pop() {
	if w.indent > 0 {
		w.indent--
	}
}

// attribute fills in the backend and current function of err if it is a
// translation error.
func (w *Writer) attribute(err error) error {
	var berr *backend.Error
	if errors.As(err, &berr) {
		berr.Backend = w.d.Kind()
		if berr.Function == "" && w.fn != nil {
			berr.Function = w.fn.Ref().String()
		}
	}
	return err
}

// TypeName spells t as a type.
func (w *Writer) TypeName(t semantic.Type) (string, error) {
	switch t := t.(type) {
	case semantic.ScalarType:
		return w.d.Scalar(t)
	case semantic.VectorType:
		return w.d.Vector(t)
	case semantic.MatrixType:
		return w.d.Matrix(t)
	case *semantic.StructType:
		return w.d.Escape(t.Name), nil
	case semantic.TextureType:
		return w.d.Texture(t)
	case semantic.SamplerType:
		return w.d.Sampler(t)
	case semantic.ArrayType:
		if t.IsRuntimeSized() {
			return "", typeError(t, "runtime-sized arrays can only be buffer members")
		}
		elem, err := w.TypeName(t.Elem)
		if err != nil {
			return "", err
		}
		if typ, ok := w.d.Array(elem, t.Len); ok {
			return typ, nil
		}
		return fmt.Sprintf("%s[%d]", elem, t.Len), nil
	case nil:
		return "void", nil
	default:
		return "", typeError(t, "type has no GPU representation")
	}
}

// Decl declares name with type t, e.g. "float a[4]".
func (w *Writer) Decl(t semantic.Type, name string) (string, error) {
	var suffix string
	for {
		arr, ok := t.(semantic.ArrayType)
		if !ok {
			break
		}
		if arr.IsRuntimeSized() {
			suffix += w.d.RuntimeArraySuffix()
			t = arr.Elem
			continue
		}
		if _, ok := w.d.Array("", 0); ok {
			break
		}
		suffix += fmt.Sprintf("[%d]", arr.Len)
		t = arr.Elem
	}
	typ, err := w.TypeName(t)
	if err != nil {
		return "", err
	}
	return typ + " " + name + suffix, nil
}

// Struct writes a struct definition. Buffer-backed structs pass their
// layout so that padding members are spelled out.
func (w *Writer) Struct(st *semantic.StructType, sl *layout.StructLayout) error {
	w.Line("struct %s {", w.d.Escape(st.Name))
	w.Push()
	if sl != nil {
		for _, p := range sl.Placements {
			name := p.Name
			if !p.Padding {
				name = w.d.Escape(name)
			}
			decl, err := w.Decl(p.Type, name)
			if err != nil {
				return w.attribute(err)
			}
			for _, line := range w.d.StructMember(p, decl) {
				w.Line("%s;", line)
			}
		}
	} else {
		for _, f := range st.Fields {
			decl, err := w.Decl(f.Type, w.d.Escape(f.Name))
			if err != nil {
				return w.attribute(err)
			}
			w.Line("%s;", decl)
		}
	}
	w.Pop()
	w.Line("};")
	w.Blank()
	return nil
}

// Constructor writes the constructor function of a struct: one parameter
// per field in declaration order.
func (w *Writer) Constructor(st *semantic.StructType) error {
	name := w.d.Escape(st.Name)
	params := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		decl, err := w.Decl(f.Type, w.d.Escape(f.Name))
		if err != nil {
			return w.attribute(err)
		}
		params[i] = decl
	}
	w.Line("%s %s(%s) {", name, ConstructorName(w.d, st), strings.Join(params, ", "))
	w.Push()
	if zero, ok := w.d.ZeroValue(name, st); ok {
		w.Line("%s _s = %s;", name, zero)
	} else {
		w.Line("%s _s;", name)
	}
	for _, f := range st.Fields {
		field := w.d.Escape(f.Name)
		w.Line("_s.%s = %s;", field, field)
	}
	w.Line("return _s;")
	w.Pop()
	w.Line("}")
	w.Blank()
	return nil
}

// Constructors lists the structs whose constructor the functions need, in
// first use order.
func (w *Writer) Constructors(funcs []*semantic.Function) []*semantic.StructType {
	var out []*semantic.StructType
	seen := make(map[string]bool)
	var visit func(n any) bool
	visit = func(n any) bool {
		switch n := n.(type) {
		case *semantic.Construct:
			if st, ok := n.Ty.(*semantic.StructType); ok && !seen[st.Name] {
				seen[st.Name] = true
				out = append(out, st)
			}
		case *semantic.VarDecl:
			if n.Init == nil {
				if _, ok := w.zeroLiteral(n.Ty); !ok {
					if z, err := semantic.Zero(n.Ty); err == nil {
						semantic.InspectExpr(z, visit)
					}
				}
			}
		}
		return true
	}
	for _, f := range funcs {
		semantic.Inspect(f.Body, visit)
	}
	return out
}

func (w *Writer) zeroLiteral(t semantic.Type) (string, bool) {
	typ, err := w.TypeName(t)
	if err != nil {
		return "", false
	}
	return w.d.ZeroValue(typ, t)
}

// Function writes f under its mangled name. extra parameters are appended
// to the declared ones.
func (w *Writer) Function(f *semantic.Function, extra []string) error {
	w.fn = f
	defer func() { w.fn = nil }()

	ret, err := w.TypeName(f.Result)
	if err != nil {
		return w.attribute(err)
	}
	params := make([]string, 0, len(f.Params)+len(extra))
	for _, p := range f.Params {
		decl, err := w.Decl(p.Type, w.d.Escape(p.Name))
		if err != nil {
			return w.attribute(err)
		}
		params = append(params, decl)
	}
	params = append(params, extra...)

	w.Line("%s %s(%s) {", ret, FunctionName(w.d, f.Ref()), strings.Join(params, ", "))
	w.Push()
	if err := w.Block(f.Body); err != nil {
		return w.attribute(err)
	}
	w.Pop()
	w.Line("}")
	w.Blank()
	return nil
}

// HasRuntimeArray reports whether the last field of st is a runtime-sized
// array.
func HasRuntimeArray(st *semantic.StructType) bool {
	if len(st.Fields) == 0 {
		return false
	}
	arr, ok := st.Fields[len(st.Fields)-1].Type.(semantic.ArrayType)
	return ok && arr.IsRuntimeSized()
}
