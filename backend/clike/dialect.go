// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package clike lowers semantic functions into C-family shading languages.
//
// HLSL, GLSL and MSL share statement syntax and most expression syntax. A
// Writer walks functions once and asks its Dialect for everything that
// differs: type spelling, literals, intrinsics, matrix multiplication,
// resource access and reserved words.
package clike

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// Dialect describes one target language.
type Dialect interface {
	Kind() backend.Kind

	// Escape returns name unchanged unless it collides with a reserved
	// word of the target language.
	Escape(name string) string

	Scalar(s semantic.ScalarType) (string, error)
	Vector(v semantic.VectorType) (string, error)
	Matrix(m semantic.MatrixType) (string, error)
	Texture(t semantic.TextureType) (string, error)
	Sampler(t semantic.SamplerType) (string, error)

	// Array spells a fixed-size array as a type. ok is false for dialects
	// that use C declarator suffixes.
	Array(elem string, n uint32) (typ string, ok bool)

	// RuntimeArraySuffix is the declarator suffix of a runtime-sized array
	// member.
	RuntimeArraySuffix() string

	Literal(l *semantic.Literal) (string, error)

	// Intrinsic returns a call of fun. For IntrinsicSample the arguments
	// are texture, sampler and coordinate.
	Intrinsic(fun semantic.Intrinsic, args []string, types []semantic.Type) (string, error)

	// MatrixMul multiplies where at least one operand is a matrix, with
	// column-vector semantics: x * y.
	MatrixMul(x, y string) string

	// VectorCompare compares two vectors for equality, yielding one bool.
	VectorCompare(op semantic.BinaryOp, x, y string) string

	// ArrayConstruct builds an array value from its elements.
	ArrayConstruct(typ string, elems []string) string

	// ZeroValue returns a zero-value expression of t if the dialect has a
	// generic one. Otherwise the writer expands the value field by field.
	ZeroValue(typ string, t semantic.Type) (string, bool)

	// Discard is the statement that abandons a fragment.
	Discard() string

	// Global returns the expression that reads a global.
	Global(g *semantic.Global) string

	// Member returns the field access x.field, where xs is the lowered x.
	Member(x semantic.Expr, xs, field string) string

	// CallArgs returns extra arguments appended to every call of target.
	CallArgs(target semantic.FunctionRef) []string

	// StructMember returns the declaration lines of one buffer struct
	// member.
	StructMember(p layout.Placement, decl string) []string
}

// Base implements the parts of Dialect that most languages share.
// Dialects embed it and override what differs.
type Base struct {
	Keywords Keywords
}

func (b Base) Escape(name string) string {
	return b.Keywords.Escape(name)
}

func (Base) Array(string, uint32) (string, bool) {
	return "", false
}

func (Base) RuntimeArraySuffix() string {
	return "[]"
}

// Literal formats 32-bit scalars and booleans. 64-bit values are reported
// as unsupported.
func (Base) Literal(l *semantic.Literal) (string, error) {
	if l.Scalar.Width == 8 {
		return "", backend.Errorf(backend.ErrUnsupportedType, "%s literals are not supported", l.Scalar)
	}
	switch l.Scalar.Kind {
	case semantic.ScalarBool:
		return strconv.FormatBool(l.Bool), nil
	case semantic.ScalarSint:
		return strconv.FormatInt(l.Int, 10), nil
	case semantic.ScalarUint:
		return strconv.FormatUint(l.Uint, 10) + "u", nil
	case semantic.ScalarFloat:
		return FormatFloat(l.Float), nil
	}
	return "", backend.Errorf(backend.ErrInternal, "literal of %s", l.Scalar)
}

func (Base) MatrixMul(x, y string) string {
	return "(" + x + " * " + y + ")"
}

func (Base) VectorCompare(op semantic.BinaryOp, x, y string) string {
	return "(" + x + " " + op.Token() + " " + y + ")"
}

func (Base) ArrayConstruct(_ string, elems []string) string {
	return "{" + strings.Join(elems, ", ") + "}"
}

func (Base) ZeroValue(string, semantic.Type) (string, bool) {
	return "", false
}

func (Base) Discard() string {
	return "discard;"
}

func (b Base) Global(g *semantic.Global) string {
	return b.Escape(g.Name)
}

func (b Base) Member(_ semantic.Expr, xs, field string) string {
	return xs + "." + b.Escape(field)
}

func (Base) CallArgs(semantic.FunctionRef) []string {
	return nil
}

func (Base) StructMember(_ layout.Placement, decl string) []string {
	return []string{decl}
}

// FormatFloat formats f so that it always reads as a floating point
// literal.
func FormatFloat(f float64) string {
	return formatFloat(f, 32)
}

// FormatFloat64 is FormatFloat at double precision.
func FormatFloat64(f float64) string {
	return formatFloat(f, 64)
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") { // NaN and Inf stay as spelled
		s += ".0"
	}
	return s
}

// Keywords is a set of reserved words.
type Keywords map[string]struct{}

// NewKeywords builds a set from whitespace separated word lists.
func NewKeywords(lists ...string) Keywords {
	k := make(Keywords)
	for _, l := range lists {
		for _, w := range strings.Fields(l) {
			k[w] = struct{}{}
		}
	}
	return k
}

// Has reports whether name is reserved.
func (k Keywords) Has(name string) bool {
	_, ok := k[name]
	return ok
}

// Escape appends an underscore to reserved names.
func (k Keywords) Escape(name string) string {
	if k.Has(name) {
		return name + "_"
	}
	return name
}

// FunctionName is the mangled name of a host function: "Type_Name".
func FunctionName(d Dialect, ref semantic.FunctionRef) string {
	return d.Escape(ref.DeclaringType + "_" + ref.Name)
}

// ConstructorName is the name of the generated constructor of a struct.
func ConstructorName(d Dialect, st *semantic.StructType) string {
	return "make_" + d.Escape(st.Name)
}

// Join formats a comma separated argument list.
func Join(parts ...[]string) string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return strings.Join(all, ", ")
}

func unsupported(format string, args ...any) *backend.Error {
	return backend.Errorf(backend.ErrUnsupportedConstruct, format, args...)
}

func typeError(t semantic.Type, format string, args ...any) *backend.Error {
	e := backend.Errorf(backend.ErrUnsupportedType, format, args...)
	e.Type = fmt.Sprint(t)
	return e
}
