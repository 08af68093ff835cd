// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package clike

import (
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// Expr lowers an expression. Binary operations are always parenthesized so
// that precedence never depends on the target language.
func (w *Writer) Expr(e semantic.Expr) (string, error) {
	switch e := e.(type) {
	case *semantic.Literal:
		return w.d.Literal(e)
	case *semantic.Ident:
		if e.Kind == semantic.IdentGlobal {
			g, ok := w.globals[e.Name]
			if !ok {
				return "", backend.Errorf(backend.ErrInternal, "global %q is not part of the stage", e.Name)
			}
			return w.d.Global(g), nil
		}
		return w.d.Escape(e.Name), nil
	case *semantic.Unary:
		x, err := w.Expr(e.X)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case semantic.UnaryNeg:
			return "(-" + x + ")", nil
		case semantic.UnaryNot:
			return "(!" + x + ")", nil
		case semantic.UnaryBitNot:
			return "(~" + x + ")", nil
		}
		return "", unsupported("unary operator %d", e.Op)
	case *semantic.Binary:
		return w.binary(e.Op, e.X, e.Y)
	case *semantic.Call:
		args, err := w.exprs(e.Args)
		if err != nil {
			return "", err
		}
		return FunctionName(w.d, e.Target) + "(" + Join(args, w.d.CallArgs(e.Target)) + ")", nil
	case *semantic.IntrinsicCall:
		args, err := w.exprs(e.Args)
		if err != nil {
			return "", err
		}
		types := make([]semantic.Type, len(e.Args))
		for i, a := range e.Args {
			types[i] = a.Type()
		}
		return w.d.Intrinsic(e.Fun, args, types)
	case *semantic.Construct:
		return w.construct(e)
	case *semantic.Member:
		x, err := w.Expr(e.X)
		if err != nil {
			return "", err
		}
		return w.d.Member(e.X, x, e.Field), nil
	case *semantic.Swizzle:
		x, err := w.Expr(e.X)
		if err != nil {
			return "", err
		}
		return x + "." + e.Components, nil
	case *semantic.Index:
		x, err := w.Expr(e.X)
		if err != nil {
			return "", err
		}
		i, err := w.Expr(e.Index)
		if err != nil {
			return "", err
		}
		return x + "[" + i + "]", nil
	case *semantic.Convert:
		x, err := w.Expr(e.X)
		if err != nil {
			return "", err
		}
		typ, err := w.TypeName(e.Ty)
		if err != nil {
			return "", err
		}
		return typ + "(" + x + ")", nil
	case nil:
		return "", backend.Errorf(backend.ErrInternal, "missing expression")
	}
	return "", unsupported("expression %T", e)
}

func (w *Writer) exprs(es []semantic.Expr) ([]string, error) {
	out := make([]string, len(es))
	for i, e := range es {
		s, err := w.Expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (w *Writer) binary(op semantic.BinaryOp, xe, ye semantic.Expr) (string, error) {
	x, err := w.Expr(xe)
	if err != nil {
		return "", err
	}
	y, err := w.Expr(ye)
	if err != nil {
		return "", err
	}
	if op == semantic.BinaryMul && (isMatrix(xe.Type()) || isMatrix(ye.Type())) {
		return w.d.MatrixMul(x, y), nil
	}
	if (op == semantic.BinaryEq || op == semantic.BinaryNe) && isComposite(xe.Type()) {
		return w.d.VectorCompare(op, x, y), nil
	}
	return "(" + x + " " + op.Token() + " " + y + ")", nil
}

func (w *Writer) construct(e *semantic.Construct) (string, error) {
	args, err := w.exprs(e.Args)
	if err != nil {
		return "", err
	}
	switch t := e.Ty.(type) {
	case *semantic.StructType:
		return ConstructorName(w.d, t) + "(" + strings.Join(args, ", ") + ")", nil
	case semantic.ArrayType:
		typ, err := w.TypeName(t)
		if err != nil {
			return "", err
		}
		return w.d.ArrayConstruct(typ, args), nil
	}
	typ, err := w.TypeName(e.Ty)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		if zero, ok := w.d.ZeroValue(typ, e.Ty); ok {
			return zero, nil
		}
		z, err := semantic.Zero(e.Ty)
		if err != nil {
			return "", typeError(e.Ty, "%v", err)
		}
		return w.Expr(z)
	}
	return typ + "(" + strings.Join(args, ", ") + ")", nil
}

func isMatrix(t semantic.Type) bool {
	_, ok := t.(semantic.MatrixType)
	return ok
}

func isComposite(t semantic.Type) bool {
	switch t.(type) {
	case semantic.VectorType, semantic.MatrixType:
		return true
	}
	return false
}
