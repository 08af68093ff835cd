// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"go/ast"
	"go/types"

	"github.com/gogpu/shadergen/semantic"
)

var slIntrinsics = map[string]semantic.Intrinsic{
	"Dot":        semantic.IntrinsicDot,
	"Cross":      semantic.IntrinsicCross,
	"Normalize":  semantic.IntrinsicNormalize,
	"Length":     semantic.IntrinsicLength,
	"Distance":   semantic.IntrinsicDistance,
	"Abs":        semantic.IntrinsicAbs,
	"Min":        semantic.IntrinsicMin,
	"Max":        semantic.IntrinsicMax,
	"Clamp":      semantic.IntrinsicClamp,
	"Mix":        semantic.IntrinsicMix,
	"Step":       semantic.IntrinsicStep,
	"Smoothstep": semantic.IntrinsicSmoothstep,
	"Floor":      semantic.IntrinsicFloor,
	"Ceil":       semantic.IntrinsicCeil,
	"Fract":      semantic.IntrinsicFract,
	"Sqrt":       semantic.IntrinsicSqrt,
	"Pow":        semantic.IntrinsicPow,
	"Exp":        semantic.IntrinsicExp,
	"Log":        semantic.IntrinsicLog,
	"Sin":        semantic.IntrinsicSin,
	"Cos":        semantic.IntrinsicCos,
	"Tan":        semantic.IntrinsicTan,
	"Atan2":      semantic.IntrinsicAtan2,
	"Transpose":  semantic.IntrinsicTranspose,
}

// callee resolves the function a call expression invokes. recv is the
// receiver expression of a method call.
func (fl *funcLowerer) callee(fun ast.Expr) (fn *types.Func, recv ast.Expr) {
	switch f := ast.Unparen(fun).(type) {
	case *ast.Ident:
		fn, _ = fl.info.Uses[f].(*types.Func)
	case *ast.SelectorExpr:
		if sel, ok := fl.info.Selections[f]; ok {
			if sel.Kind() == types.MethodVal {
				fn, _ = sel.Obj().(*types.Func)
				recv = f.X
			}
			return fn, recv
		}
		fn, _ = fl.info.Uses[f.Sel].(*types.Func)
	case *ast.IndexExpr:
		return fl.callee(f.X)
	case *ast.IndexListExpr:
		return fl.callee(f.X)
	}
	return fn, recv
}

func (fl *funcLowerer) call(c *ast.CallExpr) (semantic.Expr, error) {
	if tv := fl.info.Types[ast.Unparen(c.Fun)]; tv.IsType() {
		return fl.conversion(c)
	} else if tv.IsBuiltin() {
		return fl.builtin(c)
	}
	if c.Ellipsis.IsValid() {
		return nil, fl.errorf(c, "variadic calls are not supported")
	}
	fn, recv := fl.callee(c.Fun)
	if fn == nil {
		return nil, fl.errorf(c, "calls of function values are not supported")
	}
	if isSL(fn) {
		return fl.slCall(c, fn, recv)
	}
	if !fl.pkgs[fn.Pkg()] {
		return nil, fl.errorf(c, "%s.%s is outside the loaded packages", fn.Pkg().Name(), fn.Name())
	}
	owner, ok := declaringType(fn)
	if !ok {
		return nil, fl.errorf(c, "call of %s is not supported", fn.FullName())
	}
	if sig := fn.Type().(*types.Signature); sig.TypeParams().Len() > 0 {
		return nil, fl.errorf(c, "calls of generic functions are not supported")
	}
	args, err := fl.exprs(c.Args)
	if err != nil {
		return nil, err
	}
	return &semantic.Call{
		Target: semantic.FunctionRef{DeclaringType: owner, Name: fn.Name()},
		Args:   args,
		Ty:     fl.typeOf(c),
	}, nil
}

func (fl *funcLowerer) conversion(c *ast.CallExpr) (semantic.Expr, error) {
	if len(c.Args) != 1 {
		return nil, fl.errorf(c, "malformed conversion")
	}
	x, err := fl.expr(c.Args[0])
	if err != nil {
		return nil, err
	}
	ty := fl.typeOf(c)
	if semantic.Equal(x.Type(), ty) {
		return x, nil
	}
	switch ty.(type) {
	case semantic.ScalarType, semantic.VectorType:
		return &semantic.Convert{X: x, Ty: ty}, nil
	}
	return nil, fl.errorf(c, "conversion to %s is not supported", fl.info.TypeOf(c))
}

func (fl *funcLowerer) builtin(c *ast.CallExpr) (semantic.Expr, error) {
	id, _ := ast.Unparen(c.Fun).(*ast.Ident)
	if id == nil {
		return nil, fl.errorf(c, "unsupported builtin call")
	}
	var fun semantic.Intrinsic
	switch id.Name {
	case "min":
		fun = semantic.IntrinsicMin
	case "max":
		fun = semantic.IntrinsicMax
	default:
		return nil, fl.errorf(c, "builtin %s is not supported", id.Name)
	}
	args, err := fl.exprs(c.Args)
	if err != nil {
		return nil, err
	}
	ty := fl.typeOf(c)
	acc := args[0]
	for _, a := range args[1:] {
		acc = &semantic.IntrinsicCall{Fun: fun, Args: []semantic.Expr{acc, a}, Ty: ty}
	}
	return acc, nil
}

// isDiscard reports whether c calls sl.Discard.
func (fl *funcLowerer) isDiscard(c *ast.CallExpr) bool {
	fn, recv := fl.callee(c.Fun)
	return fn != nil && recv == nil && isSL(fn) && fn.Name() == "Discard"
}

func (fl *funcLowerer) slCall(c *ast.CallExpr, fn *types.Func, recv ast.Expr) (semantic.Expr, error) {
	args, err := fl.exprs(c.Args)
	if err != nil {
		return nil, err
	}
	ty := fl.typeOf(c)
	name := fn.Name()

	if recv == nil {
		if fun, ok := slIntrinsics[name]; ok {
			return &semantic.IntrinsicCall{Fun: fun, Args: args, Ty: ty}, nil
		}
		switch name {
		case "Extend3", "Extend4":
			return &semantic.Construct{Ty: ty, Args: args}, nil
		case "Splat4":
			return &semantic.Construct{Ty: ty, Args: []semantic.Expr{args[0], args[0], args[0], args[0]}}, nil
		case "Identity3", "Identity4":
			return identity(ty.(semantic.MatrixType)), nil
		case "Discard":
			return nil, fl.errorf(c, "sl.Discard must be called as a statement")
		}
		return nil, fl.errorf(c, "sl.%s has no shader equivalent", name)
	}

	x, err := fl.expr(recv)
	if err != nil {
		return nil, err
	}
	binary := func(op semantic.BinaryOp) semantic.Expr {
		return &semantic.Binary{Op: op, X: x, Y: args[0], Ty: ty}
	}
	intrinsic := func(fun semantic.Intrinsic) semantic.Expr {
		return &semantic.IntrinsicCall{Fun: fun, Args: append([]semantic.Expr{x}, args...), Ty: ty}
	}
	switch name {
	case "Add":
		return binary(semantic.BinaryAdd), nil
	case "Sub":
		return binary(semantic.BinarySub), nil
	case "Mul", "MulVec", "Scale":
		return binary(semantic.BinaryMul), nil
	case "Div":
		return binary(semantic.BinaryDiv), nil
	case "Neg":
		return &semantic.Unary{Op: semantic.UnaryNeg, X: x, Ty: ty}, nil
	case "Dot", "Cross", "Length", "Normalize", "Transpose":
		return intrinsic(slIntrinsics[name]), nil
	case "XY":
		return &semantic.Swizzle{X: x, Components: "xy", Ty: ty}, nil
	case "XYZ":
		return &semantic.Swizzle{X: x, Components: "xyz", Ty: ty}, nil
	case "Sample":
		return intrinsic(semantic.IntrinsicSample), nil
	}
	return nil, fl.errorf(c, "method %s of sl has no shader equivalent", name)
}

func identity(m semantic.MatrixType) semantic.Expr {
	cols := make([]semantic.Expr, m.Columns)
	for i := range cols {
		comps := make([]semantic.Expr, m.Rows)
		for j := range comps {
			v := 0.0
			if i == j {
				v = 1
			}
			comps[j] = &semantic.Literal{Scalar: m.Scalar, Float: v}
		}
		cols[i] = &semantic.Construct{Ty: m.Column(), Args: comps}
	}
	return &semantic.Construct{Ty: m, Args: cols}
}
