// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/semantic"
)

// funcLowerer lowers the body of one function.
type funcLowerer struct {
	*lowerer
	info *types.Info
	fn   *semantic.Function

	recv  *types.Var
	vars  map[types.Object]*semantic.Ident
	names map[string]int
}

func newFuncLowerer(l *lowerer, info *types.Info, f *semantic.Function, sig *types.Signature) *funcLowerer {
	fl := &funcLowerer{
		lowerer: l,
		info:    info,
		fn:      f,
		recv:    sig.Recv(),
		vars:    make(map[types.Object]*semantic.Ident),
		names:   make(map[string]int),
	}
	params := sig.Params()
	f.Params = make([]semantic.Param, params.Len())
	for i := range params.Len() {
		v := params.At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = "_p" + strconv.Itoa(i)
		}
		ty := l.goType(v.Type())
		f.Params[i] = semantic.Param{Name: name, Type: ty}
		fl.names[name]++
		fl.vars[v] = &semantic.Ident{Name: name, Kind: semantic.IdentParam, Ty: ty}
	}
	if sig.Results().Len() == 1 {
		f.Result = l.goType(sig.Results().At(0).Type())
	}
	return fl
}

func (fl *funcLowerer) errorf(node ast.Node, format string, args ...any) *Error {
	return &Error{
		Pos:     fl.fset.Position(node.Pos()),
		Func:    fl.fn.Ref().String(),
		Message: fmt.Sprintf(format, args...),
	}
}

// declare introduces a local. Shadowed names get a numeric suffix so that
// every local of the function has a distinct name.
func (fl *funcLowerer) declare(obj types.Object, ty semantic.Type) string {
	name := obj.Name()
	if n := fl.names[name]; n > 0 {
		base := name
		for ; fl.names[name] > 0; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
	}
	fl.names[name]++
	fl.vars[obj] = &semantic.Ident{Name: name, Kind: semantic.IdentLocal, Ty: ty}
	return name
}

func (fl *funcLowerer) typeOf(e ast.Expr) semantic.Type {
	return fl.goType(fl.info.TypeOf(e))
}

func (fl *funcLowerer) exprs(list []ast.Expr) ([]semantic.Expr, error) {
	out := make([]semantic.Expr, len(list))
	for i, e := range list {
		x, err := fl.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (fl *funcLowerer) expr(e ast.Expr) (semantic.Expr, error) {
	if tv, ok := fl.info.Types[e]; ok && tv.Value != nil {
		return fl.constant(e, tv)
	}
	switch e := e.(type) {
	case *ast.ParenExpr:
		return fl.expr(e.X)
	case *ast.Ident:
		return fl.ident(e)
	case *ast.UnaryExpr:
		return fl.unary(e)
	case *ast.BinaryExpr:
		return fl.binary(e)
	case *ast.CallExpr:
		return fl.call(e)
	case *ast.CompositeLit:
		return fl.composite(e)
	case *ast.SelectorExpr:
		return fl.selector(e)
	case *ast.IndexExpr:
		x, err := fl.expr(e.X)
		if err != nil {
			return nil, err
		}
		if _, isMap := fl.info.TypeOf(e.X).Underlying().(*types.Map); isMap {
			return nil, fl.errorf(e, "map indexing is not supported")
		}
		idx, err := fl.expr(e.Index)
		if err != nil {
			return nil, err
		}
		return &semantic.Index{X: x, Index: idx, Ty: fl.typeOf(e)}, nil
	case *ast.StarExpr:
		return nil, fl.errorf(e, "pointer dereference is not supported")
	case *ast.FuncLit:
		return nil, fl.errorf(e, "function literals are not supported")
	}
	return nil, fl.errorf(e, "%s expressions are not supported", nodeName(e))
}

func nodeName(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func (fl *funcLowerer) constant(e ast.Expr, tv types.TypeAndValue) (semantic.Expr, error) {
	s, ok := fl.goType(tv.Type).(semantic.ScalarType)
	if !ok {
		return nil, fl.errorf(e, "constant of type %s is not supported", tv.Type)
	}
	lit := &semantic.Literal{Scalar: s}
	v := tv.Value
	switch s.Kind {
	case semantic.ScalarBool:
		lit.Bool = constant.BoolVal(v)
	case semantic.ScalarFloat:
		lit.Float, _ = constant.Float64Val(constant.ToFloat(v))
	case semantic.ScalarSint:
		n, exact := constant.Int64Val(constant.ToInt(v))
		if !exact || (s.Width == 4 && (n < math.MinInt32 || n > math.MaxInt32)) {
			return nil, fl.errorf(e, "constant %s overflows %s", v, s)
		}
		lit.Int = n
	case semantic.ScalarUint:
		n, exact := constant.Uint64Val(constant.ToInt(v))
		if !exact || (s.Width == 4 && n > math.MaxUint32) {
			return nil, fl.errorf(e, "constant %s overflows %s", v, s)
		}
		lit.Uint = n
	}
	return lit, nil
}

func (fl *funcLowerer) ident(id *ast.Ident) (semantic.Expr, error) {
	obj := fl.info.Uses[id]
	if obj == nil {
		obj = fl.info.Defs[id]
	}
	switch obj := obj.(type) {
	case *types.Var:
		if x, ok := fl.vars[obj]; ok {
			c := *x
			return &c, nil
		}
		if g, ok := fl.globals[obj]; ok {
			return &semantic.Ident{Name: g.Name, Kind: semantic.IdentGlobal, Ty: g.Type}, nil
		}
		if obj == fl.recv {
			return nil, fl.errorf(id, "receiver %s is not available in shader code", id.Name)
		}
		return nil, fl.errorf(id, "%s is not a shader variable", id.Name)
	case nil:
		return nil, fl.errorf(id, "unresolved identifier %s", id.Name)
	}
	return nil, fl.errorf(id, "%s cannot be used as a value", id.Name)
}

var unaryOps = map[token.Token]semantic.UnaryOp{
	token.SUB: semantic.UnaryNeg,
	token.NOT: semantic.UnaryNot,
	token.XOR: semantic.UnaryBitNot,
}

func (fl *funcLowerer) unary(e *ast.UnaryExpr) (semantic.Expr, error) {
	x, err := fl.expr(e.X)
	if err != nil {
		return nil, err
	}
	if e.Op == token.ADD {
		return x, nil
	}
	op, ok := unaryOps[e.Op]
	if !ok {
		return nil, fl.errorf(e, "operator %s is not supported", e.Op)
	}
	return &semantic.Unary{Op: op, X: x, Ty: fl.typeOf(e)}, nil
}

var binaryOps = map[token.Token]semantic.BinaryOp{
	token.ADD:  semantic.BinaryAdd,
	token.SUB:  semantic.BinarySub,
	token.MUL:  semantic.BinaryMul,
	token.QUO:  semantic.BinaryDiv,
	token.REM:  semantic.BinaryMod,
	token.EQL:  semantic.BinaryEq,
	token.NEQ:  semantic.BinaryNe,
	token.LSS:  semantic.BinaryLt,
	token.LEQ:  semantic.BinaryLe,
	token.GTR:  semantic.BinaryGt,
	token.GEQ:  semantic.BinaryGe,
	token.LAND: semantic.BinaryLogicalAnd,
	token.LOR:  semantic.BinaryLogicalOr,
	token.AND:  semantic.BinaryAnd,
	token.OR:   semantic.BinaryOr,
	token.XOR:  semantic.BinaryXor,
	token.SHL:  semantic.BinaryShl,
	token.SHR:  semantic.BinaryShr,
}

var assignOps = map[token.Token]semantic.BinaryOp{
	token.ADD_ASSIGN: semantic.BinaryAdd,
	token.SUB_ASSIGN: semantic.BinarySub,
	token.MUL_ASSIGN: semantic.BinaryMul,
	token.QUO_ASSIGN: semantic.BinaryDiv,
	token.REM_ASSIGN: semantic.BinaryMod,
	token.AND_ASSIGN: semantic.BinaryAnd,
	token.OR_ASSIGN:  semantic.BinaryOr,
	token.XOR_ASSIGN: semantic.BinaryXor,
	token.SHL_ASSIGN: semantic.BinaryShl,
	token.SHR_ASSIGN: semantic.BinaryShr,
}

func (fl *funcLowerer) binary(e *ast.BinaryExpr) (semantic.Expr, error) {
	op, ok := binaryOps[e.Op]
	if !ok {
		return nil, fl.errorf(e, "operator %s is not supported", e.Op)
	}
	x, err := fl.expr(e.X)
	if err != nil {
		return nil, err
	}
	y, err := fl.expr(e.Y)
	if err != nil {
		return nil, err
	}
	return &semantic.Binary{Op: op, X: x, Y: y, Ty: fl.typeOf(e)}, nil
}

func (fl *funcLowerer) selector(e *ast.SelectorExpr) (semantic.Expr, error) {
	sel, ok := fl.info.Selections[e]
	if !ok {
		// Qualified identifier.
		return fl.ident(e.Sel)
	}
	if sel.Kind() != types.FieldVal {
		return nil, fl.errorf(e, "method values are not supported")
	}
	if len(sel.Index()) > 1 {
		return nil, fl.errorf(e, "promoted field %s is not supported", e.Sel.Name)
	}
	if _, isPtr := sel.Recv().(*types.Pointer); isPtr {
		return nil, fl.errorf(e, "field access through a pointer is not supported")
	}
	x, err := fl.expr(e.X)
	if err != nil {
		return nil, err
	}
	ty := fl.typeOf(e)
	switch x.Type().(type) {
	case semantic.VectorType:
		return &semantic.Swizzle{X: x, Components: strings.ToLower(e.Sel.Name), Ty: ty}, nil
	case *semantic.StructType:
		return &semantic.Member{X: x, Field: e.Sel.Name, Ty: ty}, nil
	}
	return nil, fl.errorf(e, "field %s of %s is not supported", e.Sel.Name, x.Type())
}

func (fl *funcLowerer) composite(e *ast.CompositeLit) (semantic.Expr, error) {
	gt := fl.info.TypeOf(e)
	ty := fl.goType(gt)
	switch t := ty.(type) {
	case semantic.VectorType, *semantic.StructType:
		gs, ok := gt.Underlying().(*types.Struct)
		if !ok {
			break
		}
		fieldTypes := make([]semantic.Type, gs.NumFields())
		for i := range fieldTypes {
			fieldTypes[i] = fl.goType(gs.Field(i).Type())
		}
		args, err := fl.structElems(e, gs, fieldTypes)
		if err != nil {
			return nil, err
		}
		return &semantic.Construct{Ty: ty, Args: args}, nil
	case semantic.MatrixType:
		args, err := fl.arrayElems(e, int(t.Columns), t.Column())
		if err != nil {
			return nil, err
		}
		return &semantic.Construct{Ty: ty, Args: args}, nil
	case semantic.ArrayType:
		if t.IsRuntimeSized() {
			return nil, fl.errorf(e, "slice literals are not supported")
		}
		args, err := fl.arrayElems(e, int(t.Len), t.Elem)
		if err != nil {
			return nil, err
		}
		return &semantic.Construct{Ty: ty, Args: args}, nil
	}
	return nil, fl.errorf(e, "composite literal of %s is not supported", gt)
}

func (fl *funcLowerer) zero(node ast.Node, t semantic.Type) (semantic.Expr, error) {
	z, err := semantic.Zero(t)
	if err != nil {
		return nil, fl.errorf(node, "%v", err)
	}
	return z, nil
}

func (fl *funcLowerer) structElems(e *ast.CompositeLit, gs *types.Struct, fieldTypes []semantic.Type) ([]semantic.Expr, error) {
	args := make([]semantic.Expr, len(fieldTypes))
	for i, elt := range e.Elts {
		idx := i
		value := elt
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			key, _ := kv.Key.(*ast.Ident)
			idx = -1
			for j := range gs.NumFields() {
				if key != nil && gs.Field(j).Name() == key.Name {
					idx = j
				}
			}
			if idx < 0 {
				return nil, fl.errorf(kv, "unknown field in composite literal")
			}
			value = kv.Value
		}
		x, err := fl.expr(value)
		if err != nil {
			return nil, err
		}
		args[idx] = x
	}
	for i, a := range args {
		if a != nil {
			continue
		}
		z, err := fl.zero(e, fieldTypes[i])
		if err != nil {
			return nil, err
		}
		args[i] = z
	}
	return args, nil
}

func (fl *funcLowerer) arrayElems(e *ast.CompositeLit, n int, elem semantic.Type) ([]semantic.Expr, error) {
	args := make([]semantic.Expr, n)
	for i, elt := range e.Elts {
		if _, ok := elt.(*ast.KeyValueExpr); ok {
			return nil, fl.errorf(elt, "indexed array literals are not supported")
		}
		x, err := fl.expr(elt)
		if err != nil {
			return nil, err
		}
		args[i] = x
	}
	for i := len(e.Elts); i < n; i++ {
		z, err := fl.zero(e, elem)
		if err != nil {
			return nil, err
		}
		args[i] = z
	}
	return args, nil
}
