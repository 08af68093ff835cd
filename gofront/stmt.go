// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/gogpu/shadergen/semantic"
)

func (fl *funcLowerer) block(list []ast.Stmt) (semantic.Block, error) {
	var out semantic.Block
	for _, s := range list {
		stmts, err := fl.stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// simple lowers a statement that must produce exactly one statement, such
// as a loop clause.
func (fl *funcLowerer) simple(s ast.Stmt) (semantic.Stmt, error) {
	if s == nil {
		return nil, nil
	}
	stmts, err := fl.stmt(s)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fl.errorf(s, "statement must declare or assign a single value here")
	}
	return stmts[0], nil
}

func (fl *funcLowerer) stmt(s ast.Stmt) ([]semantic.Stmt, error) {
	switch s := s.(type) {
	case *ast.EmptyStmt:
		return nil, nil
	case *ast.DeclStmt:
		return fl.declStmt(s)
	case *ast.AssignStmt:
		return fl.assign(s)
	case *ast.IncDecStmt:
		target, err := fl.expr(s.X)
		if err != nil {
			return nil, err
		}
		return one(&semantic.IncDec{Target: target, Inc: s.Tok == token.INC})
	case *ast.ExprStmt:
		c, ok := ast.Unparen(s.X).(*ast.CallExpr)
		if !ok {
			return nil, fl.errorf(s, "expression statement is not a call")
		}
		if fl.isDiscard(c) {
			return one(&semantic.Discard{})
		}
		x, err := fl.expr(c)
		if err != nil {
			return nil, err
		}
		return one(&semantic.ExprStmt{X: x})
	case *ast.BlockStmt:
		body, err := fl.block(s.List)
		if err != nil {
			return nil, err
		}
		return one(&semantic.BlockStmt{Body: body})
	case *ast.IfStmt:
		return fl.ifStmt(s)
	case *ast.ForStmt:
		return fl.forStmt(s)
	case *ast.RangeStmt:
		return fl.rangeStmt(s)
	case *ast.ReturnStmt:
		switch len(s.Results) {
		case 0:
			if fl.fn.Result != nil {
				return nil, fl.errorf(s, "bare returns are not supported")
			}
			return one(&semantic.Return{})
		case 1:
			v, err := fl.expr(s.Results[0])
			if err != nil {
				return nil, err
			}
			return one(&semantic.Return{Value: v})
		}
		return nil, fl.errorf(s, "multiple return values are not supported")
	case *ast.BranchStmt:
		if s.Label != nil {
			return nil, fl.errorf(s, "labeled %s is not supported", s.Tok)
		}
		switch s.Tok {
		case token.BREAK:
			return one(&semantic.Break{})
		case token.CONTINUE:
			return one(&semantic.Continue{})
		}
		return nil, fl.errorf(s, "%s is not supported", s.Tok)
	}
	return nil, fl.errorf(s, "%s statements are not supported", nodeName(s))
}

func one(s semantic.Stmt) ([]semantic.Stmt, error) {
	return []semantic.Stmt{s}, nil
}

func (fl *funcLowerer) declStmt(s *ast.DeclStmt) ([]semantic.Stmt, error) {
	gd := s.Decl.(*ast.GenDecl)
	switch gd.Tok {
	case token.CONST:
		// Constants are folded at their uses.
		return nil, nil
	case token.VAR:
	default:
		return nil, fl.errorf(s, "local %s declarations are not supported", gd.Tok)
	}
	var out []semantic.Stmt
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		if len(vs.Values) != 0 && len(vs.Values) != len(vs.Names) {
			return nil, fl.errorf(vs, "tuple assignment is not supported")
		}
		inits := make([]semantic.Expr, len(vs.Names))
		for i := range vs.Values {
			x, err := fl.expr(vs.Values[i])
			if err != nil {
				return nil, err
			}
			inits[i] = x
		}
		for i, name := range vs.Names {
			obj := fl.info.Defs[name]
			if obj == nil {
				return nil, fl.errorf(name, "blank variables are not supported")
			}
			ty := fl.goType(obj.Type())
			out = append(out, &semantic.VarDecl{Name: fl.declare(obj, ty), Ty: ty, Init: inits[i]})
		}
	}
	return out, nil
}

func (fl *funcLowerer) assign(s *ast.AssignStmt) ([]semantic.Stmt, error) {
	if len(s.Lhs) != len(s.Rhs) {
		return nil, fl.errorf(s, "tuple assignment is not supported")
	}
	if op, ok := assignOps[s.Tok]; ok {
		target, err := fl.expr(s.Lhs[0])
		if err != nil {
			return nil, err
		}
		v, err := fl.expr(s.Rhs[0])
		if err != nil {
			return nil, err
		}
		return one(&semantic.Assign{Target: target, Value: v, Op: op, Compound: true})
	}

	// Right hand sides are evaluated before any new name is in scope.
	values, err := fl.exprs(s.Rhs)
	if err != nil {
		return nil, err
	}
	var out []semantic.Stmt
	for i, lhs := range s.Lhs {
		if id, ok := lhs.(*ast.Ident); ok && id.Name == "_" {
			if _, isCall := values[i].(*semantic.Call); isCall {
				out = append(out, &semantic.ExprStmt{X: values[i]})
			}
			continue
		}
		if s.Tok == token.DEFINE {
			if obj := fl.info.Defs[lhs.(*ast.Ident)]; obj != nil {
				ty := fl.goType(obj.Type())
				out = append(out, &semantic.VarDecl{Name: fl.declare(obj, ty), Ty: ty, Init: values[i]})
				continue
			}
		}
		if len(s.Lhs) > 1 {
			return nil, fl.errorf(s, "parallel assignment is not supported")
		}
		target, err := fl.expr(lhs)
		if err != nil {
			return nil, err
		}
		out = append(out, &semantic.Assign{Target: target, Value: values[i]})
	}
	return out, nil
}

func (fl *funcLowerer) ifStmt(s *ast.IfStmt) ([]semantic.Stmt, error) {
	var pre semantic.Stmt
	if s.Init != nil {
		var err error
		if pre, err = fl.simple(s.Init); err != nil {
			return nil, err
		}
	}
	cond, err := fl.expr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := fl.block(s.Body.List)
	if err != nil {
		return nil, err
	}
	var els semantic.Block
	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		if els, err = fl.block(e.List); err != nil {
			return nil, err
		}
	case *ast.IfStmt:
		if els, err = fl.ifStmt(e); err != nil {
			return nil, err
		}
	}
	stmt := &semantic.If{Cond: cond, Then: then, Else: els}
	if pre == nil {
		return one(stmt)
	}
	return one(&semantic.BlockStmt{Body: semantic.Block{pre, stmt}})
}

func (fl *funcLowerer) forStmt(s *ast.ForStmt) ([]semantic.Stmt, error) {
	init, err := fl.simple(s.Init)
	if err != nil {
		return nil, err
	}
	var cond semantic.Expr
	if s.Cond != nil {
		if cond, err = fl.expr(s.Cond); err != nil {
			return nil, err
		}
	}
	post, err := fl.simple(s.Post)
	if err != nil {
		return nil, err
	}
	body, err := fl.block(s.Body.List)
	if err != nil {
		return nil, err
	}
	return one(&semantic.For{Init: init, Cond: cond, Post: post, Body: body})
}

// rangeStmt lowers "for i := range n" over an integer n into a counting
// loop. n is read on every iteration, so it must be a constant or a
// variable.
func (fl *funcLowerer) rangeStmt(s *ast.RangeStmt) ([]semantic.Stmt, error) {
	b, ok := fl.info.TypeOf(s.X).Underlying().(*types.Basic)
	if !ok || b.Info()&types.IsInteger == 0 {
		return nil, fl.errorf(s, "range over %s is not supported", fl.info.TypeOf(s.X))
	}
	if s.Value != nil || (s.Key != nil && s.Tok != token.DEFINE) {
		return nil, fl.errorf(s, "range loops must declare their counter")
	}
	switch ast.Unparen(s.X).(type) {
	case *ast.Ident, *ast.BasicLit, *ast.SelectorExpr:
	default:
		if fl.info.Types[s.X].Value == nil {
			return nil, fl.errorf(s.X, "range bound must be a constant or a variable")
		}
	}
	n, err := fl.expr(s.X)
	if err != nil {
		return nil, err
	}
	ty := n.Type()
	var obj types.Object
	if id, ok := s.Key.(*ast.Ident); ok && id.Name != "_" {
		obj = fl.info.Defs[id]
	}
	if obj == nil {
		obj = types.NewVar(s.For, nil, "_i", fl.info.TypeOf(s.X))
	}
	zero, err := fl.zero(s, ty)
	if err != nil {
		return nil, err
	}
	name := fl.declare(obj, ty)
	i := fl.vars[obj]
	body, err := fl.block(s.Body.List)
	if err != nil {
		return nil, err
	}
	return one(&semantic.For{
		Init: &semantic.VarDecl{Name: name, Ty: ty, Init: zero},
		Cond: &semantic.Binary{Op: semantic.BinaryLt, X: i, Y: n, Ty: semantic.Bool},
		Post: &semantic.IncDec{Target: i, Inc: true},
		Body: body,
	})
}
