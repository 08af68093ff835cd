// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

// Inspect traverses a block in source order, calling fn for every
// statement and expression. If fn returns false the children of that node
// are skipped.
func Inspect(b Block, fn func(node any) bool) {
	for _, s := range b {
		inspectStmt(s, fn)
	}
}

// InspectExpr traverses an expression tree in evaluation order.
func InspectExpr(e Expr, fn func(node any) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *Unary:
		InspectExpr(e.X, fn)
	case *Binary:
		InspectExpr(e.X, fn)
		InspectExpr(e.Y, fn)
	case *Call:
		for _, a := range e.Args {
			InspectExpr(a, fn)
		}
	case *IntrinsicCall:
		for _, a := range e.Args {
			InspectExpr(a, fn)
		}
	case *Construct:
		for _, a := range e.Args {
			InspectExpr(a, fn)
		}
	case *Member:
		InspectExpr(e.X, fn)
	case *Swizzle:
		InspectExpr(e.X, fn)
	case *Index:
		InspectExpr(e.X, fn)
		InspectExpr(e.Index, fn)
	case *Convert:
		InspectExpr(e.X, fn)
	}
}

func inspectStmt(s Stmt, fn func(node any) bool) {
	if s == nil || !fn(s) {
		return
	}
	switch s := s.(type) {
	case *BlockStmt:
		Inspect(s.Body, fn)
	case *VarDecl:
		InspectExpr(s.Init, fn)
	case *Assign:
		InspectExpr(s.Target, fn)
		InspectExpr(s.Value, fn)
	case *IncDec:
		InspectExpr(s.Target, fn)
	case *If:
		InspectExpr(s.Cond, fn)
		Inspect(s.Then, fn)
		Inspect(s.Else, fn)
	case *For:
		inspectStmt(s.Init, fn)
		InspectExpr(s.Cond, fn)
		inspectStmt(s.Post, fn)
		Inspect(s.Body, fn)
	case *Return:
		InspectExpr(s.Value, fn)
	case *ExprStmt:
		InspectExpr(s.X, fn)
	}
}
