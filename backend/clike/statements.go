// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package clike

import (
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// Block lowers the statements of b at the current indentation.
func (w *Writer) Block(b semantic.Block) error {
	for _, s := range b {
		if err := w.Stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// Stmt lowers one statement.
func (w *Writer) Stmt(s semantic.Stmt) error {
	switch s := s.(type) {
	case *semantic.BlockStmt:
		w.Line("{")
		w.Push()
		if err := w.Block(s.Body); err != nil {
			return err
		}
		w.Pop()
		w.Line("}")
	case *semantic.If:
		return w.ifStmt(s, "if")
	case *semantic.For:
		init, cond, post := "", "", ""
		var err error
		if s.Init != nil {
			if init, err = w.simple(s.Init); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			if cond, err = w.Expr(s.Cond); err != nil {
				return err
			}
		}
		if s.Post != nil {
			if post, err = w.simple(s.Post); err != nil {
				return err
			}
		}
		switch {
		case init == "" && post == "" && cond == "":
			w.Line("for (;;) {")
		case init == "" && post == "":
			w.Line("while (%s) {", cond)
		default:
			w.Line("for (%s; %s; %s) {", init, cond, post)
		}
		w.Push()
		if err := w.Block(s.Body); err != nil {
			return err
		}
		w.Pop()
		w.Line("}")
	case *semantic.Return:
		if s.Value == nil {
			w.Line("return;")
			return nil
		}
		v, err := w.Expr(s.Value)
		if err != nil {
			return err
		}
		w.Line("return %s;", v)
	case *semantic.Break:
		w.Line("break;")
	case *semantic.Continue:
		w.Line("continue;")
	case *semantic.Discard:
		w.Line("%s", w.d.Discard())
	case nil:
		return backend.Errorf(backend.ErrInternal, "missing statement")
	default:
		line, err := w.simple(s)
		if err != nil {
			return err
		}
		w.Line("%s;", line)
	}
	return nil
}

func (w *Writer) ifStmt(s *semantic.If, keyword string) error {
	cond, err := w.Expr(s.Cond)
	if err != nil {
		return err
	}
	w.Line("%s (%s) {", keyword, cond)
	w.Push()
	if err := w.Block(s.Then); err != nil {
		return err
	}
	w.Pop()
	switch {
	case len(s.Else) == 0:
		w.Line("}")
	case len(s.Else) == 1:
		if next, ok := s.Else[0].(*semantic.If); ok {
			return w.ifStmt(next, "} else if")
		}
		fallthrough
	default:
		w.Line("} else {")
		w.Push()
		if err := w.Block(s.Else); err != nil {
			return err
		}
		w.Pop()
		w.Line("}")
	}
	return nil
}

// simple lowers the statements that may appear in a for clause, without
// the terminating semicolon.
func (w *Writer) simple(s semantic.Stmt) (string, error) {
	switch s := s.(type) {
	case *semantic.VarDecl:
		decl, err := w.Decl(s.Ty, w.d.Escape(s.Name))
		if err != nil {
			return "", err
		}
		init, err := w.initializer(s)
		if err != nil {
			return "", err
		}
		return decl + " = " + init, nil
	case *semantic.Assign:
		target, err := w.Expr(s.Target)
		if err != nil {
			return "", err
		}
		if !s.Compound {
			v, err := w.Expr(s.Value)
			if err != nil {
				return "", err
			}
			return target + " = " + v, nil
		}
		if s.Op == semantic.BinaryMul && (isMatrix(s.Target.Type()) || isMatrix(s.Value.Type())) {
			v, err := w.Expr(s.Value)
			if err != nil {
				return "", err
			}
			return target + " = " + w.d.MatrixMul(target, v), nil
		}
		v, err := w.Expr(s.Value)
		if err != nil {
			return "", err
		}
		return target + " " + s.Op.Token() + "= " + v, nil
	case *semantic.IncDec:
		target, err := w.Expr(s.Target)
		if err != nil {
			return "", err
		}
		if s.Inc {
			return target + "++", nil
		}
		return target + "--", nil
	case *semantic.ExprStmt:
		return w.Expr(s.X)
	}
	return "", unsupported("statement %T", s)
}

// initializer returns the initial value of a declaration. Declarations
// without one are zero-initialized as in Go.
func (w *Writer) initializer(s *semantic.VarDecl) (string, error) {
	if s.Init != nil {
		return w.Expr(s.Init)
	}
	if zero, ok := w.zeroLiteral(s.Ty); ok {
		return zero, nil
	}
	z, err := semantic.Zero(s.Ty)
	if err != nil {
		return "", typeError(s.Ty, "%v", err)
	}
	return w.Expr(z)
}
