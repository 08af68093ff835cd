// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

// Stmt is a statement.
type Stmt interface {
	isStmt()
}

// Block is an ordered list of statements.
type Block []Stmt

// BlockStmt is a nested scope.
type BlockStmt struct {
	Body Block
}

// VarDecl declares a local variable. Init may be nil.
type VarDecl struct {
	Name string
	Ty   Type
	Init Expr
}

// Assign stores Value into Target, or combines them with Op when
// Compound is set (x += y).
type Assign struct {
	Target   Expr
	Value    Expr
	Op       BinaryOp
	Compound bool
}

// IncDec increments or decrements Target by one.
type IncDec struct {
	Target Expr
	Inc    bool
}

// If is a conditional. Else may be empty.
type If struct {
	Cond Expr
	Then Block
	Else Block
}

// For is a loop. Init, Cond and Post may be nil.
type For struct {
	Init Stmt
	Cond Expr
	Post Stmt
	Body Block
}

// Return returns from the function. Value is nil for void functions.
type Return struct {
	Value Expr
}

// Break leaves the innermost loop.
type Break struct{}

// Continue starts the next iteration of the innermost loop.
type Continue struct{}

// Discard abandons the current fragment.
type Discard struct{}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	X Expr
}

func (*BlockStmt) isStmt() {}
func (*VarDecl) isStmt() {}
func (*Assign) isStmt() {}
func (*IncDec) isStmt() {}
func (*If) isStmt() {}
func (*For) isStmt() {}
func (*Return) isStmt() {}
func (*Break) isStmt() {}
func (*Continue) isStmt() {}
func (*Discard) isStmt() {}
func (*ExprStmt) isStmt() {}
