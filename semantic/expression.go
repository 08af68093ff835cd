// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

import "fmt"

// Expr is an expression with a resolved type.
type Expr interface {
	// Type returns the expression's type, nil for calls without a result.
	Type() Type
	isExpr()
}

// Literal is a scalar constant.
type Literal struct {
	Scalar ScalarType
	Int    int64   // ScalarSint
	Uint   uint64  // ScalarUint
	Float  float64 // ScalarFloat
	Bool   bool    // ScalarBool
}

func (e *Literal) Type() Type { return e.Scalar }
func (*Literal) isExpr() {}

// FloatLit returns a 32-bit float literal.
func FloatLit(v float64) *Literal {
	return &Literal{Scalar: Float32, Float: v}
}

// IntLit returns a 32-bit signed integer literal.
func IntLit(v int64) *Literal {
	return &Literal{Scalar: Int32, Int: v}
}

// UintLit returns a 32-bit unsigned integer literal.
func UintLit(v uint64) *Literal {
	return &Literal{Scalar: Uint32, Uint: v}
}

// BoolLit returns a boolean literal.
func BoolLit(v bool) *Literal {
	return &Literal{Scalar: Bool, Bool: v}
}

// IdentKind tells what an identifier refers to.
type IdentKind uint8

const (
	IdentLocal IdentKind = iota
	IdentParam
	IdentGlobal
)

// Ident refers to a local, parameter or global by name.
type Ident struct {
	Name string
	Kind IdentKind
	Ty   Type
}

func (e *Ident) Type() Type { return e.Ty }
func (*Ident) isExpr() {}

// UnaryOp is a unary operator.
type UnaryOp uint8

const (
	UnaryNeg    UnaryOp = iota // -x
	UnaryNot                   // !x
	UnaryBitNot                // ^x in Go, ~x in C
)

// Unary applies a unary operator.
type Unary struct {
	Op UnaryOp
	X  Expr
	Ty Type
}

func (e *Unary) Type() Type { return e.Ty }
func (*Unary) isExpr() {}

// BinaryOp is a binary operator.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryAnd
	BinaryOr
	BinaryXor
	BinaryShl
	BinaryShr
)

var binaryTokens = [...]string{
	BinaryAdd:        "+",
	BinarySub:        "-",
	BinaryMul:        "*",
	BinaryDiv:        "/",
	BinaryMod:        "%",
	BinaryEq:         "==",
	BinaryNe:         "!=",
	BinaryLt:         "<",
	BinaryLe:         "<=",
	BinaryGt:         ">",
	BinaryGe:         ">=",
	BinaryLogicalAnd: "&&",
	BinaryLogicalOr:  "||",
	BinaryAnd:        "&",
	BinaryOr:         "|",
	BinaryXor:        "^",
	BinaryShl:        "<<",
	BinaryShr:        ">>",
}

// Token returns the C-family spelling of the operator.
func (op BinaryOp) Token() string {
	if int(op) < len(binaryTokens) {
		return binaryTokens[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// IsComparison reports whether the operator yields a boolean.
func (op BinaryOp) IsComparison() bool {
	return op >= BinaryEq && op <= BinaryLogicalOr
}

// Binary applies a binary operator.
type Binary struct {
	Op   BinaryOp
	X, Y Expr
	Ty   Type
}

func (e *Binary) Type() Type { return e.Ty }
func (*Binary) isExpr() {}

// Call calls another function of the program.
type Call struct {
	Target FunctionRef
	Args   []Expr
	Ty     Type
}

func (e *Call) Type() Type { return e.Ty }
func (*Call) isExpr() {}

// Intrinsic names a host-runtime primitive that maps onto a shading
// language builtin and needs no translation of its own.
type Intrinsic uint8

const (
	IntrinsicDot Intrinsic = iota
	IntrinsicCross
	IntrinsicNormalize
	IntrinsicLength
	IntrinsicDistance
	IntrinsicAbs
	IntrinsicMin
	IntrinsicMax
	IntrinsicClamp
	IntrinsicMix
	IntrinsicStep
	IntrinsicSmoothstep
	IntrinsicFloor
	IntrinsicCeil
	IntrinsicFract
	IntrinsicSqrt
	IntrinsicPow
	IntrinsicExp
	IntrinsicLog
	IntrinsicSin
	IntrinsicCos
	IntrinsicTan
	IntrinsicAtan2
	IntrinsicTranspose
	IntrinsicSample
)

var intrinsicNames = [...]string{
	IntrinsicDot:        "dot",
	IntrinsicCross:      "cross",
	IntrinsicNormalize:  "normalize",
	IntrinsicLength:     "length",
	IntrinsicDistance:   "distance",
	IntrinsicAbs:        "abs",
	IntrinsicMin:        "min",
	IntrinsicMax:        "max",
	IntrinsicClamp:      "clamp",
	IntrinsicMix:        "mix",
	IntrinsicStep:       "step",
	IntrinsicSmoothstep: "smoothstep",
	IntrinsicFloor:      "floor",
	IntrinsicCeil:       "ceil",
	IntrinsicFract:      "fract",
	IntrinsicSqrt:       "sqrt",
	IntrinsicPow:        "pow",
	IntrinsicExp:        "exp",
	IntrinsicLog:        "log",
	IntrinsicSin:        "sin",
	IntrinsicCos:        "cos",
	IntrinsicTan:        "tan",
	IntrinsicAtan2:      "atan2",
	IntrinsicTranspose:  "transpose",
	IntrinsicSample:     "sample",
}

// String returns the GLSL-style name of the intrinsic.
func (i Intrinsic) String() string {
	if int(i) < len(intrinsicNames) {
		return intrinsicNames[i]
	}
	return fmt.Sprintf("intrinsic(%d)", uint8(i))
}

// IntrinsicCall invokes an intrinsic.
// For IntrinsicSample the arguments are texture, sampler and coordinate.
type IntrinsicCall struct {
	Fun  Intrinsic
	Args []Expr
	Ty   Type
}

func (e *IntrinsicCall) Type() Type { return e.Ty }
func (*IntrinsicCall) isExpr() {}

// Construct builds a vector, matrix, array or struct value.
// Struct constructions list every field in declaration order.
type Construct struct {
	Ty   Type
	Args []Expr
}

func (e *Construct) Type() Type { return e.Ty }
func (*Construct) isExpr() {}

// Member selects a struct field.
type Member struct {
	X     Expr
	Field string
	Ty    Type
}

func (e *Member) Type() Type { return e.Ty }
func (*Member) isExpr() {}

// Swizzle selects vector components, e.g. "xy".
type Swizzle struct {
	X          Expr
	Components string
	Ty         Type
}

func (e *Swizzle) Type() Type { return e.Ty }
func (*Swizzle) isExpr() {}

// Index indexes an array, vector or matrix.
type Index struct {
	X, Index Expr
	Ty       Type
}

func (e *Index) Type() Type { return e.Ty }
func (*Index) isExpr() {}

// Convert converts a value to another scalar or vector type.
type Convert struct {
	X  Expr
	Ty Type
}

func (e *Convert) Type() Type { return e.Ty }
func (*Convert) isExpr() {}

// Zero returns the zero value of t as an expression.
// Resource and host types have no zero value.
func Zero(t Type) (Expr, error) {
	switch t := t.(type) {
	case ScalarType:
		return &Literal{Scalar: t}, nil
	case VectorType:
		args := make([]Expr, t.Size)
		for i := range args {
			args[i] = &Literal{Scalar: t.Scalar}
		}
		return &Construct{Ty: t, Args: args}, nil
	case MatrixType:
		args := make([]Expr, t.Columns)
		for i := range args {
			col, _ := Zero(t.Column())
			args[i] = col
		}
		return &Construct{Ty: t, Args: args}, nil
	case ArrayType:
		if t.IsRuntimeSized() {
			return nil, fmt.Errorf("runtime-sized %s has no zero value", t)
		}
		args := make([]Expr, t.Len)
		for i := range args {
			e, err := Zero(t.Elem)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return &Construct{Ty: t, Args: args}, nil
	case *StructType:
		args := make([]Expr, len(t.Fields))
		for i, f := range t.Fields {
			e, err := Zero(f.Type)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return &Construct{Ty: t, Args: args}, nil
	default:
		return nil, fmt.Errorf("%s has no zero value", t)
	}
}
