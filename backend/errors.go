// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes translation errors.
type ErrorKind uint8

const (
	// ErrUnsupportedConstruct indicates a statement or expression with no
	// lowering in the target language.
	ErrUnsupportedConstruct ErrorKind = iota

	// ErrUnsupportedType indicates a type the target language cannot express.
	ErrUnsupportedType

	// ErrCapability indicates a feature the target dialect or version lacks,
	// such as compute shaders in GLSL 3.30.
	ErrCapability

	// ErrLayout indicates a buffer layout failure.
	ErrLayout

	// ErrBindingConflict indicates two resources claim the same slot.
	ErrBindingConflict

	// ErrInternal indicates malformed input that discovery should have
	// rejected.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedConstruct:
		return "UnsupportedConstruct"
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrCapability:
		return "Capability"
	case ErrLayout:
		return "Layout"
	case ErrBindingConflict:
		return "BindingConflict"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is a translation failure of one shader set on one backend.
type Error struct {
	Kind     ErrorKind
	Backend  Kind
	Set      string // Shader set name, filled in by the generator
	Function string // Qualified function name, if known
	Type     string // Offending type, if any
	Message  string
	Err      error // Underlying cause, e.g. a *layout.Error
}

func (e *Error) Error() string {
	where := e.Backend.String()
	if e.Set != "" {
		where += " " + e.Set
	}
	if e.Function != "" {
		where += " in " + e.Function
	}
	msg := e.Message
	if e.Type != "" {
		msg = e.Type + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %s", where, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates an error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsCapability reports whether e is ErrCapability.
func (e *Error) IsCapability() bool {
	return e.Kind == ErrCapability
}

// Attribute stamps the backend and shader set onto a translation error.
// Other errors are returned unchanged.
func Attribute(err error, kind Kind, set string) error {
	var berr *Error
	if errors.As(err, &berr) {
		berr.Backend = kind
		if berr.Set == "" {
			berr.Set = set
		}
	}
	return err
}
