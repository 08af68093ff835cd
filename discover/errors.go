// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package discover

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadergen/semantic"
)

// Discovery error categories. Every *Error unwraps to exactly one of them.
var (
	// ErrPairing reports a malformed vertex/fragment pairing.
	ErrPairing = errors.New("invalid shader pairing")

	// ErrStageSignature reports an entry point whose signature violates
	// the structural requirements of its stage.
	ErrStageSignature = errors.New("invalid stage signature")

	// ErrRecursion reports a call cycle reachable from an entry point.
	ErrRecursion = errors.New("recursive call")

	// ErrUnresolved reports a call or global reference that does not
	// resolve in the graph.
	ErrUnresolved = errors.New("unresolved reference")

	// ErrUnsupported reports a reachable function the front end could not
	// lower.
	ErrUnsupported = errors.New("unsupported function")
)

// Error is a discovery failure attributed to one function.
type Error struct {
	Err      error
	Function semantic.FunctionRef
	Pos      string
	Message  string
}

func (e *Error) Error() string {
	at := e.Function.String()
	if e.Pos != "" {
		at = e.Pos + ": " + at
	}
	return fmt.Sprintf("discover: %s: %v: %s", at, e.Err, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, f *semantic.Function, format string, args ...any) *Error {
	return &Error{
		Err:      kind,
		Function: f.Ref(),
		Pos:      f.Pos,
		Message:  fmt.Sprintf(format, args...),
	}
}
