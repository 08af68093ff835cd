// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import "fmt"

// ErrorKind categorizes layout errors.
type ErrorKind uint8

const (
	// ErrUnrepresentable indicates a host-only type reached a buffer.
	ErrUnrepresentable ErrorKind = iota

	// ErrUnsupportedScalar indicates a scalar width the family cannot store.
	ErrUnsupportedScalar

	// ErrRuntimeArray indicates a runtime-sized array outside the tail of
	// a storage buffer.
	ErrRuntimeArray

	// ErrResourceInBuffer indicates a texture or sampler inside a buffer.
	ErrResourceInBuffer

	// ErrInvalidType indicates a malformed type, such as a 5-lane vector.
	ErrInvalidType
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnrepresentable:
		return "Unrepresentable"
	case ErrUnsupportedScalar:
		return "UnsupportedScalar"
	case ErrRuntimeArray:
		return "RuntimeArray"
	case ErrResourceInBuffer:
		return "ResourceInBuffer"
	case ErrInvalidType:
		return "InvalidType"
	default:
		return "Unknown"
	}
}

// Error reports a type that cannot be laid out under a family's ABI.
type Error struct {
	Kind    ErrorKind
	Type    string // Canonical name of the offending type
	Family  Family
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout %s: %s in %s: %s", e.Kind, e.Type, e.Family, e.Message)
}

func newError(kind ErrorKind, typ string, f Family, format string, args ...any) *Error {
	return &Error{Kind: kind, Type: typ, Family: f, Message: fmt.Sprintf(format, args...)}
}
