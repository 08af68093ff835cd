// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package semantic defines the read-only semantic graph that shader
// generation consumes.
//
// A graph is the compiled, type-resolved view of a host program: struct
// types with ordered fields, resource globals, and functions whose bodies
// are statement and expression trees with resolved types and resolved call
// targets. Front ends (see package gofront) build a [Program]; everything
// downstream only reads it through the [Graph] interface.
//
// Functions are identified by [FunctionRef], the pair of declaring type and
// function name. Types are identified by their canonical [Type.String] form.
package semantic
