// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl generates HLSL source for shader sets.
//
// The output targets FXC (Shader Model 5.x) and DXC (Shader Model 6.x).
// Every stage is a standalone source with the entry points vs_main,
// fs_main and cs_main.
//
// # Usage
//
//	b := hlsl.New(engine, hlsl.DefaultOptions())
//	src, err := b.Translate(set)
//
// # Register Binding
//
// Resources are bound with register(x#, space#), where the space is the
// resource group and the register the binding within it:
//
//	cbuffer   : register(b#, space#)  // Uniform buffers and loose uniforms
//	Texture   : register(t#, space#)  // Textures, read-only storage
//	Sampler   : register(s#, space#)  // Samplers
//	RWBuffer  : register(u#, space#)  // Writable storage
//
// Options.BindingMap overrides the target of individual bindings. Shader
// Model 5.0 has no register spaces, so every resource must be in group 0.
//
// # Matrices
//
// Matrices are declared with swapped dimensions and row_major packing, so
// that a column of the host matrix is a row of the HLSL matrix. The
// product m * v is therefore written mul(v, m).
package hlsl
