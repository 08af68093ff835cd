// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL source for shader sets.
//
// Three dialects are supported, one per backend kind:
//
//   - GLSL 3.30 Core: Desktop OpenGL 3.3+
//   - GLSL ES 3.00: WebGL 2.0, Mobile OpenGL ES 3.0
//   - GLSL 4.50 Core: Desktop OpenGL 4.5 with compute and storage buffers
//
// # Basic Usage
//
//	b, err := glsl.New(backend.KindGLSL450, engine, glsl.DefaultOptions())
//	src, err := b.Translate(set)
//
// # Resources
//
// Uniform buffers are std140 blocks and storage buffers std430 blocks.
// GLSL has a single binding namespace per resource class, so a resource
// in group g with binding b gets the binding g*BindingsPerGroup+b. Only
// 4.50 spells bindings in the source; for the older dialects the host
// assigns them and ShaderSetSource.Bindings lists the expected slots.
//
// # Texture/Sampler Handling
//
// GLSL combines textures and samplers. A texture is declared as a sampler
// uniform and sampling ignores the separate sampler global, so its filter
// state comes from the texture unit.
//
// # Reserved Words
//
// GLSL has over 500 reserved words (including future reserved).
// The backend escapes conflicting identifier names by appending an
// underscore, and prefixes names starting with "gl_".
package glsl
