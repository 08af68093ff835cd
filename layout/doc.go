// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package layout computes GPU buffer layouts.
//
// GPU-visible buffers follow ABI rules that differ from Go's native struct
// layout and differ again between shading languages. The [Engine] answers
// "how large is this type and where may it start" per [Family], and lays
// structs out with explicit padding so that every field starts at a
// multiple of its alignment.
//
// # Rules
//
//   - Scalars have their natural width. Booleans are 4 bytes.
//   - An N-lane vector has size N*scalar. Its alignment rounds the lane
//     count up to a power of two, capped at 16 bytes: vec3<f32> is 12
//     bytes aligned to 16. Metal stores a 3-lane vector in 4 lanes.
//   - Matrices are arrays of column vectors.
//   - HLSL constant buffers and GLSL std140 round array strides and struct
//     alignment up to 16 bytes; std430 and Metal do not.
//   - In HLSL constant buffers a member may start in the unused tail of
//     the last register of a preceding array or matrix.
//
// Two struct placements are offered. [Engine.Layout] keeps declaration
// order, which keeps host-side mirrors of the struct valid. [Engine.Pack]
// reorders fields for minimal size and is used for blocks the generator
// synthesizes itself.
//
// Results are memoized per (type, family). The cache is safe for
// concurrent use; racing first computations store a single record.
package layout
