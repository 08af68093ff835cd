// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package msl generates Metal Shading Language (MSL) source for shader sets.
//
// MSL is Apple's shader language for the Metal graphics API. It is based on C++14
// with extensions for GPU programming, including explicit address spaces, attribute-based
// parameter binding, and a metal:: namespace for standard library functions.
//
// # Type Mapping
//
//	Host           MSL
//	----           ---
//	bool           bool
//	int32          int
//	uint32         uint
//	float32        float
//	int64          long
//	Vec3           metal::float3
//	Mat4           metal::float4x4
//	[N]T           metal::array<T, N>
//	Texture2D      metal::texture2d<float>
//	Sampler        metal::sampler
//
// float64 has no Metal equivalent and is rejected.
//
// # Resources
//
// Metal has no global resources. Buffers, textures and samplers are
// parameters of the entry point, numbered per class in (group, binding)
// order: uniform and storage buffers share the [[buffer(n)]] table, and
// the loose uniform block takes the next free buffer slot. Helper
// functions receive the stage's resources as trailing parameters.
//
// # Entry Points
//
// Entry points are generated with appropriate stage keywords:
//   - vertex: Vertex shaders with [[stage_in]], [[vertex_id]], etc.
//   - fragment: Fragment shaders with [[position]], [[color(N)]], etc.
//   - kernel: Compute shaders with [[thread_position_in_grid]], etc.
package msl
