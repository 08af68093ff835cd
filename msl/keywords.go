// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import "github.com/gogpu/shadergen/backend/clike"

// Reserved words of C++14 and the Metal Shading Language.
const (
	cppKeywords = `
alignas alignof and and_eq asm auto bitand bitor bool break case catch
char char16_t char32_t class compl const const_cast constexpr continue
decltype default delete do double dynamic_cast else enum explicit export
extern false float for friend goto if inline int long mutable namespace
new noexcept not not_eq nullptr operator or or_eq private protected
public register reinterpret_cast return short signed sizeof static
static_assert static_cast struct switch template this thread_local throw
true try typedef typeid typename union unsigned using virtual void
volatile wchar_t while xor xor_eq override final main NULL`

	metalKeywords = `
kernel vertex fragment compute constant device thread threadgroup
threadgroup_imageblock ray_data object_data visible stage_in
metal half uchar ushort uint ulong ptrdiff_t size_t array vec matrix
sampler texture1d texture1d_array texture2d texture2d_array texture2d_ms
texture2d_ms_array texture3d texturecube texturecube_array depth2d
depth2d_array depth2d_ms depth2d_ms_array depthcube depthcube_array
texture_buffer packed_float2 packed_float3 packed_float4 atomic_int
atomic_uint atomic_bool discard_fragment simd quad`
)

// generated holds names the stage writers declare themselves.
const generated = `
vs_main fs_main cs_main vs_mainInput vs_mainOutput fs_mainInput
fs_mainOutput input output _globals`

var keywords = clike.NewKeywords(cppKeywords, metalKeywords, generated, typeShorthands())

func typeShorthands() string {
	var s string
	for _, base := range []string{"bool", "char", "uchar", "short", "ushort", "int", "uint", "long", "ulong", "half", "float"} {
		for n := '2'; n <= '4'; n++ {
			s += " " + base + string(n)
			if base == "half" || base == "float" {
				for m := '2'; m <= '4'; m++ {
					s += " " + base + string(n) + "x" + string(m)
				}
			}
		}
	}
	return s
}
