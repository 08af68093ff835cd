// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import "fmt"

// Family is a set of buffer layout rules shared by one or more backends.
type Family uint8

const (
	// FamilyHLSL is HLSL constant buffer packing.
	FamilyHLSL Family = iota

	// FamilyStd140 is GLSL uniform block packing.
	FamilyStd140

	// FamilyStd430 is GLSL shader storage block packing.
	FamilyStd430

	// FamilyMetal is the Metal Shading Language ABI.
	FamilyMetal
)

// Families lists every family in a stable order.
var Families = []Family{FamilyHLSL, FamilyStd140, FamilyStd430, FamilyMetal}

func (f Family) String() string {
	switch f {
	case FamilyHLSL:
		return "hlsl"
	case FamilyStd140:
		return "std140"
	case FamilyStd430:
		return "std430"
	case FamilyMetal:
		return "metal"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

// rules are the knobs that distinguish families.
type rules struct {
	// wideVec3 stores 3-lane vectors in 4 lanes.
	wideVec3 bool

	// round16 rounds array strides, matrix column strides and struct
	// alignment up to 16 bytes.
	round16 bool

	// tailPack lets the following member start inside the unused tail of
	// the last element of an array or the last column of a matrix.
	tailPack bool

	float64 bool
	int64   bool
}

func (f Family) rules() rules {
	switch f {
	case FamilyHLSL:
		return rules{round16: true, tailPack: true, float64: true, int64: true}
	case FamilyStd140:
		return rules{round16: true, float64: true}
	case FamilyStd430:
		return rules{float64: true}
	case FamilyMetal:
		return rules{wideVec3: true, int64: true}
	default:
		return rules{round16: true}
	}
}
