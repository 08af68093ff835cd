// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// ScalarToHLSL returns the HLSL type name for a scalar type.
// Ref: https://docs.microsoft.com/en-us/windows/win32/direct3dhlsl/dx-graphics-hlsl-scalar
func ScalarToHLSL(s semantic.ScalarType) string {
	switch s.Kind {
	case semantic.ScalarBool:
		return "bool"
	case semantic.ScalarSint:
		if s.Width == 8 {
			return "int64_t"
		}
		return "int"
	case semantic.ScalarUint:
		if s.Width == 8 {
			return "uint64_t"
		}
		return "uint"
	case semantic.ScalarFloat:
		if s.Width == 8 {
			return "double"
		}
		return "float"
	default:
		return "int"
	}
}

// VectorToHLSL returns the HLSL type name for a vector type.
// HLSL uses TypeN syntax (e.g., float4, int3).
func VectorToHLSL(v semantic.VectorType) string {
	return fmt.Sprintf("%s%d", ScalarToHLSL(v.Scalar), v.Size)
}

// MatrixToHLSL returns the HLSL type name for a matrix type. The
// dimensions are swapped: a matrix of C columns with R rows is declared
// floatCxR, whose rows are the host matrix's columns.
func MatrixToHLSL(m semantic.MatrixType) string {
	return fmt.Sprintf("%s%dx%d", ScalarToHLSL(m.Scalar), m.Columns, m.Rows)
}

// BuiltInToSemantic returns the HLSL semantic for a built-in value.
// Ref: https://docs.microsoft.com/en-us/windows/win32/direct3dhlsl/dx-graphics-hlsl-semantics
func BuiltInToSemantic(b semantic.BuiltinValue) string {
	switch b {
	// Vertex shader
	case semantic.BuiltinPosition:
		return "SV_Position"
	case semantic.BuiltinVertexIndex:
		return "SV_VertexID"
	case semantic.BuiltinInstanceIndex:
		return "SV_InstanceID"
	// Fragment shader
	case semantic.BuiltinFrontFacing:
		return "SV_IsFrontFace"
	case semantic.BuiltinFragDepth:
		return "SV_Depth"
	// Compute shader
	case semantic.BuiltinGlobalInvocationID:
		return "SV_DispatchThreadID"
	case semantic.BuiltinLocalInvocationID:
		return "SV_GroupThreadID"
	case semantic.BuiltinLocalInvocationIndex:
		return "SV_GroupIndex"
	case semantic.BuiltinWorkGroupID:
		return "SV_GroupID"
	default:
		return "SV_Position"
	}
}

// LocationToSemantic returns the semantic of a user location. Fragment
// outputs are render targets; everything else uses TEXCOORDn.
func LocationToSemantic(loc uint32, fragmentOutput bool) string {
	if fragmentOutput {
		return fmt.Sprintf("SV_Target%d", loc)
	}
	return fmt.Sprintf("TEXCOORD%d", loc)
}

// TextureToHLSL returns the HLSL type of a sampled texture.
func TextureToHLSL(t semantic.TextureType) (string, error) {
	var dim string
	switch t.Dim {
	case semantic.Texture1D:
		dim = "Texture1D"
	case semantic.Texture2D:
		dim = "Texture2D"
	case semantic.Texture3D:
		dim = "Texture3D"
	case semantic.TextureCube:
		dim = "TextureCube"
	default:
		return "", backend.Errorf(backend.ErrUnsupportedType, "texture dimension %s", t.Dim)
	}
	elem := VectorToHLSL(semantic.VectorType{Scalar: semantic.ScalarType{Kind: t.Sampled, Width: 4}, Size: 4})
	return dim + "<" + elem + ">", nil
}

// SamplerToHLSL returns the HLSL sampler type.
func SamplerToHLSL(comparison bool) string {
	if comparison {
		return "SamplerComparisonState"
	}
	return "SamplerState"
}

// EntryPointName returns the generated entry point name of a stage.
func EntryPointName(stage semantic.Stage) string {
	switch stage {
	case semantic.StageVertex:
		return "vs_main"
	case semantic.StageFragment:
		return "fs_main"
	case semantic.StageCompute:
		return "cs_main"
	}
	return "main"
}
