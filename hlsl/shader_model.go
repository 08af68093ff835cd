// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/semantic"
)

// ShaderModel represents a DirectX Shader Model version.
// Shader Models define the feature set available for shader compilation.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel5_0 is the base SM5 version (DirectX 11).
	ShaderModel5_0 ShaderModel = iota

	// ShaderModel5_1 provides improved resource binding (default).
	// This is the recommended minimum for maximum compatibility.
	ShaderModel5_1

	// ShaderModel6_0 introduces wave intrinsics and DXIL.
	ShaderModel6_0

	// ShaderModel6_1 adds SV_ViewID and barycentrics.
	ShaderModel6_1

	// ShaderModel6_2 adds float16 and denorm control.
	ShaderModel6_2

	// ShaderModel6_3 adds DirectX Raytracing (DXR).
	ShaderModel6_3

	// ShaderModel6_4 adds variable rate shading and library subobjects.
	ShaderModel6_4

	// ShaderModel6_5 adds mesh shaders and sampler feedback.
	ShaderModel6_5

	// ShaderModel6_6 adds 64-bit atomics and dynamic resources.
	ShaderModel6_6

	// ShaderModel6_7 adds advanced mesh shaders and work graphs.
	ShaderModel6_7
)

// String returns a human-readable representation of the shader model.
// Example: "SM 5.1", "SM 6.0"
func (sm ShaderModel) String() string {
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// ProfileSuffix returns the shader profile suffix for this model.
// Example: "5_1", "6_0"
// Used to construct profiles like "vs_5_1", "ps_6_0".
func (sm ShaderModel) ProfileSuffix() string {
	major, minor := sm.version()
	return fmt.Sprintf("%d_%d", major, minor)
}

// version returns the major and minor version numbers.
func (sm ShaderModel) version() (major, minor uint8) {
	switch sm {
	case ShaderModel5_0:
		return 5, 0
	case ShaderModel5_1:
		return 5, 1
	case ShaderModel6_0:
		return 6, 0
	case ShaderModel6_1:
		return 6, 1
	case ShaderModel6_2:
		return 6, 2
	case ShaderModel6_3:
		return 6, 3
	case ShaderModel6_4:
		return 6, 4
	case ShaderModel6_5:
		return 6, 5
	case ShaderModel6_6:
		return 6, 6
	case ShaderModel6_7:
		return 6, 7
	default:
		return 5, 1 // Default to 5.1 for unknown
	}
}

// Major returns the major version number.
func (sm ShaderModel) Major() uint8 {
	major, _ := sm.version()
	return major
}

// Minor returns the minor version number.
func (sm ShaderModel) Minor() uint8 {
	_, minor := sm.version()
	return minor
}

// SupportsDXIL returns true if this shader model uses DXIL output.
func (sm ShaderModel) SupportsDXIL() bool {
	return sm >= ShaderModel6_0
}

// SupportsSpaces reports whether register spaces are available.
// They were introduced in Shader Model 5.1.
func (sm ShaderModel) SupportsSpaces() bool {
	return sm >= ShaderModel5_1
}

// SupportsInt64 reports whether 64-bit integer types are available.
// They require DXC, so Shader Model 6.0.
func (sm ShaderModel) SupportsInt64() bool {
	return sm >= ShaderModel6_0
}

// Profile returns the compiler target profile of a stage, e.g. "vs_5_1".
func (sm ShaderModel) Profile(stage semantic.Stage) string {
	var prefix string
	switch stage {
	case semantic.StageVertex:
		prefix = "vs"
	case semantic.StageFragment:
		prefix = "ps"
	case semantic.StageCompute:
		prefix = "cs"
	default:
		return ""
	}
	return prefix + "_" + sm.ProfileSuffix()
}

// ParseShaderModel parses "5.1", "5_1" or "sm_6_0" style names.
func ParseShaderModel(s string) (ShaderModel, error) {
	t := strings.TrimPrefix(strings.ToLower(s), "sm")
	t = strings.TrimLeft(t, "_ ")
	t = strings.ReplaceAll(t, "_", ".")
	for sm := ShaderModel5_0; sm <= ShaderModel6_7; sm++ {
		major, minor := sm.version()
		if t == fmt.Sprintf("%d.%d", major, minor) {
			return sm, nil
		}
	}
	return 0, fmt.Errorf("hlsl: unknown shader model %q", s)
}

// MarshalText encodes the model as "major.minor".
func (sm ShaderModel) MarshalText() ([]byte, error) {
	major, minor := sm.version()
	return fmt.Appendf(nil, "%d.%d", major, minor), nil
}

// UnmarshalText accepts the forms understood by ParseShaderModel.
func (sm *ShaderModel) UnmarshalText(text []byte) error {
	v, err := ParseShaderModel(string(text))
	if err != nil {
		return err
	}
	*sm = v
	return nil
}
