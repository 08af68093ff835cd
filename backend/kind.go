// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/layout"
)

// Kind identifies a target shading language dialect.
// The set of kinds is closed.
type Kind uint8

const (
	// KindHLSL is Direct3D HLSL.
	KindHLSL Kind = iota

	// KindGLSL330 is desktop OpenGL 3.3 core GLSL.
	KindGLSL330

	// KindGLSLES300 is OpenGL ES 3.0 / WebGL 2 GLSL.
	KindGLSLES300

	// KindGLSL450 is desktop OpenGL 4.5 GLSL.
	KindGLSL450

	// KindMetal is the Metal Shading Language.
	KindMetal

	kindCount
)

var kindNames = [kindCount]string{
	KindHLSL:      "hlsl",
	KindGLSL330:   "glsl330",
	KindGLSLES300: "glsles300",
	KindGLSL450:   "glsl450",
	KindMetal:     "metal",
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// ParseKind parses a kind name as returned by String. Matching ignores case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	switch s {
	case "msl":
		return KindMetal, nil
	case "glsl":
		return KindGLSL330, nil
	case "glsles", "webgl2":
		return KindGLSLES300, nil
	}
	return 0, fmt.Errorf("backend: unknown kind %q", s)
}

// ParseKinds parses a comma separated list of kind names.
func ParseKinds(s string) ([]Kind, error) {
	var kinds []Kind
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("backend: invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Family returns the layout family of uniform buffers.
func (k Kind) Family() layout.Family {
	switch k {
	case KindHLSL:
		return layout.FamilyHLSL
	case KindMetal:
		return layout.FamilyMetal
	default:
		return layout.FamilyStd140
	}
}

// StorageFamily returns the layout family of storage buffers.
func (k Kind) StorageFamily() layout.Family {
	switch k {
	case KindMetal:
		return layout.FamilyMetal
	default:
		return layout.FamilyStd430
	}
}

// IsGLSL reports whether k is one of the GLSL dialects.
func (k Kind) IsGLSL() bool {
	return k == KindGLSL330 || k == KindGLSLES300 || k == KindGLSL450
}

// Extension returns the conventional file extension of generated sources.
func (k Kind) Extension() string {
	switch k {
	case KindHLSL:
		return "hlsl"
	case KindMetal:
		return "metal"
	default:
		return "glsl"
	}
}
