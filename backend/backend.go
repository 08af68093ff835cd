// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package backend defines the translation contract shared by the HLSL,
// GLSL and MSL generators and the planning steps they have in common.
//
// A Backend translates one discovered shader set into a ShaderSetSource.
// Backends read the semantic graph and the shared layout cache and write
// nothing else, so distinct backends may translate concurrently.
package backend

import (
	"github.com/gogpu/shadergen/discover"
)

// Backend translates shader sets into one target language.
type Backend interface {
	Kind() Kind
	Translate(set *discover.Set) (*ShaderSetSource, error)
}
