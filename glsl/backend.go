// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Supported GLSL versions.
var (
	Version330   = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version450   = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}   // ES 3.0 / WebGL 2.0
)

// VersionOf returns the language version of a GLSL backend kind.
func VersionOf(kind backend.Kind) (Version, bool) {
	switch kind {
	case backend.KindGLSL330:
		return Version330, true
	case backend.KindGLSLES300:
		return VersionES300, true
	case backend.KindGLSL450:
		return Version450, true
	}
	return Version{}, false
}

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// VersionNumber returns just the numeric version (e.g., "330", "300").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// SupportsCompute returns true if this version supports compute shaders.
func (v Version) SupportsCompute() bool {
	if v.ES {
		return v.Major > 3 || (v.Major == 3 && v.Minor >= 10)
	}
	return v.Major > 4 || (v.Major == 4 && v.Minor >= 30)
}

// SupportsStorageBuffers returns true if this version supports storage buffers.
func (v Version) SupportsStorageBuffers() bool {
	return v.SupportsCompute()
}

// SupportsBindings reports whether layout(binding = N) is available.
func (v Version) SupportsBindings() bool {
	if v.ES {
		return v.Major > 3 || (v.Major == 3 && v.Minor >= 10)
	}
	return v.Major > 4 || (v.Major == 4 && v.Minor >= 20)
}

// SupportsVaryingLocations reports whether stage outputs and inputs
// between stages can carry locations. Older versions match them by name.
func (v Version) SupportsVaryingLocations() bool {
	if v.ES {
		return v.Major > 3 || (v.Major == 3 && v.Minor >= 10)
	}
	return v.Major > 4 || (v.Major == 4 && v.Minor >= 10)
}

// SupportsDouble reports whether double precision types are available.
func (v Version) SupportsDouble() bool {
	return !v.ES && v.Major >= 4
}

// Options configures GLSL code generation.
type Options struct {
	// BindingsPerGroup is the number of bindings reserved per resource
	// group when flattening (group, binding) pairs.
	BindingsPerGroup uint32 `toml:"bindings_per_group" yaml:"bindings_per_group"`

	// ForceHighPrecision declares highp default precision instead of
	// mediump (ES only).
	ForceHighPrecision bool `toml:"force_high_precision" yaml:"force_high_precision"`

	// GlobalsBinding is the slot of the loose uniform block.
	GlobalsBinding semantic.ResourceBinding `toml:"-" yaml:"-"`
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() *Options {
	return &Options{
		BindingsPerGroup:   16,
		ForceHighPrecision: true,
		GlobalsBinding:     backend.DefaultGlobalsBinding,
	}
}

func (o *Options) binding(b semantic.ResourceBinding) uint32 {
	return b.Group*o.BindingsPerGroup + b.Binding
}

// Backend translates shader sets to one GLSL dialect.
type Backend struct {
	kind    backend.Kind
	version Version
	engine  *layout.Engine
	opts    Options
}

// New returns a GLSL backend for one of the GLSL kinds. A nil options
// value selects DefaultOptions.
func New(kind backend.Kind, engine *layout.Engine, opts *Options) (*Backend, error) {
	v, ok := VersionOf(kind)
	if !ok {
		return nil, fmt.Errorf("glsl: %s is not a GLSL backend", kind)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.BindingsPerGroup == 0 {
		o.BindingsPerGroup = 16
	}
	return &Backend{kind: kind, version: v, engine: engine, opts: o}, nil
}

// Kind returns the backend kind.
func (b *Backend) Kind() backend.Kind {
	return b.kind
}

// Version returns the GLSL version the backend emits.
func (b *Backend) Version() Version {
	return b.version
}

// Translate generates the GLSL sources of a shader set.
func (b *Backend) Translate(set *discover.Set) (*backend.ShaderSetSource, error) {
	if set.Compute != nil && !b.version.SupportsCompute() {
		return nil, backend.Attribute(&backend.Error{
			Kind:     backend.ErrCapability,
			Function: set.Compute.Entry.Ref().String(),
			Message:  "compute shaders require GLSL 4.30 or GLSL ES 3.10, targeting " + b.version.String(),
		}, b.kind, set.Name())
	}
	plan, err := backend.NewPlan(b.kind, b.engine, set, b.opts.GlobalsBinding)
	if err != nil {
		return nil, backend.Attribute(err, b.kind, set.Name())
	}
	src := backend.NewSource(b.kind, set)
	for _, st := range set.Stages() {
		w := newWriter(b, plan, st, src)
		text, err := w.write()
		if err != nil {
			return nil, backend.Attribute(err, b.kind, set.Name())
		}
		src.SetSource(st.Kind(), text)
		src.EntryPoints = append(src.EntryPoints, backend.EntryPoint{
			Function: st.Entry.Ref(),
			Stage:    st.Kind(),
			Name:     "main",
		})
	}
	return src, nil
}
