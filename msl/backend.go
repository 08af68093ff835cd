// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// Namespace qualifies the Metal standard library.
const Namespace = "metal::"

// Version represents an MSL language version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common MSL versions.
var (
	Version1_2 = Version{Major: 1, Minor: 2}
	Version2_0 = Version{Major: 2, Minor: 0}
	Version2_1 = Version{Major: 2, Minor: 1}
	Version2_3 = Version{Major: 2, Minor: 3}
	Version3_0 = Version{Major: 3, Minor: 0}
)

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	return v.Major > o.Major || (v.Major == o.Major && v.Minor >= o.Minor)
}

// MarshalText encodes the version as "major.minor".
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses "major.minor".
func (v *Version) UnmarshalText(text []byte) error {
	var major, minor uint8
	if _, err := fmt.Sscanf(strings.TrimSpace(string(text)), "%d.%d", &major, &minor); err != nil {
		return fmt.Errorf("msl: invalid version %q: %w", text, err)
	}
	*v = Version{Major: major, Minor: minor}
	return nil
}

// Options configures MSL code generation.
type Options struct {
	// LangVersion is the target MSL version.
	// Defaults to Version2_1 if zero.
	LangVersion Version `toml:"lang_version" yaml:"lang_version"`

	// GlobalsBinding is the binding the loose uniform block reserves. Its
	// Metal slot is the first buffer slot after the bound buffers.
	GlobalsBinding semantic.ResourceBinding `toml:"-" yaml:"-"`
}

// DefaultOptions returns sensible default options for MSL generation.
func DefaultOptions() *Options {
	return &Options{
		LangVersion:    Version2_1,
		GlobalsBinding: backend.DefaultGlobalsBinding,
	}
}

// Backend translates shader sets to MSL.
type Backend struct {
	engine *layout.Engine
	opts   Options
}

// New returns an MSL backend sharing the layout engine. A nil options
// value selects DefaultOptions.
func New(engine *layout.Engine, opts *Options) *Backend {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.LangVersion == (Version{}) {
		o.LangVersion = Version2_1
	}
	return &Backend{engine: engine, opts: o}
}

// Kind returns backend.KindMetal.
func (b *Backend) Kind() backend.Kind {
	return backend.KindMetal
}

// Translate generates the MSL sources of a shader set.
func (b *Backend) Translate(set *discover.Set) (*backend.ShaderSetSource, error) {
	plan, err := backend.NewPlan(backend.KindMetal, b.engine, set, b.opts.GlobalsBinding)
	if err != nil {
		return nil, backend.Attribute(err, backend.KindMetal, set.Name())
	}
	slots := assignSlots(plan)
	src := backend.NewSource(backend.KindMetal, set)
	for name, slot := range slots {
		src.Bindings[name] = slot.String()
	}
	for _, st := range set.Stages() {
		w := newWriter(&b.opts, plan, slots, st)
		text, err := w.write()
		if err != nil {
			return nil, backend.Attribute(err, backend.KindMetal, set.Name())
		}
		src.SetSource(st.Kind(), text)
		src.EntryPoints = append(src.EntryPoints, backend.EntryPoint{
			Function: st.Entry.Ref(),
			Stage:    st.Kind(),
			Name:     EntryPointName(st.Kind()),
		})
	}
	return src, nil
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
