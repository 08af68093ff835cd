// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// Options configures HLSL code generation.
type Options struct {
	// ShaderModel specifies the target shader model.
	// Defaults to ShaderModel5_1 for maximum compatibility.
	ShaderModel ShaderModel `toml:"shader_model" yaml:"shader_model"`

	// BindingMap maps resource bindings to HLSL register targets.
	// Bindings not in the map use DefaultBindTarget.
	BindingMap map[semantic.ResourceBinding]BindTarget `toml:"-" yaml:"-"`

	// GlobalsBinding is the slot of the loose uniform cbuffer.
	GlobalsBinding semantic.ResourceBinding `toml:"-" yaml:"-"`
}

// DefaultOptions returns sensible default options for HLSL generation.
func DefaultOptions() *Options {
	return &Options{
		ShaderModel:    ShaderModel5_1,
		BindingMap:     make(map[semantic.ResourceBinding]BindTarget),
		GlobalsBinding: backend.DefaultGlobalsBinding,
	}
}

func (o *Options) bindTarget(b semantic.ResourceBinding) BindTarget {
	if bt, ok := o.BindingMap[b]; ok {
		return bt
	}
	return DefaultBindTarget(b)
}

// Backend translates shader sets to HLSL.
type Backend struct {
	engine *layout.Engine
	opts   Options
}

// New returns an HLSL backend sharing the layout engine. A nil options
// value selects DefaultOptions.
func New(engine *layout.Engine, opts *Options) *Backend {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Backend{engine: engine, opts: *opts}
}

// Kind returns backend.KindHLSL.
func (b *Backend) Kind() backend.Kind {
	return backend.KindHLSL
}

// Translate generates the HLSL sources of a shader set.
func (b *Backend) Translate(set *discover.Set) (*backend.ShaderSetSource, error) {
	plan, err := backend.NewPlan(backend.KindHLSL, b.engine, set, b.opts.GlobalsBinding)
	if err != nil {
		return nil, backend.Attribute(err, backend.KindHLSL, set.Name())
	}
	src := backend.NewSource(backend.KindHLSL, set)
	for _, st := range set.Stages() {
		w := newWriter(&b.opts, plan, st, src)
		text, err := w.write()
		if err != nil {
			return nil, backend.Attribute(err, backend.KindHLSL, set.Name())
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
