// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"maps"

	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/semantic"
)

// EntryPoint names one generated stage entry point.
type EntryPoint struct {
	Function semantic.FunctionRef // Originating host function
	Stage    semantic.Stage
	Name     string // Entry point name in the generated source
}

// ShaderSetSource is the generated source of one shader set on one backend.
// An empty source string means the stage is absent. A ShaderSetSource does
// not reference the semantic graph.
type ShaderSetSource struct {
	Name           string
	Backend        Kind
	VertexSource   string
	FragmentSource string
	ComputeSource  string

	EntryPoints []EntryPoint

	// Bindings maps resource names to the binding the backend assigned,
	// e.g. "register(b0, space0)" or "buffer(1)".
	Bindings map[string]string
}

// NewSource returns an empty source named after set.
func NewSource(kind Kind, set *discover.Set) *ShaderSetSource {
	return &ShaderSetSource{
		Name:     set.Name(),
		Backend:  kind,
		Bindings: make(map[string]string),
	}
}

// Source returns the text of one stage.
func (s *ShaderSetSource) Source(stage semantic.Stage) string {
	switch stage {
	case semantic.StageVertex:
		return s.VertexSource
	case semantic.StageFragment:
		return s.FragmentSource
	case semantic.StageCompute:
		return s.ComputeSource
	}
	return ""
}

// SetSource replaces the text of one stage.
func (s *ShaderSetSource) SetSource(stage semantic.Stage, text string) {
	switch stage {
	case semantic.StageVertex:
		s.VertexSource = text
	case semantic.StageFragment:
		s.FragmentSource = text
	case semantic.StageCompute:
		s.ComputeSource = text
	}
}

// Stages returns the stages with source text in pipeline order.
func (s *ShaderSetSource) Stages() []semantic.Stage {
	var out []semantic.Stage
	for _, st := range []semantic.Stage{semantic.StageVertex, semantic.StageFragment, semantic.StageCompute} {
		if s.Source(st) != "" {
			out = append(out, st)
		}
	}
	return out
}

// EntryPoint returns the entry point of a stage.
func (s *ShaderSetSource) EntryPoint(stage semantic.Stage) (EntryPoint, bool) {
	for _, ep := range s.EntryPoints {
		if ep.Stage == stage {
			return ep, true
		}
	}
	return EntryPoint{}, false
}

// Clone returns a deep copy.
func (s *ShaderSetSource) Clone() *ShaderSetSource {
	c := *s
	c.EntryPoints = append([]EntryPoint(nil), s.EntryPoints...)
	c.Bindings = maps.Clone(s.Bindings)
	if c.Bindings == nil {
		c.Bindings = make(map[string]string)
	}
	return &c
}
