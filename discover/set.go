// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package discover

import "github.com/gogpu/shadergen/semantic"

// Stage is one entry point with its dependency closure.
type Stage struct {
	Entry *semantic.Function

	// Functions are the helpers reachable from Entry, callees before
	// callers. Entry itself is not included.
	Functions []*semantic.Function

	// Types are the struct types the stage references, dependencies first.
	Types []*semantic.StructType

	// Globals are the referenced module-scope variables in graph order.
	Globals []*semantic.Global
}

// Kind returns the pipeline stage of the entry point.
func (s *Stage) Kind() semantic.Stage {
	return s.Entry.Stage
}

// Set is one logical shader program: a vertex and fragment pair or a
// single compute entry point.
type Set struct {
	Vertex   *Stage
	Fragment *Stage
	Compute  *Stage
}

// Name returns "VType.VFunc+FType.FFunc" for a pair and "Type.Func" for a
// compute set.
func (s *Set) Name() string {
	if s.Compute != nil {
		return s.Compute.Entry.Ref().String()
	}
	return s.Vertex.Entry.Ref().String() + "+" + s.Fragment.Entry.Ref().String()
}

// Stages returns the set's stages in pipeline order.
func (s *Set) Stages() []*Stage {
	if s.Compute != nil {
		return []*Stage{s.Compute}
	}
	return []*Stage{s.Vertex, s.Fragment}
}

// EntryPoints returns the identities of the set's entry points.
func (s *Set) EntryPoints() []semantic.FunctionRef {
	stages := s.Stages()
	refs := make([]semantic.FunctionRef, len(stages))
	for i, st := range stages {
		refs[i] = st.Entry.Ref()
	}
	return refs
}

// Globals returns the union of the stages' globals, in first-use order.
func (s *Set) Globals() []*semantic.Global {
	var out []*semantic.Global
	seen := make(map[*semantic.Global]bool)
	for _, st := range s.Stages() {
		for _, g := range st.Globals {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
