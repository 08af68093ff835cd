// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadergen

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/gogpu/shadergen/backend"
)

// ErrBackendNotUsed reports a query for a backend that was not part of
// the generation run.
var ErrBackendNotUsed = errors.New("shadergen: backend not used")

// Result maps each backend of a run to the shader sets it produced. It is
// read-only once Generate returns. The zero Result stands for a run that
// never happened.
type Result struct {
	kinds []backend.Kind
	sets  map[backend.Kind][]*ShaderSetSource
}

func (r *Result) addKind(kind backend.Kind) {
	if r.sets == nil {
		r.sets = make(map[backend.Kind][]*ShaderSetSource)
	}
	if _, ok := r.sets[kind]; !ok {
		r.kinds = append(r.kinds, kind)
		r.sets[kind] = []*ShaderSetSource{}
	}
}

func (r *Result) addSet(kind backend.Kind, set *ShaderSetSource) {
	r.addKind(kind)
	r.sets[kind] = append(r.sets[kind], set)
}

// GetOutput returns the sets kind produced, in discovery order. A backend
// that ran and produced nothing yields an empty slice; a backend that was
// not part of the run yields ErrBackendNotUsed. The zero Result yields an
// empty slice for every kind.
func (r *Result) GetOutput(kind backend.Kind) ([]*ShaderSetSource, error) {
	if r == nil || r.sets == nil {
		return nil, nil
	}
	sets, ok := r.sets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotUsed, kind)
	}
	return slices.Clip(sets), nil
}

// Kinds returns the backends of the run in run order.
func (r *Result) Kinds() []backend.Kind {
	if r == nil {
		return nil
	}
	return slices.Clone(r.kinds)
}

// Sets iterates over every generated set, by backend in run order.
func (r *Result) Sets() iter.Seq2[backend.Kind, *ShaderSetSource] {
	return func(yield func(backend.Kind, *ShaderSetSource) bool) {
		if r == nil {
			return
		}
		for _, k := range r.kinds {
			for _, s := range r.sets[k] {
				if !yield(k, s) {
					return
				}
			}
		}
	}
}

// Len returns the total number of generated sets.
func (r *Result) Len() int {
	n := 0
	for range r.Sets() {
		n++
	}
	return n
}
