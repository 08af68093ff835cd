// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package process provides reusable processors for generated shader sets
// and a registry that resolves them by name.
//
// All processors share one argument string, Options.ProcessorArgs. It is
// split like a shell command line into key=value pairs; each processor
// reads the keys named after it:
//
//	banner="Copyright 2026 Example" require-stage=vertex,fragment
package process

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
	"golang.org/x/exp/maps"

	"github.com/gogpu/shadergen"
)

// Names of the built-in processors.
const (
	Banner        = "banner"
	StripComments = "strip-comments"
	RequireStage  = "require-stage"
)

// Registry maps processor names to processors.
type Registry struct {
	mu    sync.RWMutex
	procs map[string]shadergen.Processor
}

// NewRegistry returns a registry holding the built-in processors.
func NewRegistry() *Registry {
	r := &Registry{procs: make(map[string]shadergen.Processor)}
	r.Register(Banner, shadergen.ProcessorFunc(banner))
	r.Register(StripComments, shadergen.ProcessorFunc(stripComments))
	r.Register(RequireStage, shadergen.ProcessorFunc(requireStage))
	return r
}

// Register adds or replaces the processor called name.
func (r *Registry) Register(name string, p shadergen.Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[name] = p
}

// Lookup returns the processor called name.
func (r *Registry) Lookup(name string) (shadergen.Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procs[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.procs)
	slices.Sort(names)
	return names
}

// Resolve returns the processors called names, in the given order.
func (r *Registry) Resolve(names []string) ([]shadergen.Processor, error) {
	out := make([]shadergen.Processor, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		p, ok := r.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("process: unknown processor %q (have %s)", n, strings.Join(r.Names(), ", "))
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseArgs splits a processor argument string into its key=value pairs.
// Words without '=' map to "true".
func ParseArgs(args string) (map[string]string, error) {
	words, err := shellwords.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("process: parsing arguments: %w", err)
	}
	out := make(map[string]string, len(words))
	for _, w := range words {
		k, v, found := strings.Cut(w, "=")
		if !found {
			v = "true"
		}
		out[k] = v
	}
	return out, nil
}
