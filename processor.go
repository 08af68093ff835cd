// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadergen

import (
	"fmt"

	"github.com/gogpu/shadergen/backend"
)

// Processor rewrites or validates a generated set before it enters the
// Result. args is the caller supplied Options.ProcessorArgs.
//
// Backends run concurrently and each calls the processors from its own
// goroutine, so implementations must be safe for concurrent use.
type Processor interface {
	Process(set *ShaderSetSource, kind backend.Kind, args string) (*ShaderSetSource, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(set *ShaderSetSource, kind backend.Kind, args string) (*ShaderSetSource, error)

// Process calls f.
func (f ProcessorFunc) Process(set *ShaderSetSource, kind backend.Kind, args string) (*ShaderSetSource, error) {
	return f(set, kind, args)
}

// applyProcessors threads set through ps in order. A processor returning
// nil keeps the set it was given.
func applyProcessors(ps []Processor, set *ShaderSetSource, kind backend.Kind, args string) (*ShaderSetSource, error) {
	for i, p := range ps {
		out, err := p.Process(set, kind, args)
		if err != nil {
			return nil, fmt.Errorf("shadergen: processor %d on %s %s: %w", i, kind, set.Name, err)
		}
		if out != nil {
			set = out
		}
	}
	return set, nil
}
