// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadergen cross-compiles shaders written as Go functions into
// HLSL, GLSL and the Metal Shading Language.
//
// Shader logic is authored as ordinary Go code: entry points are methods
// or functions marked with //shader: directives, resources are package
// variables, and vectors, matrices and intrinsics come from the sl
// package. The gofront package turns Go packages into a semantic graph;
// Generate translates that graph for every configured backend.
//
// Example usage:
//
//	prog, err := gofront.Load(gofront.Config{}, "./shaders")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := shadergen.DefaultOptions()
//	opts.Backends = []backend.Kind{backend.KindHLSL, backend.KindMetal}
//	res, err := shadergen.Generate(prog, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sets, _ := res.GetOutput(backend.KindHLSL)
//	for _, s := range sets {
//	    fmt.Println(s.Name, s.VertexSource)
//	}
//
// The pipeline is:
//  1. Discover shader sets in the graph (package discover)
//  2. Lay out buffer structs per backend family (package layout)
//  3. Translate every set with every backend, concurrently per backend
//  4. Run the registered processors on each generated set
package shadergen

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/glsl"
	"github.com/gogpu/shadergen/hlsl"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/msl"
	"github.com/gogpu/shadergen/semantic"
)

// ShaderSetSource is the generated source of one shader set.
type ShaderSetSource = backend.ShaderSetSource

// Options configures generation.
type Options struct {
	// Backends are the target languages, in run order. Duplicates are
	// ignored.
	Backends []backend.Kind

	// Processors run on every generated set in registration order.
	Processors []Processor

	// ProcessorArgs is passed verbatim to every processor.
	ProcessorArgs string

	// Per-backend options. Nil selects the package defaults.
	HLSL *hlsl.Options
	GLSL *glsl.Options
	MSL  *msl.Options

	// GlobalsBinding is the slot of the synthesized loose uniform block.
	// It overrides the value in the per-backend options.
	GlobalsBinding semantic.ResourceBinding

	// Logger receives debug records per (backend, set) and warnings from
	// discovery. Defaults to slog.Default().
	Logger *slog.Logger

	// Concurrency bounds the number of backends translating at once.
	// Zero means no limit.
	Concurrency int
}

// DefaultOptions returns options that generate every backend with the
// default per-backend options.
func DefaultOptions() *Options {
	return &Options{
		Backends:       backend.AllKinds(),
		GlobalsBinding: backend.DefaultGlobalsBinding,
	}
}

// NewBackend returns the backend of kind. engine is shared by all
// backends of a run.
func NewBackend(kind backend.Kind, engine *layout.Engine, opts *Options) (backend.Backend, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch kind {
	case backend.KindHLSL:
		o := hlsl.DefaultOptions()
		if opts.HLSL != nil {
			c := *opts.HLSL
			o = &c
		}
		o.GlobalsBinding = opts.GlobalsBinding
		return hlsl.New(engine, o), nil
	case backend.KindGLSL330, backend.KindGLSLES300, backend.KindGLSL450:
		o := glsl.DefaultOptions()
		if opts.GLSL != nil {
			c := *opts.GLSL
			o = &c
		}
		o.GlobalsBinding = opts.GlobalsBinding
		return glsl.New(kind, engine, o)
	case backend.KindMetal:
		o := msl.DefaultOptions()
		if opts.MSL != nil {
			c := *opts.MSL
			o = &c
		}
		o.GlobalsBinding = opts.GlobalsBinding
		return msl.New(engine, o), nil
	}
	return nil, fmt.Errorf("shadergen: unknown backend %s", kind)
}

// Generate discovers the shader sets of g and translates them with every
// configured backend.
//
// A failing (set, backend) pair does not stop the others, and neither does
// a kind NewBackend rejects: that kind is left out of the Result. The
// returned Result holds everything that succeeded; the error is the first
// failure, discovery errors first, then in backend and set order.
func Generate(g semantic.Graph, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sets, discoverErr := discover.Discover(g, discover.WithLogger(logger))

	kinds := uniqueKinds(opts.Backends)
	engine := layout.NewEngine()
	runs := make([]*run, len(kinds))
	for i, kind := range kinds {
		r := &run{opts: opts, logger: logger.With("backend", kind.String())}
		runs[i] = r
		b, err := NewBackend(kind, engine, opts)
		if err != nil {
			r.logger.Error("backend unavailable", "err", err)
			r.errs = append(r.errs, err)
			continue
		}
		r.backend = b
	}

	var eg errgroup.Group
	if opts.Concurrency > 0 {
		eg.SetLimit(opts.Concurrency)
	}
	for _, r := range runs {
		if r.backend == nil {
			continue
		}
		eg.Go(func() error {
			r.translate(sets)
			return nil
		})
	}
	_ = eg.Wait()

	res := &Result{sets: make(map[backend.Kind][]*ShaderSetSource)}
	var firstErr error
	for i, kind := range kinds {
		r := runs[i]
		if firstErr == nil && len(r.errs) > 0 {
			firstErr = r.errs[0]
		}
		// A kind without a backend never took part in the run.
		if r.backend == nil {
			continue
		}
		res.addKind(kind)
		for _, src := range r.out {
			res.addSet(kind, src)
		}
	}
	if discoverErr != nil {
		return res, discoverErr
	}
	return res, firstErr
}

// run is the work of one backend.
type run struct {
	backend backend.Backend
	opts    *Options
	logger  *slog.Logger

	out  []*ShaderSetSource
	errs []error
}

func (r *run) translate(sets []*discover.Set) {
	kind := r.backend.Kind()
	for _, set := range sets {
		src, err := r.backend.Translate(set)
		if err != nil {
			r.logger.Error("translation failed", "set", set.Name(), "err", err)
			r.errs = append(r.errs, err)
			continue
		}
		src, err = applyProcessors(r.opts.Processors, src, kind, r.opts.ProcessorArgs)
		if err != nil {
			r.logger.Error("processor failed", "set", set.Name(), "err", err)
			r.errs = append(r.errs, err)
			continue
		}
		r.logger.Debug("generated shader set", "set", src.Name, "stages", len(src.Stages()))
		r.out = append(r.out, src)
	}
}

func uniqueKinds(kinds []backend.Kind) []backend.Kind {
	seen := make(map[backend.Kind]bool, len(kinds))
	out := make([]backend.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
