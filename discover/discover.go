// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package discover finds shader entry points in a semantic graph and
// groups them into shader sets.
//
// A vertex entry point names its fragment partner explicitly; there is no
// name based matching. A compute entry point forms a set on its own. Each
// stage of a set carries its dependency closure: the helper functions it
// calls, the struct types it references and the globals it reads.
//
// Discovery is deterministic. Sets follow the declaration order of their
// vertex or compute function and closures follow body order.
package discover

import (
	"errors"
	"log/slog"

	"github.com/gogpu/shadergen/semantic"
)

// Option configures Discover.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger for warnings and debug records.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Discover scans g for entry points and returns the shader sets it
// declares.
//
// Invalid sets are reported in the joined error while valid sets are
// still returned, so callers may generate what they can.
func Discover(g semantic.Graph, opts ...Option) ([]*Set, error) {
	cfg := config{logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	paired := make(map[semantic.FunctionRef]bool)
	for _, f := range g.Functions() {
		if f.Stage == semantic.StageVertex && f.Pair != nil {
			paired[*f.Pair] = true
		}
	}

	var (
		sets []*Set
		errs []error
	)
	for _, f := range g.Functions() {
		var (
			set *Set
			err error
		)
		switch f.Stage {
		case semantic.StageVertex:
			set, err = pairSet(g, f)
		case semantic.StageCompute:
			set, err = computeSet(g, f)
		case semantic.StageFragment:
			if !paired[f.Ref()] {
				cfg.logger.Warn("fragment entry point is not paired with a vertex entry point",
					"function", f.Ref().String(), "pos", f.Pos)
			}
			continue
		default:
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.logger.Debug("discovered shader set", "name", set.Name(), "stages", len(set.Stages()))
		sets = append(sets, set)
	}
	return sets, errors.Join(errs...)
}

func pairSet(g semantic.Graph, vs *semantic.Function) (*Set, error) {
	if vs.Pair == nil || vs.Pair.IsZero() {
		return nil, newError(ErrPairing, vs, "vertex entry point does not name a fragment entry point")
	}
	fs, ok := g.LookupFunction(*vs.Pair)
	if !ok {
		return nil, newError(ErrPairing, vs, "paired function %s is not declared", vs.Pair)
	}
	if fs.Stage != semantic.StageFragment {
		return nil, newError(ErrPairing, vs, "paired function %s is a %s function, not a fragment entry point", vs.Pair, fs.Stage)
	}
	if err := validateEntry(vs); err != nil {
		return nil, err
	}
	if err := validateEntry(fs); err != nil {
		return nil, err
	}
	if err := validateInterface(vs, fs); err != nil {
		return nil, err
	}
	vStage, err := stageOf(g, vs)
	if err != nil {
		return nil, err
	}
	fStage, err := stageOf(g, fs)
	if err != nil {
		return nil, err
	}
	return &Set{Vertex: vStage, Fragment: fStage}, nil
}

func computeSet(g semantic.Graph, cs *semantic.Function) (*Set, error) {
	if err := validateEntry(cs); err != nil {
		return nil, err
	}
	st, err := stageOf(g, cs)
	if err != nil {
		return nil, err
	}
	return &Set{Compute: st}, nil
}
