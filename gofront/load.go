// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gofront builds a semantic program from Go packages.
//
// Shader code is ordinary Go written against the sl package. Declarations
// take part in shader generation through //shader: directives:
//
//	//shader:uniform group=0 binding=0
//	var Cam Camera
//
//	//shader:vertex fragment=FS
//	func (Foo) VS(in VertexIn) Varyings { ... }
//
// Struct fields carry stage IO bindings in `shader:"..."` tags. Every
// function of the loaded packages is lowered; functions whose bodies use
// Go features without a shader equivalent are kept with their reason in
// semantic.Function.Unsupported, so they only fail generation when an
// entry point reaches them.
package gofront

import (
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/gogpu/shadergen/semantic"
)

// LoadMode is the packages.Load mode the front end needs.
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedTypes |
	packages.NeedSyntax | packages.NeedTypesSizes | packages.NeedTypesInfo

// Config configures package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string

	// Tags are extra build tags.
	Tags []string

	// Env overrides the environment of the go command.
	Env []string

	Logger *slog.Logger
}

// Load loads the packages matching patterns and lowers them into a
// program. No patterns means ".".
func Load(cfg Config, patterns ...string) (*semantic.Program, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pcfg := &packages.Config{Mode: LoadMode, Dir: cfg.Dir, Env: cfg.Env}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("gofront: loading %s: %w", strings.Join(patterns, " "), err)
	}
	return FromPackages(pkgs, cfg.Logger)
}

// FromPackages lowers already loaded packages. They must have been loaded
// with at least LoadMode.
func FromPackages(pkgs []*packages.Package, logger *slog.Logger) (*semantic.Program, error) {
	if len(pkgs) == 0 {
		return nil, errors.New("gofront: no packages")
	}
	var loadErrs []error
	for _, p := range pkgs {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, fmt.Errorf("gofront: %s: %s", p.PkgPath, e))
		}
		if p.Types == nil || p.TypesInfo == nil {
			loadErrs = append(loadErrs, fmt.Errorf("gofront: %s: package has no type information", p.PkgPath))
		}
	}
	if len(loadErrs) > 0 {
		return nil, errors.Join(loadErrs...)
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := newLowerer(pkgs[0].Fset, logger)
	l.lower(pkgs)
	if l.errs.HasErrors() {
		return nil, l.errs
	}
	return l.prog, nil
}

func (l *lowerer) errorf(pos token.Pos, fn string, format string, args ...any) {
	l.errs.Add(&Error{Pos: l.fset.Position(pos), Func: fn, Message: fmt.Sprintf(format, args...)})
}
