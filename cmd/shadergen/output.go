// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
)

// FileName is the path of one generated stage below the output directory:
// "<kind>/<set name>.<stage>.<ext>".
func FileName(kind backend.Kind, set *shadergen.ShaderSetSource, stage fmt.Stringer) string {
	return filepath.Join(kind.String(), fmt.Sprintf("%s.%s.%s", set.Name, stage, kind.Extension()))
}

// writeResult writes every stage source of res below dir and returns the
// written paths.
func writeResult(dir string, res *shadergen.Result) ([]string, error) {
	var written []string
	for kind, set := range res.Sets() {
		for _, st := range set.Stages() {
			path := filepath.Join(dir, FileName(kind, set, st))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return written, err
			}
			if err := os.WriteFile(path, []byte(set.Source(st)), 0o644); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// summary prints one line per backend with its set count, followed by the
// error if generation failed.
func summary(w io.Writer, res *shadergen.Result, genErr error) {
	out := termenv.NewOutput(w)
	ok := out.Color("2")
	bad := out.Color("1")
	for _, kind := range res.Kinds() {
		sets, _ := res.GetOutput(kind)
		fmt.Fprintf(w, "%s %-8s %d set(s)\n", out.String("✓").Foreground(ok).Bold(), kind, len(sets))
	}
	if genErr != nil {
		fmt.Fprintf(w, "%s %v\n", out.String("✗").Foreground(bad).Bold(), genErr)
	}
}

// lexerName is the chroma lexer used to print sources of kind.
func lexerName(kind backend.Kind) string {
	switch {
	case kind == backend.KindHLSL:
		return "hlsl"
	case kind.IsGLSL():
		return "glsl"
	}
	return "c++"
}

// printResult writes every source of res to w, syntax highlighted when
// color is set.
func printResult(w io.Writer, res *shadergen.Result, color bool) error {
	for kind, set := range res.Sets() {
		for _, st := range set.Stages() {
			fmt.Fprintf(w, "// ==== %s ====\n", FileName(kind, set, st))
			src := set.Source(st)
			if !color {
				if _, err := io.WriteString(w, src); err != nil {
					return err
				}
				continue
			}
			if err := quick.Highlight(w, src, lexerName(kind), "terminal256", "monokai"); err != nil {
				return err
			}
		}
	}
	return nil
}
