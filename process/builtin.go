// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// DefaultBanner is the banner text when none is given.
const DefaultBanner = "Code generated by shadergen. DO NOT EDIT."

// banner prepends a comment header to every stage.
func banner(set *shadergen.ShaderSetSource, kind backend.Kind, args string) (*shadergen.ShaderSetSource, error) {
	kv, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}
	text := kv[Banner]
	if text == "" || text == "true" {
		text = DefaultBanner
	}
	var b strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		b.WriteString("// " + line + "\n")
	}
	fmt.Fprintf(&b, "// %s (%s)\n", set.Name, kind)

	out := set.Clone()
	for _, st := range out.Stages() {
		out.SetSource(st, b.String()+out.Source(st))
	}
	return out, nil
}

// stripComments removes lines that hold only a // comment.
func stripComments(set *shadergen.ShaderSetSource, _ backend.Kind, _ string) (*shadergen.ShaderSetSource, error) {
	out := set.Clone()
	for _, st := range out.Stages() {
		var b strings.Builder
		for line := range strings.Lines(out.Source(st)) {
			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}
			b.WriteString(line)
		}
		out.SetSource(st, b.String())
	}
	return out, nil
}

// requireStage fails when a stage the set declares has no source, or when
// a stage listed in the require-stage argument is missing.
func requireStage(set *shadergen.ShaderSetSource, _ backend.Kind, args string) (*shadergen.ShaderSetSource, error) {
	for _, ep := range set.EntryPoints {
		if set.Source(ep.Stage) == "" {
			return nil, fmt.Errorf("process: %s declares %s stage %s without source", set.Name, ep.Stage, ep.Function)
		}
	}
	kv, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}
	list := kv[RequireStage]
	if list == "" || list == "true" {
		return set, nil
	}
	for name := range strings.SplitSeq(list, ",") {
		st, err := parseStage(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if set.Source(st) == "" {
			// Compute sets never carry graphics stages and vice versa.
			if (st == semantic.StageCompute) != (set.ComputeSource != "") {
				continue
			}
			return nil, fmt.Errorf("process: %s has no %s stage", set.Name, st)
		}
	}
	return set, nil
}

func parseStage(s string) (semantic.Stage, error) {
	switch strings.ToLower(s) {
	case "vertex", "vs":
		return semantic.StageVertex, nil
	case "fragment", "fs", "pixel":
		return semantic.StageFragment, nil
	case "compute", "cs":
		return semantic.StageCompute, nil
	}
	return semantic.StageNone, fmt.Errorf("process: unknown stage %q", s)
}
