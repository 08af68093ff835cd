// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package process

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/internal/shadertest"
	"github.com/gogpu/shadergen/semantic"
)

func pairSource() *shadergen.ShaderSetSource {
	return &shadergen.ShaderSetSource{
		Name:           "Foo.VS+Foo.FS",
		Backend:        backend.KindHLSL,
		VertexSource:   "// header\nfloat4 vs() {\n    // body\n    return 0;\n}\n",
		FragmentSource: "float4 fs();\n",
		EntryPoints: []backend.EntryPoint{
			{Function: semantic.FunctionRef{DeclaringType: "Foo", Name: "VS"}, Stage: semantic.StageVertex, Name: "vs_main"},
			{Function: semantic.FunctionRef{DeclaringType: "Foo", Name: "FS"}, Stage: semantic.StageFragment, Name: "fs_main"},
		},
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{Banner, RequireStage, StripComments}, r.Names())

	procs, err := r.Resolve([]string{"strip-comments", " banner ", ""})
	require.NoError(t, err)
	assert.Len(t, procs, 2)

	_, err = r.Resolve([]string{"minify"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"minify"`)

	r.Register("noop", shadergen.ProcessorFunc(func(s *shadergen.ShaderSetSource, _ backend.Kind, _ string) (*shadergen.ShaderSetSource, error) {
		return s, nil
	}))
	_, ok := r.Lookup("noop")
	assert.True(t, ok)
}

func TestParseArgs(t *testing.T) {
	kv, err := ParseArgs(`banner="Copyright 2026 Example" require-stage=vertex,fragment verbose`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"banner":        "Copyright 2026 Example",
		"require-stage": "vertex,fragment",
		"verbose":       "true",
	}, kv)

	_, err = ParseArgs(`banner="unterminated`)
	assert.Error(t, err)
}

func TestBanner(t *testing.T) {
	src := pairSource()
	out, err := banner(src, backend.KindHLSL, `banner="Example Corp"`)
	require.NoError(t, err)
	assert.Equal(t, "// Example Corp\n// Foo.VS+Foo.FS (hlsl)\nfloat4 fs();\n", out.FragmentSource)
	assert.Equal(t, "float4 fs();\n", src.FragmentSource, "input is not modified")

	out, err = banner(src, backend.KindMetal, "")
	require.NoError(t, err)
	assert.Contains(t, out.VertexSource, "// "+DefaultBanner+"\n")
	assert.Empty(t, out.ComputeSource)
}

func TestStripComments(t *testing.T) {
	out, err := stripComments(pairSource(), backend.KindHLSL, "")
	require.NoError(t, err)
	assert.Equal(t, "float4 vs() {\n    return 0;\n}\n", out.VertexSource)
}

func TestRequireStage(t *testing.T) {
	src := pairSource()
	_, err := requireStage(src, backend.KindHLSL, "require-stage=vertex,fragment,compute")
	assert.NoError(t, err, "compute is not expected of a pair")

	src.FragmentSource = ""
	_, err = requireStage(src, backend.KindHLSL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragment")

	_, err = requireStage(pairSource(), backend.KindHLSL, "require-stage=geometry")
	assert.Error(t, err)
}

func TestProcessorsInGenerate(t *testing.T) {
	procs, err := NewRegistry().Resolve([]string{RequireStage, Banner})
	require.NoError(t, err)

	opts := shadergen.DefaultOptions()
	opts.Backends = []backend.Kind{backend.KindGLSL450}
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	opts.Processors = procs
	opts.ProcessorArgs = `banner="generated for tests"`

	res, err := shadergen.Generate(shadertest.Foo().Program, opts)
	require.NoError(t, err)
	sets, err := res.GetOutput(backend.KindGLSL450)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Contains(t, sets[1].ComputeSource, "// generated for tests\n// Foo.CS (glsl450)\n#version 450")
}
