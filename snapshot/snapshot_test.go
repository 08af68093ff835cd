// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package snapshot_test provides golden snapshot tests for all backends.
//
// Each Go package in testdata/in/ is loaded with the Go front end and
// generated by every backend. The output is compared to golden files
// stored in testdata/golden/<kind>/<package>.<ext>.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/gofront"
	"github.com/gogpu/shadergen/semantic"
)

// TestSnapshots loads all inputs, generates each with every backend and
// compares the output with golden files.
func TestSnapshots(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("testdata", "in"))
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		found = true
		name := e.Name()
		t.Run(name, func(t *testing.T) {
			prog, err := gofront.Load(gofront.Config{Dir: filepath.Join("testdata", "in")}, "./"+name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			for _, kind := range backend.AllKinds() {
				t.Run(kind.String(), func(t *testing.T) {
					got := render(prog, kind)
					if again := render(prog, kind); again != got {
						t.Fatalf("output is not deterministic:\n%s", diffStrings(got, again))
					}
					for _, want := range landmarks(name, kind) {
						if !strings.Contains(got, want) {
							t.Errorf("output lacks %q:\n%s", want, truncate(got, 2000))
						}
					}
					compareGolden(t, filepath.Join("testdata", "golden", kind.String(), name+"."+kind.Extension()), got)
				})
			}
		})
	}
	if !found {
		t.Fatal("no input packages found in testdata/in/")
	}
}

// landmarks lists text every version of an input's output must contain,
// so a regression shows up even where the golden file is stale.
func landmarks(name string, kind backend.Kind) []string {
	switch name {
	case "lighting":
		return []string{"// ---- Forward.Project+Forward.Shade vertex ----", "Forward_Project(", "Forward_Shade(", "break;", "continue;"}
	case "particles":
		switch kind {
		case backend.KindGLSL330, backend.KindGLSLES300:
			return []string{"// error:", "compute shaders require"}
		case backend.KindGLSL450:
			return []string{"particles_hash(", "local_size_x = 8, local_size_y = 8, local_size_z = 1"}
		case backend.KindHLSL:
			return []string{"particles_hash(", "[numthreads(8, 8, 1)]"}
		default:
			return []string{"particles_hash("}
		}
	}
	return nil
}

// render generates prog with one backend and concatenates every stage
// source. A generation error is appended as a trailing comment so that
// expected failures are part of the snapshot too.
func render(prog semantic.Graph, kind backend.Kind) string {
	opts := shadergen.DefaultOptions()
	opts.Backends = []backend.Kind{kind}
	opts.Logger = slog.New(slog.DiscardHandler)
	res, err := shadergen.Generate(prog, opts)

	var sb strings.Builder
	if res != nil {
		for _, set := range res.Sets() {
			for _, st := range set.Stages() {
				fmt.Fprintf(&sb, "// ---- %s %s ----\n", set.Name, st)
				sb.WriteString(set.Source(st))
			}
		}
	}
	if err != nil {
		fmt.Fprintf(&sb, "// error: %v\n", err)
	}
	return sb.String()
}

// compareGolden compares actual output with a golden file.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Skipf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Git may convert \n to \r\n on Windows checkout.
	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")

	if expectedStr != actualStr {
		t.Errorf("output differs from golden %s:\n%s", path, diffStrings(expectedStr, actualStr))
	}
}

// diffStrings shows the first differing line with surrounding context.
func diffStrings(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")
	maxLines := max(len(expectedLines), len(actualLines))
	line := func(lines []string, i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}

	firstDiff := -1
	for i := range maxLines {
		if line(expectedLines, i) != line(actualLines, i) {
			firstDiff = i
			break
		}
	}
	if firstDiff < 0 {
		return "(no difference found)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "first difference at line %d:\n", firstDiff+1)
	fmt.Fprintf(&sb, "  expected lines: %d\n", len(expectedLines))
	fmt.Fprintf(&sb, "  actual lines:   %d\n\n", len(actualLines))

	const contextLines = 3
	start := max(firstDiff-contextLines, 0)
	end := min(firstDiff+contextLines+1, maxLines)
	for i := start; i < end; i++ {
		e, a := line(expectedLines, i), line(actualLines, i)
		prefix := " "
		if e != a {
			prefix = "!"
		}
		fmt.Fprintf(&sb, "%s %4d expected: %s\n", prefix, i+1, truncate(e, 120))
		if e != a {
			fmt.Fprintf(&sb, "%s %4d actual:   %s\n", prefix, i+1, truncate(a, 120))
		}
	}
	return sb.String()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
