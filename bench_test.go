// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadergen

import (
	"runtime"
	"testing"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/internal/shadertest"
	"github.com/gogpu/shadergen/layout"
)

// BenchmarkTranslateAllBackends measures one backend at a time on the
// discovered sets of the Foo fixture, with a fresh layout cache per run.
func BenchmarkTranslateAllBackends(b *testing.B) {
	sets, err := discover.Discover(shadertest.Foo().Program)
	if err != nil {
		b.Fatal(err)
	}
	for _, kind := range []backend.Kind{backend.KindHLSL, backend.KindGLSL450, backend.KindMetal} {
		b.Run(kind.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				be, err := NewBackend(kind, layout.NewEngine(), nil)
				if err != nil {
					b.Fatal(err)
				}
				for _, set := range sets {
					if _, err := be.Translate(set); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

// BenchmarkGenerate measures the full pipeline: discovery, concurrent
// backends and result merging.
func BenchmarkGenerate(b *testing.B) {
	prog := shadertest.Foo().Program
	opts := DefaultOptions()
	opts.Backends = []backend.Kind{backend.KindHLSL, backend.KindGLSL450, backend.KindMetal}

	b.Run("Unbounded", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for range b.N {
			if _, err := Generate(prog, opts); err != nil {
				b.Fatal(err)
			}
		}
	})

	bounded := *opts
	bounded.Concurrency = 1
	b.Run("Sequential", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for range b.N {
			if _, err := Generate(prog, &bounded); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkGenerateMemory reports heap growth per Generate call.
func BenchmarkGenerateMemory(b *testing.B) {
	prog := shadertest.Foo().Program
	opts := DefaultOptions()
	opts.Backends = []backend.Kind{backend.KindHLSL, backend.KindMetal}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	b.ResetTimer()
	for range b.N {
		if _, err := Generate(prog, opts); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	runtime.ReadMemStats(&after)
	b.ReportMetric(float64(after.TotalAlloc-before.TotalAlloc)/float64(b.N), "heap-B/op")
}
