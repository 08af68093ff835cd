// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/shadergen/semantic"
)

// AlignmentInfo describes how a type occupies buffer memory.
type AlignmentInfo struct {
	// Size is the byte size of the value alone.
	Size uint32

	// Alignment is the required start offset multiple. Always a multiple of 4.
	Alignment uint32

	// Stride is the element stride of an array or the column stride of a
	// matrix. Zero for other types.
	Stride uint32

	// RuntimeSized reports whether the type ends in a runtime-sized array.
	// Size then covers a single trailing element.
	RuntimeSized bool
}

type cacheKey struct {
	typ    string
	family Family
}

type infoEntry struct {
	info AlignmentInfo
	err  error
}

type layoutEntry struct {
	layout *StructLayout
	err    error
}

// Engine computes and memoizes alignment information and struct layouts.
//
// Types are keyed by their canonical spelling, so an Engine must only be
// shared between consumers of the same program. The zero value is ready
// to use.
type Engine struct {
	infos   sync.Map // cacheKey -> *infoEntry
	layouts sync.Map // cacheKey -> *layoutEntry
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Info returns the size and alignment of t under family f.
func (e *Engine) Info(t semantic.Type, f Family) (AlignmentInfo, error) {
	if t == nil {
		return AlignmentInfo{}, newError(ErrInvalidType, "<nil>", f, "missing type")
	}
	key := cacheKey{typ: t.String(), family: f}
	if v, ok := e.infos.Load(key); ok {
		ent := v.(*infoEntry)
		return ent.info, ent.err
	}
	info, err := e.compute(t, f)
	v, _ := e.infos.LoadOrStore(key, &infoEntry{info: info, err: err})
	ent := v.(*infoEntry)
	return ent.info, ent.err
}

// Entries returns a copy of the cached alignment records of one family,
// keyed by type name. Failed computations are omitted.
func (e *Engine) Entries(f Family) map[string]AlignmentInfo {
	out := make(map[string]AlignmentInfo)
	e.infos.Range(func(k, v any) bool {
		key := k.(cacheKey)
		ent := v.(*infoEntry)
		if key.family == f && ent.err == nil {
			out[key.typ] = ent.info
		}
		return true
	})
	return out
}

// Keys returns the sorted type names cached for family f.
func (e *Engine) Keys(f Family) []string {
	var keys []string
	e.infos.Range(func(k, _ any) bool {
		if key := k.(cacheKey); key.family == f {
			keys = append(keys, key.typ)
		}
		return true
	})
	sort.Strings(keys)
	return keys
}

func (e *Engine) compute(t semantic.Type, f Family) (AlignmentInfo, error) {
	r := f.rules()
	switch t := t.(type) {
	case semantic.ScalarType:
		return scalarInfo(t, f)

	case semantic.VectorType:
		return vectorInfo(t, f)

	case semantic.MatrixType:
		if t.Columns < 2 || t.Columns > 4 {
			return AlignmentInfo{}, newError(ErrInvalidType, t.String(), f, "matrix with %d columns", t.Columns)
		}
		if t.Scalar.Kind != semantic.ScalarFloat {
			return AlignmentInfo{}, newError(ErrInvalidType, t.String(), f, "matrices must hold floating point values")
		}
		col, err := vectorInfo(t.Column(), f)
		if err != nil {
			return AlignmentInfo{}, err
		}
		stride := roundUp(col.Size, col.Alignment)
		align := col.Alignment
		if r.round16 {
			stride = roundUp(stride, 16)
			align = max(align, 16)
		}
		return AlignmentInfo{Size: span(stride, uint32(t.Columns), col.Size, r), Alignment: align, Stride: stride}, nil

	case semantic.ArrayType:
		elem, err := e.Info(t.Elem, f)
		if err != nil {
			return AlignmentInfo{}, err
		}
		if elem.RuntimeSized {
			return AlignmentInfo{}, newError(ErrRuntimeArray, t.String(), f, "array element %s is runtime-sized", t.Elem)
		}
		stride := roundUp(elem.Size, elem.Alignment)
		align := elem.Alignment
		if r.round16 {
			stride = roundUp(stride, 16)
			align = max(align, 16)
		}
		if t.IsRuntimeSized() {
			return AlignmentInfo{Size: stride, Alignment: align, Stride: stride, RuntimeSized: true}, nil
		}
		return AlignmentInfo{Size: span(stride, t.Len, elem.Size, r), Alignment: align, Stride: stride}, nil

	case *semantic.StructType:
		sl, err := e.Layout(t, f)
		if err != nil {
			return AlignmentInfo{}, err
		}
		return AlignmentInfo{Size: sl.Size, Alignment: sl.Alignment, RuntimeSized: sl.RuntimeArray}, nil

	case semantic.SamplerType, semantic.TextureType:
		return AlignmentInfo{}, newError(ErrResourceInBuffer, t.String(), f, "opaque resource handles cannot be stored in a buffer")

	case semantic.HostType:
		return AlignmentInfo{}, newError(ErrUnrepresentable, t.String(), f, "host-only type has no GPU representation")

	default:
		return AlignmentInfo{}, newError(ErrInvalidType, fmt.Sprintf("%T", t), f, "unknown type")
	}
}

func scalarInfo(s semantic.ScalarType, f Family) (AlignmentInfo, error) {
	r := f.rules()
	switch s.Kind {
	case semantic.ScalarBool:
		return AlignmentInfo{Size: 4, Alignment: 4}, nil
	case semantic.ScalarFloat:
		if s.Width == 8 && !r.float64 {
			return AlignmentInfo{}, newError(ErrUnsupportedScalar, s.String(), f, "64-bit floats are not supported")
		}
	case semantic.ScalarSint, semantic.ScalarUint:
		if s.Width == 8 && !r.int64 {
			return AlignmentInfo{}, newError(ErrUnsupportedScalar, s.String(), f, "64-bit integers are not supported")
		}
	default:
		return AlignmentInfo{}, newError(ErrInvalidType, s.String(), f, "unknown scalar kind")
	}
	if s.Width != 4 && s.Width != 8 {
		return AlignmentInfo{}, newError(ErrUnsupportedScalar, s.String(), f, "scalar width %d", s.Width)
	}
	w := uint32(s.Width)
	return AlignmentInfo{Size: w, Alignment: w}, nil
}

func vectorInfo(v semantic.VectorType, f Family) (AlignmentInfo, error) {
	if v.Size < 2 || v.Size > 4 {
		return AlignmentInfo{}, newError(ErrInvalidType, v.String(), f, "vector with %d lanes", v.Size)
	}
	s, err := scalarInfo(v.Scalar, f)
	if err != nil {
		return AlignmentInfo{}, err
	}
	lanes := uint32(v.Size)
	aligned := nextPow2(lanes)
	size := lanes * s.Size
	if f.rules().wideVec3 {
		size = aligned * s.Size
	}
	align := min(aligned*s.Size, 16)
	return AlignmentInfo{Size: size, Alignment: align}, nil
}

// span returns the size of n elements laid out at stride.
func span(stride, n, last uint32, r rules) uint32 {
	if r.tailPack && n > 0 {
		return stride*(n-1) + last
	}
	return stride * n
}

func roundUp(n, align uint32) uint32 {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}

func nextPow2(n uint32) uint32 {
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}
