// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadergen/semantic"
)

// fieldNames hands out A0, A1, ... per type so generated structs have
// unique, readable member names.
type fieldNames map[string]int

func (n fieldNames) next(t semantic.Type) string {
	k := t.String()
	i := n[k]
	n[k] = i + 1
	return fmt.Sprintf("%s_%d", sanitize(k), i)
}

func sanitize(s string) string {
	out := []byte(s)
	for i, c := range out {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			out[i] = '_'
		}
	}
	return string(out)
}

func TestPackInterleaves(t *testing.T) {
	fields := []semantic.Field{
		{Name: "A", Type: semantic.Float32},
		{Name: "B", Type: semantic.Vec(3)},
		{Name: "C", Type: semantic.Float32},
		{Name: "D", Type: semantic.Vec(3)},
	}
	e := NewEngine()

	declared, err := e.inOrder("Globals", fields, FamilyHLSL, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(48), declared.Size)

	packed, err := e.Pack("Globals", fields, FamilyHLSL)
	require.NoError(t, err)
	require.NoError(t, packed.Validate())
	assert.Equal(t, uint32(32), packed.Size)

	var order []string
	for _, p := range packed.Placements {
		order = append(order, fmt.Sprintf("%s@%d", p.Name, p.Offset))
	}
	assert.Equal(t, []string{"B@0", "A@12", "D@16", "C@28"}, order)
}

func TestPackPadsWhenNothingFits(t *testing.T) {
	fields := []semantic.Field{
		{Name: "M", Type: semantic.Vec(3)},
		{Name: "N", Type: semantic.Vec(3)},
		{Name: "Q", Type: semantic.Vec(2)},
	}
	packed, err := NewEngine().Pack("Block", fields, FamilyStd430)
	require.NoError(t, err)
	require.NoError(t, packed.Validate())

	// vec2 does not divide the 4 byte gap after M, so padding is inserted.
	require.GreaterOrEqual(t, len(packed.Placements), 4)
	assert.Equal(t, "M", packed.Placements[0].Name)
	assert.True(t, packed.Placements[1].Padding)
	assert.Equal(t, uint32(12), packed.Placements[1].Offset)
}

func TestPackRejectsRuntimeArrays(t *testing.T) {
	fields := []semantic.Field{
		{Name: "Data", Type: semantic.ArrayType{Elem: semantic.Float32}},
	}
	_, err := NewEngine().Pack("Block", fields, FamilyStd430)
	require.Error(t, err)
}

var packPool = []semantic.Type{
	semantic.Float32,
	semantic.Int32,
	semantic.Uint32,
	semantic.Bool,
	semantic.Vec(2),
	semantic.Vec(3),
	semantic.Vec(4),
	semantic.VectorType{Scalar: semantic.Int32, Size: 3},
	semantic.MatrixType{Scalar: semantic.Float32, Columns: 3, Rows: 3},
	semantic.MatrixType{Scalar: semantic.Float32, Columns: 4, Rows: 4},
	semantic.ArrayType{Elem: semantic.Float32, Len: 3},
	semantic.ArrayType{Elem: semantic.Vec(2), Len: 2},
}

func randomFields(r *rand.Rand) []semantic.Field {
	names := fieldNames{}
	n := 1 + r.IntN(10)
	fields := make([]semantic.Field, n)
	for i := range fields {
		typ := packPool[r.IntN(len(packPool))]
		fields[i] = semantic.Field{Name: names.next(typ), Type: typ}
	}
	return fields
}

// Packing never produces a larger struct than declaration order and
// every placement is aligned, for every family.
func TestPackProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	e := NewEngine()
	for i := range 500 {
		fields := randomFields(r)
		for _, f := range Families {
			name := fmt.Sprintf("S%d", i)
			declared, err := e.inOrder(name, fields, f, false)
			require.NoError(t, err)
			require.NoError(t, declared.Validate())

			packed, err := e.Pack(name, fields, f)
			require.NoError(t, err)
			require.NoError(t, packed.Validate(), "%s %v", f, fields)
			assert.LessOrEqual(t, packed.Size, declared.Size, "%s %v", f, fields)
			assert.Len(t, packed.Fields(), len(fields))

			again, err := e.Pack(name, fields, f)
			require.NoError(t, err)
			assert.Equal(t, packed, again)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := range 50 {
		s := &semantic.StructType{Name: fmt.Sprintf("T%d", i), Fields: randomFields(r)}
		for _, f := range Families {
			a, err := NewEngine().Layout(s, f)
			require.NoError(t, err)
			b, err := NewEngine().Layout(s, f)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	}
}
