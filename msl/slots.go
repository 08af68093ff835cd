// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gogpu/shadergen/backend"
	"github.com/gogpu/shadergen/semantic"
)

// slotClass is a Metal argument table.
type slotClass uint8

const (
	slotBuffer slotClass = iota
	slotTexture
	slotSampler
)

func (c slotClass) String() string {
	switch c {
	case slotTexture:
		return "texture"
	case slotSampler:
		return "sampler"
	default:
		return "buffer"
	}
}

// Slot is an index in one argument table.
type Slot struct {
	class slotClass
	Index uint32
}

// String formats the slot as its attribute, e.g. "buffer(1)".
func (s Slot) String() string {
	return fmt.Sprintf("%s(%d)", s.class, s.Index)
}

func classOf(space semantic.Space) slotClass {
	switch space {
	case semantic.SpaceTexture:
		return slotTexture
	case semantic.SpaceSampler:
		return slotSampler
	default:
		return slotBuffer
	}
}

// assignSlots numbers the set's resources per argument table in
// (group, binding) order. Every stage of the set uses the same numbers.
func assignSlots(plan *backend.Plan) map[string]Slot {
	res := slices.Clone(plan.Resources)
	slices.SortStableFunc(res, func(a, b *semantic.Global) int {
		return cmp.Or(cmp.Compare(a.Binding.Group, b.Binding.Group), cmp.Compare(a.Binding.Binding, b.Binding.Binding))
	})
	next := make(map[slotClass]uint32)
	slots := make(map[string]Slot, len(res)+1)
	for _, g := range res {
		c := classOf(g.Space)
		slots[g.Name] = Slot{class: c, Index: next[c]}
		next[c]++
	}
	if plan.Loose != nil {
		slots[backend.GlobalsBlock] = Slot{class: slotBuffer, Index: next[slotBuffer]}
	}
	return slots
}
