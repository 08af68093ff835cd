// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"cmp"
	"slices"

	"github.com/gogpu/shadergen/semantic"
)

type packItem struct {
	field semantic.Field
	key   string
	info  AlignmentInfo
}

type packGroup struct {
	key   string
	info  AlignmentInfo
	items []packItem
}

// Pack lays out fields for minimal total size.
//
// Fields of the same type are grouped; groups are ordered by descending
// alignment, then descending size, then type name. Members are placed
// greedily. When the next member would be misaligned, a pending member of
// a different type is pulled forward if its alignment is no larger than
// the blocked member's, its size divides the gap and the current offset is
// a multiple of its alignment. Otherwise a padding member fills 4 bytes.
//
// If the packed struct would be larger than the declaration-order layout,
// the declaration-order layout is returned. Runtime-sized fields are
// rejected. Packed layouts are not cached.
func (e *Engine) Pack(name string, fields []semantic.Field, f Family) (*StructLayout, error) {
	declared, err := e.inOrder(name, fields, f, false)
	if err != nil {
		return nil, err
	}

	groups := make([]*packGroup, 0, len(fields))
	byKey := make(map[string]*packGroup)
	for _, fld := range fields {
		info, _ := e.Info(fld.Type, f) // checked by inOrder
		key := fld.Type.String()
		g, ok := byKey[key]
		if !ok {
			g = &packGroup{key: key, info: info}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, packItem{field: fld, key: key, info: info})
	}
	slices.SortStableFunc(groups, func(a, b *packGroup) int {
		if c := cmp.Compare(b.info.Alignment, a.info.Alignment); c != 0 {
			return c
		}
		if c := cmp.Compare(b.info.Size, a.info.Size); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	pending := make([]packItem, 0, len(fields))
	for _, g := range groups {
		pending = append(pending, g.items...)
	}

	b := builder{layout: &StructLayout{Name: name, Family: f}}
	for len(pending) > 0 {
		next := pending[0]
		if b.offset%next.info.Alignment == 0 {
			b.place(next.field, next.info)
			pending = pending[1:]
			continue
		}
		gap := roundUp(b.offset, next.info.Alignment) - b.offset
		if j := filler(pending, next, gap, b.offset); j > 0 {
			b.place(pending[j].field, pending[j].info)
			pending = slices.Delete(pending, j, j+1)
			continue
		}
		b.pad()
	}
	b.finish(f)

	if b.layout.Size > declared.Size {
		return declared, nil
	}
	return b.layout, nil
}

// filler returns the index of the first pending member that can fill the
// gap before blocked, or -1.
func filler(pending []packItem, blocked packItem, gap, offset uint32) int {
	for j := 1; j < len(pending); j++ {
		c := pending[j]
		if c.key == blocked.key || c.info.Alignment > blocked.info.Alignment {
			continue
		}
		if gap%c.info.Size == 0 && offset%c.info.Alignment == 0 {
			return j
		}
	}
	return -1
}
