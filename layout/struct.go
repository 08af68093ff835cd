// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"

	"github.com/gogpu/shadergen/semantic"
)

// Placement is one member of a laid out struct.
type Placement struct {
	Name    string
	Type    semantic.Type
	Offset  uint32
	Size    uint32
	Align   uint32
	Padding bool // Synthetic member that only fills an alignment gap
}

// End returns the first byte after the member.
func (p Placement) End() uint32 {
	return p.Offset + p.Size
}

// StructLayout is the placement of a struct's members in a buffer.
// Layouts returned by an Engine are shared and must not be modified.
type StructLayout struct {
	Name       string
	Family     Family
	Placements []Placement
	Size       uint32
	Alignment  uint32

	// RuntimeArray reports that the last member is a runtime-sized array.
	RuntimeArray bool
}

// Fields returns the non-padding placements in emission order.
func (l *StructLayout) Fields() []Placement {
	out := make([]Placement, 0, len(l.Placements))
	for _, p := range l.Placements {
		if !p.Padding {
			out = append(out, p)
		}
	}
	return out
}

// Field returns the placement of the named member.
func (l *StructLayout) Field(name string) (Placement, bool) {
	for _, p := range l.Placements {
		if !p.Padding && p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Validate checks that every member starts at a multiple of its
// alignment, that members do not overlap and that the struct size is a
// multiple of its alignment.
func (l *StructLayout) Validate() error {
	if l.Alignment == 0 || l.Alignment%4 != 0 {
		return fmt.Errorf("layout: %s: alignment %d is not a positive multiple of 4", l.Name, l.Alignment)
	}
	if l.Size%l.Alignment != 0 {
		return fmt.Errorf("layout: %s: size %d is not a multiple of alignment %d", l.Name, l.Size, l.Alignment)
	}
	var end uint32
	for _, p := range l.Placements {
		if p.Align == 0 || p.Offset%p.Align != 0 {
			return fmt.Errorf("layout: %s.%s: offset %d is not aligned to %d", l.Name, p.Name, p.Offset, p.Align)
		}
		if p.Offset < end {
			return fmt.Errorf("layout: %s.%s: offset %d overlaps previous member ending at %d", l.Name, p.Name, p.Offset, end)
		}
		end = p.End()
	}
	if end > l.Size {
		return fmt.Errorf("layout: %s: members end at %d past size %d", l.Name, end, l.Size)
	}
	return nil
}

// Layout places the fields of s in declaration order, inserting padding
// members where a field would be misaligned and at the tail.
func (e *Engine) Layout(s *semantic.StructType, f Family) (*StructLayout, error) {
	if s == nil {
		return nil, newError(ErrInvalidType, "<nil>", f, "missing struct")
	}
	key := cacheKey{typ: s.Name, family: f}
	if v, ok := e.layouts.Load(key); ok {
		ent := v.(*layoutEntry)
		return ent.layout, ent.err
	}
	if s.Usage.Has(semantic.UsageUniform) && hasRuntimeArray(s) {
		err := newError(ErrRuntimeArray, s.Name, f, "runtime-sized arrays are only allowed in storage buffers")
		v, _ := e.layouts.LoadOrStore(key, &layoutEntry{err: err})
		return nil, v.(*layoutEntry).err
	}
	sl, err := e.inOrder(s.Name, s.Fields, f, true)
	v, _ := e.layouts.LoadOrStore(key, &layoutEntry{layout: sl, err: err})
	ent := v.(*layoutEntry)
	return ent.layout, ent.err
}

// inOrder places fields in the given order.
func (e *Engine) inOrder(name string, fields []semantic.Field, f Family, allowTail bool) (*StructLayout, error) {
	if len(fields) == 0 {
		return nil, newError(ErrInvalidType, name, f, "struct has no fields")
	}
	b := builder{layout: &StructLayout{Name: name, Family: f}}
	for i, fld := range fields {
		info, err := e.Info(fld.Type, f)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", name, fld.Name, err)
		}
		if info.RuntimeSized {
			if !allowTail || i != len(fields)-1 {
				return nil, newError(ErrRuntimeArray, name, f, "runtime-sized field %s must be the last member", fld.Name)
			}
			b.layout.RuntimeArray = true
		}
		b.padTo(info.Alignment)
		b.place(fld, info)
	}
	b.finish(f)
	return b.layout, nil
}

// builder accumulates placements. Padding members are 4-byte unsigned
// scalars named _pad0, _pad1, ...
type builder struct {
	layout *StructLayout
	offset uint32
	align  uint32
	pads   int
}

func (b *builder) place(fld semantic.Field, info AlignmentInfo) {
	b.layout.Placements = append(b.layout.Placements, Placement{
		Name:   fld.Name,
		Type:   fld.Type,
		Offset: b.offset,
		Size:   info.Size,
		Align:  info.Alignment,
	})
	b.offset += info.Size
	b.align = max(b.align, info.Alignment)
}

func (b *builder) pad() {
	b.layout.Placements = append(b.layout.Placements, Placement{
		Name:    fmt.Sprintf("_pad%d", b.pads),
		Type:    semantic.Uint32,
		Offset:  b.offset,
		Size:    4,
		Align:   4,
		Padding: true,
	})
	b.pads++
	b.offset += 4
}

func (b *builder) padTo(align uint32) {
	for b.offset%align != 0 {
		b.pad()
	}
}

func (b *builder) finish(f Family) {
	align := max(b.align, 4)
	if f.rules().round16 {
		align = max(align, 16)
	}
	if !b.layout.RuntimeArray {
		b.padTo(align)
	}
	b.layout.Alignment = align
	b.layout.Size = roundUp(b.offset, align)
}

func hasRuntimeArray(s *semantic.StructType) bool {
	if len(s.Fields) == 0 {
		return false
	}
	switch t := s.Fields[len(s.Fields)-1].Type.(type) {
	case semantic.ArrayType:
		return t.IsRuntimeSized()
	case *semantic.StructType:
		return hasRuntimeArray(t)
	}
	return false
}
