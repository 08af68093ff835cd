// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"slices"

	"github.com/gogpu/shadergen/discover"
	"github.com/gogpu/shadergen/layout"
	"github.com/gogpu/shadergen/semantic"
)

// GlobalsBlock is the name of the synthesized block holding loose uniforms.
const GlobalsBlock = "_Globals"

// DefaultGlobalsBinding is the slot of the loose uniform block unless
// configured otherwise.
var DefaultGlobalsBinding = semantic.ResourceBinding{Group: 0, Binding: 12}

// LooseUniforms is the synthesized uniform block of a shader set.
type LooseUniforms struct {
	Layout  *layout.StructLayout
	Binding semantic.ResourceBinding
	Globals []*semantic.Global
}

// Has reports whether g lives in the block.
func (l *LooseUniforms) Has(g *semantic.Global) bool {
	return l != nil && slices.Contains(l.Globals, g)
}

// Plan is the backend independent preparation of one shader set: buffer
// layouts, the loose uniform block and the bound resources.
type Plan struct {
	Kind Kind
	Set  *discover.Set

	// Layouts holds the layout of every buffer-backed struct by name.
	Layouts map[string]*layout.StructLayout

	// Loose is nil when the set reads no loose uniforms.
	Loose *LooseUniforms

	// Resources are the bound globals in first-use order.
	Resources []*semantic.Global
}

// NewPlan lays out the buffer structs of set for kind and collects its
// resources. Layout results are shared through engine.
func NewPlan(kind Kind, engine *layout.Engine, set *discover.Set, globalsBinding semantic.ResourceBinding) (*Plan, error) {
	p := &Plan{
		Kind:    kind,
		Set:     set,
		Layouts: make(map[string]*layout.StructLayout),
	}

	for _, st := range set.Stages() {
		for _, t := range st.Types {
			if _, done := p.Layouts[t.Name]; done || !t.Usage.IsBuffer() {
				continue
			}
			sl, err := bufferLayout(kind, engine, t)
			if err != nil {
				return nil, err
			}
			p.Layouts[t.Name] = sl
		}
	}

	used := make(map[semantic.ResourceBinding]string)
	var loose []semantic.Field
	var looseGlobals []*semantic.Global
	for _, g := range set.Globals() {
		if g.IsLooseUniform() {
			loose = append(loose, semantic.Field{Name: g.Name, Type: g.Type})
			looseGlobals = append(looseGlobals, g)
			continue
		}
		if g.Space == semantic.SpacePrivate {
			return nil, &Error{Kind: ErrUnsupportedConstruct, Backend: kind, Type: g.Name,
				Message: "module-scope variables without a resource space are not supported"}
		}
		if g.Binding == nil {
			return nil, &Error{Kind: ErrInternal, Backend: kind, Type: g.Name,
				Message: "resource has no binding"}
		}
		if prev, dup := used[*g.Binding]; dup {
			return nil, &Error{Kind: ErrBindingConflict, Backend: kind, Type: g.Name,
				Message: "shares " + g.Binding.String() + " with " + prev}
		}
		used[*g.Binding] = g.Name
		p.Resources = append(p.Resources, g)
	}

	if len(loose) > 0 {
		if prev, dup := used[globalsBinding]; dup {
			return nil, &Error{Kind: ErrBindingConflict, Backend: kind, Type: GlobalsBlock,
				Message: "loose uniform block " + globalsBinding.String() + " collides with " + prev}
		}
		sl, err := engine.Pack(GlobalsBlock, loose, kind.Family())
		if err != nil {
			return nil, &Error{Kind: ErrLayout, Backend: kind, Type: GlobalsBlock, Message: "cannot pack loose uniforms", Err: err}
		}
		p.Loose = &LooseUniforms{Layout: sl, Binding: globalsBinding, Globals: looseGlobals}
	}
	return p, nil
}

// bufferLayout lays out t for every buffer kind it is used as. A struct
// used as both uniform and storage must land on identical offsets.
func bufferLayout(kind Kind, engine *layout.Engine, t *semantic.StructType) (*layout.StructLayout, error) {
	var families []layout.Family
	if t.Usage.Has(semantic.UsageUniform) {
		families = append(families, kind.Family())
	}
	if t.Usage.Has(semantic.UsageStorage) {
		families = append(families, kind.StorageFamily())
	}
	var first *layout.StructLayout
	for _, f := range families {
		sl, err := engine.Layout(t, f)
		if err != nil {
			return nil, &Error{Kind: ErrLayout, Backend: kind, Type: t.Name, Message: "cannot lay out buffer struct", Err: err}
		}
		if first == nil {
			first = sl
			continue
		}
		if !sameOffsets(first, sl) {
			return nil, &Error{Kind: ErrLayout, Backend: kind, Type: t.Name,
				Message: "used as both uniform and storage buffer with different layouts (" +
					first.Family.String() + " vs " + sl.Family.String() + ")"}
		}
	}
	return first, nil
}

func sameOffsets(a, b *layout.StructLayout) bool {
	if a.Size != b.Size || len(a.Placements) != len(b.Placements) {
		return false
	}
	for i := range a.Placements {
		if a.Placements[i].Offset != b.Placements[i].Offset || a.Placements[i].Name != b.Placements[i].Name {
			return false
		}
	}
	return true
}

// Types returns the union of the stages' struct types in dependency order.
func (p *Plan) Types() []*semantic.StructType {
	var out []*semantic.StructType
	seen := make(map[string]bool)
	for _, st := range p.Set.Stages() {
		for _, t := range st.Types {
			if !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// StageResources returns the resources one stage reads, in plan order.
func (p *Plan) StageResources(st *discover.Stage) []*semantic.Global {
	var out []*semantic.Global
	for _, g := range p.Resources {
		if slices.Contains(st.Globals, g) {
			out = append(out, g)
		}
	}
	return out
}

// UsesLoose reports whether a stage reads any loose uniform.
func (p *Plan) UsesLoose(st *discover.Stage) bool {
	if p.Loose == nil {
		return false
	}
	for _, g := range st.Globals {
		if p.Loose.Has(g) {
			return true
		}
	}
	return false
}
