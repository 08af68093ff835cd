// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

import "fmt"

// Graph is the capability set shader generation needs from a host
// program. Implementations must return declarations in a stable order and
// must not change while generation runs.
type Graph interface {
	// Types returns all named struct types in declaration order.
	Types() []*StructType

	// Globals returns all module-scope variables in declaration order.
	Globals() []*Global

	// Functions returns all functions in declaration order.
	Functions() []*Function

	// LookupType resolves a struct type by name.
	LookupType(name string) (*StructType, bool)

	// LookupGlobal resolves a global by name.
	LookupGlobal(name string) (*Global, bool)

	// LookupFunction resolves a call target.
	LookupFunction(ref FunctionRef) (*Function, bool)
}

// Program is the in-memory Graph built by front ends and tests.
type Program struct {
	types     []*StructType
	globals   []*Global
	functions []*Function

	typeByName   map[string]*StructType
	globalByName map[string]*Global
	funcByRef    map[FunctionRef]*Function
}

var _ Graph = (*Program)(nil)

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{
		typeByName:   make(map[string]*StructType),
		globalByName: make(map[string]*Global),
		funcByRef:    make(map[FunctionRef]*Function),
	}
}

// AddType registers a struct type. Names must be unique.
func (p *Program) AddType(t *StructType) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("semantic: struct type without a name")
	}
	if _, dup := p.typeByName[t.Name]; dup {
		return fmt.Errorf("semantic: duplicate type %q", t.Name)
	}
	p.types = append(p.types, t)
	p.typeByName[t.Name] = t
	return nil
}

// AddGlobal registers a global and records buffer usage on the struct
// types it reaches.
func (p *Program) AddGlobal(g *Global) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("semantic: global without a name")
	}
	if _, dup := p.globalByName[g.Name]; dup {
		return fmt.Errorf("semantic: duplicate global %q", g.Name)
	}
	switch g.Space {
	case SpaceUniform:
		markUsage(g.Type, UsageUniform)
	case SpaceStorage:
		markUsage(g.Type, UsageStorage)
	}
	p.globals = append(p.globals, g)
	p.globalByName[g.Name] = g
	return nil
}

// AddFunction registers a function and records stage IO usage on the
// struct types of entry point parameters and results.
func (p *Program) AddFunction(f *Function) error {
	if f == nil || f.Name == "" {
		return fmt.Errorf("semantic: function without a name")
	}
	ref := f.Ref()
	if _, dup := p.funcByRef[ref]; dup {
		return fmt.Errorf("semantic: duplicate function %s", ref)
	}
	if f.IsEntryPoint() {
		for _, prm := range f.Params {
			if st, ok := prm.Type.(*StructType); ok {
				st.Usage |= UsageStageIO
			}
		}
		if st, ok := f.Result.(*StructType); ok {
			st.Usage |= UsageStageIO
		}
	}
	p.functions = append(p.functions, f)
	p.funcByRef[ref] = f
	return nil
}

func markUsage(t Type, u Usage) {
	switch t := t.(type) {
	case *StructType:
		if t.Usage&u != 0 {
			return
		}
		t.Usage |= u
		for _, f := range t.Fields {
			markUsage(f.Type, u)
		}
	case ArrayType:
		markUsage(t.Elem, u)
	}
}

func (p *Program) Types() []*StructType { return p.types }
func (p *Program) Globals() []*Global { return p.globals }
func (p *Program) Functions() []*Function { return p.functions }

func (p *Program) LookupType(name string) (*StructType, bool) {
	t, ok := p.typeByName[name]
	return t, ok
}

func (p *Program) LookupGlobal(name string) (*Global, bool) {
	g, ok := p.globalByName[name]
	return g, ok
}

func (p *Program) LookupFunction(ref FunctionRef) (*Function, bool) {
	f, ok := p.funcByRef[ref]
	return f, ok
}
