// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package discover

import (
	"strings"

	"github.com/gogpu/shadergen/semantic"
)

// closure computes the dependency closure of one entry point.
type closure struct {
	graph semantic.Graph

	visiting map[semantic.FunctionRef]bool
	done     map[semantic.FunctionRef]bool
	stack    []semantic.FunctionRef
	order    []*semantic.Function

	typeSeen   map[string]bool
	types      []*semantic.StructType
	globalSeen map[string]bool
}

func newClosure(g semantic.Graph) *closure {
	return &closure{
		graph:      g,
		visiting:   make(map[semantic.FunctionRef]bool),
		done:       make(map[semantic.FunctionRef]bool),
		typeSeen:   make(map[string]bool),
		globalSeen: make(map[string]bool),
	}
}

// stage builds the Stage of an entry point.
func stageOf(g semantic.Graph, entry *semantic.Function) (*Stage, error) {
	c := newClosure(g)
	if err := c.visit(entry); err != nil {
		return nil, err
	}

	var globals []*semantic.Global
	for _, gl := range g.Globals() {
		if c.globalSeen[gl.Name] {
			globals = append(globals, gl)
		}
	}
	// Types of globals come first so buffer structs precede the functions
	// that use them.
	for _, gl := range globals {
		c.addType(gl.Type)
	}
	for _, f := range c.order {
		c.addSignature(f)
		c.addBody(f)
	}

	return &Stage{
		Entry:     entry,
		Functions: c.order[:len(c.order)-1],
		Types:     c.types,
		Globals:   globals,
	}, nil
}

// visit walks calls depth first in body order and appends f after all
// of its callees.
func (c *closure) visit(f *semantic.Function) error {
	ref := f.Ref()
	if f.Unsupported != nil {
		return newError(ErrUnsupported, f, "%v", f.Unsupported)
	}
	c.visiting[ref] = true
	c.stack = append(c.stack, ref)

	var err error
	semantic.Inspect(f.Body, func(n any) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *semantic.Call:
			err = c.call(f, n.Target)
		case *semantic.Ident:
			if n.Kind == semantic.IdentGlobal {
				if _, ok := c.graph.LookupGlobal(n.Name); !ok {
					err = newError(ErrUnresolved, f, "global %s is not declared", n.Name)
					return false
				}
				c.globalSeen[n.Name] = true
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	c.stack = c.stack[:len(c.stack)-1]
	c.visiting[ref] = false
	c.done[ref] = true
	c.order = append(c.order, f)
	return nil
}

func (c *closure) call(caller *semantic.Function, target semantic.FunctionRef) error {
	if c.done[target] {
		return nil
	}
	if c.visiting[target] {
		var path []string
		for i, r := range c.stack {
			if r == target {
				for _, p := range c.stack[i:] {
					path = append(path, p.String())
				}
				break
			}
		}
		path = append(path, target.String())
		return newError(ErrRecursion, caller, "call cycle %s", strings.Join(path, " -> "))
	}
	callee, ok := c.graph.LookupFunction(target)
	if !ok {
		return newError(ErrUnresolved, caller, "call to undeclared function %s", target)
	}
	if callee.IsEntryPoint() {
		return newError(ErrStageSignature, caller, "entry point %s cannot be called", target)
	}
	return c.visit(callee)
}

func (c *closure) addSignature(f *semantic.Function) {
	for _, p := range f.Params {
		c.addType(p.Type)
	}
	c.addType(f.Result)
}

func (c *closure) addBody(f *semantic.Function) {
	semantic.Inspect(f.Body, func(n any) bool {
		switch n := n.(type) {
		case *semantic.VarDecl:
			c.addType(n.Ty)
		case semantic.Expr:
			c.addType(n.Type())
		}
		return true
	})
}

// addType records every struct reachable from t, dependencies first.
func (c *closure) addType(t semantic.Type) {
	switch t := t.(type) {
	case *semantic.StructType:
		if c.typeSeen[t.Name] {
			return
		}
		c.typeSeen[t.Name] = true
		for _, f := range t.Fields {
			c.addType(f.Type)
		}
		c.types = append(c.types, t)
	case semantic.ArrayType:
		c.addType(t.Elem)
	}
}
