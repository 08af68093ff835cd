// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"fmt"
	"go/ast"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
	"golang.org/x/exp/maps"

	"github.com/gogpu/shadergen/semantic"
)

// Tool is the directive prefix recognized by the front end.
const Tool = "shader"

// Directive is a parsed //shader:<kind> comment. Arguments are either
// positional flags or key=value pairs, in any order:
//
//	//shader:vertex fragment=Foo.FS pos=position
//	//shader:storage readonly group=1 binding=0
type Directive struct {
	Kind  string
	Flags []string
	Keys  map[string]string

	pos ast.Node
}

// Has reports whether the positional flag is present.
func (d *Directive) Has(flag string) bool {
	for _, f := range d.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Lookup returns the value of key.
func (d *Directive) Lookup(key string) (string, bool) {
	v, ok := d.Keys[key]
	return v, ok
}

// KeyNames returns the keys in sorted order.
func (d *Directive) KeyNames() []string {
	names := maps.Keys(d.Keys)
	slices.Sort(names)
	return names
}

// Uint returns key as an unsigned integer.
func (d *Directive) Uint(key string) (uint32, bool, error) {
	v, ok := d.Keys[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, true, fmt.Errorf("%s=%q is not an unsigned integer", key, v)
	}
	return uint32(n), true, nil
}

// ParseDirective parses one comment. It returns nil when the comment is
// not a shader directive.
func ParseDirective(comment string) (*Directive, error) {
	comment = strings.TrimPrefix(comment, "//")
	if comment == "" || unicode.IsSpace(rune(comment[0])) {
		return nil, nil
	}
	tool, rest, found := strings.Cut(comment, ":")
	if !found || tool != Tool {
		return nil, nil
	}
	args, err := shellwords.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("parsing //%s: arguments: %w", Tool, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("//%s: directive without a kind", Tool)
	}
	d := &Directive{Kind: args[0], Keys: make(map[string]string)}
	for _, a := range args[1:] {
		k, v, kv := strings.Cut(a, "=")
		if !kv {
			d.Flags = append(d.Flags, a)
			continue
		}
		if _, dup := d.Keys[k]; dup {
			return nil, fmt.Errorf("//%s:%s: duplicate key %q", Tool, d.Kind, k)
		}
		d.Keys[k] = v
	}
	return d, nil
}

// directives returns the shader directives of a comment group.
func directives(group *ast.CommentGroup) ([]*Directive, error) {
	if group == nil {
		return nil, nil
	}
	var out []*Directive
	for _, c := range group.List {
		d, err := ParseDirective(c.Text)
		if err != nil {
			return nil, err
		}
		if d != nil {
			d.pos = c
			out = append(out, d)
		}
	}
	return out, nil
}

// single returns the only directive of a declaration, nil if it has none.
func single(groups ...*ast.CommentGroup) (*Directive, error) {
	var found *Directive
	for _, g := range groups {
		ds, err := directives(g)
		if err != nil {
			return nil, err
		}
		for _, d := range ds {
			if found != nil {
				return nil, fmt.Errorf("conflicting directives //%s:%s and //%s:%s", Tool, found.Kind, Tool, d.Kind)
			}
			found = d
		}
	}
	return found, nil
}

// ParseBinding parses a stage IO binding as written in struct tags and
// entry point directive keys. It accepts a comma separated list of
// "position", a builtin name, "builtin=<name>", "location=<n>", a bare
// location number and "flat".
func ParseBinding(s string) (semantic.Binding, error) {
	var (
		b    semantic.Binding
		flat bool
	)
	set := func(nb semantic.Binding) error {
		if b != nil {
			return fmt.Errorf("binding %q names more than one slot", s)
		}
		b = nb
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		key, val, kv := strings.Cut(part, "=")
		var err error
		switch {
		case part == "flat":
			flat = true
		case kv && key == "location":
			err = setLocation(val, set)
		case kv && key == "builtin":
			bv, ok := semantic.ParseBuiltin(val)
			if !ok {
				return nil, fmt.Errorf("unknown builtin %q", val)
			}
			err = set(semantic.BuiltinBinding{Builtin: bv})
		case kv:
			return nil, fmt.Errorf("unknown binding key %q", key)
		case part != "" && part[0] >= '0' && part[0] <= '9':
			err = setLocation(part, set)
		default:
			bv, ok := semantic.ParseBuiltin(part)
			if !ok {
				return nil, fmt.Errorf("unknown builtin %q", part)
			}
			err = set(semantic.BuiltinBinding{Builtin: bv})
		}
		if err != nil {
			return nil, err
		}
	}
	if b == nil {
		return nil, fmt.Errorf("binding %q names no slot", s)
	}
	if flat {
		l, ok := b.(semantic.LocationBinding)
		if !ok {
			return nil, fmt.Errorf("flat only applies to locations in %q", s)
		}
		l.Flat = true
		b = l
	}
	return b, nil
}

func setLocation(v string, set func(semantic.Binding) error) error {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf("location %q is not an unsigned integer", v)
	}
	return set(semantic.LocationBinding{Location: uint32(n)})
}

// parseWorkgroup parses "x[,y[,z]]"; missing dimensions are 1.
func parseWorkgroup(s string) ([3]uint32, error) {
	wg := [3]uint32{1, 1, 1}
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return wg, fmt.Errorf("workgroup %q has more than three dimensions", s)
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return wg, fmt.Errorf("workgroup %q: %q is not an unsigned integer", s, p)
		}
		wg[i] = uint32(n)
	}
	return wg, nil
}

// parseRef parses "Name" or "Type.Name"; a bare name resolves against
// declaringType.
func parseRef(s, declaringType string) (semantic.FunctionRef, error) {
	if s == "" {
		return semantic.FunctionRef{}, fmt.Errorf("empty function reference")
	}
	typ, name, qualified := strings.Cut(s, ".")
	if !qualified {
		return semantic.FunctionRef{DeclaringType: declaringType, Name: s}, nil
	}
	if typ == "" || name == "" || strings.Contains(name, ".") {
		return semantic.FunctionRef{}, fmt.Errorf("malformed function reference %q", s)
	}
	return semantic.FunctionRef{DeclaringType: typ, Name: name}, nil
}
