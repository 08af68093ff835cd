// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gofront

import (
	"fmt"
	"go/token"
	"os"
	"strings"
)

// Error is a front end error with its source position.
type Error struct {
	Pos token.Position
	// Func is the function being lowered, "Type.Name", empty for
	// declaration errors.
	Func    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("gofront: ")
	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	if e.Func != "" {
		sb.WriteString(e.Func)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// FormatWithContext returns the message followed by the offending source
// line and a caret under the column. It falls back to Error when the file
// cannot be read.
func (e *Error) FormatWithContext() string {
	if !e.Pos.IsValid() || e.Pos.Filename == "" {
		return e.Error()
	}
	data, err := os.ReadFile(e.Pos.Filename)
	if err != nil {
		return e.Error()
	}
	lines := strings.Split(string(data), "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return e.Error()
	}
	line := lines[e.Pos.Line-1]
	col := max(e.Pos.Column, 1)
	col = min(col, len(line)+1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> %s\n", e.Pos)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", e.Pos.Line, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// Errors is a list of front end errors.
type Errors []*Error

// Error implements the error interface.
func (el Errors) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Unwrap exposes the individual errors to errors.As.
func (el Errors) Unwrap() []error {
	out := make([]error, len(el))
	for i, e := range el {
		out[i] = e
	}
	return out
}

// FormatAll returns all errors formatted with context.
func (el Errors) FormatAll() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.FormatWithContext())
	}
	return sb.String()
}

// Add adds an error to the list.
func (el *Errors) Add(err *Error) {
	*el = append(*el, err)
}

// HasErrors reports whether there are any errors.
func (el Errors) HasErrors() bool {
	return len(el) > 0
}
