// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package semantic

// Stage is the role a function plays in a shader pipeline.
type Stage uint8

const (
	StageNone Stage = iota // Helper function
	StageVertex
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "invalid"
	}
}

// FunctionRef identifies a function by its declaring type and name.
type FunctionRef struct {
	DeclaringType string
	Name          string
}

// String returns "DeclaringType.Name".
func (r FunctionRef) String() string {
	return r.DeclaringType + "." + r.Name
}

// IsZero reports whether r is the zero reference.
func (r FunctionRef) IsZero() bool {
	return r.DeclaringType == "" && r.Name == ""
}

// Param is a function parameter.
type Param struct {
	Name    string
	Type    Type
	Binding Binding // Entry point IO binding for non-struct parameters.
}

// Function is a function of the host program.
type Function struct {
	DeclaringType string
	Name          string
	Params        []Param

	// Result is nil for functions without a return value.
	Result        Type
	ResultBinding Binding

	Stage Stage

	// Pair names the fragment entry point a vertex entry point is
	// explicitly linked with.
	Pair *FunctionRef

	// Workgroup is the compute workgroup size.
	Workgroup [3]uint32

	Body Block

	// Unsupported is set when the front end could not lower the body.
	// Reaching such a function from an entry point is an error.
	Unsupported error

	// Pos is a human readable source position used in diagnostics.
	Pos string
}

// Ref returns the function's identity.
func (f *Function) Ref() FunctionRef {
	return FunctionRef{DeclaringType: f.DeclaringType, Name: f.Name}
}

// IsEntryPoint reports whether the function starts a shader stage.
func (f *Function) IsEntryPoint() bool {
	return f.Stage != StageNone
}
