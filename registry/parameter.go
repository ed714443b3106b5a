package registry

import (
	"reflect"

	"config-forge/schema"
)

// Parameter is the context one constructor argument is resolved in.
// It carries the declared type, the constructor's target, the sibling
// arguments seen so far, and the argument's name, so handlers that look
// sideways (dependent types, rewriters) have everything they need.
type Parameter struct {
	Type schema.Type
	// Parent is the type whose constructor requires this argument.
	Parent reflect.Type
	// LocalState exposes sibling arguments: raw values during
	// validation, constructed values during building.
	LocalState map[string]any
	Name       string
}

func NewParameter(t schema.Type, parent reflect.Type, local map[string]any, name string) *Parameter {
	return &Parameter{Type: t, Parent: parent, LocalState: local, Name: name}
}

// Equal compares the declared type structurally along with the parent,
// name, and local state.
func (p *Parameter) Equal(o *Parameter) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Parent == o.Parent &&
		p.Name == o.Name &&
		p.Type.Equal(o.Type) &&
		reflect.DeepEqual(p.LocalState, o.LocalState)
}

func (p *Parameter) String() string {
	return p.Type.String()
}

// Inner rewraps the parameter around a different declared type, keeping
// the surrounding context.
func (p *Parameter) Inner(t schema.Type) *Parameter {
	return &Parameter{Type: t, Parent: p.Parent, LocalState: p.LocalState, Name: p.Name}
}
