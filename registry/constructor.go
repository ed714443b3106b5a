package registry

import (
	"reflect"

	"config-forge/diagnostic"
	"config-forge/schema"
)

// KindBase names the default constructor flow.
const KindBase = "base"

// ParamSpec declares one constructor parameter.
type ParamSpec struct {
	Name string
	Type schema.Type
	// HasDefault marks the parameter optional; Default is the value used
	// when the configuration omits it.
	HasDefault bool
	Default    any
}

// Param declares a required parameter.
func Param(name string, t schema.Type) ParamSpec {
	return ParamSpec{Name: name, Type: t}
}

// OptParam declares a parameter with a default.
func OptParam(name string, t schema.Type, def any) ParamSpec {
	return ParamSpec{Name: name, Type: t, HasDefault: true, Default: def}
}

// Constructor is the per-resolution record holding everything needed to
// validate and build one registered type: its merged parameter specs,
// the declared construction order, and the flow kind that handles it.
type Constructor struct {
	Entry  *Entry
	Target reflect.Type
	Params []ParamSpec
	Order  []string
	Kind   string
}

// Param looks up a merged spec by name.
func (c *Constructor) Param(name string) (ParamSpec, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Names lists the merged parameter names in declaration order.
func (c *Constructor) Names() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

func (c *Constructor) String() string {
	return typeName(c.Target)
}

// Without copies the constructor minus the named parameters. Order is
// left untouched; callers drop only names the input will supply another
// way.
func (c *Constructor) Without(names ...string) *Constructor {
	if len(names) == 0 {
		return c
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]ParamSpec, 0, len(c.Params))
	for _, p := range c.Params {
		if !drop[p.Name] {
			kept = append(kept, p)
		}
	}
	out := *c
	out.Params = kept
	return &out
}

// ConstructorFor builds the construction record for t: the entry's
// declared parameters (or its template's), with ancestor specs merged
// beneath them when the entry opts into passthrough.
func (r *Registry) ConstructorFor(t reflect.Type) (*Constructor, error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, diagnostic.Configurationf(
			"%s is not registered with the %s hierarchy", typeName(t), typeName(r.root))
	}

	kind := e.Kind
	if kind == "" {
		kind = KindBase
	}
	order := e.Order
	if e.Template != nil {
		order = e.Template.Order
	}

	return &Constructor{
		Entry:  e,
		Target: t,
		Params: r.mergedParams(e),
		Order:  order,
		Kind:   kind,
	}, nil
}

// mergedParams resolves passthrough: ancestor specs come first, an
// entry's own spec replaces a same-name ancestor spec in place, and new
// names append after.
func (r *Registry) mergedParams(e *Entry) []ParamSpec {
	declared := e.Params
	if e.Template != nil {
		declared = e.Template.Params
	}
	if !e.Passthrough {
		return declared
	}

	parent, ok := r.entries[e.Parent]
	if !ok {
		return declared
	}
	base := r.mergedParams(parent)

	out := make([]ParamSpec, len(base))
	copy(out, base)
	for _, p := range declared {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}
