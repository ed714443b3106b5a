package registry

import (
	"reflect"
	"sort"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/logging"
)

// Args holds constructed values keyed by parameter name, ready to hand
// to an Entry's constructor.
type Args map[string]any

// Entry describes one registered type.
type Entry struct {
	// Type is the Go type being registered.
	Type reflect.Type
	// Tag is the discriminator selecting this type inside its hierarchy.
	// An empty tag marks an intermediate: a type that groups children but
	// cannot be instantiated itself.
	Tag string
	// Parent is the type this entry registers under: the hierarchy root
	// or any previously registered type.
	Parent reflect.Type
	// Params declares the constructor parameters in order.
	Params []ParamSpec
	// Order optionally fixes the construction order of parameters. When
	// set it must name exactly the declared parameters.
	Order []string
	// Passthrough merges the nearest registered ancestor's parameter
	// specs beneath this entry's own; same-name specs here win.
	Passthrough bool
	// Kind selects the constructor flow handling this entry. Empty means
	// the base flow.
	Kind string
	// New builds an instance from validated, constructed arguments.
	New func(Args) (any, error)
	// Template, when set, replaces the declared constructor with a
	// reduced signature that expands into canonical configuration.
	Template *Template
}

// Template is an alternate constructor signature. Check validates Params
// like any constructor; Expand receives the raw argument values and
// returns the canonical configuration to resolve instead.
type Template struct {
	Params []ParamSpec
	Order  []string
	Expand func(Args) (map[string]any, error)
}

// Registry holds one hierarchy of registered types.
type Registry struct {
	root    reflect.Type
	entries map[reflect.Type]*Entry
	// kids lists every child of a parent in registration order.
	kids map[reflect.Type][]reflect.Type
	// tags maps a parent to its directly registered discriminators.
	tags map[reflect.Type]map[string]reflect.Type
}

// New creates an empty Registry rooted at root.
func New(root reflect.Type) *Registry {
	return &Registry{
		root:    root,
		entries: map[reflect.Type]*Entry{},
		kids:    map[reflect.Type][]reflect.Type{},
		tags:    map[reflect.Type]map[string]reflect.Type{},
	}
}

// For creates an empty Registry rooted at T.
func For[T any]() *Registry {
	return New(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *Registry) Root() reflect.Type {
	return r.root
}

// Register adds an entry to the hierarchy. The parent must already be
// known, tags must be unique among the parent's direct children, and
// instantiable entries need a constructor or a template.
func (r *Registry) Register(e Entry) error {
	if e.Type == nil {
		return diagnostic.Configurationf("cannot register a nil type")
	}
	if _, dup := r.entries[e.Type]; dup {
		return diagnostic.Configurationf("%s is already registered", typeName(e.Type))
	}
	if e.Parent == nil {
		return diagnostic.Configurationf("registering %s requires a parent type", typeName(e.Type))
	}
	if !r.Contains(e.Parent) {
		return diagnostic.Configurationf(
			"cannot register %s under %s, which is not part of the %s hierarchy",
			typeName(e.Type), typeName(e.Parent), typeName(r.root))
	}
	if e.Tag != "" {
		scope := r.tags[e.Parent]
		if existing, used := scope[e.Tag]; used {
			return diagnostic.Configurationf(
				"Cannot register %s as %s; name already in use for %s",
				e.Tag, typeName(e.Parent), typeName(existing))
		}
		if e.New == nil && e.Template == nil {
			return diagnostic.Configurationf(
				"registered type %s needs a constructor or a template", typeName(e.Type))
		}
		if e.Template != nil && e.Template.Expand == nil {
			return diagnostic.Configurationf(
				"template for %s needs an Expand function", typeName(e.Type))
		}
	}

	entry := e
	r.entries[e.Type] = &entry
	r.kids[e.Parent] = append(r.kids[e.Parent], e.Type)
	if e.Tag != "" {
		if r.tags[e.Parent] == nil {
			r.tags[e.Parent] = map[string]reflect.Type{}
		}
		r.tags[e.Parent][e.Tag] = e.Type
	}

	logging.L().Debug("registered type",
		zap.String("root", typeName(r.root)),
		zap.String("type", typeName(e.Type)),
		zap.String("tag", e.Tag))
	return nil
}

// MustRegister is Register for wiring done in init or main, where a
// failure is a programming error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Contains reports whether t is the root or any registered type.
func (r *Registry) Contains(t reflect.Type) bool {
	if t == r.root {
		return true
	}
	_, ok := r.entries[t]
	return ok
}

// Entry returns the registration for t.
func (r *Registry) Entry(t reflect.Type) (*Entry, bool) {
	e, ok := r.entries[t]
	return e, ok
}

// InstantiableChildren collects every instantiable type at or below t,
// keyed by discriminator. When two branches reuse a tag, the entry
// registered first keeps it.
func (r *Registry) InstantiableChildren(t reflect.Type) map[string]reflect.Type {
	out := map[string]reflect.Type{}
	r.collect(t, out)
	return out
}

func (r *Registry) collect(t reflect.Type, out map[string]reflect.Type) {
	if e, ok := r.entries[t]; ok && e.Tag != "" {
		if _, taken := out[e.Tag]; !taken {
			out[e.Tag] = t
		}
	}
	for _, child := range r.kids[t] {
		r.collect(child, out)
	}
}

// Resolve maps a discriminator to the concrete type it selects within
// t's subtree.
func (r *Registry) Resolve(t reflect.Type, tag string) (reflect.Type, bool) {
	sub, ok := r.InstantiableChildren(t)[tag]
	if ok {
		logging.L().Debug("resolved discriminator",
			zap.String("target", typeName(t)),
			zap.String("tag", tag),
			zap.String("resolved", typeName(sub)))
	}
	return sub, ok
}

// Options lists t's valid discriminators with their types, sorted by
// tag, in the shape error messages want.
func (r *Registry) Options(t reflect.Type) []diagnostic.Option {
	children := r.InstantiableChildren(t)

	tags := make([]string, 0, len(children))
	for tag := range children {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	opts := make([]diagnostic.Option, len(tags))
	for i, tag := range tags {
		opts[i] = diagnostic.Option{Tag: tag, Type: typeName(children[tag])}
	}
	return opts
}

// Tag returns the discriminator t registered under, if t is
// instantiable.
func (r *Registry) Tag(t reflect.Type) (string, bool) {
	e, ok := r.entries[t]
	if !ok || e.Tag == "" {
		return "", false
	}
	return e.Tag, true
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
