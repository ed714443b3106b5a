package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/logging"
	"config-forge/params"
	"config-forge/registry"
)

// Flow is one strategy for validating and building the arguments of a
// resolved constructor. Entries select their flow through Entry.Kind.
type Flow interface {
	Check(ctor *registry.Constructor, d *Dispatcher, v any) *diagnostic.CheckError
	Build(ctor *registry.Constructor, d *Dispatcher, v any) (any, error)
}

// Constructors resolves *registry.Constructor targets by delegating to
// the flow the entry's kind selects. The base flow is installed from
// the start; AddFlow installs alternates.
type Constructors struct {
	flows map[string]Flow
}

func NewConstructors() *Constructors {
	return &Constructors{flows: map[string]Flow{registry.KindBase: baseFlow{}}}
}

// AddFlow installs f under kind, replacing any previous owner.
func (c *Constructors) AddFlow(kind string, f Flow) {
	c.flows[kind] = f
}

func (c *Constructors) Claims(target any, d *Dispatcher) bool {
	ctor, ok := target.(*registry.Constructor)
	return ok && ctor != nil
}

func (c *Constructors) Hashable(any, *Dispatcher) bool { return false }

func (c *Constructors) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	ctor := target.(*registry.Constructor)
	f, ok := c.flow(ctor)
	if !ok {
		return diagnostic.Unrepresented(ctor.String(), fmt.Sprintf("%T", c), v)
	}
	return f.Check(ctor, d, v)
}

func (c *Constructors) Build(target any, d *Dispatcher, v any) (any, error) {
	ctor := target.(*registry.Constructor)
	f, ok := c.flow(ctor)
	if !ok {
		return nil, diagnostic.Unrepresented(ctor.String(), fmt.Sprintf("%T", c), v)
	}
	return f.Build(ctor, d, v)
}

func (c *Constructors) flow(ctor *registry.Constructor) (Flow, bool) {
	kind := ctor.Kind
	if kind == "" {
		kind = registry.KindBase
	}
	f, ok := c.flows[kind]
	return f, ok
}

// baseFlow is the vanilla constructor strategy: full-scan validation
// against the declared parameters and argument-by-argument construction
// with the built siblings threaded through as local state.
type baseFlow struct{}

func (baseFlow) Check(ctor *registry.Constructor, d *Dispatcher, v any) *diagnostic.CheckError {
	p, ok := params.Coerce(v)
	if !ok {
		return diagnostic.ParamExpected(ctor.String(), v)
	}
	if err := checkOrder(ctor); err != nil {
		return err
	}
	if err := keyDiff(ctor, p); err != nil {
		return err
	}
	agg := &diagnostic.Aggregate{}
	for _, name := range sequence(ctor, p) {
		if name == "type" || !p.Has(name) {
			continue
		}
		spec, ok := ctor.Param(name)
		if !ok {
			continue
		}
		pr := registry.NewParameter(spec.Type, ctor.Target, p.AsDict(), name)
		agg.Add(name, d.Check(pr, p.Get(name)))
	}
	return agg.Err(ctor.String(), p)
}

func (baseFlow) Build(ctor *registry.Constructor, d *Dispatcher, v any) (any, error) {
	p, ok := params.Coerce(v)
	if !ok {
		return nil, diagnostic.ParamExpected(ctor.String(), v)
	}
	if p.Has("type") {
		tag := p.PopRaw("type", nil)
		defer p.Set("type", tag)
	}
	if err := checkOrder(ctor); err != nil {
		return nil, err
	}

	// Arguments build in sequence and land in kwargs as they finish, so
	// a later parameter's handler can read the earlier results.
	kwargs := registry.Args{}
	for _, name := range sequence(ctor, p) {
		if !p.Has(name) {
			continue
		}
		spec, ok := ctor.Param(name)
		if !ok {
			continue
		}
		pr := registry.NewParameter(spec.Type, ctor.Target, kwargs, name)
		built, err := d.Build(pr, p.Get(name))
		if err != nil {
			return nil, err
		}
		kwargs[name] = built
	}
	for _, spec := range ctor.Params {
		if !spec.HasDefault {
			continue
		}
		if _, ok := kwargs[spec.Name]; !ok {
			kwargs[spec.Name] = spec.Default
		}
	}

	if ctor.Entry == nil || ctor.Entry.New == nil {
		return nil, diagnostic.Configurationf(
			"%s has no constructor function and cannot be built directly", ctor.String())
	}
	logging.L().Debug("constructing", zap.String("type", ctor.String()))
	return ctor.Entry.New(kwargs)
}

// sequence yields the order arguments are visited in: the declared
// order when one exists, the sorted configured keys otherwise.
func sequence(ctor *registry.Constructor, p *params.Params) []string {
	if len(ctor.Order) > 0 {
		return ctor.Order
	}
	return p.Keys()
}

// checkOrder verifies a declared order names exactly the declared
// parameters.
func checkOrder(ctor *registry.Constructor) *diagnostic.CheckError {
	if ctor.Order == nil {
		return nil
	}
	declared := make(map[string]bool, len(ctor.Order))
	for _, n := range ctor.Order {
		declared[n] = true
	}
	var tooFew []string
	for _, spec := range ctor.Params {
		if !declared[spec.Name] {
			tooFew = append(tooFew, spec.Name)
		}
	}
	var tooMany []string
	for _, n := range ctor.Order {
		if _, ok := ctor.Param(n); !ok {
			tooMany = append(tooMany, n)
		}
	}
	if len(tooFew) == 0 && len(tooMany) == 0 {
		return nil
	}
	sort.Strings(tooFew)
	sort.Strings(tooMany)
	return diagnostic.ParameterOrder(ctor.String(), tooFew, tooMany)
}

// keyDiff verifies the configuration names exactly the required
// parameters: defaulted parameters may be absent, and only "type" may
// appear beyond the declared set.
func keyDiff(ctor *registry.Constructor, p *params.Params) *diagnostic.CheckError {
	var missing []diagnostic.KV
	for _, spec := range ctor.Params {
		if spec.HasDefault || p.Has(spec.Name) {
			continue
		}
		missing = append(missing, diagnostic.KV{Name: spec.Name, Type: spec.Type.String()})
	}
	var extra []diagnostic.KV
	for _, k := range p.Keys() {
		if k == "type" {
			continue
		}
		if _, ok := ctor.Param(k); !ok {
			extra = append(extra, diagnostic.KV{Name: k, Type: fmt.Sprintf("%T", p.Get(k))})
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	return diagnostic.KeyDiff(ctor.String(), missing, extra, p)
}
