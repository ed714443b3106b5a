package engine

import (
	"fmt"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/logging"
	"config-forge/params"
	"config-forge/registry"
	"config-forge/schema"
)

// generalChecker is the contract the parameter handler leans on to
// shallow-check and resolve hierarchy-backed targets without driving a
// full recursive pass. Hierarchy satisfies it; so does any handler that
// admits configuration the same way.
type generalChecker interface {
	// GeneralCheck runs only the admission ladder: the target is known,
	// the value is a Params, and its tag selects a registered type.
	GeneralCheck(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError
	// ResolveConstructor maps a tag to the construction record of the
	// concrete type it selects.
	ResolveConstructor(t schema.Type, tag string) (*registry.Constructor, *diagnostic.CheckError)
	// ResolveTarget maps a tag to the concrete target type it selects.
	ResolveTarget(t schema.Type, tag string) (schema.Type, bool)
}

// Hierarchy resolves targets registered in one type hierarchy. A value
// is admitted when it is a Params whose "type" tag selects a registered
// concrete type; validation and construction of the arguments are then
// delegated to the constructor flow.
type Hierarchy struct {
	reg *registry.Registry
}

// NewHierarchy wraps a populated registry.
func NewHierarchy(reg *registry.Registry) *Hierarchy {
	return &Hierarchy{reg: reg}
}

// Registry exposes the backing hierarchy.
func (h *Hierarchy) Registry() *registry.Registry {
	return h.reg
}

func (h *Hierarchy) Claims(target any, d *Dispatcher) bool {
	t, ok := target.(schema.Type)
	return ok && t.Kind == schema.KindObject && t.Obj != nil && h.reg.Contains(t.Obj)
}

func (h *Hierarchy) Hashable(any, *Dispatcher) bool { return false }

func (h *Hierarchy) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	if err := h.GeneralCheck(t, d, v); err != nil {
		return err
	}
	p, _ := params.Coerce(v)
	ctor, cerr := h.ResolveConstructor(t, fmt.Sprint(p.Get("type")))
	if cerr != nil {
		return cerr
	}
	return d.Check(ctor, p)
}

func (h *Hierarchy) Build(target any, d *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	instance, gerr := h.gate(t, v, true)
	if gerr != nil {
		return nil, gerr
	}
	if instance {
		return v, nil
	}
	p, _ := params.Coerce(v)
	ctor, cerr := h.ResolveConstructor(t, fmt.Sprint(p.Get("type")))
	if cerr != nil {
		return nil, cerr
	}
	if ctor.Entry.Template != nil {
		return h.buildTemplate(t, d, ctor, p)
	}
	return d.Build(ctor, p)
}

// GeneralCheck runs the admission ladder without the already-an-instance
// escape, so a constructed value handed to the check path is still
// reported as not being configuration.
func (h *Hierarchy) GeneralCheck(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	_, err := h.gate(t, v, false)
	return err
}

// gate admits v for target t. With allowInstance, a value already
// assignable to t passes without inspection and the first return is
// true.
func (h *Hierarchy) gate(t schema.Type, v any, allowInstance bool) (bool, *diagnostic.CheckError) {
	if t.Obj == nil || !h.reg.Contains(t.Obj) {
		return false, diagnostic.Unrepresented(t.String(), fmt.Sprintf("%T", h), v)
	}
	if allowInstance && valueAssignable(v, t.Obj) {
		return true, nil
	}
	p, ok := params.Coerce(v)
	if !ok {
		return false, diagnostic.ParamExpected(t.String(), v)
	}
	tag := fmt.Sprint(p.Get("type"))
	if _, ok := h.reg.Resolve(t.Obj, tag); !ok {
		return false, diagnostic.TagMismatch(t.String(), tag, h.reg.Options(t.Obj), v)
	}
	return false, nil
}

func (h *Hierarchy) ResolveConstructor(t schema.Type, tag string) (*registry.Constructor, *diagnostic.CheckError) {
	resolved, ok := h.ResolveTarget(t, tag)
	if !ok {
		return nil, diagnostic.TagMismatch(t.String(), tag, h.reg.Options(t.Obj), nil)
	}
	ctor, err := h.reg.ConstructorFor(resolved.Obj)
	if err != nil {
		return nil, diagnostic.TagMismatch(t.String(), tag, h.reg.Options(t.Obj), nil)
	}
	return ctor, nil
}

func (h *Hierarchy) ResolveTarget(t schema.Type, tag string) (schema.Type, bool) {
	if t.Obj == nil {
		return schema.Type{}, false
	}
	resolved, ok := h.reg.Resolve(t.Obj, tag)
	if !ok {
		return schema.Type{}, false
	}
	return schema.Object(resolved), true
}

// buildTemplate constructs the reduced signature from raw argument
// values, expands it into canonical configuration, and resolves that
// configuration against the originally requested target.
func (h *Hierarchy) buildTemplate(t schema.Type, d *Dispatcher, ctor *registry.Constructor, p *params.Params) (any, error) {
	args := registry.Args{}
	for _, k := range p.Keys() {
		if k == "type" {
			continue
		}
		args[k] = p.Get(k)
	}
	var missing []diagnostic.KV
	for _, spec := range ctor.Params {
		if _, ok := args[spec.Name]; ok {
			continue
		}
		if spec.HasDefault {
			args[spec.Name] = spec.Default
			continue
		}
		missing = append(missing, diagnostic.KV{Name: spec.Name, Type: spec.Type.String()})
	}
	if len(missing) > 0 {
		return nil, diagnostic.KeyDiff(ctor.String(), missing, nil, p)
	}
	expanded, err := ctor.Entry.Template.Expand(args)
	if err != nil {
		return nil, err
	}
	logging.L().Debug("template expanded",
		zap.String("template", ctor.String()),
		zap.String("target", t.String()))
	return d.Build(t, params.New(expanded))
}
