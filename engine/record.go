package engine

import (
	"fmt"

	"config-forge/diagnostic"
	"config-forge/params"
	"config-forge/registry"
	"config-forge/schema"
)

// Records resolves flat record types: structs built from named fields
// with no discriminator and no subtyping. Configuration for a record is
// a Params naming the fields directly, so the admission ladder stops at
// the Params test.
type Records struct {
	reg *registry.Registry
}

func NewRecords() *Records {
	return &Records{reg: registry.For[any]()}
}

// Register adds a record type. The parent defaults to the records root
// and a constructor is required, since records have no template or
// subtype indirection to fall back on.
func (rs *Records) Register(e registry.Entry) error {
	if e.Parent == nil {
		e.Parent = rs.reg.Root()
	}
	if e.New == nil {
		return diagnostic.Configurationf("record %s needs a constructor", typeName(e.Type))
	}
	return rs.reg.Register(e)
}

// MustRegister is Register for wiring done in init or main.
func (rs *Records) MustRegister(e registry.Entry) {
	if err := rs.Register(e); err != nil {
		panic(err)
	}
}

func (rs *Records) Claims(target any, d *Dispatcher) bool {
	t, ok := target.(schema.Type)
	return ok && t.Kind == schema.KindObject && t.Obj != nil &&
		t.Obj != rs.reg.Root() && rs.reg.Contains(t.Obj)
}

func (rs *Records) Hashable(any, *Dispatcher) bool { return false }

func (rs *Records) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	if err := rs.GeneralCheck(t, d, v); err != nil {
		return err
	}
	ctor, cerr := rs.ResolveConstructor(t, "")
	if cerr != nil {
		return cerr
	}
	return d.Check(ctor, v)
}

func (rs *Records) Build(target any, d *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	ctor, cerr := rs.ResolveConstructor(t, "")
	if cerr != nil {
		return nil, cerr
	}
	return d.Build(ctor, v)
}

func (rs *Records) GeneralCheck(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	if t.Obj == nil || t.Obj == rs.reg.Root() || !rs.reg.Contains(t.Obj) {
		return diagnostic.Unrepresented(t.String(), fmt.Sprintf("%T", rs), v)
	}
	if _, ok := params.Coerce(v); !ok {
		return diagnostic.ParamExpected(t.String(), v)
	}
	return nil
}

// ResolveConstructor ignores the tag: a record is its own constructor.
func (rs *Records) ResolveConstructor(t schema.Type, tag string) (*registry.Constructor, *diagnostic.CheckError) {
	if t.Obj == nil {
		return nil, diagnostic.Unrepresented(t.String(), fmt.Sprintf("%T", rs), nil)
	}
	ctor, err := rs.reg.ConstructorFor(t.Obj)
	if err != nil {
		return nil, diagnostic.Unrepresented(t.String(), fmt.Sprintf("%T", rs), nil)
	}
	return ctor, nil
}

func (rs *Records) ResolveTarget(t schema.Type, tag string) (schema.Type, bool) {
	if t.Obj == nil || !rs.reg.Contains(t.Obj) {
		return schema.Type{}, false
	}
	return t, true
}
