package engine

import (
	"reflect"

	"config-forge/diagnostic"
	"config-forge/schema"
)

// Values resolves the two instance-like targets: None, which only the
// absent value satisfies, and Any, which everything satisfies.
type Values struct{}

func (Values) Claims(target any, _ *Dispatcher) bool {
	t, ok := target.(schema.Type)
	return ok && (t.Kind == schema.KindNil || t.Kind == schema.KindAny)
}

func (Values) Hashable(any, *Dispatcher) bool { return false }

func (Values) Check(target any, _ *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	if t.Kind == schema.KindAny {
		return nil
	}
	if !isNil(v) {
		return diagnostic.WrongType(t.String(), v)
	}
	return nil
}

func (Values) Build(target any, _ *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	if t.Kind == schema.KindAny {
		return v, nil
	}
	return nil, nil
}

// isNil treats typed nil pointers, maps, and slices the way decoded
// configuration treats null.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
