package engine

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"config-forge/diagnostic"
	"config-forge/schema"
)

// Primitives resolves int, float, bool, and str targets. Checks are
// strict: a value passes only when its runtime kind matches, and bool
// never satisfies int. Builds coerce the way the matching constructor
// would, so Build(Int, "3") is 3 while Check(Int, "3") fails.
type Primitives struct{}

func (Primitives) Claims(target any, _ *Dispatcher) bool {
	t, ok := target.(schema.Type)
	return ok && t.Kind.IsPrimitive()
}

func (Primitives) Hashable(any, *Dispatcher) bool { return true }

func (Primitives) Check(target any, _ *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	if !kindMatches(t.Kind, v) {
		return diagnostic.WrongType(t.String(), v)
	}
	return nil
}

func (Primitives) Build(target any, _ *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	switch t.Kind {
	case schema.KindInt:
		return coerceInt(t, v)
	case schema.KindFloat:
		return coerceFloat(t, v)
	case schema.KindBool:
		return truthy(v), nil
	case schema.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	}
	return nil, diagnostic.WrongType(t.String(), v)
}

func kindMatches(k schema.Kind, v any) bool {
	if v == nil {
		return false
	}
	switch k {
	case schema.KindInt:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
	case schema.KindFloat:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Float32, reflect.Float64:
			return true
		}
	case schema.KindBool:
		return reflect.ValueOf(v).Kind() == reflect.Bool
	case schema.KindString:
		return reflect.ValueOf(v).Kind() == reflect.String
	}
	return false
}

func coerceInt(t schema.Type, v any) (any, error) {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int(rv.Float()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		n, err := strconv.Atoi(strings.TrimSpace(rv.String()))
		if err != nil {
			return nil, diagnostic.WrongType(t.String(), v)
		}
		return n, nil
	}
	return nil, diagnostic.WrongType(t.String(), v)
}

func coerceFloat(t schema.Type, v any) (any, error) {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return nil, diagnostic.WrongType(t.String(), v)
		}
		return f, nil
	}
	return nil, diagnostic.WrongType(t.String(), v)
}

// truthy mirrors constructor-style bool conversion: zero and empty are
// false, everything else is true.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	}
	return !rv.IsZero()
}
