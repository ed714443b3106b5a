package params

import (
	"fmt"
	"strconv"
	"strings"

	"config-forge/diagnostic"
	"config-forge/internal/common"
)

// AsFlatDict returns the parameters as a flat dictionary from keys to
// values, with nested structure collapsed with periods.
func (p *Params) AsFlatDict() map[string]any {
	flat := map[string]any{}

	var recurse func(m map[string]any, path string)
	recurse = func(m map[string]any, path string) {
		for _, key := range common.SortedKeys(m) {
			if child, ok := m[key].(map[string]any); ok {
				recurse(child, path+key+".")
			} else {
				flat[path+key] = m[key]
			}
		}
	}
	recurse(p.data, "")

	return flat
}

// Unflatten expands a dict with compound keys, e.g. {"a.b": 0} into
// {"a": {"b": 0}}. Conflicting paths are a ConfigurationError.
func Unflatten(flat map[string]any) (map[string]any, error) {
	unflat := map[string]any{}

	for _, compound := range common.SortedKeys(flat) {
		curr := unflat
		parts := strings.Split(compound, ".")
		for _, key := range parts[:len(parts)-1] {
			existing, ok := curr[key]
			if !ok {
				next := map[string]any{}
				curr[key] = next
				curr = next
				continue
			}
			child, ok := existing.(map[string]any)
			if !ok {
				return nil, diagnostic.Configurationf("flattened dictionary is invalid")
			}
			curr = child
		}
		leaf := parts[len(parts)-1]
		if _, exists := curr[leaf]; exists {
			return nil, diagnostic.Configurationf("flattened dictionary is invalid")
		}
		curr[leaf] = flat[compound]
	}

	return unflat, nil
}

// InferAndCast recursively casts strings that look like bools, ints, or
// floats to those types. Values that are not JSON-like are an error.
func InferAndCast(v any) (any, error) {
	switch t := v.(type) {
	case int, int64, float64, bool, nil:
		return t, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			cast, err := InferAndCast(e)
			if err != nil {
				return nil, err
			}
			out[i] = cast
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			cast, err := InferAndCast(e)
			if err != nil {
				return nil, err
			}
			out[k] = cast
		}
		return out, nil
	case string:
		if strings.EqualFold(t, "true") {
			return true, nil
		}
		if strings.EqualFold(t, "false") {
			return false, nil
		}
		if n, err := strconv.Atoi(t); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, nil
		}
		return t, nil
	default:
		return nil, fmt.Errorf("cannot infer type of %v", v)
	}
}
