package params

import (
	"encoding/json"
	"fmt"
	"hash/adler32"
	"strconv"

	"go.uber.org/zap"

	"config-forge/diagnostic"
	"config-forge/internal/common"
	"config-forge/internal/logging"
	"config-forge/internal/match"
)

// Params represents a parameter dictionary with a history.
//
// The history is the dot path from the root of the configuration to this
// object, so a Params popped from key "model" inside the root carries the
// history "model.".
type Params struct {
	History string

	data map[string]any
}

// New wraps m, replacing every "None" string with nil first. The map is
// retained, not copied.
func New(m map[string]any) *Params {
	return NewWithHistory(m, "")
}

// NewWithHistory wraps m under an explicit location prefix.
func NewWithHistory(m map[string]any, history string) *Params {
	if m == nil {
		m = map[string]any{}
	}
	return &Params{History: history, data: replaceNone(m).(map[string]any)}
}

// Coerce views v as a Params when it already is one or is a plain
// decoded map. The second return is false for everything else.
func Coerce(v any) (*Params, bool) {
	switch t := v.(type) {
	case *Params:
		return t, t != nil
	case map[string]any:
		return New(t), true
	default:
		return nil, false
	}
}

// Pop removes and returns the value under key. A missing key is a
// ConfigurationError; use PopDefault when absence is acceptable.
func (p *Params) Pop(key string) (any, error) {
	raw, ok := p.data[key]
	if !ok {
		msg := fmt.Sprintf("key %q is required", key)
		if p.History != "" {
			msg += fmt.Sprintf(" at location %q", p.History)
		}
		return nil, diagnostic.Configurationf("%s", msg)
	}
	delete(p.data, key)
	p.logRead(key, raw)
	return p.wrap(key, raw), nil
}

// PopDefault removes and returns the value under key, or def when the
// key is absent.
func (p *Params) PopDefault(key string, def any) any {
	raw, ok := p.data[key]
	if !ok {
		p.logRead(key, def)
		return def
	}
	delete(p.data, key)
	p.logRead(key, raw)
	return p.wrap(key, raw)
}

// PopRaw removes and returns the value under key without wrapping nested
// maps, or def when the key is absent.
func (p *Params) PopRaw(key string, def any) any {
	raw, ok := p.data[key]
	if !ok {
		return def
	}
	delete(p.data, key)
	p.logRead(key, raw)
	return raw
}

// Get returns the value under key, or nil when absent. Nested maps come
// back as child Params.
func (p *Params) Get(key string) any {
	return p.GetDefault(key, nil)
}

// GetDefault returns the value under key, or def when absent.
func (p *Params) GetDefault(key string, def any) any {
	raw, ok := p.data[key]
	if !ok {
		return def
	}
	return p.wrap(key, raw)
}

func (p *Params) Has(key string) bool {
	_, ok := p.data[key]
	return ok
}

func (p *Params) Set(key string, v any) {
	p.data[key] = v
}

func (p *Params) Delete(key string) {
	delete(p.data, key)
}

func (p *Params) Len() int {
	return len(p.data)
}

// Keys returns the keys in ascending order.
func (p *Params) Keys() []string {
	return common.SortedKeys(p.data)
}

// PopInt pops key and coerces the value to an int.
func (p *Params) PopInt(key string) (int, error) {
	v, err := p.Pop(key)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to int at %q: %w", t, p.History+key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %v to int at %q", v, p.History+key)
	}
}

// PopFloat pops key and coerces the value to a float64.
func (p *Params) PopFloat(key string) (float64, error) {
	v, err := p.Pop(key)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float at %q: %w", t, p.History+key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %v to float at %q", v, p.History+key)
	}
}

// PopBool pops key and coerces the value to a bool. Only the strings
// "true" and "false" coerce.
func (p *Params) PopBool(key string) (bool, error) {
	v, err := p.Pop(key)
	if err != nil {
		return false, err
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		if t == "true" {
			return true, nil
		}
		if t == "false" {
			return false, nil
		}
	}
	return false, fmt.Errorf("cannot convert variable to bool: %v", v)
}

// PopString pops key and requires the value to be a string.
func (p *Params) PopString(key string) (string, error) {
	v, err := p.Pop(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("cannot convert %v to string at %q", v, p.History+key)
	}
	return s, nil
}

// PopChoice pops key and requires the value to be one of choices. With
// defaultToFirst, a missing key selects the first choice instead of
// failing.
func (p *Params) PopChoice(key string, choices []string, defaultToFirst bool) (string, error) {
	var v any
	if first, ok := common.First(choices); defaultToFirst && ok {
		v = p.PopDefault(key, first)
	} else {
		popped, err := p.Pop(key)
		if err != nil {
			return "", err
		}
		v = popped
	}

	s, _ := v.(string)
	for _, c := range choices {
		if s == c {
			return s, nil
		}
	}

	msg := fmt.Sprintf("%v not in acceptable choices for %s: %v.", v, p.History+key, choices)
	if best, ok := match.Closest(s, choices, 2); ok {
		msg += fmt.Sprintf(" Did you mean %s?", best)
	}
	return "", diagnostic.Configurationf("%s", msg)
}

// AsDict exposes the underlying map. Mutations are visible to the Params.
func (p *Params) AsDict() map[string]any {
	return p.data
}

// AsDictInferred returns a copy of the content with string values that
// look like bools, ints, or floats cast to those types.
func (p *Params) AsDictInferred() (map[string]any, error) {
	cast, err := InferAndCast(p.data)
	if err != nil {
		return nil, err
	}
	return cast.(map[string]any), nil
}

// Duplicate creates a fully distinct deep copy of these Params.
func (p *Params) Duplicate() *Params {
	return &Params{History: p.History, data: deepCopy(p.data).(map[string]any)}
}

// AssertEmpty fails when parameters remain unconsumed. name identifies
// the consumer for the error message.
func (p *Params) AssertEmpty(name string) error {
	if p.Len() == 0 {
		return nil
	}
	return diagnostic.Configurationf("Extra parameters passed to %s: %v", name, p.data)
}

// Hash returns a stable checksum of the current content: adler32 over
// the canonical JSON form. Two Params with equal content hash equally
// regardless of construction order.
func (p *Params) Hash() (string, error) {
	dumped, err := json.Marshal(p.data)
	if err != nil {
		return "", fmt.Errorf("hash params: %w", err)
	}
	return strconv.FormatUint(uint64(adler32.Checksum(dumped)), 10), nil
}

// LeftMerge flattens both sides and overlays rhs onto the receiver,
// returning the merged flat view. Neither side is modified.
func (p *Params) LeftMerge(rhs *Params) map[string]any {
	flat := p.AsFlatDict()
	if rhs == nil {
		return flat
	}
	for k, v := range rhs.AsFlatDict() {
		flat[k] = v
	}
	return flat
}

func (p *Params) String() string {
	return fmt.Sprintf("%sParams(%v)", p.History, p.data)
}

// wrap turns nested maps into child Params with extended history, and
// rewraps list elements the same way.
func (p *Params) wrap(key string, v any) any {
	switch t := v.(type) {
	case map[string]any:
		return &Params{History: p.History + key + ".", data: t}
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = p.wrap(key+"."+strconv.Itoa(i), e)
		}
		return out
	default:
		return v
	}
}

func (p *Params) logRead(key string, v any) {
	logging.L().Debug("parameter read",
		zap.String("key", p.History+key),
		zap.Any("value", v))
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}

// replaceNone substitutes nil for every "None" string, recursively.
// Maps are rewritten in place.
func replaceNone(v any) any {
	switch t := v.(type) {
	case string:
		if t == "None" {
			return nil
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = replaceNone(e)
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = replaceNone(e)
		}
		return out
	default:
		return v
	}
}
