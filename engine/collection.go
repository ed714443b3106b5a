package engine

import (
	"fmt"
	"reflect"
	"sort"

	"config-forge/diagnostic"
	"config-forge/params"
	"config-forge/schema"
)

// Collections resolves the container targets: List, Set, Tuple, Dict,
// and Union. A container is claimed only when every member type is
// claimed, so an unknown member surfaces as an unclaimed container
// rather than a late failure.
//
// Aggregation rules differ per container and are part of the contract:
// lists and tuples key failures by original position, sets by failure
// ordinal, dicts by "key_<type>_<i>" / "value_<type>_<i>" labels, and
// unions by member type.
type Collections struct{}

func (Collections) Claims(target any, d *Dispatcher) bool {
	t, ok := target.(schema.Type)
	if !ok {
		return false
	}
	switch t.Kind {
	case schema.KindList, schema.KindSet:
		return len(t.Args) == 1 && d.Claims(t.Args[0])
	case schema.KindDict:
		return len(t.Args) == 2 && d.Claims(t.Args[0]) && d.Claims(t.Args[1])
	case schema.KindTuple, schema.KindUnion:
		for _, a := range t.Args {
			if !d.Claims(a) {
				return false
			}
		}
		return true
	}
	return false
}

func (Collections) Hashable(any, *Dispatcher) bool { return false }

func (Collections) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	switch t.Kind {
	case schema.KindList:
		return checkList(t, d, v)
	case schema.KindSet:
		return checkSet(t, d, v)
	case schema.KindTuple:
		return checkTuple(t, d, v)
	case schema.KindDict:
		return checkDict(t, d, v)
	case schema.KindUnion:
		return checkUnion(t, d, v)
	}
	return diagnostic.WrongType(t.String(), v)
}

func (Collections) Build(target any, d *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	switch t.Kind {
	case schema.KindList:
		return buildList(t, d, v)
	case schema.KindSet:
		return buildSet(t, d, v)
	case schema.KindTuple:
		return buildTuple(t, d, v)
	case schema.KindDict:
		return buildDict(t, d, v)
	case schema.KindUnion:
		return buildUnion(t, d, v)
	}
	return nil, diagnostic.WrongType(t.String(), v)
}

// List

func checkList(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	items, ok := sequenceOf(v)
	if !ok || isSetValue(v) {
		return diagnostic.WrongType(t.String(), v)
	}
	agg := &diagnostic.Aggregate{}
	for i, item := range items {
		agg.AddIndex(i, d.Check(t.Args[0], item))
	}
	return agg.Err(t.String(), v)
}

func buildList(t schema.Type, d *Dispatcher, v any) (any, error) {
	items, ok := sequenceOf(v)
	if !ok || isSetValue(v) {
		return nil, diagnostic.WrongType(t.String(), v)
	}
	out := make([]any, len(items))
	for i, item := range items {
		built, err := d.Build(t.Args[0], item)
		if err != nil {
			return nil, err
		}
		out[i] = built
	}
	return out, nil
}

// Set

func checkSet(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	items, ok := iterableOf(v)
	if !ok {
		return diagnostic.WrongType(t.String(), v)
	}
	if err := hashableGate(t, t.Args[0], d, v); err != nil {
		return err
	}
	agg := &diagnostic.Aggregate{}
	failures := 0
	for _, item := range items {
		if err := d.Check(t.Args[0], item); err != nil {
			agg.AddIndex(failures, err)
			failures++
		}
	}
	return agg.Err(t.String(), v)
}

func buildSet(t schema.Type, d *Dispatcher, v any) (any, error) {
	items, ok := iterableOf(v)
	if !ok {
		return nil, diagnostic.WrongType(t.String(), v)
	}
	if err := hashableGate(t, t.Args[0], d, v); err != nil {
		return nil, err
	}
	out := make(map[any]struct{}, len(items))
	for _, item := range items {
		built, err := d.Build(t.Args[0], item)
		if err != nil {
			return nil, err
		}
		out[built] = struct{}{}
	}
	return out, nil
}

// hashableGate fails when the member type cannot key a set or dict. It
// runs before any elements are visited, so an empty value with an
// unhashable member type still fails.
func hashableGate(t, member schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	h, ok := d.claimant(member)
	if !ok {
		return diagnostic.Unrepresented(t.String(), fmt.Sprintf("%T", d), v)
	}
	if !h.Hashable(member, d) {
		return diagnostic.Hashable(t.String(), member.String(), fmt.Sprintf("%T", h), v)
	}
	return nil
}

// Tuple

func checkTuple(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	items, ok := sequenceOf(v)
	if !ok || isSetValue(v) || len(t.Args) == 0 {
		return diagnostic.WrongType(t.String(), v)
	}
	if len(items) != len(t.Args) {
		return diagnostic.TupleArity(t.String(), len(t.Args), len(items), v)
	}
	agg := &diagnostic.Aggregate{}
	for i, item := range items {
		agg.AddIndex(i, d.Check(t.Args[i], item))
	}
	return agg.Err(t.String(), v)
}

func buildTuple(t schema.Type, d *Dispatcher, v any) (any, error) {
	items, ok := sequenceOf(v)
	if !ok || isSetValue(v) || len(t.Args) == 0 {
		return nil, diagnostic.WrongType(t.String(), v)
	}
	if len(items) != len(t.Args) {
		return nil, diagnostic.TupleArity(t.String(), len(t.Args), len(items), v)
	}
	out := make([]any, len(items))
	for i, item := range items {
		built, err := d.Build(t.Args[i], item)
		if err != nil {
			return nil, err
		}
		out[i] = built
	}
	return out, nil
}

// Dict

func checkDict(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	entries, ok := mappingOf(v)
	if !ok {
		return diagnostic.WrongType(t.String(), v)
	}
	if err := hashableGate(t, t.Args[0], d, v); err != nil {
		return err
	}
	var keyFails, valFails []*diagnostic.CheckError
	for _, e := range entries {
		if err := d.Check(t.Args[0], e.key); err != nil {
			keyFails = append(keyFails, err)
		}
		if err := d.Check(t.Args[1], e.value); err != nil {
			valFails = append(valFails, err)
		}
	}
	if len(keyFails) == 0 && len(valFails) == 0 {
		return nil
	}
	agg := &diagnostic.Aggregate{}
	for i, err := range keyFails {
		agg.Add(fmt.Sprintf("key_%s_%d", t.Args[0], i), err)
	}
	for i, err := range valFails {
		agg.Add(fmt.Sprintf("value_%s_%d", t.Args[1], i), err)
	}
	return agg.Err(t.String(), v)
}

func buildDict(t schema.Type, d *Dispatcher, v any) (any, error) {
	entries, ok := mappingOf(v)
	if !ok {
		return nil, diagnostic.WrongType(t.String(), v)
	}
	if err := hashableGate(t, t.Args[0], d, v); err != nil {
		return nil, err
	}
	out := make(map[any]any, len(entries))
	for _, e := range entries {
		key, err := d.Build(t.Args[0], e.key)
		if err != nil {
			return nil, err
		}
		value, err := d.Build(t.Args[1], e.value)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// Union

func checkUnion(t schema.Type, d *Dispatcher, v any) *diagnostic.CheckError {
	agg := &diagnostic.Aggregate{}
	for _, member := range t.Args {
		err := d.Check(member, v)
		if err == nil {
			return nil
		}
		agg.Add(member.String(), err)
	}
	return agg.Err(t.String(), v)
}

// buildUnion constructs via the first declared member that validates.
// Declaration order is the tie-break, so Union[int, float] given 3
// always builds the int.
func buildUnion(t schema.Type, d *Dispatcher, v any) (any, error) {
	agg := &diagnostic.Aggregate{}
	for _, member := range t.Args {
		err := d.Check(member, v)
		if err == nil {
			return d.Build(member, v)
		}
		agg.Add(member.String(), err)
	}
	return nil, agg.Err(t.String(), v)
}

// input shapes

type mapEntry struct {
	key   any
	value any
}

// sequenceOf flattens slices and arrays. Strings and maps are not
// sequences here.
func sequenceOf(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// iterableOf additionally accepts set values, yielding their members in
// a deterministic order.
func iterableOf(v any) ([]any, bool) {
	if items, ok := sequenceOf(v); ok {
		return items, true
	}
	if !isSetValue(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		out = append(out, k.Interface())
	}
	sort.Slice(out, func(i, j int) bool { return fmt.Sprint(out[i]) < fmt.Sprint(out[j]) })
	return out, true
}

// isSetValue recognizes the map[T]struct{} shape sets build into.
func isSetValue(v any) bool {
	if v == nil {
		return false
	}
	rt := reflect.TypeOf(v)
	return rt.Kind() == reflect.Map && rt.Elem() == reflect.TypeOf(struct{}{})
}

// mappingOf flattens maps and Params into entries sorted by key render.
// Set values are not mappings.
func mappingOf(v any) ([]mapEntry, bool) {
	if p, ok := params.Coerce(v); ok {
		entries := make([]mapEntry, 0, p.Len())
		for _, k := range p.Keys() {
			entries = append(entries, mapEntry{key: k, value: p.Get(k)})
		}
		return entries, true
	}
	if v == nil || isSetValue(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	entries := make([]mapEntry, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		entries = append(entries, mapEntry{key: k.Interface(), value: rv.MapIndex(k).Interface()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return fmt.Sprint(entries[i].key) < fmt.Sprint(entries[j].key)
	})
	return entries, true
}
