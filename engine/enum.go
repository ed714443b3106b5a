package engine

import (
	"reflect"

	"config-forge/diagnostic"
	"config-forge/internal/common"
	"config-forge/schema"
)

// Enums resolves enumeration types from their member names. A value is
// the string name of a member; anything else, including an integer that
// happens to equal a member, is rejected.
type Enums struct {
	members map[reflect.Type]map[string]any
}

func NewEnums() *Enums {
	return &Enums{members: map[reflect.Type]map[string]any{}}
}

// RegisterEnum records the named members of E.
func RegisterEnum[E any](es *Enums, members map[string]E) {
	rt := reflect.TypeOf((*E)(nil)).Elem()
	tbl := make(map[string]any, len(members))
	for name, member := range members {
		tbl[name] = member
	}
	es.members[rt] = tbl
}

// Members lists the registered member names of t in ascending order.
func (es *Enums) Members(t reflect.Type) []string {
	return common.SortedKeys(es.members[t])
}

func (es *Enums) Claims(target any, d *Dispatcher) bool {
	t, ok := target.(schema.Type)
	if !ok || t.Kind != schema.KindObject || t.Obj == nil {
		return false
	}
	_, ok = es.members[t.Obj]
	return ok
}

func (es *Enums) Hashable(any, *Dispatcher) bool { return false }

func (es *Enums) Check(target any, d *Dispatcher, v any) *diagnostic.CheckError {
	t := target.(schema.Type)
	_, err := es.member(t, v)
	return err
}

func (es *Enums) Build(target any, d *Dispatcher, v any) (any, error) {
	t := target.(schema.Type)
	member, err := es.member(t, v)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (es *Enums) member(t schema.Type, v any) (any, *diagnostic.CheckError) {
	tbl, ok := es.members[t.Obj]
	if !ok {
		return nil, diagnostic.EnumWrongType(t.String(), v)
	}
	name, ok := v.(string)
	if !ok {
		return nil, diagnostic.EnumWrongType(t.String(), v)
	}
	member, ok := tbl[name]
	if !ok {
		return nil, diagnostic.EnumMember(t.String(), name, common.SortedKeys(tbl))
	}
	return member, nil
}
