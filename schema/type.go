package schema

import (
	"reflect"
	"sort"
	"strings"
)

// Type describes a value shape to validate against or construct into.
// The zero Type is invalid.
type Type struct {
	Kind Kind

	// Args holds element types for containers, member types for unions,
	// and the wrapped type for dependent descriptors.
	Args []Type

	// Obj is the registered Go type behind an object descriptor.
	Obj reflect.Type

	// Literal maps constructor argument names to dot paths into sibling
	// configuration. Only dependent descriptors carry it.
	Literal map[string]string
}

var (
	Int    = Type{Kind: KindInt}
	Float  = Type{Kind: KindFloat}
	Bool   = Type{Kind: KindBool}
	String = Type{Kind: KindString}
	Nil    = Type{Kind: KindNil}
	Any    = Type{Kind: KindAny}
)

func ListOf(elem Type) Type {
	return Type{Kind: KindList, Args: []Type{elem}}
}

func SetOf(elem Type) Type {
	return Type{Kind: KindSet, Args: []Type{elem}}
}

func TupleOf(elems ...Type) Type {
	return Type{Kind: KindTuple, Args: elems}
}

func DictOf(key, value Type) Type {
	return Type{Kind: KindDict, Args: []Type{key, value}}
}

func UnionOf(members ...Type) Type {
	return Type{Kind: KindUnion, Args: members}
}

// Optional is shorthand for a union of t and Nil.
func Optional(t Type) Type {
	return UnionOf(t, Nil)
}

func Object(rt reflect.Type) Type {
	return Type{Kind: KindObject, Obj: rt}
}

func Of[T any]() Type {
	return Object(reflect.TypeOf((*T)(nil)).Elem())
}

// DependentCheck wraps an object descriptor so that validation resolves
// the literal's dot paths against sibling raw configuration before
// checking the wrapped type.
func DependentCheck(wrapped Type, literal map[string]string) Type {
	return Type{Kind: KindDependentCheck, Args: []Type{wrapped}, Literal: literal}
}

// DependentBuild wraps an object descriptor so that construction resolves
// the literal's dot paths against sibling constructed values. Validation
// can only vouch for the path heads; tails exist on built objects alone.
func DependentBuild(wrapped Type, literal map[string]string) Type {
	return Type{Kind: KindDependentBuild, Args: []Type{wrapped}, Literal: literal}
}

// DependentUnion pairs a dependent descriptor with a plain fallback.
// The dependent member must come first.
func DependentUnion(dep, fallback Type) Type {
	return Type{Kind: KindDependentUnion, Args: []Type{dep, fallback}}
}

func (t Type) IsValid() bool {
	return t.Kind != KindInvalid
}

// Wrapped returns the descriptor a dependent type decorates, and false
// when t carries none.
func (t Type) Wrapped() (Type, bool) {
	if !t.Kind.IsDependent() || len(t.Args) != 1 {
		return Type{}, false
	}
	return t.Args[0], true
}

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Obj != o.Obj {
		return false
	}
	if len(t.Args) != len(o.Args) || len(t.Literal) != len(o.Literal) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	for k, v := range t.Literal {
		if ov, ok := o.Literal[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders a stable, human-oriented form used throughout error
// messages and aggregate keys.
func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindNil:
		return "None"
	case KindAny:
		return "Any"
	case KindList:
		return "List[" + joinArgs(t.Args) + "]"
	case KindSet:
		return "Set[" + joinArgs(t.Args) + "]"
	case KindTuple:
		return "Tuple[" + joinArgs(t.Args) + "]"
	case KindDict:
		return "Dict[" + joinArgs(t.Args) + "]"
	case KindUnion:
		return "Union[" + joinArgs(t.Args) + "]"
	case KindObject:
		return objName(t.Obj)
	case KindDependentCheck:
		return "DependentCheck[" + joinArgs(t.Args) + ", " + literalString(t.Literal) + "]"
	case KindDependentBuild:
		return "DependentBuild[" + joinArgs(t.Args) + ", " + literalString(t.Literal) + "]"
	case KindDependentUnion:
		return "DependentUnion[" + joinArgs(t.Args) + "]"
	default:
		return "invalid"
	}
}

func joinArgs(args []Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func literalString(literal map[string]string) string {
	keys := make([]string, 0, len(literal))
	for k := range literal {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + literal[k]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func objName(rt reflect.Type) string {
	if rt == nil {
		return "Object"
	}
	if name := rt.Name(); name != "" {
		return name
	}
	return rt.String()
}
