package schema

//go:generate go tool stringer -type=Kind -output=kind_string.go

type Kind int

const (
	KindInvalid Kind = iota

	KindInt
	KindFloat
	KindBool
	KindString
	KindNil
	KindAny
	KindList
	KindSet
	KindTuple
	KindDict
	KindUnion
	KindObject
	KindDependentCheck
	KindDependentBuild
	KindDependentUnion

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsPrimitive() bool {
	switch k {
	default:
		return false
	case KindInt, KindFloat, KindBool, KindString:
		return true
	}
}

func (k Kind) IsContainer() bool {
	switch k {
	default:
		return false
	case KindList, KindSet, KindTuple, KindDict:
		return true
	}
}

// IsDependent reports whether k is one of the two dependent wrapper
// shapes. KindDependentUnion is not included: it wraps a dependent
// descriptor rather than being one.
func (k Kind) IsDependent() bool {
	switch k {
	default:
		return false
	case KindDependentCheck, KindDependentBuild:
		return true
	}
}
