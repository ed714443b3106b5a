package diagnostic

//go:generate go tool stringer -type=Code -output=code_string.go

// Code identifies the shape of a CheckError independently of its
// rendered message.
type Code int

const (
	CodeUnknown Code = iota

	CodeWrongType
	CodeParamExpected
	CodeUnrepresented
	CodeUnclaimed
	CodeKeyValue
	CodeHashable
	CodeTupleArity
	CodeKeyDiff
	CodeTagMismatch
	CodeParameterOrder
	CodeMalformedDependency
	CodeMissingLiteral
	CodeUnaryLiteral
	CodeMalformedLiteral
	CodeExtraLiteral
	CodeTooDeepLiteral
	CodeMissingDependency
	CodeEnumWrongType
	CodeEnumMember
	CodeRewriteFailed

	// CodeTotal is a constant that represents the total number of codes defined
	CodeTotal = int(iota)
)
