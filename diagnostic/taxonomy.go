package diagnostic

import (
	"strconv"

	"config-forge/internal/match"
)

// hintBudget bounds the edit distance for "did you mean" suggestions.
const hintBudget = 2

// KV names a key together with the rendered type or path behind it.
type KV struct {
	Name string
	Type string
}

// Option pairs a discriminator tag with the rendered type it selects.
type Option struct {
	Tag  string
	Type string
}

// WrongType reports a value whose runtime type does not satisfy target.
func WrongType(target string, obj any) *CheckError {
	return &CheckError{
		Code:   CodeWrongType,
		Target: target,
		Msg: []string{
			"Expected an object of type " + target + ",",
			"but received an object of type " + typeName(obj),
			"with a value of:",
			"\t" + formatValue(obj),
		},
		Obj: obj,
	}
}

// ParamExpected reports a value that had to be a Params object but wasn't.
func ParamExpected(target string, obj any) *CheckError {
	return &CheckError{
		Code:   CodeParamExpected,
		Target: target,
		Msg: []string{
			"For " + target + ", expected a Params object",
			"but received an object of type " + typeName(obj),
		},
		Obj: obj,
	}
}

// Unrepresented reports a type no member of a handler family can express.
func Unrepresented(target, family string, obj any) *CheckError {
	return &CheckError{
		Code:   CodeUnrepresented,
		Target: target,
		Msg: []string{
			"Requested type: " + target + " with an object of type: " + typeName(obj),
			"with a value of:",
			formatValue(obj),
			"didn't match any subtype of " + family,
		},
		Obj: obj,
	}
}

// Unclaimed reports a target no handler family claimed at all.
func Unclaimed(target string, families []string, obj any) *CheckError {
	msg := []string{target + " is not supported by any of the following handler families:"}
	for _, f := range families {
		msg = append(msg, "\t- "+f)
	}
	return &CheckError{Code: CodeUnclaimed, Target: target, Msg: msg, Obj: obj}
}

// KeyValue folds per-key failures into one aggregate. Each entry renders
// on its own line with the child indented two tabs below it.
func KeyValue(target string, entries []Entry, obj any) *CheckError {
	msg := []string{"Failed to construct " + target + " because of the following values:"}
	for _, en := range entries {
		msg = append(msg, "\t-"+en.Key+": "+en.Err.Render("\t\t"))
	}
	return &CheckError{
		Code:    CodeKeyValue,
		Target:  target,
		Msg:     msg,
		Obj:     obj,
		Entries: entries,
	}
}

// Hashable reports an element type that cannot live in a set or act as a
// dict key.
func Hashable(target, elem, family string, obj any) *CheckError {
	return &CheckError{
		Code:   CodeHashable,
		Target: target,
		Msg: []string{
			"Failed to construct " + target + ", because " + elem,
			"is not hashable. You may need to mark it hashable in",
			family + " or use a type that is hashable",
		},
		Obj: obj,
	}
}

// TupleArity reports a tuple value whose length differs from the
// declared arity.
func TupleArity(target string, want, got int, obj any) *CheckError {
	return &CheckError{
		Code:   CodeTupleArity,
		Target: target,
		Msg: []string{
			"Failed to create a " + target + " because " + strconv.Itoa(want) + " args were",
			"expected but " + strconv.Itoa(got) + " were received.",
			"obj had a value of " + formatValue(obj),
		},
		Obj: obj,
	}
}

// KeyDiff reports arguments a request was missing (`-`) or should not
// have carried (`+`).
func KeyDiff(target string, missing, extra []KV, obj any) *CheckError {
	msg := []string{
		target + " was missing arguments, indicated with a `-`",
		"and/or passed additional arguments indicated with a `+`",
	}
	for _, kv := range missing {
		msg = append(msg, "\t- "+kv.Name+": "+kv.Type)
	}
	for _, kv := range extra {
		msg = append(msg, "\t+ "+kv.Name+": "+kv.Type)
	}
	return &CheckError{Code: CodeKeyDiff, Target: target, Msg: msg, Obj: obj}
}

// TagMismatch reports a discriminator that selects none of the types
// registered under target, listing every valid option.
func TagMismatch(target, tag string, options []Option, obj any) *CheckError {
	msg := []string{
		"For " + target + ", a Params object specified a `type`",
		"of " + tag + ", which is not an acceptable option",
		"for " + target + ". The potential values for `type` and",
		"their corresponding type are:",
	}
	tags := make([]string, len(options))
	for i, opt := range options {
		msg = append(msg, "\t- "+opt.Tag+": "+opt.Type)
		tags[i] = opt.Tag
	}
	if best, ok := match.Closest(tag, tags, hintBudget); ok {
		msg = append(msg, "Did you mean "+best+"?")
	}
	return &CheckError{Code: CodeTagMismatch, Target: target, Msg: msg, Obj: obj}
}

// ParameterOrder reports a declared ordering that names too few (`-`)
// or too many (`+`) constructor parameters.
func ParameterOrder(target string, tooFew, tooMany []string) *CheckError {
	msg := []string{
		target + " parameter order was missing parameters,",
		"indicated with a `-` and/or passed additional arguments",
		"indicated with a `+`",
	}
	for _, k := range tooFew {
		msg = append(msg, "\t- "+k)
	}
	for _, k := range tooMany {
		msg = append(msg, "\t+ "+k)
	}
	return &CheckError{Code: CodeParameterOrder, Target: target, Msg: msg}
}

// MalformedDependency reports a dependent descriptor that does not wrap
// exactly one target type.
func MalformedDependency(target string) *CheckError {
	return &CheckError{
		Code:   CodeMalformedDependency,
		Target: target,
		Msg: []string{
			target + " was not provided all the necessary",
			"information at the type level. Ensure the descriptor wraps",
			"exactly one target type.",
		},
	}
}

// MissingLiteral reports a dependent descriptor without a binding table.
func MissingLiteral(target string) *CheckError {
	return &CheckError{
		Code:   CodeMissingLiteral,
		Target: target,
		Msg: []string{
			target + " requires a binding table mapping",
			"constructor arguments to dot paths",
		},
	}
}

// UnaryLiteral reports a binding table that carries no entries at all.
func UnaryLiteral(target string) *CheckError {
	return &CheckError{
		Code:   CodeUnaryLiteral,
		Target: target,
		Msg: []string{
			target + " requires a binding table",
			"with at least one entry.",
		},
	}
}

// MalformedLiteral reports a binding table whose shape is wrong, with
// the shape failure attached as the child.
func MalformedLiteral(target, literalType string, child *CheckError) *CheckError {
	return &CheckError{
		Code:   CodeMalformedLiteral,
		Target: target,
		Msg: []string{
			target + " requires its binding table",
			"to be of type " + literalType,
		},
		Child: child,
	}
}

// ExtraLiteral reports binding table keys that name no constructor
// argument.
func ExtraLiteral(target string, extras []string) *CheckError {
	msg := []string{
		target + "'s binding table contains additional keys",
		"that were not in the constructor",
	}
	for _, k := range extras {
		msg = append(msg, "\t- "+k)
	}
	return &CheckError{Code: CodeExtraLiteral, Target: target, Msg: msg}
}

// TooDeepLiteral reports dot paths with more than one separator.
func TooDeepLiteral(target string, bad []string) *CheckError {
	msg := []string{
		target + "'s binding table is not allowed to have",
		"dependencies that go beyond one layer deep, one period.",
		"The following dependencies were more than one layer deep:",
	}
	for _, k := range bad {
		msg = append(msg, "\t- "+k)
	}
	return &CheckError{Code: CodeTooDeepLiteral, Target: target, Msg: msg}
}

// MissingDependency reports dot paths that resolve to nothing in the
// local state.
func MissingDependency(target string, missing []KV) *CheckError {
	msg := []string{
		target + "'s binding table requested",
		"dependencies that were not in the local state.",
		"The following dependency requests were not in the local state:",
	}
	for _, kv := range missing {
		msg = append(msg, "\t- "+kv.Name+": "+kv.Type)
	}
	return &CheckError{Code: CodeMissingDependency, Target: target, Msg: msg}
}

// EnumWrongType reports a non-string value offered to an enumeration.
func EnumWrongType(target string, obj any) *CheckError {
	e := WrongType("str", obj)
	e.Code = CodeEnumWrongType
	e.Target = target
	e.Msg[0] = "For the enum, " + target + ", " + e.Msg[0]
	return e
}

// EnumMember reports a member name an enumeration does not define,
// listing the valid members.
func EnumMember(target, member string, members []string) *CheckError {
	msg := []string{
		"For " + target + ", a str specified a member,",
		member + ", which is not an acceptable option",
		"for " + target + ". The valid members",
		"of " + target + " are:",
	}
	for _, k := range members {
		msg = append(msg, "\t- "+k)
	}
	if best, ok := match.Closest(member, members, hintBudget); ok {
		msg = append(msg, "Did you mean "+best+"?")
	}
	return &CheckError{Code: CodeEnumMember, Target: target, Msg: msg, Obj: member}
}

// RewriteFailed reports a rewriter that claimed a parameter but blew up
// converting the requested value.
func RewriteFailed(rewriter, paramName, paramType string, obj any, cause error) *CheckError {
	return &CheckError{
		Code:   CodeRewriteFailed,
		Target: paramType,
		Msg: []string{
			"A rewrite of type " + rewriter + " was requested for",
			"a parameter named " + paramName + " of type " + paramType,
			"but an exception was caused when converting the obj:",
			formatValue(obj),
			"to type " + paramType + ". The exception was:",
			causeText(cause),
		},
		Obj:   obj,
		Cause: cause,
	}
}

func causeText(cause error) string {
	if cause == nil {
		return "<nil>"
	}
	return cause.Error()
}
