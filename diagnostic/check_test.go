package diagnostic

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrongTypeRender(t *testing.T) {
	e := WrongType("int", "x")

	want := strings.Join([]string{
		"Expected an object of type int,",
		"but received an object of type string",
		"with a value of:",
		"\tx",
	}, "\n")
	assert.Equal(t, want, e.Error())
	assert.Equal(t, CodeWrongType, e.Code)
}

func TestRenderNestsChildOneTabDeeper(t *testing.T) {
	child := WrongType("str", 3)
	e := MalformedLiteral("DependentCheck[S, {d: d}]", "Dict[str, str]", child)

	got := e.Error()
	require.True(t, strings.HasPrefix(got, "DependentCheck[S, {d: d}] requires its binding table"))
	// Child lines arrive below the parent, each indented one tab
	assert.Contains(t, got, "\n\tExpected an object of type str,")
	assert.Contains(t, got, "\n\tbut received an object of type int")
}

func TestKeyValueRender(t *testing.T) {
	child := WrongType("int", "x")
	var agg Aggregate
	agg.AddIndex(1, child)
	e := agg.Err("List[int]", []any{0, "x"})
	require.NotNil(t, e)

	want := "Failed to construct List[int] because of the following values:\n" +
		"\t-1: " +
		"\n\t\tExpected an object of type int,\n\t\tbut received an object of type string\n\t\twith a value of:\n\t\t\tx"
	assert.Equal(t, want, e.Error())

	require.Len(t, e.Entries, 1)
	assert.Equal(t, "1", e.Entries[0].Key)
}

func TestAggregateIgnoresNil(t *testing.T) {
	var agg Aggregate
	agg.Add("a", nil)
	assert.True(t, agg.Empty())
	assert.Nil(t, agg.Err("T", nil))

	agg.Add("b", WrongType("int", "x"))
	assert.Equal(t, 1, agg.Len())
}

func TestMapValuesRenderDeterministically(t *testing.T) {
	e := WrongType("int", map[string]int{"b": 2, "a": 1, "c": 3})
	assert.Contains(t, e.Error(), "map[a:1 b:2 c:3]")
}

func TestEqual(t *testing.T) {
	a := WrongType("int", "x")
	b := WrongType("int", "x")
	c := WrongType("int", "y")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var nilErr *CheckError
	assert.True(t, nilErr.Equal(nil))

	// Different codes with identical message shape are not equal
	d := *a
	d.Code = CodeEnumWrongType
	assert.False(t, a.Equal(&d))
}

func TestRewriteFailedEqualComparesCauseByType(t *testing.T) {
	a := RewriteFailed("env", "host", "str", "HOSTNAME", errors.New("first"))
	b := RewriteFailed("env", "host", "str", "HOSTNAME", errors.New("second"))
	assert.True(t, a.Equal(b), "cause text differs but type matches")

	c := RewriteFailed("env", "host", "str", "HOSTNAME", &ConfigurationError{Msg: "x"})
	assert.False(t, a.Equal(c), "cause types differ")

	// errors.Is reaches the wrapped cause
	sentinel := errors.New("boom")
	d := RewriteFailed("env", "host", "str", "HOSTNAME", sentinel)
	assert.True(t, errors.Is(d, sentinel))
}

func TestTagMismatchHint(t *testing.T) {
	options := []Option{{Tag: "beef", Type: "Beef"}, {Tag: "pork", Type: "Pork"}}

	near := TagMismatch("Meat", "beff", options, nil)
	assert.Contains(t, near.Error(), "\t- beef: Beef")
	assert.Contains(t, near.Error(), "\t- pork: Pork")
	assert.Contains(t, near.Error(), "Did you mean beef?")

	far := TagMismatch("Meat", "dne", options, nil)
	assert.NotContains(t, far.Error(), "Did you mean")
}

func TestEnumMemberHint(t *testing.T) {
	e := EnumMember("Color", "rde", []string{"red", "green"})
	assert.Contains(t, e.Error(), "\t- red")
	assert.Contains(t, e.Error(), "Did you mean red?")
	assert.Equal(t, "rde", e.Obj)
}

func TestKeyDiffMarkers(t *testing.T) {
	e := KeyDiff("Beef",
		[]KV{{Name: "weight", Type: "float"}},
		[]KV{{Name: "wieght", Type: "float64"}},
		nil,
	)
	assert.Contains(t, e.Error(), "\t- weight: float")
	assert.Contains(t, e.Error(), "\t+ wieght: float64")
}

func TestParameterOrderMarkers(t *testing.T) {
	e := ParameterOrder("Beef", []string{"weight"}, []string{"wieght"})
	assert.Contains(t, e.Error(), "\t- weight")
	assert.Contains(t, e.Error(), "\t+ wieght")
}

func TestConfigurationError(t *testing.T) {
	err := Configurationf("Cannot register %s as %s; name already in use for %s", "beef", "Wagyu", "Beef")
	assert.EqualError(t, err, "Cannot register beef as Wagyu; name already in use for Beef")

	var ce *ConfigurationError
	assert.True(t, errors.As(err, &ce))
}
