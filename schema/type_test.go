package schema_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"config-forge/schema"
)

type dummyTarget struct{}

func Example() {
	fmt.Println(schema.Int)
	fmt.Println(schema.ListOf(schema.Int))
	fmt.Println(schema.DictOf(schema.String, schema.ListOf(schema.Float)))
	fmt.Println(schema.TupleOf(schema.Int, schema.String, schema.Bool))
	fmt.Println(schema.Optional(schema.String))
	fmt.Println(schema.Of[dummyTarget]())
	fmt.Println(schema.DependentCheck(schema.Of[dummyTarget](), map[string]string{"d": "d"}))
	// Output:
	// int
	// List[int]
	// Dict[str, List[float]]
	// Tuple[int, str, bool]
	// Union[str, None]
	// dummyTarget
	// DependentCheck[dummyTarget, {d: d}]
}

func TestTypeEqual(t *testing.T) {
	// Structural equality over args
	assert.True(t, schema.ListOf(schema.Int).Equal(schema.ListOf(schema.Int)))
	assert.False(t, schema.ListOf(schema.Int).Equal(schema.ListOf(schema.Float)))
	assert.False(t, schema.ListOf(schema.Int).Equal(schema.SetOf(schema.Int)))

	// Object types compare by Go type identity
	assert.True(t, schema.Of[dummyTarget]().Equal(schema.Of[dummyTarget]()))

	// Literal tables participate in equality
	a := schema.DependentCheck(schema.Of[dummyTarget](), map[string]string{"d": "d"})
	b := schema.DependentCheck(schema.Of[dummyTarget](), map[string]string{"d": "d"})
	c := schema.DependentCheck(schema.Of[dummyTarget](), map[string]string{"d": "other"})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestLiteralRenderIsSorted(t *testing.T) {
	got := schema.DependentBuild(schema.Of[dummyTarget](), map[string]string{
		"zeta":  "a.b",
		"alpha": "c",
	})
	assert.Equal(t, "DependentBuild[dummyTarget, {alpha: c, zeta: a.b}]", got.String())
}

func TestWrapped(t *testing.T) {
	inner := schema.Of[dummyTarget]()
	dep := schema.DependentCheck(inner, map[string]string{"d": "d"})

	w, ok := dep.Wrapped()
	assert.True(t, ok)
	assert.True(t, w.Equal(inner))

	_, ok = schema.ListOf(schema.Int).Wrapped()
	assert.False(t, ok)
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, schema.KindInt.IsPrimitive())
	assert.False(t, schema.KindList.IsPrimitive())
	assert.True(t, schema.KindSet.IsContainer())
	assert.True(t, schema.KindDependentBuild.IsDependent())
	assert.False(t, schema.KindDependentUnion.IsDependent())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "KindUnion", schema.KindUnion.String())
	assert.Equal(t, "Kind(99)", schema.Kind(99).String())
}
