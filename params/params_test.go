package params

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
)

func TestPopWrapsNestedMaps(t *testing.T) {
	p := New(map[string]any{
		"model": map[string]any{"type": "linear", "dim": 4},
	})

	v, err := p.Pop("model")
	require.NoError(t, err)

	child, ok := v.(*Params)
	require.True(t, ok)
	assert.Equal(t, "model.", child.History)
	assert.Equal(t, "linear", child.Get("type"))

	// Popped keys are gone
	assert.False(t, p.Has("model"))
}

func TestPopMissingKeyIsRequired(t *testing.T) {
	p := NewWithHistory(map[string]any{}, "model.")

	_, err := p.Pop("dim")
	require.Error(t, err)

	var ce *diagnostic.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Error(), `key "dim" is required`)
	assert.Contains(t, ce.Error(), `at location "model."`)
}

func TestPopDefault(t *testing.T) {
	p := New(map[string]any{"a": 1})

	assert.Equal(t, 1, p.PopDefault("a", 9))
	assert.Equal(t, 9, p.PopDefault("a", 9), "second pop sees the default")
}

func TestWrapListsElementwise(t *testing.T) {
	p := New(map[string]any{
		"stages": []any{
			map[string]any{"type": "tokenize"},
			"plain",
		},
	})

	v, err := p.Pop("stages")
	require.NoError(t, err)

	list, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)

	first, ok := list[0].(*Params)
	require.True(t, ok)
	assert.Equal(t, "stages.0.", first.History)
	assert.Equal(t, "plain", list[1])
}

func TestReplaceNone(t *testing.T) {
	p := New(map[string]any{
		"a": "None",
		"b": map[string]any{"c": "None"},
		"d": []any{"None", "keep"},
	})

	assert.Nil(t, p.Get("a"))
	assert.Nil(t, p.Get("b").(*Params).Get("c"))

	list := p.Get("d").([]any)
	assert.Nil(t, list[0])
	assert.Equal(t, "keep", list[1])
}

func TestTypedPops(t *testing.T) {
	p := New(map[string]any{
		"i": "3", "f": 2, "b": "true", "s": "x",
		"badbool": "yep",
	})

	i, err := p.PopInt("i")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	f, err := p.PopFloat("f")
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	b, err := p.PopBool("b")
	require.NoError(t, err)
	assert.True(t, b)

	s, err := p.PopString("s")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = p.PopBool("badbool")
	assert.ErrorContains(t, err, "Cannot convert variable to bool")
}

func TestPopIntFromJSONNumbers(t *testing.T) {
	// encoding/json decodes numbers as float64
	p := New(map[string]any{"n": float64(7)})

	n, err := p.PopInt("n")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestPopChoice(t *testing.T) {
	p := New(map[string]any{"kind": "beef", "typo": "prok"})

	v, err := p.PopChoice("kind", []string{"beef", "pork"}, false)
	require.NoError(t, err)
	assert.Equal(t, "beef", v)

	// Missing key defaults to the first choice when allowed
	v, err = p.PopChoice("kind", []string{"beef", "pork"}, true)
	require.NoError(t, err)
	assert.Equal(t, "beef", v)

	// Invalid value lists the choices and hints at the nearest
	_, err = p.PopChoice("typo", []string{"beef", "pork"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in acceptable choices")
	assert.Contains(t, err.Error(), "Did you mean pork?")
}

func TestAsFlatDictAndUnflatten(t *testing.T) {
	p := New(map[string]any{
		"a": map[string]any{"b": 0, "c": map[string]any{"d": 1}},
		"e": 2,
	})

	flat := p.AsFlatDict()
	want := map[string]any{"a.b": 0, "a.c.d": 1, "e": 2}
	assert.Empty(t, cmp.Diff(want, flat))

	back, err := Unflatten(flat)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(p.AsDict(), back))
}

func TestUnflattenConflict(t *testing.T) {
	_, err := Unflatten(map[string]any{"a": 1, "a.b": 2})
	require.Error(t, err)

	var ce *diagnostic.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}

func TestDuplicateIsDistinct(t *testing.T) {
	p := New(map[string]any{"a": map[string]any{"b": 1}})
	dup := p.Duplicate()

	dup.Get("a").(*Params).Set("b", 99)
	assert.Equal(t, 1, p.Get("a").(*Params).Get("b"))
}

func TestAssertEmpty(t *testing.T) {
	p := New(map[string]any{"left": 1})
	err := p.AssertEmpty("Beef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Extra parameters passed to Beef")

	_, err = p.Pop("left")
	require.NoError(t, err)
	assert.NoError(t, p.AssertEmpty("Beef"))
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := New(map[string]any{"x": 1, "y": "z"})
	b := New(map[string]any{"y": "z", "x": 1})

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	b.Set("x", 2)
	hc, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestLeftMerge(t *testing.T) {
	p := New(map[string]any{"a": map[string]any{"b": 1}, "keep": true})
	rhs := New(map[string]any{"a": map[string]any{"b": 2}})

	merged := p.LeftMerge(rhs)
	assert.Equal(t, 2, merged["a.b"])
	assert.Equal(t, true, merged["keep"])

	// Receiver untouched
	assert.Equal(t, 1, p.Get("a").(*Params).Get("b"))
}

func TestInferAndCast(t *testing.T) {
	got, err := InferAndCast(map[string]any{
		"b": "True",
		"i": "3",
		"f": "2.5",
		"s": "word",
		"l": []any{"false", "10"},
	})
	require.NoError(t, err)

	want := map[string]any{
		"b": true,
		"i": 3,
		"f": 2.5,
		"s": "word",
		"l": []any{false, 10},
	}
	assert.Empty(t, cmp.Diff(want, got))

	_, err = InferAndCast(struct{}{})
	assert.ErrorContains(t, err, "cannot infer type")
}

func TestCoerce(t *testing.T) {
	p, ok := Coerce(map[string]any{"a": 1})
	require.True(t, ok)
	assert.Equal(t, 1, p.Get("a"))

	same, ok := Coerce(p)
	require.True(t, ok)
	assert.Same(t, p, same)

	_, ok = Coerce("nope")
	assert.False(t, ok)

	var nilParams *Params
	_, ok = Coerce(nilParams)
	assert.False(t, ok)
}

func TestStringIncludesHistory(t *testing.T) {
	p := NewWithHistory(map[string]any{"a": 1}, "model.")
	assert.Equal(t, "model.Params(map[a:1])", p.String())
}
