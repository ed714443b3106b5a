package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
	"config-forge/schema"
)

func TestListKeysFailuresByPosition(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.ListOf(schema.Int), []any{1, "x", 3, "y"})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "1", err.Entries[0].Key)
	assert.Equal(t, "3", err.Entries[1].Key)
}

func TestListBuild(t *testing.T) {
	d := newDispatcher(t)

	got, err := d.Build(schema.ListOf(schema.Int), []any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)

	// Nested configuration builds element by element.
	got, err = d.Build(schema.ListOf(schema.Of[stage]()), []any{
		map[string]any{"type": "tokenizer", "vocab": 1},
		map[string]any{"type": "tokenizer", "vocab": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{tokenizer{Vocab: 1}, tokenizer{Vocab: 2}}, got)
}

func TestListRejectsSetValues(t *testing.T) {
	d := newDispatcher(t)
	set := map[any]struct{}{1: {}, 2: {}}

	err := d.Check(schema.ListOf(schema.Int), set)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeWrongType, err.Code)
}

func TestSetKeysFailuresByOrdinal(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.SetOf(schema.Int), []any{1, "x", 2, "y"})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "0", err.Entries[0].Key, "sets count failures, not positions")
	assert.Equal(t, "1", err.Entries[1].Key)
}

// The member type's hashability gates the set before any element is
// visited, so even an empty input fails.
func TestSetHashableGate(t *testing.T) {
	d := newDispatcher(t)
	target := schema.SetOf(schema.ListOf(schema.Int))

	err := d.Check(target, []any{})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeHashable, err.Code)
	assert.Contains(t, err.Error(), "List[int]")
	assert.Contains(t, err.Error(), "engine.Collections")

	_, berr := d.Build(target, []any{})
	require.Error(t, berr)
}

func TestSetBuildDeduplicates(t *testing.T) {
	d := newDispatcher(t)

	got, err := d.Build(schema.SetOf(schema.Int), []any{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, map[any]struct{}{1: {}, 2: {}}, got)
}

func TestSetAcceptsSetValues(t *testing.T) {
	d := newDispatcher(t)
	set := map[any]struct{}{2: {}, 1: {}}

	assert.Nil(t, d.Check(schema.SetOf(schema.Int), set))
	got, err := d.Build(schema.SetOf(schema.Int), set)
	require.NoError(t, err)
	assert.Equal(t, map[any]struct{}{1: {}, 2: {}}, got)
}

func TestTupleArity(t *testing.T) {
	d := newDispatcher(t)
	target := schema.TupleOf(schema.Int, schema.String)

	err := d.Check(target, []any{1})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeTupleArity, err.Code)
	assert.Contains(t, err.Error(), "2 args were")

	assert.Nil(t, d.Check(target, []any{1, "x"}))
	got, berr := d.Build(target, []any{1, "x"})
	require.NoError(t, berr)
	assert.Equal(t, []any{1, "x"}, got)
}

func TestTuplePositionalChecks(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.TupleOf(schema.Int, schema.String), []any{"x", 1})
	require.NotNil(t, err)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "0", err.Entries[0].Key)
	assert.Equal(t, "1", err.Entries[1].Key)
}

func TestDictSeparatesKeyAndValueFailures(t *testing.T) {
	d := newDispatcher(t)
	target := schema.DictOf(schema.String, schema.Int)

	err := d.Check(target, map[any]any{7: 1, "a": "x"})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "key_str_0", err.Entries[0].Key)
	assert.Equal(t, "value_int_0", err.Entries[1].Key)
}

func TestDictKeyHashableGate(t *testing.T) {
	d := newDispatcher(t)
	target := schema.DictOf(schema.ListOf(schema.Int), schema.Int)

	err := d.Check(target, map[string]any{})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeHashable, err.Code)
}

func TestDictBuild(t *testing.T) {
	d := newDispatcher(t)

	got, err := d.Build(schema.DictOf(schema.String, schema.Int), map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"a": 1, "b": 2}, got)
}

func TestUnionFirstMemberWins(t *testing.T) {
	d := newDispatcher(t)

	// "5" satisfies str, so the int member never gets to coerce it.
	got, err := d.Build(schema.UnionOf(schema.String, schema.Int), "5")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = d.Build(schema.UnionOf(schema.Int, schema.Float), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestUnionAggregatesByMember(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.UnionOf(schema.Int, schema.Float), true)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "int", err.Entries[0].Key)
	assert.Equal(t, "float", err.Entries[1].Key)
}
