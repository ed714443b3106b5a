package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
	"config-forge/registry"
	"config-forge/schema"
)

func TestCheckReportsMissingArguments(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[stage](), map[string]any{"type": "tokenizer"})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyDiff, err.Code)
	assert.Contains(t, err.Error(), "\t- vocab: int")
}

func TestCheckReportsExtraArguments(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[stage](), map[string]any{
		"type": "tokenizer", "vocab": 5, "rate": 0.5,
	})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyDiff, err.Code)
	assert.Contains(t, err.Error(), "\t+ rate: float64")
}

func TestCheckAggregatesEveryBadArgument(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[stage](), map[string]any{
		"type": "embedder", "dim": "x", "vocab": "y",
	})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 2)
	assert.Equal(t, "dim", err.Entries[0].Key)
	assert.Equal(t, "vocab", err.Entries[1].Key)
}

// A declared order must name exactly the declared parameters; both
// phases refuse to proceed otherwise.
func TestDeclaredOrderMustCoverParameters(t *testing.T) {
	d := newDispatcher(t)
	ctor := &registry.Constructor{
		Entry:  &registry.Entry{},
		Target: typeOf[tokenizer](),
		Params: []registry.ParamSpec{
			registry.Param("dim", schema.Int),
			registry.Param("vocab", schema.Int),
		},
		Order: []string{"vocab", "oops"},
		Kind:  registry.KindBase,
	}
	cfg := map[string]any{"dim": 1, "vocab": 2}

	err := d.Check(ctor, cfg)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeParameterOrder, err.Code)
	assert.Contains(t, err.Error(), "\t- dim")
	assert.Contains(t, err.Error(), "\t+ oops")

	_, berr := d.Build(ctor, cfg)
	require.Error(t, berr)
}

func TestConstructorExpectsParams(t *testing.T) {
	d := newDispatcher(t)
	ctor := &registry.Constructor{
		Entry:  &registry.Entry{},
		Target: typeOf[tokenizer](),
		Kind:   registry.KindBase,
	}

	err := d.Check(ctor, 5)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeParamExpected, err.Code)
}

func TestUnknownFlowKind(t *testing.T) {
	d := newDispatcher(t)
	ctor := &registry.Constructor{
		Entry:  &registry.Entry{},
		Target: typeOf[tokenizer](),
		Kind:   "exotic",
	}

	err := d.Check(ctor, map[string]any{})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeUnrepresented, err.Code)
}

// Validation rejects stray names, but construction shrugs them off: a
// constructor only receives the arguments it declared.
func TestBuildIgnoresUnknownArguments(t *testing.T) {
	d := newDispatcher(t)
	cfg := map[string]any{"type": "tokenizer", "vocab": 3, "junk": true}

	require.NotNil(t, d.Check(schema.Of[stage](), cfg))

	built, err := d.Build(schema.Of[stage](), cfg)
	require.NoError(t, err)
	assert.Equal(t, tokenizer{Vocab: 3}, built)
}

func TestCustomFlowKind(t *testing.T) {
	cs := NewConstructors()
	cs.AddFlow("fixed", fixedFlow{value: 42})
	d := New([]Handler{cs})
	ctor := &registry.Constructor{
		Entry:  &registry.Entry{},
		Target: typeOf[tokenizer](),
		Kind:   "fixed",
	}

	assert.Nil(t, d.Check(ctor, map[string]any{}))
	got, err := d.Build(ctor, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

// fixedFlow ignores the configuration and yields a constant, standing in
// for strategies like wrapped or curried construction.
type fixedFlow struct {
	value any
}

func (f fixedFlow) Check(*registry.Constructor, *Dispatcher, any) *diagnostic.CheckError {
	return nil
}

func (f fixedFlow) Build(*registry.Constructor, *Dispatcher, any) (any, error) {
	return f.value, nil
}
