package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
	"config-forge/registry"
	"config-forge/schema"
)

func workerParam() *registry.Parameter {
	return registry.NewParameter(schema.Int, typeOf[batchJob](), map[string]any{}, "workers")
}

func TestKVRewriterSubstitutes(t *testing.T) {
	d := newDispatcher(t, NewKVRewriter(map[string]any{"gpu": 4}))
	v := map[string]any{"type": "user_dict", "key": "gpu"}

	assert.Nil(t, d.Check(workerParam(), v))

	built, err := d.Build(workerParam(), v)
	require.NoError(t, err)
	assert.Equal(t, 4, built)
}

func TestEnvRewriterSubstitutes(t *testing.T) {
	t.Setenv("FORGE_VOCAB", "128")
	d := newDispatcher(t, NewEnvRewriter())

	// The environment value is a string; it is built against the
	// parameter's declared type on the way in.
	cfg := map[string]any{
		"type":  "tokenizer",
		"vocab": map[string]any{"type": "ENV", "key": "FORGE_VOCAB"},
	}
	require.Nil(t, d.Check(schema.Of[stage](), cfg))

	built, err := d.Build(schema.Of[stage](), cfg)
	require.NoError(t, err)
	assert.Equal(t, tokenizer{Vocab: 128}, built)
}

func TestRewriteFailureSurfaces(t *testing.T) {
	d := newDispatcher(t, NewKVRewriter(map[string]any{"name": "abc"}))
	v := map[string]any{"type": "user_dict", "key": "name"}

	err := d.Check(workerParam(), v)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeRewriteFailed, err.Code)
	assert.Contains(t, err.Error(), "*engine.KVRewriter")
	assert.Contains(t, err.Error(), "a parameter named workers of type int")
}

// A request shape nobody claims is dispatched untouched, and fails as
// the value it is.
func TestUnclaimedRequestPassesThrough(t *testing.T) {
	d := newDispatcher(t, NewEnvRewriter())
	v := map[string]any{"type": "ENV", "key": "FORGE_DEFINITELY_UNSET"}

	err := d.Check(workerParam(), v)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeWrongType, err.Code)
}

// Rewrites happen at parameter positions only; the same value offered
// to a bare type is taken literally.
func TestRewriteNeedsParameterContext(t *testing.T) {
	d := newDispatcher(t, NewKVRewriter(map[string]any{"gpu": 4}))

	err := d.Check(schema.Int, map[string]any{"type": "user_dict", "key": "gpu"})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeWrongType, err.Code)
}
