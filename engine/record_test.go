package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
	"config-forge/registry"
	"config-forge/schema"
)

func TestRecordRegistrationRequiresConstructor(t *testing.T) {
	rs := NewRecords()

	err := rs.Register(registry.Entry{Type: typeOf[pipeline]()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a constructor")
}

func TestRecordCheckAndBuild(t *testing.T) {
	d := newDispatcher(t)

	require.Nil(t, d.Check(schema.Of[pipeline](), pipelineCfg()))

	built, err := d.Build(schema.Of[pipeline](), pipelineCfg())
	require.NoError(t, err)
	assert.IsType(t, pipeline{}, built)
}

// Records have no discriminator: the fields arrive at the top level and
// no "type" key is expected.
func TestRecordNeedsNoTag(t *testing.T) {
	d := newDispatcher(t)
	cfg := pipelineCfg()

	require.Nil(t, d.Check(schema.Of[pipeline](), cfg))
	_, hasTag := cfg["type"]
	assert.False(t, hasTag)
}

func TestRecordExpectsParams(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[pipeline](), []any{1})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeParamExpected, err.Code)
}

func TestRecordFieldFailuresAggregate(t *testing.T) {
	d := newDispatcher(t)
	cfg := pipelineCfg()
	cfg["tok"] = map[string]any{"type": "tokenizer", "vocab": "x"}

	err := d.Check(schema.Of[pipeline](), cfg)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeKeyValue, err.Code)
	require.Len(t, err.Entries, 1)
	assert.Equal(t, "tok", err.Entries[0].Key)
}

func TestRecordsRefuseForeignTypes(t *testing.T) {
	d := newDispatcher(t)
	rs := buildRecords(t)

	err := rs.GeneralCheck(schema.Of[outsider](), d, map[string]any{})
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeUnrepresented, err.Code)
	assert.Contains(t, err.Error(), "*engine.Records")
}
