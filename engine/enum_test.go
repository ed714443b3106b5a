package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-forge/diagnostic"
	"config-forge/schema"
)

func TestEnumMembersByName(t *testing.T) {
	d := newDispatcher(t)

	assert.Nil(t, d.Check(schema.Of[level](), "debug"))

	built, err := d.Build(schema.Of[level](), "warn")
	require.NoError(t, err)
	assert.Equal(t, levelWarn, built)
}

func TestEnumRejectsUnknownMember(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[level](), "wan")
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeEnumMember, err.Code)
	assert.Contains(t, err.Error(), "\t- debug")
	assert.Contains(t, err.Error(), "\t- warn")
	assert.Contains(t, err.Error(), "Did you mean warn?")
}

// Members are selected by name only; the underlying value is never an
// accepted spelling.
func TestEnumRejectsNonStrings(t *testing.T) {
	d := newDispatcher(t)

	err := d.Check(schema.Of[level](), 1)
	require.NotNil(t, err)
	assert.Equal(t, diagnostic.CodeEnumWrongType, err.Code)
	assert.Contains(t, err.Error(), "For the enum, level,")
}

func TestEnumInsideConstructor(t *testing.T) {
	d := newDispatcher(t)
	cfg := batchCfg()
	cfg["level"] = "debug"

	require.Nil(t, d.Check(schema.Of[job](), cfg))
	built, err := d.Build(schema.Of[job](), cfg)
	require.NoError(t, err)
	assert.Equal(t, levelDebug, built.(batchJob).Level)
}

func TestEnumMembersListing(t *testing.T) {
	es := buildEnums()
	assert.Equal(t, []string{"debug", "info", "warn"}, es.Members(typeOf[level]()))
	assert.Empty(t, es.Members(typeOf[stage]()))
}
