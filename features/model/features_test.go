package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleReindexesBySchemaOrder(t *testing.T) {
	schema := Schema{"a", "b", "c"}

	// Insertion order deliberately differs from schema order.
	feats := FeatureMap{"c": 3, "a": 1, "b": 2}

	vec := Assemble(schema, feats)
	assert.Equal(t, []float64{1, 2, 3}, vec)
}

func TestAssembleMissingSlotGetsSentinel(t *testing.T) {
	schema := Schema{"a", "b", "c"}
	vec := Assemble(schema, FeatureMap{"a": 1})

	assert.Equal(t, []float64{1, Sentinel, Sentinel}, vec)
}

func TestAssembleLaterMapsWin(t *testing.T) {
	schema := Schema{"a", "b"}
	first := FeatureMap{"a": 1, "b": 1}
	second := FeatureMap{"b": 9}

	vec := Assemble(schema, first, second)
	assert.Equal(t, []float64{1, 9}, vec)
}

func TestAssembleExtraFeaturesIgnored(t *testing.T) {
	schema := Schema{"a"}
	vec := Assemble(schema, FeatureMap{"a": 1, "unknown": 42})

	assert.Equal(t, []float64{1}, vec)
}

func TestMerge(t *testing.T) {
	m := FeatureMap{"a": 1, "b": 2}
	m.Merge(FeatureMap{"b": 9, "c": 3})

	assert.Equal(t, FeatureMap{"a": 1, "b": 9, "c": 3}, m)
}

func TestSchemaValidate(t *testing.T) {
	assert.ErrorIs(t, Schema{}.Validate(), ErrEmptySchema)
	assert.ErrorIs(t, Schema{"a", "b", "a"}.Validate(), ErrDuplicateSlot)
	assert.NoError(t, Schema{"a", "b"}.Validate())
}

func TestSchemaIndex(t *testing.T) {
	s := Schema{"a", "b"}
	assert.Equal(t, 1, s.Index("b"))
	assert.Equal(t, -1, s.Index("missing"))
}
