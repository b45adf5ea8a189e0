package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCharacterFrequencySQL(t *testing.T) {
	f := CharacterFrequency{"a": 2, "b": 1}
	v, err := f.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2,"b":1}`, v.(string))

	var got CharacterFrequency
	require.NoError(t, got.Scan([]byte(`{"a":2,"b":1}`)))
	assert.Equal(t, f, got)
	assert.Equal(t, 3, got.Total())

	require.NoError(t, got.Scan(nil))
	assert.Empty(t, got)

	assert.Error(t, got.Scan(42))
}

func TestNilFrequencyStoresEmptyObject(t *testing.T) {
	var f CharacterFrequency
	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestCharacterFrequencyBSONKeepsUnsafeKeys(t *testing.T) {
	in := AnalyzedString{
		ID:    "id-1",
		Value: "a.$",
		Properties: StringProperties{
			Length:             3,
			ContentHash:        "h",
			CharacterFrequency: CharacterFrequency{"a": 1, ".": 1, "$": 1},
		},
	}
	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	pairs := bson.Raw(raw).Lookup("properties", "character_frequency")
	assert.Equal(t, bson.TypeArray, pairs.Type)

	var out AnalyzedString
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, in.Properties.CharacterFrequency, out.Properties.CharacterFrequency)
	assert.Equal(t, "a.$", out.Value)
}
