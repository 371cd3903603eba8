package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "Pre-commit Hook Configuration", schema["title"])
	assert.Contains(t, schema["required"], "repos")

	// Extensions must not leak into the schema.
	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "repos")
	assert.NotContains(t, props, "Extensions")
	assert.NotContains(t, props, "extensions")
}
