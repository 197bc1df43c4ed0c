package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParametersFromSchema(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Search terms"},
			"count": {"type": "integer", "description": "Result count"},
			"freshness": {"description": "Recency filter"}
		},
		"required": ["query"]
	}`)

	params := parseParameters(schema)
	require.Len(t, params, 3)

	// Sorted by name.
	assert.Equal(t, "count", params[0].Name)
	assert.Equal(t, "freshness", params[1].Name)
	assert.Equal(t, "query", params[2].Name)

	assert.True(t, params[2].Required)
	assert.False(t, params[0].Required)
	assert.Equal(t, "integer", params[0].ParamType)
	assert.Equal(t, "string", params[1].ParamType, "missing type defaults to string")
}

func TestParseParametersInvalidSchema(t *testing.T) {
	assert.Nil(t, parseParameters(json.RawMessage(`not json`)))
}

func TestFormatResultExtractsTextContent(t *testing.T) {
	result := formatResult(json.RawMessage(`{
		"content": [
			{"type": "text", "text": "first block"},
			{"type": "text", "text": "second block"},
			{"type": "image", "data": "ignored"}
		]
	}`))

	require.True(t, result.Success())
	assert.Equal(t, "first block\nsecond block", result.Output)
}

func TestFormatResultErrorContent(t *testing.T) {
	result := formatResult(json.RawMessage(`{
		"content": [{"type": "text", "text": "rate limit exceeded"}],
		"isError": true
	}`))

	assert.False(t, result.Success())
	assert.Contains(t, result.Error.Error(), "rate limit exceeded")
}

func TestFormatResultPassesThroughUnknownShapes(t *testing.T) {
	raw := `{"answer": 42}`
	result := formatResult(json.RawMessage(raw))

	require.True(t, result.Success())
	assert.Equal(t, raw, result.Output)
}

func TestServersFromEnv(t *testing.T) {
	assert.Empty(t, ServersFromEnv(""))

	servers := ServersFromEnv("key-123")
	require.Len(t, servers, 1)
	assert.Equal(t, "brave-search", servers[0].Name)
	assert.Equal(t, "npx", servers[0].Command)
	assert.Equal(t, "key-123", servers[0].Env["BRAVE_API_KEY"])
}
