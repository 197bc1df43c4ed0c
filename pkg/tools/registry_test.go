package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	meta   ToolMetadata
	result ToolResult
}

func (s *stubTool) Metadata() ToolMetadata { return s.meta }

func (s *stubTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	return s.result, nil
}

func namedTool(name string) *stubTool {
	return &stubTool{meta: ToolMetadata{Name: name, Description: name + " tool"}}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(namedTool("get_weather")))

	tool, ok := r.Get("get_weather")
	assert.True(t, ok)
	assert.Equal(t, "get_weather", tool.Metadata().Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.True(t, r.Has("get_weather"))
	assert.False(t, r.Has("missing"))
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(namedTool("add_task")))

	err := r.Register(namedTool("add_task"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryNamesAreSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(namedTool("search_notes")))
	require.NoError(t, r.Register(namedTool("add_task")))
	require.NoError(t, r.Register(namedTool("get_weather")))

	assert.Equal(t, []string{"add_task", "get_weather", "search_notes"}, r.Names())
}

func TestRegistryCatalogRendersParameters(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{meta: ToolMetadata{
		Name:        "get_weather",
		Description: "Get the current weather for a city.",
		Parameters: []ToolParameter{
			{Name: "city", ParamType: "string", Description: "City name", Required: true},
		},
	}}))

	catalog := r.Catalog()
	assert.Contains(t, catalog, "Tool: get_weather")
	assert.Contains(t, catalog, "city (string): City name [required]")
}

func TestToolResultJSONShape(t *testing.T) {
	ok, err := json.Marshal(SuccessResult("done"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"output":"done"}`, string(ok))

	failed, err := json.Marshal(FailureResultf("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"output":"","error":"boom"}`, string(failed))
}
