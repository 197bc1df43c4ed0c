package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"lifehub-agent-be/pkg/tools"
)

// Manager owns one server connection and the wrappers for its tools.
// Close it when the registry that holds the tools is torn down.
type Manager struct {
	client *Client
	tools  []tools.Tool
}

func (m *Manager) Tools() []tools.Tool {
	return m.tools
}

func (m *Manager) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// DiscoverTools connects to a server, lists its tools and wraps each one.
// All wrappers share the manager's client connection.
func DiscoverTools(ctx context.Context, server ServerConfig) (*Manager, error) {
	client, err := NewClient(ctx, server.Command, server.Args, server.Env)
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server: %w", err)
	}

	infos, err := client.ListTools(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}

	wrapped := make([]tools.Tool, len(infos))
	for i, info := range infos {
		wrapped[i] = &toolWrapper{
			client:      client,
			name:        info.Name,
			description: stringValue(info.Description),
			inputSchema: info.InputSchema,
		}
	}

	return &Manager{client: client, tools: wrapped}, nil
}

// toolWrapper adapts one server tool to the registry's tool contract.
type toolWrapper struct {
	client      *Client
	name        string
	description string
	inputSchema json.RawMessage
}

func (w *toolWrapper) Metadata() tools.ToolMetadata {
	return tools.ToolMetadata{
		Name:        w.name,
		Description: w.description,
		Parameters:  parseParameters(w.inputSchema),
	}
}

func (w *toolWrapper) Execute(ctx context.Context, args json.RawMessage) (tools.ToolResult, error) {
	result, err := w.client.CallTool(ctx, w.name, args)
	if err != nil {
		if ctx.Err() != nil {
			return tools.ToolResult{}, ctx.Err()
		}
		return tools.FailureResultf("MCP tool call failed: %v", err), nil
	}
	return formatResult(result), nil
}

// parseParameters flattens a JSON schema's top-level properties into the
// registry's parameter list, sorted for deterministic prompts.
func parseParameters(inputSchema json.RawMessage) []tools.ToolParameter {
	var schema struct {
		Properties map[string]struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(inputSchema, &schema); err != nil {
		return nil
	}

	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]tools.ToolParameter, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		paramType := prop.Type
		if paramType == "" {
			paramType = "string"
		}
		params = append(params, tools.ToolParameter{
			Name:        name,
			ParamType:   paramType,
			Description: prop.Description,
			Required:    required[name],
		})
	}
	return params
}

// formatResult extracts the text blocks of an MCP tool result. Servers wrap
// output as {"content":[{"type":"text","text":...}, ...]}; anything else is
// passed through as raw JSON.
func formatResult(result json.RawMessage) tools.ToolResult {
	var wrapped struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(result, &wrapped); err == nil && len(wrapped.Content) > 0 {
		var parts []string
		for _, c := range wrapped.Content {
			if c.Type == "text" && c.Text != "" {
				parts = append(parts, c.Text)
			}
		}
		text := strings.Join(parts, "\n")
		if wrapped.IsError {
			return tools.FailureResultf("%s", text)
		}
		return tools.SuccessResult(text)
	}
	return tools.SuccessResult(string(result))
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
