// Package tools provides the assistant's tool system: the tool contract,
// the registry the planner and executor share, and the built-in tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolParameter defines one entry of a tool's input schema.
type ToolParameter struct {
	Name        string `json:"name"`
	ParamType   string `json:"param_type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolMetadata describes what a tool does and how to call it. The planner
// prompt is rendered from this, so descriptions must be model-readable.
type ToolMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
}

func (m ToolMetadata) String() string {
	return fmt.Sprintf("%s: %s", m.Name, m.Description)
}

// ToolResult is the outcome of one tool execution. A failed result is still
// a valid result: the executor records the error text and the pipeline
// continues.
type ToolResult struct {
	Output string `json:"output"`
	Error  error  `json:"-"`
}

func (t ToolResult) Success() bool {
	return t.Error == nil
}

func (t ToolResult) MarshalJSON() ([]byte, error) {
	if t.Error != nil {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Output  string `json:"output"`
			Error   string `json:"error"`
		}{Success: false, Output: t.Output, Error: t.Error.Error()})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Output  string `json:"output"`
	}{Success: true, Output: t.Output})
}

// SuccessResult creates a successful tool result.
func SuccessResult(output string) ToolResult {
	return ToolResult{Output: output}
}

// FailureResult creates a failed tool result.
func FailureResult(err error) ToolResult {
	return ToolResult{Error: err}
}

// FailureResultf creates a failed tool result with a formatted error message.
func FailureResultf(format string, args ...interface{}) ToolResult {
	return ToolResult{Error: fmt.Errorf(format, args...)}
}

// Tool is the contract every executable capability implements, whether
// built-in or proxied from an external server.
type Tool interface {
	// Metadata returns the tool's name, description and parameter schema.
	Metadata() ToolMetadata

	// Execute runs the tool. args is the planner-produced input object.
	// Tool-level failures are reported inside ToolResult; the error return
	// is reserved for context cancellation.
	Execute(ctx context.Context, args json.RawMessage) (ToolResult, error)
}
