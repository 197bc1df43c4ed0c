package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub-agent-be/pkg/tools"
)

// echoTool returns a fixed output and records the args it received.
type echoTool struct {
	name     string
	output   string
	err      error
	lastArgs json.RawMessage
	calls    int
}

func (e *echoTool) Metadata() tools.ToolMetadata {
	return tools.ToolMetadata{Name: e.name, Description: e.name + " tool"}
}

func (e *echoTool) Execute(ctx context.Context, args json.RawMessage) (tools.ToolResult, error) {
	e.calls++
	e.lastArgs = args
	if e.err != nil {
		return tools.FailureResult(e.err), nil
	}
	return tools.SuccessResult(e.output), nil
}

func strptr(s string) *string { return &s }

func collectEvents(events *[]Event) EmitFunc {
	return func(e Event) { *events = append(*events, e) }
}

func TestExecutorRunsStepsInOrder(t *testing.T) {
	first := &echoTool{name: "get_weather", output: "sunny"}
	second := &echoTool{name: "add_task", output: "task added"}
	r := tools.NewRegistry()
	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	plan := []PlanStep{
		{Step: 1, Description: "check weather", Tool: strptr("get_weather"), ToolInput: map[string]interface{}{"city": "Paris"}},
		{Step: 2, Description: "add reminder", Tool: strptr("add_task"), ToolInput: map[string]interface{}{"task": "bring umbrella"}},
		{Step: 3, Description: "synthesize", Tool: nil},
	}

	var events []Event
	log, err := NewExecutor(r).Execute(context.Background(), plan, collectEvents(&events))
	require.NoError(t, err)
	require.Len(t, log, 3, "one context log entry per plan step")

	assert.Equal(t, 1, log[0].Step)
	assert.Equal(t, `get_weather({"city":"Paris"})`, log[0].Action)
	assert.Equal(t, "sunny", log[0].Result)

	assert.Equal(t, 2, log[1].Step)
	assert.Equal(t, "task added", log[1].Result)

	assert.Equal(t, 3, log[2].Step)
	assert.Equal(t, "synthesize", log[2].Action)
	assert.Equal(t, reasoningStepResult, log[2].Result)

	// tool_start/tool_end pairs for the two tool steps only.
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	assert.Equal(t, []string{EventToolStart, EventToolEnd, EventToolStart, EventToolEnd}, types)
	assert.Equal(t, "get_weather", events[0].Name)
	assert.Equal(t, "Paris", events[0].Input["city"])
	assert.Equal(t, "sunny", events[1].Output)
}

func TestExecutorUnknownToolIsNonFatal(t *testing.T) {
	r := tools.NewRegistry()
	plan := []PlanStep{
		{Step: 1, Description: "use a made-up tool", Tool: strptr("teleport"), ToolInput: map[string]interface{}{}},
		{Step: 2, Description: "synthesize", Tool: nil},
	}

	var events []Event
	log, err := NewExecutor(r).Execute(context.Background(), plan, collectEvents(&events))
	require.NoError(t, err)
	require.Len(t, log, 2)

	assert.Contains(t, log[0].Result, "unknown tool 'teleport'")
	assert.Equal(t, reasoningStepResult, log[1].Result)
	assert.Empty(t, events, "no tool events for a tool that never ran")
}

func TestExecutorToolFailureIsRecorded(t *testing.T) {
	failing := &echoTool{name: "get_weather", err: assert.AnError}
	after := &echoTool{name: "add_task", output: "done"}
	r := tools.NewRegistry()
	require.NoError(t, r.Register(failing))
	require.NoError(t, r.Register(after))

	plan := []PlanStep{
		{Step: 1, Tool: strptr("get_weather"), ToolInput: map[string]interface{}{"city": "Paris"}},
		{Step: 2, Tool: strptr("add_task"), ToolInput: map[string]interface{}{"task": "x"}},
	}

	log, err := NewExecutor(r).Execute(context.Background(), plan, func(Event) {})
	require.NoError(t, err)
	require.Len(t, log, 2)

	assert.True(t, strings.HasPrefix(log[0].Result, "Error: "))
	assert.Equal(t, "done", log[1].Result, "execution continues past a failed step")
	assert.Equal(t, 1, after.calls)
}

func TestExecutorTruncatesLongResults(t *testing.T) {
	long := &echoTool{name: "search_notes", output: strings.Repeat("x", 5000)}
	r := tools.NewRegistry()
	require.NoError(t, r.Register(long))

	plan := []PlanStep{{Step: 1, Tool: strptr("search_notes"), ToolInput: map[string]interface{}{"query": "q"}}}

	log, err := NewExecutor(r).Execute(context.Background(), plan, func(Event) {})
	require.NoError(t, err)
	assert.Len(t, log[0].Result, maxToolResultLen)
}

func TestExecutorNilInputBecomesEmptyObject(t *testing.T) {
	tool := &echoTool{name: "get_weather", output: "ok"}
	r := tools.NewRegistry()
	require.NoError(t, r.Register(tool))

	plan := []PlanStep{{Step: 1, Tool: strptr("get_weather"), ToolInput: nil}}

	_, err := NewExecutor(r).Execute(context.Background(), plan, func(Event) {})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(tool.lastArgs))
}

func TestExecutorStopsOnCancelledContext(t *testing.T) {
	tool := &echoTool{name: "get_weather", output: "ok"}
	r := tools.NewRegistry()
	require.NoError(t, r.Register(tool))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := []PlanStep{{Step: 1, Tool: strptr("get_weather"), ToolInput: map[string]interface{}{}}}
	_, err := NewExecutor(r).Execute(ctx, plan, func(Event) {})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, tool.calls)
}
