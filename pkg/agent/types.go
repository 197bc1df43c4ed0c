// Package agent implements the planner, executor and explainer stages and
// the pipeline that drives a chat turn through them.
package agent

// PlanStep is one entry of the planner's execution plan. A nil Tool marks a
// reasoning/synthesis step that runs no tool.
type PlanStep struct {
	Step        int                    `json:"step"`
	Description string                 `json:"description"`
	Tool        *string                `json:"tool"`
	ToolInput   map[string]interface{} `json:"tool_input"`
}

// ContextLogEntry records the outcome of one executed plan step. The
// executor appends exactly one entry per step, failures included.
type ContextLogEntry struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
	Result string `json:"result"`
}

// Result is the completed outcome of a pipeline run.
type Result struct {
	Content    string
	Plan       []PlanStep
	ContextLog []ContextLogEntry
}
