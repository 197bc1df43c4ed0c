package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"lifehub-agent-be/pkg/tools"
)

// maxToolResultLen caps how much tool output enters the context log and the
// explainer prompt.
const maxToolResultLen = 1000

const reasoningStepResult = "Reasoning/synthesis step completed"

// Executor walks the plan in order and materializes the context log. Tool
// failures are recorded and execution continues; only context cancellation
// stops the walk.
type Executor struct {
	registry *tools.Registry
}

func NewExecutor(registry *tools.Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs every plan step and returns one context log entry per step.
func (e *Executor) Execute(ctx context.Context, plan []PlanStep, emit EmitFunc) ([]ContextLogEntry, error) {
	log := make([]ContextLogEntry, 0, len(plan))

	for _, step := range plan {
		if err := ctx.Err(); err != nil {
			return log, err
		}

		if step.Tool == nil {
			log = append(log, ContextLogEntry{
				Step:   step.Step,
				Action: step.Description,
				Result: reasoningStepResult,
			})
			continue
		}

		name := *step.Tool
		input := step.ToolInput
		if input == nil {
			input = map[string]interface{}{}
		}

		args, err := json.Marshal(input)
		if err != nil {
			log = append(log, ContextLogEntry{
				Step:   step.Step,
				Action: fmt.Sprintf("%s(%v)", name, step.ToolInput),
				Result: fmt.Sprintf("Error: invalid tool input: %v", err),
			})
			continue
		}
		action := fmt.Sprintf("%s(%s)", name, string(args))

		tool, ok := e.registry.Get(name)
		if !ok {
			// A hallucinated tool name fails the step, not the turn.
			log = append(log, ContextLogEntry{
				Step:   step.Step,
				Action: action,
				Result: fmt.Sprintf("Error: %v", &tools.ErrUnknownTool{Name: name}),
			})
			continue
		}

		emit(ToolStartEvent(name, input))

		result, err := tool.Execute(ctx, args)
		if err != nil {
			// Execute only errors on cancellation.
			return log, err
		}

		var output string
		if result.Success() {
			output = truncate(result.Output, maxToolResultLen)
		} else {
			output = fmt.Sprintf("Error: %v", result.Error)
		}

		emit(ToolEndEvent(name, output))
		log = append(log, ContextLogEntry{
			Step:   step.Step,
			Action: action,
			Result: output,
		})
	}

	return log, nil
}

// truncate cuts at rune boundaries so multi-byte output is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
