package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lifehub-agent-be/pkg/llm"
	"lifehub-agent-be/pkg/tools"
)

const plannerTemperature = 0.3

const plannerPromptTemplate = `You are a planning agent for LifeHub. Your job is to analyze the user's request and create a structured execution plan.

Available tools:
%s

Analyze the user's message and output a JSON plan with this exact format:
{
  "plan": [
    {"step": 1, "description": "Brief description of what to do", "tool": "tool_name or null", "tool_input": {"param": "value"} or null},
    {"step": 2, "description": "...", "tool": "...", "tool_input": {...}}
  ]
}

Guidelines:
- If the user asks about their notes, fitness, recipes, or personal information, use search_notes
- If the user asks about weather, use get_weather
- If the user wants to add/create a task or reminder, use add_task
- You can have multiple steps that use different tools
- Steps without tools are for reasoning/synthesis (set tool to null)
- Always end with a synthesis step (tool: null) to combine results

Output ONLY valid JSON, nothing else.`

// Planner turns a user request into an ordered execution plan by prompting
// the model at low temperature and parsing its JSON output.
type Planner struct {
	llm      llm.LLMProvider
	registry *tools.Registry
}

func NewPlanner(provider llm.LLMProvider, registry *tools.Registry) *Planner {
	return &Planner{
		llm:      provider,
		registry: registry,
	}
}

type planResponse struct {
	Plan []PlanStep `json:"plan"`
}

// CreatePlan asks the model for a plan. Any parse failure is fatal for the
// turn: there is no fallback plan, the caller surfaces a PlanningError.
func (p *Planner) CreatePlan(ctx context.Context, userRequest string) ([]PlanStep, error) {
	history := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(plannerPromptTemplate, p.registry.Catalog())},
		{Role: "user", Content: fmt.Sprintf("User request: %s", userRequest)},
	}

	raw, err := p.llm.Chat(ctx, history, llm.WithTemperature(plannerTemperature))
	if err != nil {
		return nil, fmt.Errorf("planner model call failed: %w", err)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		return nil, &PlanningError{Raw: raw, Err: err}
	}
	return plan, nil
}

// parsePlan extracts and validates the plan JSON from raw model output.
// Step numbers are rewritten to 1..N so downstream code never sees gaps or
// duplicates the model produced.
func parsePlan(raw string) ([]PlanStep, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, errors.New("no JSON object in planner output")
	}

	var parsed planResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("invalid plan JSON: %w", err)
	}
	if len(parsed.Plan) == 0 {
		return nil, errors.New("plan is empty")
	}

	for i := range parsed.Plan {
		parsed.Plan[i].Step = i + 1
		if tool := parsed.Plan[i].Tool; tool != nil && strings.TrimSpace(*tool) == "" {
			parsed.Plan[i].Tool = nil
		}
	}
	return parsed.Plan, nil
}

// extractJSON returns the JSON object embedded in model output, stripping a
// markdown code fence if present.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
