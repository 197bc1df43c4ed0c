package agent

import (
	"context"
	"fmt"
	"strings"

	"lifehub-agent-be/pkg/llm"
)

const explainerTemperature = 0.7

const explainerSystemPrompt = `You are an explainer agent for LifeHub. Your job is to produce the final user-friendly response.

You will receive:
1. The original user messages
2. The execution plan that was created
3. The context log with results from each step

Your response should:
1. Briefly mention what you did (1-2 sentences max)
2. Provide the main answer/information the user requested
3. If tasks were added, confirm them
4. If notes were consulted, you may cite the source

Be helpful, concise, and natural. Do not output JSON or technical details.`

// Explainer synthesizes the final answer from the plan and context log,
// streaming tokens as the model produces them.
type Explainer struct {
	llm llm.LLMProvider
}

func NewExplainer(provider llm.LLMProvider) *Explainer {
	return &Explainer{llm: provider}
}

// Explain streams the final answer, forwarding each token through emit, and
// returns the full text. A broken stream yields a StreamInterruptedError
// carrying the partial output.
func (e *Explainer) Explain(ctx context.Context, userRequest string, plan []PlanStep, log []ContextLogEntry, emit EmitFunc) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: explainerSystemPrompt},
		{Role: "user", Content: buildExplainerPrompt(userRequest, plan, log)},
	}

	chunks := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.llm.StreamChat(ctx, history, chunks, llm.WithTemperature(explainerTemperature))
		close(chunks)
	}()

	var sb strings.Builder
	for chunk := range chunks {
		if chunk == "" {
			continue
		}
		sb.WriteString(chunk)
		emit(TokenEvent(chunk))
	}

	if err := <-errCh; err != nil {
		return sb.String(), &StreamInterruptedError{Partial: sb.String(), Err: err}
	}
	return sb.String(), nil
}

func buildExplainerPrompt(userRequest string, plan []PlanStep, log []ContextLogEntry) string {
	var planLines []string
	for _, s := range plan {
		line := fmt.Sprintf("- Step %d: %s", s.Step, s.Description)
		if s.Tool != nil {
			line += fmt.Sprintf(" (tool: %s)", *s.Tool)
		}
		planLines = append(planLines, line)
	}

	var logLines []string
	for _, c := range log {
		logLines = append(logLines, fmt.Sprintf("- Step %d: %s\n  Result: %s", c.Step, c.Action, c.Result))
	}

	return fmt.Sprintf(`User request: %s

Execution plan:
%s

Results from execution:
%s

Now provide a helpful, natural response to the user based on the above information.`,
		userRequest, strings.Join(planLines, "\n"), strings.Join(logLines, "\n"))
}
