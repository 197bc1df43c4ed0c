package agent

import (
	"context"

	"lifehub-agent-be/pkg/llm"
	"lifehub-agent-be/pkg/tools"
)

// State names the pipeline stages. A turn moves strictly forward:
// Planning, Executing, Explaining, Done; any failure lands in Failed.
type State string

const (
	StatePlanning   State = "planning"
	StateExecuting  State = "executing"
	StateExplaining State = "explaining"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Pipeline wires the three stages over one model provider and one tool
// registry. It is stateless across turns; every Run carries its own state.
type Pipeline struct {
	planner   *Planner
	executor  *Executor
	explainer *Explainer
}

func NewPipeline(provider llm.LLMProvider, registry *tools.Registry) *Pipeline {
	return &Pipeline{
		planner:   NewPlanner(provider, registry),
		executor:  NewExecutor(registry),
		explainer: NewExplainer(provider),
	}
}

// Run drives one chat turn through plan, execute, explain. Events flow to
// emit as they happen; debug additionally surfaces the plan and context log.
// On failure an error event is emitted and the typed error returned so the
// sync path can map it to a status code.
func (p *Pipeline) Run(ctx context.Context, userRequest string, debug bool, emit EmitFunc) (*Result, error) {
	if emit == nil {
		emit = func(Event) {}
	}

	emit(StartEvent())

	plan, err := p.planner.CreatePlan(ctx, userRequest)
	if err != nil {
		emit(ErrorEvent(err.Error()))
		return nil, err
	}
	if debug {
		emit(PlanEvent(plan))
	}

	contextLog, err := p.executor.Execute(ctx, plan, emit)
	if err != nil {
		emit(ErrorEvent(err.Error()))
		return nil, err
	}
	if debug {
		emit(ContextLogEvent(contextLog))
	}

	content, err := p.explainer.Explain(ctx, userRequest, plan, contextLog, emit)
	if err != nil {
		emit(ErrorEvent(err.Error()))
		return nil, err
	}

	emit(EndEvent())
	return &Result{
		Content:    content,
		Plan:       plan,
		ContextLog: contextLog,
	}, nil
}

// RunSync runs the pipeline without streaming; events are discarded and the
// buffered result returned whole.
func (p *Pipeline) RunSync(ctx context.Context, userRequest string, debug bool) (*Result, error) {
	return p.Run(ctx, userRequest, debug, nil)
}
