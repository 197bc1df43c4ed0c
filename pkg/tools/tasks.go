package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/repository/contract"
	"lifehub-agent-be/pkg/events"
	natspkg "lifehub-agent-be/pkg/nats"
)

// AddTaskTool appends entries to the to-do list. A nil events publisher
// disables event emission without changing tool behavior.
type AddTaskTool struct {
	tasks     contract.TaskRepository
	publisher *natspkg.Publisher
}

func NewAddTaskTool(tasks contract.TaskRepository, publisher *natspkg.Publisher) *AddTaskTool {
	return &AddTaskTool{
		tasks:     tasks,
		publisher: publisher,
	}
}

func (t *AddTaskTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "add_task",
		Description: "Add a task to the user's to-do list.",
		Parameters: []ToolParameter{
			{
				Name:        "task",
				ParamType:   "string",
				Description: "The task text to add",
				Required:    true,
			},
		},
	}
}

type addTaskArgs struct {
	Task string `json:"task"`
}

func (t *AddTaskTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var in addTaskArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	text := strings.TrimSpace(in.Task)
	if text == "" {
		return FailureResultf("task text is required"), nil
	}

	task := &entity.Task{
		Id:        uuid.New(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := t.tasks.Append(ctx, task); err != nil {
		return FailureResultf("failed to save task: %v", err), nil
	}

	total, err := t.tasks.Count(ctx)
	if err != nil {
		// The task is saved; counting is best effort.
		total = -1
	}

	// Event emission never fails the tool call.
	_ = t.publisher.Publish(ctx, events.TaskCreated(text, int(total)))

	if total >= 0 {
		return SuccessResult(fmt.Sprintf("Task added: '%s'. You now have %d task(s).", text, total)), nil
	}
	return SuccessResult(fmt.Sprintf("Task added: '%s'.", text)), nil
}
