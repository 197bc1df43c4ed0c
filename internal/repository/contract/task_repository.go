package contract

import (
	"context"

	"lifehub-agent-be/internal/entity"
)

// TaskRepository is append-only: tasks are never updated or removed.
type TaskRepository interface {
	Append(ctx context.Context, task *entity.Task) error
	FindAll(ctx context.Context) ([]*entity.Task, error)
	Count(ctx context.Context) (int64, error)
}
