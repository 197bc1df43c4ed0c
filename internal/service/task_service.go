package service

import (
	"context"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/internal/repository/contract"
)

type ITaskService interface {
	List(ctx context.Context) (*dto.TaskListResponse, error)
}

type taskService struct {
	tasks contract.TaskRepository
}

func NewTaskService(tasks contract.TaskRepository) ITaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context) (*dto.TaskListResponse, error) {
	entities, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.TaskListResponse{
		Tasks: make([]dto.TaskResponse, 0, len(entities)),
		Total: len(entities),
	}
	for _, t := range entities {
		resp.Tasks = append(resp.Tasks, dto.TaskResponse{
			Id:        t.Id.String(),
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}
	return resp, nil
}
