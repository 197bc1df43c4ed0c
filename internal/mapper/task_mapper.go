package mapper

import (
	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(e *model.Task) *entity.Task {
	if e == nil {
		return nil
	}
	return &entity.Task{
		Id:        e.Id,
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
}

func (m *TaskMapper) ToModel(e *entity.Task) *model.Task {
	if e == nil {
		return nil
	}
	return &model.Task{
		Id:        e.Id,
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, e := range tasks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
