package mapper

import (
	"encoding/json"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/model"
)

type NoteChunkMapper struct{}

func NewNoteChunkMapper() *NoteChunkMapper {
	return &NoteChunkMapper{}
}

func (m *NoteChunkMapper) ToEntity(e *model.NoteChunk) *entity.NoteChunk {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Ignore malformed metadata rather than failing a read path
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.NoteChunk{
		Id:         e.Id,
		Document:   e.Document,
		Source:     e.Source,
		ChunkIndex: e.ChunkIndex,
		Provider:   e.Provider,
		Model:      e.Model,
		Embedding:  e.EmbeddingValue.Slice(),
		Metadata:   metadata,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *NoteChunkMapper) ToModel(e *entity.NoteChunk) *model.NoteChunk {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.NoteChunk{
		Id:             e.Id,
		Document:       e.Document,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		Provider:       e.Provider,
		Model:          e.Model,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *NoteChunkMapper) ToEntities(chunks []*model.NoteChunk) []*entity.NoteChunk {
	entities := make([]*entity.NoteChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *NoteChunkMapper) ToModels(chunks []*entity.NoteChunk) []*model.NoteChunk {
	models := make([]*model.NoteChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
