package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type NoteChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text"`
	Source         string          `gorm:"type:text;not null;index"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	Provider       string          `gorm:"type:text;not null;index"`
	Model          string          `gorm:"type:text;not null"`
	// Dimensionless on purpose: text-embedding-3-small stores 1536 values,
	// nomic-embed-text 768. The provider/model columns keep spaces apart.
	EmbeddingValue pgvector.Vector `gorm:"type:vector"`
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (NoteChunk) TableName() string {
	return "note_chunks"
}
