package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteChunk is one embedded excerpt of a source document. Chunks are written
// once by ingestion and only ever read via similarity queries.
type NoteChunk struct {
	Id         uuid.UUID
	Document   string // chunk text
	Source     string // source document identifier (filename)
	ChunkIndex int
	Provider   string // embedding provider that produced the vector
	Model      string // embedding model that produced the vector
	Embedding  []float32
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
