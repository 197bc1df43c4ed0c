package contract

import (
	"context"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/repository/specification"
)

// ScoredNoteChunk wraps NoteChunk with its similarity score
type ScoredNoteChunk struct {
	Chunk      *entity.NoteChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type NoteChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.NoteChunk) error
	// DeleteBySource hard-deletes all chunks of one source document.
	// Ingestion uses this for its replace-on-reingest policy.
	DeleteBySource(ctx context.Context, source string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns up to limit chunks of the given embedding
	// space ordered by descending cosine similarity; ties resolve by insertion
	// order.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, provider, model string) ([]*ScoredNoteChunk, error)
}
