package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/repository/contract"
	"lifehub-agent-be/pkg/embedding"
	"lifehub-agent-be/pkg/utils"
)

const (
	// Chunk budget matches the ingestion policy: fixed character slicing,
	// not sentence-aware.
	ChunkSize    = 500
	ChunkOverlap = 50

	defaultTopK = 5
)

// ErrEmbeddingSpaceMismatch is returned when the store holds chunks but none
// were embedded by the configured provider/model. Mixing embedding spaces
// silently degrades relevance, so the gateway refuses instead.
var ErrEmbeddingSpaceMismatch = errors.New("note store was ingested with a different embedding provider/model")

// Document is one ingestion input: a named source with its full text.
type Document struct {
	Source  string
	Content string
}

// ScoredChunk is one similarity-query result.
type ScoredChunk struct {
	Chunk *entity.NoteChunk
	Score float64
}

// Gateway converts text to vectors via a provider fixed at construction time
// and reads/writes the persisted chunk store. One gateway serves one
// embedding space.
type Gateway struct {
	provider embedding.EmbeddingProvider
	chunks   contract.NoteChunkRepository
}

func NewGateway(provider embedding.EmbeddingProvider, chunks contract.NoteChunkRepository) *Gateway {
	return &Gateway{
		provider: provider,
		chunks:   chunks,
	}
}

// Embed converts text to a vector using the configured provider.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

// Query embeds the query text and returns up to topK chunks ordered by
// descending similarity. A non-empty store from another embedding space
// yields ErrEmbeddingSpaceMismatch.
func (g *Gateway) Query(ctx context.Context, query string, topK int) ([]*ScoredChunk, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	vector, err := g.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := g.chunks.SearchSimilarWithScore(ctx, vector, topK, g.provider.Name(), g.provider.Model())
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	if len(scored) == 0 {
		total, err := g.chunks.Count(ctx)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			return nil, ErrEmbeddingSpaceMismatch
		}
	}

	results := make([]*ScoredChunk, len(scored))
	for i, s := range scored {
		results[i] = &ScoredChunk{Chunk: s.Chunk, Score: s.Similarity}
	}
	return results, nil
}

// Ingest splits, embeds and persists each document, replacing any chunks
// previously stored for the same source. Re-running over an unchanged corpus
// leaves the store size stable.
func (g *Gateway) Ingest(ctx context.Context, docs []Document) (int, error) {
	total := 0
	for _, doc := range docs {
		n, err := g.IngestDocument(ctx, doc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// IngestDocument replaces the stored chunks of one source document.
func (g *Gateway) IngestDocument(ctx context.Context, doc Document) (int, error) {
	pieces := utils.SplitText(doc.Content, ChunkSize, ChunkOverlap)
	if len(pieces) == 0 {
		return 0, nil
	}

	now := time.Now()
	chunks := make([]*entity.NoteChunk, 0, len(pieces))
	for i, piece := range pieces {
		res, err := g.provider.Generate(piece, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", i, doc.Source, err)
		}

		chunks = append(chunks, &entity.NoteChunk{
			Id:         uuid.New(),
			Document:   piece,
			Source:     doc.Source,
			ChunkIndex: i,
			Provider:   g.provider.Name(),
			Model:      g.provider.Model(),
			Embedding:  res.Embedding.Values,
			Metadata: map[string]interface{}{
				"source":      doc.Source,
				"chunk_index": i,
			},
			CreatedAt: now,
		})
	}

	// Replace-on-reingest: clear the source's previous chunks, then insert.
	if err := g.chunks.DeleteBySource(ctx, doc.Source); err != nil {
		return 0, fmt.Errorf("clear previous chunks of %s: %w", doc.Source, err)
	}
	if err := g.chunks.CreateBulk(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks of %s: %w", doc.Source, err)
	}

	return len(chunks), nil
}

// Provider exposes the embedding space identity (provider name, model).
func (g *Gateway) Provider() (string, string) {
	return g.provider.Name(), g.provider.Model()
}
