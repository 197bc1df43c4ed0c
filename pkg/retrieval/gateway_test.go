package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/repository/contract"
	"lifehub-agent-be/internal/repository/specification"
	"lifehub-agent-be/pkg/embedding"
)

// fakeEmbedder produces deterministic unit vectors keyed on text content so
// tests can predict similarity ordering.
type fakeEmbedder struct {
	name    string
	model   string
	vectors map[string][]float32
	failOn  string
	calls   []string
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls = append(f.calls, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("embedding backend unavailable")
	}
	if v, ok := f.vectors[text]; ok {
		return &embedding.EmbeddingResponse{
			Embedding: embedding.EmbeddingResponseEmbedding{Values: v},
		}, nil
	}
	// Derive a stable vector from the text length.
	n := float32(len(text)%7 + 1)
	norm := float32(math.Sqrt(float64(n*n + 1)))
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{n / norm, 1 / norm, 0}},
	}, nil
}

func (f *fakeEmbedder) Name() string  { return f.name }
func (f *fakeEmbedder) Model() string { return f.model }

// memoryChunkRepository implements the repository contract on a slice,
// replicating the real query's ordering and embedding-space filter.
type memoryChunkRepository struct {
	chunks []*entity.NoteChunk
}

func (r *memoryChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.NoteChunk) error {
	r.chunks = append(r.chunks, chunks...)
	return nil
}

func (r *memoryChunkRepository) DeleteBySource(ctx context.Context, source string) error {
	kept := r.chunks[:0]
	for _, c := range r.chunks {
		if c.Source != source {
			kept = append(kept, c)
		}
	}
	r.chunks = kept
	return nil
}

func (r *memoryChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteChunk, error) {
	return r.chunks, nil
}

func (r *memoryChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.chunks)), nil
}

func (r *memoryChunkRepository) SearchSimilarWithScore(ctx context.Context, vec []float32, limit int, provider, model string) ([]*contract.ScoredNoteChunk, error) {
	var scored []*contract.ScoredNoteChunk
	for _, c := range r.chunks {
		if c.Provider != provider || c.Model != model {
			continue
		}
		scored = append(scored, &contract.ScoredNoteChunk{
			Chunk:      c,
			Similarity: cosine(vec, c.Embedding),
		})
	}
	// Insertion order is preserved for equal scores.
	for i := 0; i < len(scored); i++ {
		for j := i + 1; j < len(scored); j++ {
			if scored[j].Similarity > scored[i].Similarity {
				scored[i], scored[j] = scored[j], scored[i]
			}
		}
	}
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func newTestGateway(repo *memoryChunkRepository, emb *fakeEmbedder) *Gateway {
	if emb == nil {
		emb = &fakeEmbedder{name: "ollama", model: "nomic-embed-text"}
	}
	return NewGateway(emb, repo)
}

func TestIngestSplitsAndStoresChunks(t *testing.T) {
	repo := &memoryChunkRepository{}
	gw := newTestGateway(repo, nil)

	content := strings.Repeat("a", 1200)
	n, err := gw.Ingest(context.Background(), []Document{{Source: "notes.md", Content: content}})

	require.NoError(t, err)
	assert.Equal(t, n, len(repo.chunks))
	assert.Greater(t, n, 1, "1200 chars must produce multiple 500-char chunks")

	for i, c := range repo.chunks {
		assert.Equal(t, "notes.md", c.Source)
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, "ollama", c.Provider)
		assert.Equal(t, "nomic-embed-text", c.Model)
		assert.NotEmpty(t, c.Embedding)
		assert.Equal(t, "notes.md", c.Metadata["source"])
	}
}

func TestIngestIsIdempotentPerSource(t *testing.T) {
	repo := &memoryChunkRepository{}
	gw := newTestGateway(repo, nil)

	doc := Document{Source: "recipes.md", Content: strings.Repeat("b", 900)}

	first, err := gw.Ingest(context.Background(), []Document{doc})
	require.NoError(t, err)

	second, err := gw.Ingest(context.Background(), []Document{doc})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.chunks, first, "re-ingesting the same source must not grow the store")
}

func TestIngestKeepsOtherSources(t *testing.T) {
	repo := &memoryChunkRepository{}
	gw := newTestGateway(repo, nil)

	_, err := gw.Ingest(context.Background(), []Document{
		{Source: "a.md", Content: "alpha notes"},
		{Source: "b.md", Content: "beta notes"},
	})
	require.NoError(t, err)

	_, err = gw.Ingest(context.Background(), []Document{{Source: "a.md", Content: "alpha rewritten"}})
	require.NoError(t, err)

	sources := map[string]int{}
	for _, c := range repo.chunks {
		sources[c.Source]++
	}
	assert.Equal(t, 1, sources["a.md"])
	assert.Equal(t, 1, sources["b.md"])
}

func TestIngestEmbeddingFailureAborts(t *testing.T) {
	repo := &memoryChunkRepository{}
	emb := &fakeEmbedder{name: "ollama", model: "nomic-embed-text", failOn: "broken"}
	gw := newTestGateway(repo, emb)

	_, err := gw.Ingest(context.Background(), []Document{{Source: "bad.md", Content: "broken input"}})

	require.Error(t, err)
	assert.Empty(t, repo.chunks, "nothing may be written when embedding fails")
}

func TestQueryOrdersByDescendingSimilarity(t *testing.T) {
	repo := &memoryChunkRepository{}
	emb := &fakeEmbedder{
		name:  "ollama",
		model: "nomic-embed-text",
		vectors: map[string][]float32{
			"query": {1, 0, 0},
		},
	}
	gw := newTestGateway(repo, emb)

	for i, v := range [][]float32{{0, 1, 0}, {1, 0, 0}, {0.7, 0.7, 0}} {
		repo.chunks = append(repo.chunks, &entity.NoteChunk{
			Document:  fmt.Sprintf("chunk-%d", i),
			Source:    "n.md",
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			Embedding: v,
		})
	}

	results, err := gw.Query(context.Background(), "query", 5)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "chunk-1", results[0].Chunk.Document)
	assert.Equal(t, "chunk-2", results[1].Chunk.Document)
	assert.Equal(t, "chunk-0", results[2].Chunk.Document)
	assert.True(t, results[0].Score >= results[1].Score)
	assert.True(t, results[1].Score >= results[2].Score)
}

func TestQueryCapsResultsAtTopK(t *testing.T) {
	repo := &memoryChunkRepository{}
	emb := &fakeEmbedder{
		name:    "ollama",
		model:   "nomic-embed-text",
		vectors: map[string][]float32{"query": {1, 0, 0}},
	}
	gw := newTestGateway(repo, emb)

	for i := 0; i < 10; i++ {
		repo.chunks = append(repo.chunks, &entity.NoteChunk{
			Document:  fmt.Sprintf("chunk-%d", i),
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			Embedding: []float32{1, 0, 0},
		})
	}

	results, err := gw.Query(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestQueryEmptyStoreReturnsNoResults(t *testing.T) {
	repo := &memoryChunkRepository{}
	gw := newTestGateway(repo, nil)

	results, err := gw.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryRefusesForeignEmbeddingSpace(t *testing.T) {
	repo := &memoryChunkRepository{
		chunks: []*entity.NoteChunk{{
			Document:  "old chunk",
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			Embedding: []float32{1, 0, 0},
		}},
	}
	gw := newTestGateway(repo, nil)

	_, err := gw.Query(context.Background(), "query", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingSpaceMismatch)
}
