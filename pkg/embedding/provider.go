package embedding

import (
	"errors"
	"fmt"
)

var errNoEmbedding = errors.New("provider returned no embedding data")

// EmbeddingResponse wraps a generated embedding vector.
type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

type EmbeddingResponseEmbedding struct {
	Values []float32
}

// EmbeddingProvider defines the interface for generating text embeddings.
// Name and Model identify the embedding space; vectors from different spaces
// are not comparable and the retrieval layer refuses to mix them.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
	Name() string
	Model() string
}

// ProviderError wraps failures from the underlying embedding backend
// (auth, network, malformed response).
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
